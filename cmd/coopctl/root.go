package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/diewo77/go-coopcycle/internal/client"
	"github.com/diewo77/go-coopcycle/internal/models"
)

const defaultAPI = "http://localhost:8080"

type rootOptions struct {
	api     string
	output  string
	timeout time.Duration

	httpclient *http.Client
}

func (o *rootOptions) set() *client.Set {
	hc := o.httpclient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}
	return client.NewSet(hc, o.api)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	api := os.Getenv("COOPCYCLE_API")
	if api == "" {
		api = defaultAPI
	}

	root := &cobra.Command{
		Use:           "coopctl",
		Short:         "Manage coopcycle entities over the REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unknown output format %q: want json or yaml", opts.output)
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.api, "api", api, "base URL of the coopcycle API (env COOPCYCLE_API)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")

	root.AddCommand(
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Client] { return s.Clients }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Commande] { return s.Commandes }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Paiement] { return s.Paiements }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Panier] { return s.Paniers }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Restaurant] { return s.Restaurants }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Restaurateur] { return s.Restaurateurs }),
		resourceCmd(opts, func(s *client.Set) *client.Client[*models.Societaire] { return s.Societaires }),
	)
	return root
}

// write prints v as indented JSON or as YAML with the same field names.
func write(w io.Writer, format string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if format == "json" {
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}

	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

// readEntity decodes a YAML or JSON document (JSON is YAML) from path, or
// from stdin when path is "-", into an E.
func readEntity[E any](path string, stdin io.Reader) (E, error) {
	var e E
	var (
		buf []byte
		err error
	)
	if path == "-" {
		buf, err = io.ReadAll(stdin)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		return e, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(buf)) == "" {
		return e, fmt.Errorf("%s is empty", path)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return e, fmt.Errorf("parse %s: %w", path, err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return e, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("decode %s: %w", path, err)
	}
	return e, nil
}
