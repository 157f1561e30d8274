package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-coopcycle/internal/client"
	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/internal/schema"
)

type listOutput[E any] struct {
	Total int64 `json:"total"`
	Items []E   `json:"items"`
}

// resourceCmd builds "coopctl <resource> list|get|create|update|patch|delete"
// for the client that pick selects.
func resourceCmd[E models.Entity](opts *rootOptions, pick func(*client.Set) *client.Client[E]) *cobra.Command {
	resource := pick(client.NewSet(nil, "")).Resource()
	s, ok := schema.ByResource(resource)
	if !ok {
		panic("coopctl: no schema for " + resource)
	}
	c := func() *client.Client[E] { return pick(opts.set()) }

	cmd := &cobra.Command{
		Use:   resource,
		Short: "Manage " + resource,
		Long:  "Manage " + resource + ".\n\nFields: " + strings.Join(s.Names(), ", "),
	}

	var req client.Request
	list := &cobra.Command{
		Use:   "list",
		Short: "List " + resource,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return checkListFields(s, req)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c().Query(cmd.Context(), req)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, listOutput[E]{Total: page.Total, Items: page.Items})
		},
	}
	list.Flags().IntVar(&req.Page, "page", 0, "page number, from 0")
	list.Flags().IntVar(&req.Size, "size", 0, "page size (server default when 0)")
	list.Flags().StringArrayVar(&req.Sort, "sort", nil, "sort as field[,asc|desc], repeatable")
	list.Flags().StringToStringVar(&req.Filter, "filter", nil, "field=value equality filter, repeatable")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one of " + resource,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return err
			}
			e, err := c().Find(cmd.Context(), id)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, e)
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of " + resource,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := c().Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", resource, id)
			return err
		},
	}

	cmd.AddCommand(
		list, get, del,
		writeCmd(opts, "create", "Create one of "+resource+" from a file", s, c, (*client.Client[E]).Create),
		writeCmd(opts, "update", "Replace one of "+resource+" from a file; the file carries the id", s, c, (*client.Client[E]).Update),
		// A patch carries only some fields, so it is left to the server.
		writeCmd(opts, "patch", "Merge non-null fields of a file into one of "+resource, nil, c, (*client.Client[E]).PartialUpdate),
	)
	return cmd
}

// checkListFields rejects sort and filter names the resource does not have.
func checkListFields(s *schema.Schema, req client.Request) error {
	for _, sortBy := range req.Sort {
		name, _, _ := strings.Cut(sortBy, ",")
		if _, ok := s.Field(name); !ok {
			return fmt.Errorf("cannot sort %s by %q: fields are %s", s.Resource, name, strings.Join(s.Names(), ", "))
		}
	}
	for name := range req.Filter {
		if _, ok := s.Field(name); !ok {
			return fmt.Errorf("cannot filter %s on %q: fields are %s", s.Resource, name, strings.Join(s.Names(), ", "))
		}
	}
	return nil
}

// invalid formats violations as "field: code" pairs in field order.
func invalid(entity string, v map[string]string) error {
	pairs := make([]string, 0, len(v))
	for field, code := range v {
		pairs = append(pairs, field+": "+code)
	}
	sort.Strings(pairs)
	return fmt.Errorf("invalid %s: %s", entity, strings.Join(pairs, ", "))
}

// writeCmd builds a command that sends the entity read from -f with op.
// A non-nil s validates the entity before anything is sent.
func writeCmd[E models.Entity](
	opts *rootOptions,
	use, short string,
	s *schema.Schema,
	c func() *client.Client[E],
	op func(*client.Client[E], context.Context, E) (E, error),
) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   use + " -f FILE",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := readEntity[E](file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if s != nil {
				v, err := s.ValidateEntity(e)
				if err != nil {
					return err
				}
				if !v.Empty() {
					return invalid(s.Entity, v)
				}
			}
			saved, err := op(c(), cmd.Context(), e)
			if err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			return write(cmd.OutOrStdout(), opts.output, saved)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
