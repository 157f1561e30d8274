package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	if err := Configure(log, "debug", "json", &buf); err != nil {
		t.Fatalf("configure: %v", err)
	}
	log.WithField("entity", "panier").Debug("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "hello" || line["entity"] != "panier" {
		t.Fatalf("unexpected fields %v", line)
	}
}

func TestConfigure_Errors(t *testing.T) {
	log := logrus.New()
	if err := Configure(log, "loud", "text", nil); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if err := Configure(log, "info", "xml", nil); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
	if err := Configure(log, "warn", "", nil); err != nil {
		t.Fatalf("text is the default format: %v", err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
}
