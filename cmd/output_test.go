package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/galleryd/internal/config"
	"github.com/brogergvhs/galleryd/internal/providers"
)

func sampleList() providers.BookListResult {
	return providers.BookListResult{
		Page: 2,
		Results: []providers.BookSummary{
			{ID: "1/a", Title: "First", AvailableLanguages: []providers.Language{providers.English, providers.Mandarin}},
			{ID: "2/b", Title: "Second", AvailableLanguages: []providers.Language{providers.Japanese}},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, config.FormatJSON, sampleList()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got providers.BookListResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, buf.String())
	}
	if got.Page != 2 || len(got.Results) != 2 || got.Results[0].AvailableLanguages[1] != providers.Mandarin {
		t.Fatalf("unexpected decoded result %+v", got)
	}
	if !strings.Contains(buf.String(), `"availableLanguages"`) {
		t.Fatalf("expected camelCase keys, got %s", buf.String())
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, config.FormatYAML, sampleList()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got providers.BookListResult
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, buf.String())
	}
	if got.Results[1].ID != "2/b" {
		t.Fatalf("unexpected decoded result %+v", got)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, config.FormatTable, sampleList()); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Page:", "ID", "LANGUAGES", "1/a", "english,mandarin", "Second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := render(&buf, config.FormatTable, providers.EmptyBook()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Book not available.") {
		t.Fatalf("unexpected empty book output %q", buf.String())
	}

	buf.Reset()
	if err := render(&buf, config.FormatTable, []providers.BookSummary{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No results.") {
		t.Fatalf("unexpected empty list output %q", buf.String())
	}
}

func TestRenderRejectsUnknownInput(t *testing.T) {
	if err := render(&bytes.Buffer{}, "xml", sampleList()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if err := render(&bytes.Buffer{}, config.FormatTable, 42); err == nil {
		t.Fatalf("expected error for a type without table layout")
	}
}
