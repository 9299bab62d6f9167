package cmd

import (
	"testing"

	"github.com/vkozyrev/gemmatran/internal/config"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		code  string
		want  string
	}{
		{"document.txt", "es", "document_es.txt"},
		{"/data/book.md", "uk", "/data/book_uk.md"},
		{"noext", "de", "noext_de"},
		{"archive.tar.gz", "fr", "archive.tar_fr.gz"},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.input, tt.code); got != tt.want {
			t.Errorf("defaultOutputPath(%q, %q) = %q, want %q", tt.input, tt.code, got, tt.want)
		}
	}
}

func TestBuildCompleter(t *testing.T) {
	s := &config.Settings{API: "ollama", APIBase: "http://localhost:11434", ModelName: "m"}
	svc, err := buildCompleter(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Name() != "ollama" {
		t.Errorf("expected ollama client, got %q", svc.Name())
	}

	s.API = "openai"
	svc, err = buildCompleter(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Name() != "openai" {
		t.Errorf("expected openai client, got %q", svc.Name())
	}

	s.API = "carrier-pigeon"
	if _, err := buildCompleter(s); err == nil {
		t.Error("expected error for unknown api kind")
	}
}
