package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema", "save.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"format_version"`, `"session_id"`, `"climate"`, `"Survive It weather save"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("schema missing %s:\n%s", want, text)
		}
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be renamed away, stat err %v", err)
	}
}
