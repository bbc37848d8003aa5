package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKindsDocCoversEveryKind(t *testing.T) {
	doc := generateKindsDoc()
	for _, want := range []string{"| storm | RainStormEvent | 1.50 | x0.60 |", "acid shower", "startPowerSurgeEffect(2.00)"} {
		if !strings.Contains(doc.Content, want) {
			t.Fatalf("kinds doc missing %q:\n%s", want, doc.Content)
		}
	}
}

func TestCommandsDocListsRegistry(t *testing.T) {
	doc := generateCommandsDoc()
	for _, want := range []string{"| add |", "| hour |", "| quit |"} {
		if !strings.Contains(doc.Content, want) {
			t.Fatalf("commands doc missing %q:\n%s", want, doc.Content)
		}
	}
}

func TestWriteDocs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ref")
	paths, err := writeDocs(root, []docFile{{Name: "a.md", Title: "A", Content: "# A\n"}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected page and index, got %v", paths)
	}
	index, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "- [A](./a.md)") {
		t.Fatalf("unexpected index:\n%s", index)
	}
}

func TestEscape(t *testing.T) {
	if got := escape(" a|b\nc "); got != `a\|b<br>c` {
		t.Fatalf("unexpected escape %q", got)
	}
}
