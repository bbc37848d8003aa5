// Command docsgen writes the weather reference pages under docs/reference.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/survive-it-weather/internal/parser"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

// Severities shown in the kinds table.
var severities = []float64{0.5, 1.0, weather.MaxSeverity}

func main() {
	root := flag.String("out", filepath.Join("docs", "reference"), "directory to write into")
	flag.Parse()

	paths, err := writeDocs(*root, []docFile{generateKindsDoc(), generateCommandsDoc()})
	if err != nil {
		fatal(err)
	}
	for _, p := range paths {
		fmt.Printf("wrote %s\n", p)
	}
}

func writeDocs(root string, files []docFile) ([]string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(generateIndex(files)), 0o644); err != nil {
		return written, err
	}
	return append(written, indexPath), nil
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Weather Reference\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateKindsDoc() docFile {
	var b strings.Builder
	b.WriteString("# Weather Kinds\n\n")
	b.WriteString("Source: `internal/weather/effects.go` (`Describe`).\n\n")
	b.WriteString(fmt.Sprintf("Total kinds: **%d**. Severity runs up to %.1f; generated events stay at or below %.1f.\n\n",
		len(weather.Kinds()), weather.MaxSeverity, weather.MaxGeneratedSeverity))
	b.WriteString("| Kind | Save ID | Severity | Brightness | Water /h | Douses Fires | Lightning | Particles | Sound | Extra Signal |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, k := range weather.Kinds() {
		for _, sev := range severities {
			p := weather.Describe(k, sev)
			b.WriteString("| ")
			b.WriteString(escape(k.Label()))
			b.WriteString(" | ")
			b.WriteString(escape(k.String()))
			b.WriteString(" | ")
			b.WriteString(fmt.Sprintf("%.2f", sev))
			b.WriteString(" | ")
			b.WriteString(fmt.Sprintf("x%.2f", p.Brightness))
			b.WriteString(" | ")
			b.WriteString(fmt.Sprintf("%+.4f", p.WaterRate))
			b.WriteString(" | ")
			b.WriteString(yesNo(p.DousesFlames))
			b.WriteString(" | ")
			b.WriteString(yesNo(p.Lightning))
			b.WriteString(" | ")
			b.WriteString(escape(string(p.Particles)))
			b.WriteString(" | ")
			b.WriteString(escape(string(p.Sound)))
			b.WriteString(" | ")
			b.WriteString(escape(formatSignal(p)))
			b.WriteString(" |\n")
		}
	}
	return docFile{Name: "kinds.md", Title: "Weather Kinds", Content: b.String()}
}

func formatSignal(p weather.Profile) string {
	if p.StartSignal == "" {
		return ""
	}
	return fmt.Sprintf("%s(%.2f) / %s", p.StartSignal, p.SignalValue, p.StopSignal)
}

func generateCommandsDoc() docFile {
	cmds := parser.DefaultRegistry().Commands()

	var b strings.Builder
	b.WriteString("# Commands\n\n")
	b.WriteString("Source: `internal/parser/registry.go` (`DefaultRegistry`).\n\n")
	b.WriteString(fmt.Sprintf("Total commands: **%d**.\n\n", len(cmds)))
	b.WriteString("| Command | Aliases | Args | Takes a Count |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, c := range cmds {
		b.WriteString("| ")
		b.WriteString(escape(c.Canonical))
		b.WriteString(" | ")
		b.WriteString(escape(strings.Join(c.Aliases, ", ")))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%d-%d", c.MinArgs, c.MaxArgs))
		b.WriteString(" | ")
		b.WriteString(yesNo(c.Counted))
		b.WriteString(" |\n")
	}
	return docFile{Name: "commands.md", Title: "Commands", Content: b.String()}
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
