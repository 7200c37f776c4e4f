package tsalert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		// Create temp dir for this test file; it doubles as the source root.
		tmpDir, err := os.MkdirTemp("", "tsalert-test-*")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		// Track files created by "file" and "report" commands
		files := make(map[string]string) // name -> abs path

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "file", "report":
				return handleFile(t, d, tmpDir, files)
			case "render":
				return handleRender(t, d, tmpDir, files)
			case "list":
				return handleList(t, d, tmpDir, files)
			case "locate":
				return handleLocate(t, d, files)
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// handleFile writes d.Input to a file in the temp directory
func handleFile(
	t *testing.T, d *datadriven.TestData, tmpDir string, files map[string]string,
) string {
	var name string
	d.ScanArgs(t, "name", &name)

	// %20 in the name stands for a space, which directive args cannot hold.
	absPath := filepath.Join(tmpDir, strings.ReplaceAll(name, "%20", " "))

	err := os.MkdirAll(filepath.Dir(absPath), 0755)
	require.NoError(t, err)

	err = os.WriteFile(absPath, []byte(d.Input+"\n"), 0644)
	require.NoError(t, err)

	files[name] = absPath
	return "" // file command produces no output
}

// handleRender runs Render() with colors off and returns the rendering
func handleRender(
	t *testing.T, d *datadriven.TestData, tmpDir string, files map[string]string,
) string {
	var report string
	d.ScanArgs(t, "report", &report)

	var out bytes.Buffer
	opts := RenderOptions{
		Report:     files[report],
		SourceRoot: tmpDir,
		Output:     &out,
		Color:      ColorNever,
		Strict:     d.HasArg("strict"),
		Dedup:      d.HasArg("dedup"),
		Cache:      d.HasArg("cache"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if d.HasArg("language") {
		d.ScanArgs(t, "language", &opts.Language)
	}
	if d.HasArg("allow-syntax-errors") {
		opts.AllowSyntaxErrors = true
	}

	stats, err := Render(context.Background(), opts)
	if err != nil {
		return strings.ReplaceAll(fmt.Sprintf("error: %s", err), tmpDir, "ROOT")
	}

	result := strings.ReplaceAll(out.String(), tmpDir, "ROOT")
	if d.HasArg("stats") {
		result += fmt.Sprintf("stats: alerts=%d rendered=%d skipped=%d",
			stats.Alerts, stats.Rendered, stats.Skipped)
	}
	return strings.TrimRight(result, "\n")
}

// handleList runs ListAlerts() and formats alerts as text
func handleList(
	t *testing.T, d *datadriven.TestData, tmpDir string, files map[string]string,
) string {
	var report string
	d.ScanArgs(t, "report", &report)

	alerts, err := ListAlerts(ListOptions{
		Report:     files[report],
		SourceRoot: tmpDir,
		Dedup:      d.HasArg("dedup"),
	})
	if err != nil {
		return strings.ReplaceAll(fmt.Sprintf("error: %s", err), tmpDir, "ROOT")
	}
	if len(alerts) == 0 {
		return "(no alerts)"
	}

	var lines []string
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("%s:%d:%d %s",
			displayPath(tmpDir, a.File), a.Line, a.Column, a.Message))
	}
	return strings.Join(lines, "\n")
}

// handleLocate resolves a 1-based position and prints the node and its function
func handleLocate(
	t *testing.T, d *datadriven.TestData, files map[string]string,
) string {
	var name string
	var line, column int
	d.ScanArgs(t, "file", &name)
	d.ScanArgs(t, "line", &line)
	d.ScanArgs(t, "column", &column)

	language := DefaultLanguage
	if d.HasArg("language") {
		d.ScanArgs(t, "language", &language)
	}

	unit, err := LoadSource(context.Background(), files[name], Get(language), false)
	require.NoError(t, err)
	defer unit.Close()

	if !unit.HasTree() {
		return "(no tree)"
	}

	node := unit.Locate(line-1, column-1)
	if node == nil {
		return "(no match)"
	}

	start, end := node.StartPosition(), node.EndPosition()
	result := fmt.Sprintf("%s %d:%d-%d:%d", node.Kind(), start.Row, start.Column, end.Row, end.Column)
	if span, ok := unit.EnclosingFunction(node); ok {
		result += fmt.Sprintf("\nfunction %d-%d", span.Start, span.End)
	} else {
		result += "\n(no function)"
	}
	return result
}
