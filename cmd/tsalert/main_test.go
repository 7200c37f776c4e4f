package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arjunmahishi/tsalert/tsalert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := rootCommand(&out).Run(context.Background(), append([]string{"tsalert"}, args...))
	return out.String(), err
}

func writeFixture(t *testing.T) (report, root string) {
	t.Helper()
	root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"),
		[]byte("int main(void)\n{\n  foo = 1;\n  return 0;\n}\n"), 0644))

	report = filepath.Join(root, "report.sarif")
	require.NoError(t, os.WriteFile(report, []byte(`{"runs": [{"results": [
		{"message": {"text": "unused"}, "locations": [
			{"physicalLocation": {"artifactLocation": {"uri": "file:///main.c"}, "region": {"startLine": 3, "startColumn": 3}}}]}]}]}`), 0644))
	return report, root
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"only-report.sarif"}} {
		out, err := run(t, args...)
		require.NoError(t, err)
		require.Equal(t, "Usage: tsalert <file_path> <source_dir>\n", out)
	}
}

func TestRender(t *testing.T) {
	report, root := writeFixture(t)

	out, err := run(t, "--color", "never", report, root)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		filepath.Join(root, "main.c") + ":3:3",
		strings.Repeat("=", 32),
		"1: int main(void)",
		"2: {",
		"3:   foo = 1;",
		"-----^",
		"ALERT: unused",
		"------",
		"4:   return 0;",
		"5: }",
		// One blank line closes the block, not two.
		"",
		"",
	}, "\n"), out)
}

func TestRenderMalformedReport(t *testing.T) {
	root := t.TempDir()
	report := filepath.Join(root, "report.sarif")
	require.NoError(t, os.WriteFile(report, []byte(`{"runs": "nope"}`), 0644))

	_, err := run(t, report, root)
	require.ErrorIs(t, err, tsalert.ErrMalformedReport)
}

func TestList(t *testing.T) {
	report, root := writeFixture(t)

	out, err := run(t, "list", "--json", report, root)
	require.NoError(t, err)

	var alerts []tsalert.Alert
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Equal(t, []tsalert.Alert{
		{File: filepath.Join(root, "main.c"), Line: 3, Column: 3, Message: "unused"},
	}, alerts)

	out, err = run(t, "list", report, root)
	require.NoError(t, err)
	require.Contains(t, out, "main.c")
	require.Contains(t, out, "unused")

	_, err = run(t, "list")
	require.Error(t, err)
}

func TestLanguages(t *testing.T) {
	out, err := run(t, "languages")
	require.NoError(t, err)
	require.Contains(t, out, "c\t.c .h\n")
	require.Contains(t, out, "go\t.go\n")
	require.Contains(t, out, "python\t.py .pyi\n")
}

func TestExampleReport(t *testing.T) {
	out, err := run(t, "example-report")
	require.NoError(t, err)

	alerts, err := tsalert.ParseReport(strings.NewReader(out), "/src")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.Equal(t, 1, alerts[1].Column)
}
