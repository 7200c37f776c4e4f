package tsalert

import (
	"path/filepath"
	"strings"
)

// ResolveArtifactPath maps a report artifact URI onto sourceRoot. A leading
// "file://" is stripped and "%20" is decoded to a space; no other
// percent-decoding is done.
func ResolveArtifactPath(sourceRoot, uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	p = strings.ReplaceAll(p, "%20", " ")
	return filepath.Join(sourceRoot, p)
}

// displayPath returns path relative to root with forward slashes, or path
// unchanged when it is not below root.
func displayPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
