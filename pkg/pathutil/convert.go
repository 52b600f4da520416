// Package pathutil provides path conversion helpers shared between the
// loader, the semantic program, and the converter's external classification.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to a path relative to root.
// Already-relative paths and paths that cannot be made relative are
// returned unchanged.
func ToRelative(root, path string) string {
	if root == "" || path == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// ToAbsolute converts a relative path to an absolute path under root.
// Already-absolute paths are returned unchanged.
func ToAbsolute(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if root == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		return abs
	}
	return filepath.Join(root, path)
}

// WithinRoot reports whether path sits inside root. Paths that cannot be
// made relative to root count as outside.
func WithinRoot(root, path string) bool {
	if root == "" {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ToSlashRelative is ToRelative with forward slashes, for glob matching
// and display independent of the host separator.
func ToSlashRelative(root, path string) string {
	return filepath.ToSlash(ToRelative(root, path))
}
