package title

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PageExt is the extension of every mirrored page file.
const PageExt = ".txt"

var (
	unsafeCharRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_.:/-]`)
	dotSegmentRe = regexp.MustCompile(`/\.+/`)
	multiSlashRe = regexp.MustCompile(`//+`)
)

// RelPath maps a stored title to a slash-separated path relative to the pages
// directory. Characters outside letters, digits, "_", "-", ".", ":" and "/"
// become "_", ":" becomes a directory separator, and segments made only of
// dots or left empty are removed. The result never starts with "/" and never
// contains a ".." segment.
func RelPath(stored string) string {
	s := unsafeCharRe.ReplaceAllString(stored, "_")
	s = strings.ReplaceAll(s, ":", "/")
	s = "/" + s + PageExt

	// Replacements do not overlap, so "/../../" needs more than one pass.
	for {
		next := dotSegmentRe.ReplaceAllString(s, "/")
		next = multiSlashRe.ReplaceAllString(next, "/")
		if next == s {
			break
		}
		s = next
	}

	return strings.TrimPrefix(s, "/")
}

// ToPath maps a stored title to a filesystem path under baseDir.
func ToPath(stored, baseDir string) string {
	return filepath.Join(baseDir, filepath.FromSlash(RelPath(stored)))
}
