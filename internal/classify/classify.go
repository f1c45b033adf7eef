// Package classify maps file names to the category folder they belong in.
package classify

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"filesort/internal/formats"
)

// DateLayout is the folder name layout used by ByDate.
const DateLayout = "2006-01-02"

// Extension returns the text after the last dot in name, or "" when name has
// no dot. The case of the extension is preserved.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// ByExtension returns the first table category claiming the extension of
// name, ignoring case, or formats.Miscellaneous.
func ByExtension(table *formats.Table, name string) string {
	if category, ok := table.Lookup(Extension(name)); ok {
		return category
	}
	return formats.Miscellaneous
}

// ByDate returns the modification date of path formatted as YYYY-MM-DD in
// local time.
func ByDate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return DateCategory(info.ModTime()), nil
}

// DateCategory formats t the way ByDate names folders.
func DateCategory(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// MatchesExtension reports whether the extension of name equals one of exts
// exactly. Unlike ByExtension the comparison is case-sensitive.
func MatchesExtension(name string, exts []string) bool {
	ext := Extension(name)
	for _, candidate := range exts {
		if candidate == ext {
			return true
		}
	}
	return false
}

// IsEligible reports whether name inside dir should be organized: hidden
// entries and directories are skipped. Entries that cannot be stat'ed stay
// eligible so the failure is reported by the move.
func IsEligible(name, dir string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		return true
	}
	return !info.IsDir()
}
