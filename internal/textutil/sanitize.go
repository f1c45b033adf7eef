package textutil

import "strings"

// folderNameReplacer maps characters that cannot appear in a single path
// segment on common filesystems.
var folderNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFolderName turns a category or target folder name into a single safe
// path segment. Separators, colons and asterisks become dashes, other unsafe
// characters are removed and runs of whitespace collapse to one space. Names
// that would escape the output directory ("." and "..") sanitize to "".
func SanitizeFolderName(name string) string {
	name = strings.Join(strings.Fields(folderNameReplacer.Replace(name)), " ")
	switch name {
	case ".", "..":
		return ""
	}
	return name
}

// SplitList splits a comma separated flag value, trimming blanks and leading
// dots. Empty items are dropped; order and duplicates are preserved.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimPrefix(strings.TrimSpace(part), ".")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
