package formats

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Miscellaneous is the catch-all category for files no table entry claims.
const Miscellaneous = "Miscellaneous"

// Category is one row of the Format Table.
type Category struct {
	Name       string   `toml:"category" yaml:"category"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Table is an ordered, read-only Format Table.
type Table struct {
	categories []Category
	index      map[string]string
}

// New validates categories and builds a Table. Category order is preserved.
func New(categories []Category) (*Table, error) {
	if len(categories) == 0 {
		return nil, errors.New("format table has no categories")
	}
	t := &Table{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]string),
	}
	seen := make(map[string]struct{}, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("format table entry %d: category name is empty", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("format table: category %q declared twice", name)
		}
		seen[name] = struct{}{}

		exts := make([]string, 0, len(c.Extensions))
		for _, raw := range c.Extensions {
			ext := NormalizeExtension(raw)
			if ext == "" {
				continue
			}
			exts = append(exts, ext)
			if _, claimed := t.index[ext]; !claimed {
				t.index[ext] = name
			}
		}
		t.categories = append(t.categories, Category{Name: name, Extensions: exts})
	}
	return t, nil
}

// MustNew is New for tables known to be valid at compile time.
func MustNew(categories []Category) *Table {
	t, err := New(categories)
	if err != nil {
		panic(err)
	}
	return t
}

// NormalizeExtension trims whitespace and a leading dot and uppercases ext.
func NormalizeExtension(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return ""
	}
	return cases.Upper(language.Und).String(ext)
}

// Lookup returns the first category (in declaration order) whose extension
// set contains ext. Matching is case-insensitive.
func (t *Table) Lookup(ext string) (string, bool) {
	if t == nil {
		return "", false
	}
	key := NormalizeExtension(ext)
	if key == "" {
		return "", false
	}
	name, ok := t.index[key]
	return name, ok
}

// Categories returns a copy of the table rows in declaration order.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// Len reports the number of categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.categories)
}
