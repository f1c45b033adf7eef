// Package formats owns the Format Table: the ordered mapping from category
// names to the file extensions they claim.
//
// Tables come from the built-in defaults, from the [[formats]] section of the
// config file, or from a standalone TOML or YAML file. Extensions are stored
// uppercased and without a leading dot; when two categories claim the same
// extension the one declared first wins. A Table is immutable once built and
// safe for concurrent readers.
package formats
