package libcache

import "io"

// Libdoc is the parsed content of a libdoc XML artifact.
type Libdoc struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Scope    string    `json:"scope"`
	Doc      string    `json:"doc"`
	Keywords []Keyword `json:"keywords"`
}

// Keyword is a single keyword documented in a libdoc artifact.
type Keyword struct {
	Name string   `json:"name"`
	Doc  string   `json:"doc"`
	Args []string `json:"args"`

	// Line and Column locate the keyword's element in the artifact, 0-based.
	Line   int `json:"line"`
	Column int `json:"column"`
}

// LibdocParser parses libdoc XML.
type LibdocParser interface {
	// ParseLibdoc parses a libdoc artifact.
	// Returns EINVALID if the content is not libdoc XML.
	ParseLibdoc(r io.Reader) (*Libdoc, error)
}
