// Package etree parses libdoc XML artifacts using github.com/beevik/etree.
// Both the layout written by libdoc up to Robot Framework 3 (keywords directly
// under the root, plain-text arguments) and the later layout (keywords under
// a <keywords> element, arguments carrying a repr attribute) are supported.
package etree

import (
	"bytes"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/libcache"
)

// Ensure Parser implements libcache.LibdocParser at compile time.
var _ libcache.LibdocParser = (*Parser)(nil)

// InvalidLibdocMessage is the error message for content that is not libdoc XML.
const InvalidLibdocMessage = "Not a valid Libdoc xml file"

// keywordNameRe matches the opening tag of a keyword element.
var keywordNameRe = regexp.MustCompile(`<kw name="([^"]+)"`)

// Parser parses libdoc XML.
type Parser struct{}

// NewParser returns a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLibdoc parses a libdoc artifact.
func (p *Parser) ParseLibdoc(r io.Reader) (*libcache.Libdoc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, libcache.Errorf(libcache.EINVALID, InvalidLibdocMessage)
	}

	root := doc.Root()
	if root == nil || root.Tag != "keywordspec" {
		return nil, libcache.Errorf(libcache.EINVALID, InvalidLibdocMessage)
	}

	kws := keywordElements(root)
	if len(kws) == 0 {
		return nil, libcache.Errorf(libcache.EINVALID, InvalidLibdocMessage)
	}

	libdoc := &libcache.Libdoc{
		Name:    root.SelectAttrValue("name", ""),
		Version: childText(root, "version"),
		Scope:   root.SelectAttrValue("scope", childText(root, "scope")),
		Doc:     childText(root, "doc"),
	}
	for _, kw := range kws {
		libdoc.Keywords = append(libdoc.Keywords, libcache.Keyword{
			Name: kw.SelectAttrValue("name", ""),
			Doc:  childText(kw, "doc"),
			Args: arguments(kw),
		})
	}
	fillPositions(data, libdoc.Keywords)

	return libdoc, nil
}

// keywordElements returns keyword elements in either layout.
func keywordElements(root *etree.Element) []*etree.Element {
	if kws := root.SelectElements("kw"); len(kws) > 0 {
		return kws
	}
	if keywords := root.SelectElement("keywords"); keywords != nil {
		return keywords.SelectElements("kw")
	}
	return nil
}

// arguments returns the plain-text arguments of the older layout, falling
// back to the repr attributes of the newer one.
func arguments(kw *etree.Element) []string {
	args := []string{}
	container := kw.SelectElement("arguments")
	if container == nil {
		return args
	}

	elems := container.SelectElements("arg")
	for _, arg := range elems {
		if len(arg.Attr) == 0 && len(arg.ChildElements()) == 0 {
			args = append(args, arg.Text())
		}
	}
	if len(args) > 0 {
		return args
	}

	for _, arg := range elems {
		if repr := arg.SelectAttr("repr"); repr != nil {
			args = append(args, repr.Value)
		}
	}
	return args
}

// fillPositions records where each keyword's element starts in data. When a
// name occurs more than once, the last occurrence wins.
func fillPositions(data []byte, keywords []libcache.Keyword) {
	index := make(map[string]int, len(keywords))
	for i, kw := range keywords {
		index[kw.Name] = i
	}

	for lineNo, line := range bytes.Split(normalizeNewlines(data), []byte("\n")) {
		for _, m := range keywordNameRe.FindAllSubmatchIndex(line, -1) {
			name := strings.TrimSpace(html.UnescapeString(string(line[m[2]:m[3]])))
			if i, ok := index[name]; ok {
				keywords[i].Line = lineNo
				keywords[i].Column = m[0]
			}
		}
	}
}

func normalizeNewlines(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
}

func childText(e *etree.Element, tag string) string {
	if child := e.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}
