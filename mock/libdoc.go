package mock

import (
	"io"

	"github.com/fwojciec/libcache"
)

var _ libcache.LibdocParser = (*LibdocParser)(nil)

// LibdocParser is a mock implementation of libcache.LibdocParser.
type LibdocParser struct {
	ParseLibdocFn func(r io.Reader) (*libcache.Libdoc, error)
}

func (p *LibdocParser) ParseLibdoc(r io.Reader) (*libcache.Libdoc, error) {
	return p.ParseLibdocFn(r)
}
