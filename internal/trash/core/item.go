package core

import (
	"net/url"
	"path"
	"strings"
)

// Item represents an entry in the remote trash bin
type Item struct {
	// Href is the server-side path of the item, as returned by the listing.
	// It uniquely identifies the item within the trash bin.
	Href string
}

// Name returns the unescaped last segment of the href
func (i Item) Name() string {
	p := strings.TrimSuffix(i.Href, "/")
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return path.Base(p)
}

// GetName implements the filter interface
func (i Item) GetName() string {
	return i.Name()
}

// GetPath implements the filter interface
func (i Item) GetPath() string {
	return i.Href
}

func (i Item) String() string {
	return i.Href
}
