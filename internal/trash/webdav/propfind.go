package webdav

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// propfindBody asks only for the resource type, the hrefs come with every response
const propfindBody = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:">
  <d:prop>
    <d:resourcetype/>
  </d:prop>
</d:propfind>`

type multistatus struct {
	XMLName   xml.Name   `xml:"DAV: multistatus"`
	Responses []response `xml:"DAV: response"`
}

type response struct {
	Href string `xml:"DAV: href"`
}

// parseHrefs decodes a multistatus document and returns the href of every
// response in document order. Anything but whitespace, comments or
// processing instructions after the root element is an error.
func parseHrefs(r io.Reader) ([]string, error) {
	d := xml.NewDecoder(r)
	var ms multistatus
	if err := d.Decode(&ms); err != nil {
		return nil, err
	}
	if err := expectEOF(d); err != nil {
		return nil, err
	}

	hrefs := make([]string, 0, len(ms.Responses))
	for _, resp := range ms.Responses {
		hrefs = append(hrefs, resp.Href)
	}
	return hrefs, nil
}

func expectEOF(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("text after root element: %q", string(t))
			}
		case xml.StartElement:
			return fmt.Errorf("element <%s> after root element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after root element", tok)
		}
	}
}
