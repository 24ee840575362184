package template

import (
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// stringTag is the element holding free text in project templates
const stringTag = "string"

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// document is a parsed template plus what is needed to write it back as it
// came in
type document struct {
	tree *etree.Document
	bom  bool
}

// parseDocument parses raw template bytes as UTF-8 XML. The declared
// encoding is ignored; templates are always read as UTF-8.
func parseDocument(raw []byte) (*document, error) {
	body := raw
	bom := bytes.HasPrefix(body, utf8BOM)
	if bom {
		body = body[len(utf8BOM):]
	}

	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true
	tree.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	if err := tree.ReadFromBytes(body); err != nil {
		return nil, err
	}
	if tree.Root() == nil {
		return nil, errNoRoot
	}

	return &document{tree: tree, bom: bom}, nil
}

// stringElements returns every string element in document order
func (d *document) stringElements() []*etree.Element {
	return d.tree.FindElements("//" + stringTag)
}

// textContent returns the character data of el and all its descendants
// joined in document order. Comments and processing instructions are left
// out.
func textContent(el *etree.Element) string {
	var b strings.Builder
	collectText(&b, el)
	return b.String()
}

func collectText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(b, t)
		}
	}
}

// setTextContent replaces everything inside el with a single text node
func setTextContent(el *etree.Element, text string) {
	for len(el.Child) > 0 {
		el.RemoveChildAt(len(el.Child) - 1)
	}
	el.SetText(text)
}

// bytes serializes the document
func (d *document) bytes() ([]byte, error) {
	out, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, err
	}
	if d.bom {
		out = append(append([]byte{}, utf8BOM...), out...)
	}
	return out, nil
}
