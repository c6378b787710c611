// Package xmlfmt reads and writes shaders in the Cycles XML layout:
//
//	<shader name="glow">
//	  <emission name="emit" color="0.8 0.8 0.8 1" strength="1"></emission>
//	  <output name="output"></output>
//	  <connect from="emit emission" to="output surface"></connect>
//	</shader>
//
// Element names are node kinds; attribute values are text.
package xmlfmt

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/shadergrid/pkg/markup"
	"github.com/specialistvlad/shadergrid/pkg/nodeid"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/zclconf/go-cty/cty"
)

// Extension is the file extension of the dialect.
const Extension = ".xml"

const (
	rootElement    = "shader"
	connectElement = "connect"
)

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string) (*markup.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(path, src)
}

// Decode parses src. The root element's name attribute names the shader;
// without one, the file name without extension is used.
func Decode(filename string, src []byte) (*markup.Document, error) {
	d := xml.NewDecoder(bytes.NewReader(src))
	root, err := nextStart(d)
	if err != nil {
		return nil, parseError(err, "%s: no root element", filename)
	}
	if root.Name.Local != rootElement {
		return nil, parseError(nil, "%s: root element must be <%s>, got <%s>", filename, rootElement, root.Name.Local)
	}

	doc := &markup.Document{Name: baseName(filename)}
	if name, ok := attr(root, "name"); ok {
		doc.Name = name
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, parseError(err, "%s: unterminated <%s>", filename, rootElement)
		}
		switch el := tok.(type) {
		case xml.EndElement:
			return doc, nil
		case xml.StartElement:
			line, _ := d.InputPos()
			if el.Name.Local == connectElement {
				c, err := decodeConnect(el)
				if err != nil {
					return nil, parseError(err, "%s:%d: invalid <connect>", filename, line)
				}
				doc.Connections = append(doc.Connections, *c)
			} else {
				n, err := decodeNode(el)
				if err != nil {
					return nil, parseError(err, "%s:%d: invalid <%s>", filename, line, el.Name.Local)
				}
				doc.Nodes = append(doc.Nodes, *n)
			}
			if err := d.Skip(); err != nil {
				return nil, parseError(err, "%s:%d: malformed <%s>", filename, line, el.Name.Local)
			}
		}
	}
}

func nextStart(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, io.ErrUnexpectedEOF
			}
			return xml.StartElement{}, err
		}
		if el, ok := tok.(xml.StartElement); ok {
			return el, nil
		}
	}
}

func decodeNode(el xml.StartElement) (*markup.NodeDecl, error) {
	n := &markup.NodeDecl{Kind: shader.Kind(el.Name.Local), Attrs: shader.Attributes{}}
	for _, a := range el.Attr {
		if a.Name.Local == "name" {
			n.Name = a.Value
			continue
		}
		n.Attrs[a.Name.Local] = cty.StringVal(a.Value)
	}
	if n.Name == "" {
		return nil, errors.New("missing name attribute")
	}
	return n, nil
}

func decodeConnect(el xml.StartElement) (*markup.ConnDecl, error) {
	rawFrom, ok := attr(el, "from")
	if !ok {
		return nil, errors.New("missing from attribute")
	}
	rawTo, ok := attr(el, "to")
	if !ok {
		return nil, errors.New("missing to attribute")
	}
	from, err := nodeid.ParseFields(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := nodeid.ParseFields(rawTo)
	if err != nil {
		return nil, err
	}
	return &markup.ConnDecl{From: *from, To: *to}, nil
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Encode writes doc as indented XML. Attributes follow the name attribute
// sorted by name.
func Encode(doc *markup.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: rootElement}}
	if doc.Name != "" {
		root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: doc.Name})
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, n := range doc.Nodes {
		el := xml.StartElement{Name: xml.Name{Local: string(n.Kind)}}
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: n.Name})
		for _, name := range n.Attrs.Names() {
			text, err := shader.AttrText(n.Attrs[name])
			if err != nil {
				return nil, fmt.Errorf("node %q attribute %q: %w", n.Name, name, err)
			}
			el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: text})
		}
		if err := encodeEmpty(enc, el); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Connections {
		el := xml.StartElement{Name: xml.Name{Local: connectElement}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "from"}, Value: c.From.Fields()},
			{Name: xml.Name{Local: "to"}, Value: c.To.Fields()},
		}}
		if err := encodeEmpty(enc, el); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeEmpty(enc *xml.Encoder, el xml.StartElement) error {
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	return enc.EncodeToken(el.End())
}

func baseName(filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

func parseError(cause error, format string, args ...any) error {
	return &shader.Error{Err: shader.ErrParse, Detail: fmt.Sprintf(format, args...), Cause: cause}
}
