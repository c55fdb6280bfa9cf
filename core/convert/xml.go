package convert

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

const (
	xmlAttrPrefix = "@"
	xmlTextKey    = "#text"
	xmlRootName   = "root"
	xmlItemName   = "item"
)

var xmlName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*(:[A-Za-z_][A-Za-z0-9_.\-]*)?$`)

// XMLConverter maps elements to objects: attributes become "@name" keys,
// text next to attributes or children becomes "#text", and repeated child
// elements collapse into an array. All scalars are strings.
type XMLConverter struct{}

// NewXMLConverter creates an XML converter.
func NewXMLConverter() *XMLConverter {
	return &XMLConverter{}
}

// Format implements Converter.
func (c *XMLConverter) Format() domain.Format {
	return domain.FormatXML
}

// ToCanonical implements Converter. The result is an object with a single key,
// the root element's name.
func (c *XMLConverter) ToCanonical(text string) (canonical.Value, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		convErr := &coreerrors.ConversionError{Format: string(domain.FormatXML), Op: opParse, Err: err}
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			convErr.Err = errors.New(syntaxErr.Msg)
			convErr.Line = syntaxErr.Line
			convErr.Snippet = snippet(text, syntaxErr.Line, 0)
		}
		return nil, convErr
	}

	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			if root != nil {
				return nil, c.parseError(fmt.Errorf("multiple root elements: <%s> and <%s>", qualifiedName(root), qualifiedName(n)))
			}
			root = n
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil, c.parseError(fmt.Errorf("text outside the root element"))
			}
		}
	}
	if root == nil {
		return nil, c.parseError(fmt.Errorf("no root element"))
	}

	obj := canonical.NewObject()
	obj.Set(qualifiedName(root), c.elementValue(root))
	return obj, nil
}

func (c *XMLConverter) elementValue(n *xmlquery.Node) canonical.Value {
	obj := canonical.NewObject()
	for _, attr := range n.Attr {
		name := attr.Name.Local
		if attr.Name.Space != "" {
			name = attr.Name.Space + ":" + name
		}
		obj.Set(xmlAttrPrefix+name, attr.Value)
	}

	var text strings.Builder
	hasChildren := false
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(child.Data)
		case xmlquery.ElementNode:
			hasChildren = true
			name := qualifiedName(child)
			value := c.elementValue(child)
			existing, ok := obj.Get(name)
			switch {
			case !ok:
				obj.Set(name, value)
			case isArray(existing):
				obj.Set(name, append(existing.([]canonical.Value), value))
			default:
				obj.Set(name, []canonical.Value{existing, value})
			}
		}
	}

	body := strings.TrimSpace(text.String())
	if obj.Len() == 0 && !hasChildren {
		return body
	}
	if body != "" {
		obj.Set(xmlTextKey, body)
	}
	return obj
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func isArray(v canonical.Value) bool {
	_, ok := v.([]canonical.Value)
	return ok
}

// FromCanonical implements Converter. An object with a single element-named key
// becomes the root element; anything else is wrapped in <root>.
func (c *XMLConverter) FromCanonical(v canonical.Value) (string, error) {
	rootName, rootValue := xmlRootName, v
	if obj, ok := v.(*canonical.Object); ok && obj.Len() == 1 {
		key := obj.Keys()[0]
		value, _ := obj.Get(key)
		if !strings.HasPrefix(key, xmlAttrPrefix) && key != xmlTextKey && !isArray(value) {
			rootName, rootValue = key, value
		}
	}
	if arr, ok := rootValue.([]canonical.Value); ok {
		wrapped := canonical.NewObject()
		wrapped.Set(xmlItemName, arr)
		rootValue = wrapped
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := c.writeElement(enc, rootName, rootValue); err != nil {
		return "", c.renderError(err)
	}
	if err := enc.Flush(); err != nil {
		return "", c.renderError(err)
	}
	return buf.String(), nil
}

func (c *XMLConverter) writeElement(enc *xml.Encoder, name string, v canonical.Value) error {
	if !xmlName.MatchString(name) {
		return fmt.Errorf("%q is not a valid element name", name)
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}

	obj, isObject := v.(*canonical.Object)
	if !isObject {
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if text := xmlScalar(v); text != "" {
			if err := enc.EncodeToken(xml.CharData(text)); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	}

	var text string
	var children []string
	for _, k := range obj.Keys() {
		item, _ := obj.Get(k)
		switch {
		case strings.HasPrefix(k, xmlAttrPrefix):
			attrName := strings.TrimPrefix(k, xmlAttrPrefix)
			if !xmlName.MatchString(attrName) {
				return fmt.Errorf("%q is not a valid attribute name", attrName)
			}
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attrName}, Value: xmlScalar(item)})
		case k == xmlTextKey:
			text = xmlScalar(item)
		default:
			children = append(children, k)
		}
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	for _, k := range children {
		item, _ := obj.Get(k)
		if arr, ok := item.([]canonical.Value); ok {
			for _, elem := range arr {
				if err := c.writeElement(enc, k, elem); err != nil {
					return err
				}
			}
			continue
		}
		if err := c.writeElement(enc, k, item); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// xmlScalar spells a value as element or attribute text. Nested values are
// written as compact JSON.
func xmlScalar(v canonical.Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return string(t)
	default:
		out, err := canonical.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(out)
	}
}

func (c *XMLConverter) parseError(err error) error {
	return &coreerrors.ConversionError{Format: string(domain.FormatXML), Op: opParse, Err: err}
}

func (c *XMLConverter) renderError(err error) error {
	return &coreerrors.ConversionError{Format: string(domain.FormatXML), Op: opRender, Err: err}
}
