package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

var (
	yamlErrLine       = regexp.MustCompile(`line (\d+)`)
	jsonNumberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// YAMLConverter works on the yaml.v3 node tree so mapping order survives.
type YAMLConverter struct{}

// NewYAMLConverter creates a YAML converter.
func NewYAMLConverter() *YAMLConverter {
	return &YAMLConverter{}
}

// Format implements Converter.
func (c *YAMLConverter) Format() domain.Format {
	return domain.FormatYAML
}

// ToCanonical implements Converter. An empty document decodes to nil.
func (c *YAMLConverter) ToCanonical(text string) (canonical.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		convErr := c.parseError(err)
		if m := yamlErrLine.FindStringSubmatch(err.Error()); m != nil {
			convErr.Line, _ = strconv.Atoi(m[1])
			convErr.Snippet = snippet(text, convErr.Line, 0)
		}
		return nil, convErr
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	v, err := c.nodeValue(doc.Content[0])
	if err != nil {
		if convErr, ok := coreerrors.AsConversion(err); ok && convErr.Snippet == "" {
			convErr.Snippet = snippet(text, convErr.Line, convErr.Column)
		}
		return nil, err
	}
	return v, nil
}

func (c *YAMLConverter) nodeValue(n *yaml.Node) (canonical.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.nodeValue(n.Content[0])
	case yaml.AliasNode:
		return c.nodeValue(n.Alias)
	case yaml.ScalarNode:
		return c.scalarValue(n)
	case yaml.SequenceNode:
		arr := make([]canonical.Value, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.nodeValue(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return c.mappingValue(n)
	default:
		return nil, c.nodeError(n, fmt.Errorf("unexpected node kind %d", n.Kind))
	}
}

func (c *YAMLConverter) mappingValue(n *yaml.Node) (canonical.Value, error) {
	obj := canonical.NewObject()
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			if err := c.merge(obj, explicit, valueNode); err != nil {
				return nil, err
			}
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, c.nodeError(keyNode, fmt.Errorf("mapping keys must be scalars"))
		}

		v, err := c.nodeValue(valueNode)
		if err != nil {
			return nil, err
		}
		obj.Set(keyNode.Value, v)
		explicit[keyNode.Value] = true
	}
	return obj, nil
}

// merge applies a "<<" merge key. Keys set explicitly on the mapping win over
// merged ones wherever they appear.
func (c *YAMLConverter) merge(obj *canonical.Object, explicit map[string]bool, source *yaml.Node) error {
	if source.Kind == yaml.AliasNode {
		source = source.Alias
	}

	var sources []*yaml.Node
	switch source.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{source}
	case yaml.SequenceNode:
		sources = source.Content
	default:
		return c.nodeError(source, fmt.Errorf("merge value must be a mapping or a sequence of mappings"))
	}

	for _, src := range sources {
		v, err := c.nodeValue(src)
		if err != nil {
			return err
		}
		merged, ok := v.(*canonical.Object)
		if !ok {
			return c.nodeError(src, fmt.Errorf("merge value must be a mapping"))
		}
		for _, k := range merged.Keys() {
			if explicit[k] {
				continue
			}
			if _, exists := obj.Get(k); exists {
				continue
			}
			mv, _ := merged.Get(k)
			obj.Set(k, mv)
		}
	}
	return nil
}

func (c *YAMLConverter) scalarValue(n *yaml.Node) (canonical.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, c.nodeError(n, err)
		}
		return b, nil
	case "!!int", "!!float":
		if jsonNumberLiteral.MatchString(n.Value) {
			return json.Number(n.Value), nil
		}
		var x interface{}
		if err := n.Decode(&x); err != nil {
			return nil, c.nodeError(n, err)
		}
		if f, ok := x.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			// no JSON spelling for .inf or .nan
			return n.Value, nil
		}
		v, err := canonical.FromGo(x)
		if err != nil {
			return nil, c.nodeError(n, err)
		}
		return v, nil
	default:
		return n.Value, nil
	}
}

// FromCanonical renders v as a single YAML document with two-space indentation.
func (c *YAMLConverter) FromCanonical(v canonical.Value) (string, error) {
	node, err := c.valueNode(v)
	if err != nil {
		return "", &coreerrors.ConversionError{Format: string(domain.FormatYAML), Op: opRender, Err: err}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", &coreerrors.ConversionError{Format: string(domain.FormatYAML), Op: opRender, Err: err}
	}
	if err := enc.Close(); err != nil {
		return "", &coreerrors.ConversionError{Format: string(domain.FormatYAML), Op: opRender, Err: err}
	}
	return buf.String(), nil
}

func (c *YAMLConverter) valueNode(v canonical.Value) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(t), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(t)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case []canonical.Value:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := c.valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case *canonical.Object:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			child, err := c.valueNode(item)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot encode value of type %T", v)
	}
}

func (c *YAMLConverter) parseError(err error) *coreerrors.ConversionError {
	return &coreerrors.ConversionError{Format: string(domain.FormatYAML), Op: opParse, Err: err}
}

func (c *YAMLConverter) nodeError(n *yaml.Node, err error) *coreerrors.ConversionError {
	convErr := c.parseError(err)
	convErr.Line = n.Line
	convErr.Column = n.Column
	return convErr
}
