package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

const tomlKeySep = "\x00"

// TOMLConverter decodes with BurntSushi/toml and restores key order from the
// decoder's metadata. Rendering follows the encoder's own layout, which sorts
// keys and places plain values before sub-tables.
type TOMLConverter struct{}

// NewTOMLConverter creates a TOML converter.
func NewTOMLConverter() *TOMLConverter {
	return &TOMLConverter{}
}

// Format implements Converter.
func (c *TOMLConverter) Format() domain.Format {
	return domain.FormatTOML
}

// ToCanonical implements Converter. The result is always an object.
func (c *TOMLConverter) ToCanonical(text string) (canonical.Value, error) {
	raw := make(map[string]interface{})
	md, err := toml.Decode(text, &raw)
	if err != nil {
		convErr := &coreerrors.ConversionError{Format: string(domain.FormatTOML), Op: opParse, Err: err}
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			convErr.Err = errors.New(parseErr.Message)
			convErr.Line = parseErr.Position.Line
			if line, col := lineCol(text, int64(parseErr.Position.Start)); line == convErr.Line {
				convErr.Column = col
			}
			convErr.Snippet = snippet(text, convErr.Line, convErr.Column)
		}
		return nil, convErr
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		path := strings.Join(key, tomlKeySep)
		if _, seen := order[path]; !seen {
			order[path] = i
		}
	}

	v, err := c.decodedValue(raw, "", order)
	if err != nil {
		return nil, &coreerrors.ConversionError{Format: string(domain.FormatTOML), Op: opParse, Err: err}
	}
	return v, nil
}

func (c *TOMLConverter) decodedValue(x interface{}, path string, order map[string]int) (canonical.Value, error) {
	switch t := x.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			oi, iok := order[childPath(path, keys[i])]
			oj, jok := order[childPath(path, keys[j])]
			switch {
			case iok && jok:
				return oi < oj
			case iok != jok:
				return iok
			default:
				return keys[i] < keys[j]
			}
		})

		obj := canonical.NewObject()
		for _, k := range keys {
			v, err := c.decodedValue(t[k], childPath(path, k), order)
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	case []map[string]interface{}:
		arr := make([]canonical.Value, 0, len(t))
		for _, item := range t {
			v, err := c.decodedValue(item, path, order)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case []interface{}:
		arr := make([]canonical.Value, 0, len(t))
		for _, item := range t {
			v, err := c.decodedValue(item, path, order)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		}
		return canonical.FromGo(t)
	case time.Time:
		return formatTOMLTime(t), nil
	default:
		return canonical.FromGo(t)
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + tomlKeySep + key
}

// formatTOMLTime keeps local dates and times in their TOML spelling.
func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}

// FromCanonical implements Converter. The value must be an object and must
// not contain nulls, which TOML cannot express.
func (c *TOMLConverter) FromCanonical(v canonical.Value) (string, error) {
	if _, ok := v.(*canonical.Object); !ok {
		return "", c.renderError(fmt.Errorf("top-level value must be a table, got %s", canonical.TypeName(v)))
	}

	goValue, err := c.goValue(v, "")
	if err != nil {
		return "", c.renderError(err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(goValue); err != nil {
		return "", c.renderError(err)
	}
	return buf.String(), nil
}

func (c *TOMLConverter) goValue(v canonical.Value, path string) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		if path == "" {
			return nil, fmt.Errorf("null is not representable")
		}
		return nil, fmt.Errorf("null at %q is not representable", path)
	case bool, string:
		return t, nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at %q", string(t), path)
		}
		return f, nil
	case []canonical.Value:
		allTables := len(t) > 0
		for _, item := range t {
			if _, ok := item.(*canonical.Object); !ok {
				allTables = false
				break
			}
		}
		if allTables {
			tables := make([]map[string]interface{}, 0, len(t))
			for i, item := range t {
				m, err := c.goValue(item, fmt.Sprintf("%s[%d]", path, i))
				if err != nil {
					return nil, err
				}
				tables = append(tables, m.(map[string]interface{}))
			}
			return tables, nil
		}
		arr := make([]interface{}, 0, len(t))
		for i, item := range t {
			x, err := c.goValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, x)
		}
		return arr, nil
	case *canonical.Object:
		m := make(map[string]interface{}, t.Len())
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			p := k
			if path != "" {
				p = path + "." + k
			}
			x, err := c.goValue(item, p)
			if err != nil {
				return nil, err
			}
			m[k] = x
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot encode value of type %T", v)
	}
}

func (c *TOMLConverter) renderError(err error) error {
	return &coreerrors.ConversionError{Format: string(domain.FormatTOML), Op: opRender, Err: err}
}
