package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// SyntaxError describes malformed JSON input. Offset is the byte offset at
// which the problem was detected.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// ParseJSON decodes exactly one JSON value, keeping object key order and
// number literals.
func ParseJSON(data []byte) (Value, error) {
	p := &jsonParser{dec: json.NewDecoder(bytes.NewReader(data)), size: int64(len(data))}
	p.dec.UseNumber()

	v, err := p.value()
	if err != nil {
		return nil, err
	}

	if _, err := p.dec.Token(); err != io.EOF {
		if err != nil {
			return nil, p.wrap(err)
		}
		return nil, &SyntaxError{Offset: p.dec.InputOffset(), Msg: "invalid character after top-level value"}
	}
	return v, nil
}

type jsonParser struct {
	dec  *json.Decoder
	size int64
}

func (p *jsonParser) value() (Value, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return nil, p.wrap(err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object()
		case '[':
			return p.array()
		default:
			return nil, &SyntaxError{Offset: p.dec.InputOffset(), Msg: fmt.Sprintf("invalid character '%c'", rune(t))}
		}
	case string, json.Number, bool, nil:
		return t, nil
	default:
		return nil, &SyntaxError{Offset: p.dec.InputOffset(), Msg: fmt.Sprintf("unexpected token %v", tok)}
	}
}

func (p *jsonParser) object() (Value, error) {
	obj := NewObject()
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &SyntaxError{Offset: p.dec.InputOffset(), Msg: "object key must be a string"}
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.wrap(err)
	}
	return obj, nil
}

func (p *jsonParser) array() (Value, error) {
	arr := make([]Value, 0)
	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.wrap(err)
	}
	return arr, nil
}

func (p *jsonParser) wrap(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &SyntaxError{Offset: p.size, Msg: "unexpected end of JSON input"}
	}
	if se, ok := err.(*json.SyntaxError); ok {
		return &SyntaxError{Offset: se.Offset, Msg: se.Error()}
	}
	return err
}

// MarshalIndent renders v the way JSON.stringify(v, null, 2) does.
func MarshalIndent(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "  ", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal renders v compactly.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value, indent string, depth int) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		if t == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(string(t))
		}
	case string:
		writeString(buf, t)
	case []Value:
		if len(t) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeJSON(buf, item, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case *Object:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, k)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := writeJSON(buf, t.values[k], indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("canonical: cannot encode value of type %T", v)
	}
	return nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// encoding a string cannot fail
	_ = enc.Encode(s)
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}
