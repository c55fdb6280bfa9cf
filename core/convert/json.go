package convert

import (
	"errors"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

// JSONConverter parses a single JSON value, keeping key order and number literals.
type JSONConverter struct{}

// NewJSONConverter creates a JSON converter.
func NewJSONConverter() *JSONConverter {
	return &JSONConverter{}
}

// Format implements Converter.
func (c *JSONConverter) Format() domain.Format {
	return domain.FormatJSON
}

// ToCanonical implements Converter.
func (c *JSONConverter) ToCanonical(text string) (canonical.Value, error) {
	v, err := canonical.ParseJSON([]byte(text))
	if err == nil {
		return v, nil
	}

	convErr := &coreerrors.ConversionError{Format: string(domain.FormatJSON), Op: opParse, Err: err}
	var syntaxErr *canonical.SyntaxError
	if errors.As(err, &syntaxErr) {
		convErr.Line, convErr.Column = lineCol(text, syntaxErr.Offset)
		convErr.Snippet = snippet(text, convErr.Line, convErr.Column)
	}
	return nil, convErr
}

// FromCanonical renders v with two-space indentation.
func (c *JSONConverter) FromCanonical(v canonical.Value) (string, error) {
	out, err := canonical.MarshalIndent(v)
	if err != nil {
		return "", &coreerrors.ConversionError{Format: string(domain.FormatJSON), Op: opRender, Err: err}
	}
	return string(out), nil
}
