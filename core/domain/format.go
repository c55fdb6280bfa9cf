// ABOUTME: Format tags select which converter pair applies to a text buffer
// ABOUTME: The set is closed; parsing a tag normalises case and common aliases

package domain

import (
	"fmt"
	"strings"
)

// Format identifies the textual encoding of a document buffer.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatXML, FormatTOML}

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer
func (f Format) String() string {
	return string(f)
}

// ParseFormat resolves a user supplied tag such as "YML" or ".json".
func ParseFormat(s string) (Format, error) {
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if tag == "yml" {
		tag = "yaml"
	}

	f := Format(tag)
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported format %q", s)
	}
	return f, nil
}
