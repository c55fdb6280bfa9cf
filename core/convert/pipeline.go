// ABOUTME: Format conversion pipeline routing text to per-format converters
// ABOUTME: Every supported format parses into and renders from the canonical value

package convert

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

const (
	opParse  = "parse"
	opRender = "render"
)

// Converter translates between one text format and the canonical value.
// Implementations are stateless and safe for concurrent use.
type Converter interface {
	Format() domain.Format
	ToCanonical(text string) (canonical.Value, error)
	FromCanonical(v canonical.Value) (string, error)
}

// Pipeline routes conversions to the converter registered for each format.
//
// Thread-safe for concurrent access.
type Pipeline struct {
	mu         sync.RWMutex
	converters map[domain.Format]Converter
}

// NewPipeline creates a pipeline with every supported format registered.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		converters: make(map[domain.Format]Converter),
	}

	p.Register(NewJSONConverter())
	p.Register(NewYAMLConverter())
	p.Register(NewTOMLConverter())
	p.Register(NewXMLConverter())
	p.Register(NewCSVConverter())

	return p
}

// Register adds a converter, replacing any converter already registered for its format.
func (p *Pipeline) Register(c Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.converters[c.Format()] = c
}

// Converter returns the converter for format, or nil if none is registered.
func (p *Pipeline) Converter(format domain.Format) Converter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.converters[format]
}

// Formats returns the registered formats in a stable order.
func (p *Pipeline) Formats() []domain.Format {
	p.mu.RLock()
	defer p.mu.RUnlock()

	formats := make([]domain.Format, 0, len(p.converters))
	for f := range p.converters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// ToCanonical parses text under format.
func (p *Pipeline) ToCanonical(text string, format domain.Format) (canonical.Value, error) {
	c := p.Converter(format)
	if c == nil {
		return nil, unsupported(format, opParse)
	}
	return c.ToCanonical(text)
}

// FromCanonical renders v as format.
func (p *Pipeline) FromCanonical(v canonical.Value, format domain.Format) (string, error) {
	c := p.Converter(format)
	if c == nil {
		return "", unsupported(format, opRender)
	}
	return c.FromCanonical(v)
}

// Convert re-expresses text written in one format in another.
func (p *Pipeline) Convert(text string, from, to domain.Format) (string, error) {
	v, err := p.ToCanonical(text, from)
	if err != nil {
		return "", err
	}
	return p.FromCanonical(v, to)
}

func unsupported(format domain.Format, op string) error {
	return &coreerrors.ConversionError{
		Format: string(format),
		Op:     op,
		Err:    fmt.Errorf("unsupported format %q", string(format)),
	}
}
