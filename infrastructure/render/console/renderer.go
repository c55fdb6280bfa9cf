// ABOUTME: Console renderer writes each delivered canonical document to an io.Writer
// ABOUTME: Stands in for the graph view when the editing session runs in a terminal

package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Renderer implements interfaces.Renderer on top of an io.Writer.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	loading bool
	last    string
	renders int
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// SetLoading implements interfaces.Renderer
func (r *Renderer) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = loading
}

// SetCanonicalContent implements interfaces.Renderer. The loading flag is
// cleared once the content is written.
func (r *Renderer) SetCanonicalContent(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = content
	r.renders++
	if r.out != nil {
		if strings.HasSuffix(content, "\n") {
			fmt.Fprint(r.out, content)
		} else {
			fmt.Fprintln(r.out, content)
		}
	}
	r.loading = false
}

// Loading reports whether an update is scheduled but not yet rendered.
func (r *Renderer) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Last returns the most recently rendered document.
func (r *Renderer) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Renders counts delivered documents.
func (r *Renderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}
