// ABOUTME: ContentState is the editing session's authoritative record of what the user edits
// ABOUTME: Status tracks the Empty -> Loading -> Ready/Error lifecycle of the buffer

package domain

// Status is the lifecycle position of the content buffer.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusReady
	StatusError
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ContentState is a point-in-time copy of the editing session's buffer.
type ContentState struct {
	// Contents is the raw buffer in Format.
	Contents string

	// Format determines which converter pair applies to Contents.
	Format Format

	// HasChanges is true once local edits diverge from the last loaded baseline.
	HasChanges bool

	// Error holds the last conversion failure detail, empty when none.
	Error string

	// Schema is an optional validation schema, independent of Format.
	Schema interface{}

	// Status is the buffer lifecycle position.
	Status Status

	// Version increases on every mutation; asynchronous results compare against it.
	Version uint64

	// File is the Document most recently installed with SetFile, if any.
	File *Document
}

// HasError reports whether the last conversion failed.
func (s ContentState) HasError() bool {
	return s.Error != ""
}
