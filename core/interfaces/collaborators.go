// ABOUTME: Contracts for the collaborators the editing core drives but does not own
// ABOUTME: The rendering subsystem and the transient notification surface

package interfaces

// Renderer is the rendering subsystem that displays the canonical value.
//
// SetLoading(true) is called before an update is scheduled; the renderer clears
// the flag itself once it has consumed SetCanonicalContent.
type Renderer interface {
	SetLoading(loading bool)
	SetCanonicalContent(content string)
}

// Notifier shows short-lived, non-blocking messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
