// ABOUTME: Notifier that routes transient user notifications to the structured logger
// ABOUTME: Optionally echoes them to a writer so a terminal session can show them inline

package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/sagar-developer08/tree-json/core/interfaces"
)

// Notification is one message shown to the user.
type Notification struct {
	Level   string
	Message string
}

// LogNotifier implements interfaces.Notifier
type LogNotifier struct {
	logger interfaces.Logger
	out    io.Writer

	mu      sync.Mutex
	history []Notification
}

// NewLogNotifier creates a notifier. out may be nil.
func NewLogNotifier(logger interfaces.Logger, out io.Writer) *LogNotifier {
	return &LogNotifier{logger: logger, out: out}
}

// Success implements interfaces.Notifier
func (n *LogNotifier) Success(msg string) {
	n.record("success", msg)
	if n.logger != nil {
		n.logger.Info(msg, map[string]interface{}{"notification": "success"})
	}
}

// Error implements interfaces.Notifier
func (n *LogNotifier) Error(msg string) {
	n.record("error", msg)
	if n.logger != nil {
		n.logger.Warn(msg, map[string]interface{}{"notification": "error"})
	}
}

func (n *LogNotifier) record(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, Notification{Level: level, Message: msg})
	if n.out != nil {
		fmt.Fprintf(n.out, "[%s] %s\n", level, msg)
	}
}

// History returns every notification raised so far, oldest first.
func (n *LogNotifier) History() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.history))
	copy(out, n.history)
	return out
}

// Last returns the most recent notification, if any.
func (n *LogNotifier) Last() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return Notification{}, false
	}
	return n.history[len(n.history)-1], true
}
