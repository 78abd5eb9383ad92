package render

import (
	"context"
	"fmt"
	"time"

	"github.com/example/dorm-duty-bot/internal/duty"
)

// Document is the row sequence handed to a renderer together with its
// presentation metadata.
type Document struct {
	Title   string
	Caption string
	// ShowResidents selects the four-column layout with a Residents column;
	// otherwise the resident name is folded into the checkin column variant.
	ShowResidents bool
	Headers       Headers
	Rows          []duty.Row
}

// Headers carries the localized column titles of the rendered table.
type Headers struct {
	Room      string
	Date      string
	Checkin   string
	Residents string
}

// Artifact references a rendered document on the backing store.
type Artifact struct {
	ID          string
	Path        string
	Filename    string
	GeneratedAt time.Time
}

// Renderer produces an opaque document artifact from a row sequence.
// Implementations report failures as *RenderError so callers can offer a
// retry without losing conversation state.
type Renderer interface {
	Render(ctx context.Context, doc Document) (Artifact, error)
}

// RenderError wraps a backend failure with its diagnostic output.
type RenderError struct {
	Stage      string
	Diagnostic string
	Err        error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Diagnostic != "" {
		return fmt.Sprintf("render: %s failed: %s", e.Stage, e.Diagnostic)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
