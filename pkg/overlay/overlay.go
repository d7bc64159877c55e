// Package overlay provides the modal/overlay controller for jobdeck's
// transient surfaces: dialogs, dropdown menus, confirmation prompts. Each
// controller is a two-state machine (closed/open) with a dismissal policy;
// open controllers register on a shared stack so that a single Escape press
// reaches only the topmost overlay and keyboard focus returns to where it was
// before that overlay opened.
package overlay

import (
	"strings"

	"github.com/google/uuid"
)

// Focusable is a focus target the rendering layer can hand back focus to.
// bubbles-style inputs satisfy it directly.
type Focusable interface {
	Focus()
}

// FocusFunc adapts a plain function to Focusable.
type FocusFunc func()

func (f FocusFunc) Focus() { f() }

// Options is the dismissal policy for one overlay.
type Options struct {
	// CloseOnEscape lets an Escape press close this overlay, but only while
	// it is the topmost overlay on the stack.
	CloseOnEscape bool
	// CloseOnBackdropClick lets a pointer event on the backdrop (not the
	// content) close this overlay.
	CloseOnBackdropClick bool
	// Label names the overlay for assistive technology; it becomes the
	// labelled-by wiring in the content props.
	Label string
}

// DefaultOptions enables both dismissal paths, the common dialog behavior.
func DefaultOptions() Options {
	return Options{CloseOnEscape: true, CloseOnBackdropClick: true}
}

// Controller drives one overlay surface. The zero value is not usable; create
// controllers with New or NewWithStack. All methods are safe to call in any
// state: double open, double close, and escape on a closed overlay are
// absorbed as no-ops.
type Controller struct {
	stack *Stack
	opts  Options
	id    string
}

// New creates a controller registered against the process-wide stack.
func New(opts Options) *Controller {
	return NewWithStack(Shared(), opts)
}

// NewWithStack creates a controller against an explicit stack. Tests and
// embedded uses that must not share global state go through this.
func NewWithStack(stack *Stack, opts Options) *Controller {
	return &Controller{
		stack: stack,
		opts:  opts,
		id:    "overlay-" + strings.Split(uuid.New().String(), "-")[0],
	}
}

// ID returns the stable element id used for labelled-by wiring.
func (c *Controller) ID() string { return c.id }

// Options returns the dismissal policy.
func (c *Controller) Options() Options { return c.opts }

// IsOpen reports whether the overlay is currently open.
func (c *Controller) IsOpen() bool { return c.stack.contains(c) }

// Open pushes the overlay onto the stack, recording restore as the focus
// target to return to when it closes. A nil restore skips focus restoration.
// Opening an already-open overlay is a no-op.
func (c *Controller) Open(restore Focusable) {
	c.stack.push(c, restore)
}

// Close pops the overlay (wherever it sits on the stack) and hands focus back
// to the element recorded at Open. Closing a closed overlay is a no-op.
func (c *Controller) Close() {
	c.stack.remove(c)
}

// Toggle opens or closes depending on the current state.
func (c *Controller) Toggle(restore Focusable) {
	if c.IsOpen() {
		c.Close()
		return
	}
	c.Open(restore)
}

// Dispose removes the overlay from the stack on owner teardown. It behaves
// like Close — focus must not remain on content that is about to disappear —
// but is safe to call unconditionally from cleanup paths.
func (c *Controller) Dispose() {
	c.stack.remove(c)
}

// BackdropClick reports a pointer event on this overlay's backdrop. It closes
// the overlay only when it is open, topmost, and CloseOnBackdropClick is set;
// the return value reports whether the overlay closed.
func (c *Controller) BackdropClick() bool {
	if !c.opts.CloseOnBackdropClick {
		return false
	}
	return c.stack.removeIfTop(c)
}

// BackdropProps is the prop set for the overlay's backdrop element.
type BackdropProps struct {
	OnClick func() bool
}

// ContentProps is the prop set for the overlay's content container, carrying
// the accessibility wiring the rendering layer must apply while open.
type ContentProps struct {
	Role       string
	Modal      bool
	LabelledBy string
	Label      string
}

// CloseButtonProps is the prop set for an explicit close control.
type CloseButtonProps struct {
	Label   string
	OnClick func()
}

// Backdrop returns the backdrop prop set.
func (c *Controller) Backdrop() BackdropProps {
	return BackdropProps{OnClick: c.BackdropClick}
}

// Content returns the content-container prop set.
func (c *Controller) Content() ContentProps {
	return ContentProps{
		Role:       "dialog",
		Modal:      true,
		LabelledBy: c.id,
		Label:      c.opts.Label,
	}
}

// CloseButton returns the close-control prop set.
func (c *Controller) CloseButton() CloseButtonProps {
	return CloseButtonProps{Label: "Close", OnClick: c.Close}
}
