// Package action composes primitive input-backend events into the
// pointer and keyboard operations the Bot drives.
package action

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// DefaultEventDelay is the pause between the move, down, and up events
// of a composed click. Back-to-back synthetic events can be debounced
// or suppressed by the OS; the pause keeps them distinct.
const DefaultEventDelay = 90 * time.Millisecond

// Controller injects synthetic input through a caller-supplied backend.
// It owns the backend exclusively: two controllers (or two goroutines)
// sharing one backend would interleave physical events unpredictably,
// so concurrent owners are disallowed by contract.
type Controller struct {
	backend platform.InputBackend
	delay   time.Duration
	log     *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithEventDelay overrides the inter-event delay of composed clicks.
func WithEventDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithLogger attaches a logger for event-level debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// NewController wraps the given input backend. The backend is chosen
// once at construction; there is no global default.
func NewController(backend platform.InputBackend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		delay:   DefaultEventDelay,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MoveTo moves the pointer to a logical global screen coordinate.
func (c *Controller) MoveTo(p geom.Point) error {
	c.log.Debug("pointer move", zap.Int("x", p.X), zap.Int("y", p.Y))
	return c.backend.MouseMove(p)
}

// ButtonDown presses a mouse button at the given point.
func (c *Controller) ButtonDown(b platform.MouseButton, p geom.Point) error {
	c.log.Debug("button down", zap.Int("x", p.X), zap.Int("y", p.Y))
	return c.backend.MouseDown(b, p)
}

// ButtonUp releases a mouse button at the given point.
func (c *Controller) ButtonUp(b platform.MouseButton, p geom.Point) error {
	c.log.Debug("button up", zap.Int("x", p.X), zap.Int("y", p.Y))
	return c.backend.MouseUp(b, p)
}

// ClickAt issues move, button-down, button-up at the given point with
// the configured delay between events. Down always strictly precedes
// up, and the sequence is never reordered or batched.
func (c *Controller) ClickAt(p geom.Point) error {
	c.log.Debug("click", zap.Int("x", p.X), zap.Int("y", p.Y))
	if err := c.backend.MouseMove(p); err != nil {
		return err
	}
	time.Sleep(c.delay)
	if err := c.backend.MouseDown(platform.MouseLeft, p); err != nil {
		return err
	}
	time.Sleep(c.delay)
	return c.backend.MouseUp(platform.MouseLeft, p)
}

// KeyDown presses the given key.
func (c *Controller) KeyDown(k platform.Key) error {
	c.log.Debug("key down", zap.String("key", string(k)))
	return c.backend.KeyDown(k)
}

// KeyUp releases the given key.
func (c *Controller) KeyUp(k platform.Key) error {
	c.log.Debug("key up", zap.String("key", string(k)))
	return c.backend.KeyUp(k)
}

// KeyClick presses and immediately releases the given key.
func (c *Controller) KeyClick(k platform.Key) error {
	if err := c.KeyDown(k); err != nil {
		return err
	}
	return c.KeyUp(k)
}

// TypeText types the string one character at a time, honoring the
// active keyboard layout via the backend. Each character's key-down/up
// pair completes before the next character starts. An unmappable
// character aborts the remainder and reports its position.
func (c *Controller) TypeText(text string) error {
	c.log.Debug("type text", zap.Int("chars", len([]rune(text))))
	for i, r := range text {
		if err := c.backend.TypeRune(r); err != nil {
			return fmt.Errorf("typing %q at byte %d: %w", r, i, err)
		}
	}
	return nil
}
