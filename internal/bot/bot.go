// Package bot orchestrates window resolution, capture, template
// matching, coordinate mapping, and input dispatch into one stateful
// automation session.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pixelbot/pixelbot/internal/action"
	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/model"
	"github.com/pixelbot/pixelbot/internal/platform"
	"github.com/pixelbot/pixelbot/internal/vision"
)

var (
	// ErrInvalidState implies an operation was attempted before the
	// bot reached the state it requires.
	ErrInvalidState = errors.New("operation not allowed in current bot state")

	// ErrActivation implies the selected window disappeared before or
	// at activation.
	ErrActivation = errors.New("window vanished before activation")
)

// State is the bot session state.
type State int

const (
	// StateIdle: no window selected yet.
	StateIdle State = iota
	// StateWindowSelected: a window is selected but not activated.
	StateWindowSelected
	// StateActive: the selected window has been brought to front and
	// can receive input.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWindowSelected:
		return "window-selected"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Selector identifies a window by name, regex, or id.
type Selector struct {
	name  string
	regex bool
	id    int
	byID  bool
}

// ByName selects by exact-substring title match.
func ByName(name string) Selector { return Selector{name: name} }

// ByNameRegex selects by regular-expression title match.
func ByNameRegex(expr string) Selector { return Selector{name: expr, regex: true} }

// ByID selects by window number.
func ByID(id int) Selector { return Selector{id: id, byID: true} }

// ParseNameSelector turns a --window flag value into a selector; a
// leading '~' switches to regex matching.
func ParseNameSelector(s string) Selector {
	if strings.HasPrefix(s, "~") {
		return ByNameRegex(strings.TrimPrefix(s, "~"))
	}
	return ByName(s)
}

func (s Selector) String() string {
	if s.byID {
		return fmt.Sprintf("id=%d", s.id)
	}
	if s.regex {
		return "~" + s.name
	}
	return s.name
}

// Bot drives one automation session against one window at a time.
//
// All operations are synchronous, execute strictly in the order issued,
// and perform no implicit retries beyond the fixed inter-event delay of
// a composed click. A caller that wraps an operation with an external
// deadline must be prepared for the operation's OS side effect (e.g. a
// click) to land anyway: cancellation cannot recall an injected event.
//
// A Bot exclusively owns its controller and must not be shared between
// goroutines.
type Bot struct {
	registry    platform.WindowRegistry
	capturer    platform.Capturer
	ctrl        *action.Controller
	threshold   float64
	captureFreq float64
	log         *zap.Logger

	state     State
	window    *model.WindowHandle
	lastMatch *vision.Match
}

// Option configures a Bot.
type Option func(*Bot)

// WithThreshold overrides the default match confidence threshold.
func WithThreshold(t float64) Option {
	return func(b *Bot) { b.threshold = t }
}

// WithCaptureFrequency overrides the captures-per-second pacing of
// WaitForImage.
func WithCaptureFrequency(perSecond float64) Option {
	return func(b *Bot) { b.captureFreq = perSecond }
}

// WithLogger attaches a logger for session events.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bot) { b.log = log }
}

// DefaultCaptureFrequency is the WaitForImage pacing when none is
// configured.
const DefaultCaptureFrequency = 3.0

// New creates an idle bot. The controller is injected here, once per
// session; the bot takes exclusive ownership of it.
func New(registry platform.WindowRegistry, capturer platform.Capturer, ctrl *action.Controller, opts ...Option) *Bot {
	b := &Bot{
		registry:    registry,
		capturer:    capturer,
		ctrl:        ctrl,
		threshold:   vision.DefaultThreshold,
		captureFreq: DefaultCaptureFrequency,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(zap.String("session", uuid.NewString()))
	return b
}

// State returns the current session state.
func (b *Bot) State() State { return b.state }

// Window returns the selected window snapshot, if any.
func (b *Bot) Window() (model.WindowHandle, bool) {
	if b.window == nil {
		return model.WindowHandle{}, false
	}
	return *b.window, true
}

// LastMatch returns the most recent successful match, if any.
func (b *Bot) LastMatch() (vision.Match, bool) {
	if b.lastMatch == nil {
		return vision.Match{}, false
	}
	return *b.lastMatch, true
}

// SetWindow resolves the selector against the live window list and
// selects the front-most match. Allowed in any state; on success any
// previously selected window, activation, and match state is discarded.
// On failure the previous state is untouched.
func (b *Bot) SetWindow(sel Selector) error {
	var (
		win model.WindowHandle
		err error
	)
	if sel.byID {
		win, err = b.registry.FindByID(sel.id)
	} else {
		var matches []model.WindowHandle
		matches, err = b.registry.FindByName(sel.name, sel.regex)
		if err == nil {
			// Front-most match wins when titles collide.
			win = matches[0]
		}
	}
	if err != nil {
		return err
	}

	b.window = &win
	b.state = StateWindowSelected
	b.lastMatch = nil
	b.log.Info("window selected",
		zap.Int("id", win.ID),
		zap.String("title", win.Title),
		zap.String("owner", win.Owner),
		zap.Float64("scale", win.Scale))
	return nil
}

// ActivateWindow brings the selected window to the front by clicking
// the middle of its title region, then marks the session active. The
// window is re-resolved first; a vanished window fails with
// ErrActivation.
func (b *Bot) ActivateWindow() error {
	if b.state == StateIdle {
		return fmt.Errorf("activate_window requires a selected window: %w", ErrInvalidState)
	}

	win, err := b.registry.FindByID(b.window.ID)
	if err != nil {
		return fmt.Errorf("window %d: %w", b.window.ID, ErrActivation)
	}
	b.window = &win

	b.log.Info("Activating window", zap.Int("id", win.ID), zap.String("title", win.Title))
	target := geom.Point{X: win.Frame.X + win.Frame.Width/2, Y: win.Frame.Y + titleBarClickOffset}
	if err := b.ctrl.ClickAt(target); err != nil {
		return err
	}
	b.state = StateActive
	return nil
}

// titleBarClickOffset is how far below the window's top edge the
// activation click lands, in logical points. The click targets the
// horizontal middle of the title bar, clear of the window controls on
// the left edge.
const titleBarClickOffset = 10

// Find captures the selected window and searches it for the template,
// using the session threshold. Allowed once a window is selected;
// activation is not required because searching injects no input.
func (b *Bot) Find(tpl *vision.Template) (vision.Match, error) {
	if b.state == StateIdle {
		return vision.Match{}, fmt.Errorf("find requires a selected window: %w", ErrInvalidState)
	}
	_, m, err := b.findOnce(tpl, b.threshold)
	return m, err
}

// ClickOnImage captures the window, locates the template, maps the
// match center to global coordinates, and clicks it; one blocking call
// with no implicit retry. A threshold of 0 selects the session default.
func (b *Bot) ClickOnImage(tpl *vision.Template, threshold float64) (geom.Point, error) {
	if b.state != StateActive {
		return geom.Point{}, fmt.Errorf("click_on_image requires an activated window: %w", ErrInvalidState)
	}
	if threshold == 0 {
		threshold = b.threshold
	}

	b.log.Debug("Searching", zap.String("template", tpl.Name()))
	shot, m, err := b.findOnce(tpl, threshold)
	if err != nil {
		return geom.Point{}, err
	}

	// Map through the frame the capture was actually taken from, so a
	// window that moved since selection is still clicked correctly.
	target := shot.ToGlobal(m.Rect.Center())
	b.log.Info("Click on", zap.Int("x", target.X), zap.Int("y", target.Y))
	if err := b.ctrl.ClickAt(target); err != nil {
		return geom.Point{}, err
	}
	return target, nil
}

// WaitForImage repeatedly captures and searches, paced at the session's
// capture frequency, until the template appears or the timeout elapses.
// Waiting is explicit and caller-invoked: the single-shot operations
// above never retry on their own.
func (b *Bot) WaitForImage(ctx context.Context, tpl *vision.Template, threshold float64, timeout time.Duration) (vision.Match, error) {
	if b.state == StateIdle {
		return vision.Match{}, fmt.Errorf("wait_for_image requires a selected window: %w", ErrInvalidState)
	}
	if threshold == 0 {
		threshold = b.threshold
	}

	limiter := rate.NewLimiter(rate.Limit(b.captureFreq), 1)
	deadline := time.Now().Add(timeout)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return vision.Match{}, err
		}
		_, m, err := b.findOnce(tpl, threshold)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, vision.ErrNotFound) {
			return vision.Match{}, err
		}
		if time.Now().After(deadline) {
			return vision.Match{}, fmt.Errorf("template %s did not appear within %s: %w", tpl.Name(), timeout, vision.ErrNotFound)
		}
	}
}

// MouseDownOn presses the left button at a point local to the last
// capture of the window (physical pixels), mapped through the selected
// window's frame.
func (b *Bot) MouseDownOn(local geom.Point) error {
	if b.state != StateActive {
		return fmt.Errorf("mouse_down_on requires an activated window: %w", ErrInvalidState)
	}
	target := b.window.ToGlobal(local)
	b.log.Debug("Mouse down on", zap.Int("x", target.X), zap.Int("y", target.Y))
	if err := b.ctrl.MoveTo(target); err != nil {
		return err
	}
	return b.ctrl.ButtonDown(platform.MouseLeft, target)
}

// MouseUpOn releases the left button at a point local to the last
// capture of the window.
func (b *Bot) MouseUpOn(local geom.Point) error {
	if b.state != StateActive {
		return fmt.Errorf("mouse_up_on requires an activated window: %w", ErrInvalidState)
	}
	target := b.window.ToGlobal(local)
	b.log.Debug("Mouse up on", zap.Int("x", target.X), zap.Int("y", target.Y))
	if err := b.ctrl.MoveTo(target); err != nil {
		return err
	}
	return b.ctrl.ButtonUp(platform.MouseLeft, target)
}

// TypeText types the string into the active window.
func (b *Bot) TypeText(text string) error {
	if b.state != StateActive {
		return fmt.Errorf("type_text requires an activated window: %w", ErrInvalidState)
	}
	b.log.Debug("Typing", zap.String("text", text))
	return b.ctrl.TypeText(text)
}

// Write is an alias of TypeText, matching the scripting vocabulary.
func (b *Bot) Write(text string) error { return b.TypeText(text) }

// Writeln types the string followed by Return.
func (b *Bot) Writeln(text string) error {
	if err := b.TypeText(text); err != nil {
		return err
	}
	b.log.Debug("Pressing enter")
	return b.ctrl.KeyClick(platform.KeyReturn)
}

// KeyDown presses a key in the active window.
func (b *Bot) KeyDown(k platform.Key) error {
	if b.state != StateActive {
		return fmt.Errorf("key_down requires an activated window: %w", ErrInvalidState)
	}
	return b.ctrl.KeyDown(k)
}

// KeyUp releases a key in the active window.
func (b *Bot) KeyUp(k platform.Key) error {
	if b.state != StateActive {
		return fmt.Errorf("key_up requires an activated window: %w", ErrInvalidState)
	}
	return b.ctrl.KeyUp(k)
}

// KeyClick presses and releases a key in the active window.
func (b *Bot) KeyClick(k platform.Key) error {
	if b.state != StateActive {
		return fmt.Errorf("key_click requires an activated window: %w", ErrInvalidState)
	}
	return b.ctrl.KeyClick(k)
}

// Sleep pauses the session script for the given duration.
func (b *Bot) Sleep(d time.Duration) { time.Sleep(d) }

// findOnce performs one capture→match pass and records the result.
// Component errors propagate unchanged so callers can still tell which
// boundary failed.
func (b *Bot) findOnce(tpl *vision.Template, threshold float64) (*model.CapturedImage, vision.Match, error) {
	shot, err := b.capturer.CaptureWindow(b.window.ID)
	if err != nil {
		return nil, vision.Match{}, err
	}

	m, err := vision.Find(vision.Grayscale(shot.Pixels), tpl, threshold)
	if err != nil {
		return nil, vision.Match{}, err
	}

	b.lastMatch = &m
	b.log.Info("found",
		zap.Int("x", m.Rect.X),
		zap.Int("y", m.Rect.Y),
		zap.Int("width", m.Rect.Width),
		zap.Int("height", m.Rect.Height),
		zap.Float64("confidence", m.Confidence))
	return shot, m, nil
}
