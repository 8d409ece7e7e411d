package action

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbot/pixelbot/internal/geom"
	"github.com/pixelbot/pixelbot/internal/platform"
)

// recordedEvent is one backend call in issue order.
type recordedEvent struct {
	kind string
	p    geom.Point
	key  platform.Key
	r    rune
}

// recordingBackend captures the exact event sequence the controller
// emits. badRunes fail with ErrUnsupportedCharacter without recording.
type recordingBackend struct {
	events   []recordedEvent
	badRunes map[rune]bool
}

func (b *recordingBackend) MouseMove(p geom.Point) error {
	b.events = append(b.events, recordedEvent{kind: "move", p: p})
	return nil
}

func (b *recordingBackend) MouseDown(_ platform.MouseButton, p geom.Point) error {
	b.events = append(b.events, recordedEvent{kind: "down", p: p})
	return nil
}

func (b *recordingBackend) MouseUp(_ platform.MouseButton, p geom.Point) error {
	b.events = append(b.events, recordedEvent{kind: "up", p: p})
	return nil
}

func (b *recordingBackend) KeyDown(k platform.Key) error {
	b.events = append(b.events, recordedEvent{kind: "keydown", key: k})
	return nil
}

func (b *recordingBackend) KeyUp(k platform.Key) error {
	b.events = append(b.events, recordedEvent{kind: "keyup", key: k})
	return nil
}

func (b *recordingBackend) TypeRune(r rune) error {
	if b.badRunes[r] {
		return fmt.Errorf("rune %q: %w", r, platform.ErrUnsupportedCharacter)
	}
	b.events = append(b.events, recordedEvent{kind: "typerune", r: r})
	return nil
}

func newTestController(backend platform.InputBackend) *Controller {
	return NewController(backend, WithEventDelay(0))
}

func TestClickAtEventOrdering(t *testing.T) {
	backend := &recordingBackend{}
	c := newTestController(backend)

	p := geom.Point{X: 150, Y: 70}
	require.NoError(t, c.ClickAt(p))

	require.Len(t, backend.events, 3)
	assert.Equal(t, "move", backend.events[0].kind)
	assert.Equal(t, "down", backend.events[1].kind)
	assert.Equal(t, "up", backend.events[2].kind)
	for _, ev := range backend.events {
		assert.Equal(t, p, ev.p)
	}
}

func TestKeyClickOrdering(t *testing.T) {
	backend := &recordingBackend{}
	c := newTestController(backend)

	require.NoError(t, c.KeyClick(platform.KeyReturn))
	require.Len(t, backend.events, 2)
	assert.Equal(t, "keydown", backend.events[0].kind)
	assert.Equal(t, "keyup", backend.events[1].kind)
	assert.Equal(t, platform.KeyReturn, backend.events[0].key)
}

// Each character's events must complete before the next character's
// begin.
func TestTypeTextCharacterOrdering(t *testing.T) {
	backend := &recordingBackend{}
	c := newTestController(backend)

	require.NoError(t, c.TypeText("AB"))
	require.Len(t, backend.events, 2)
	assert.Equal(t, 'A', backend.events[0].r)
	assert.Equal(t, 'B', backend.events[1].r)
}

func TestTypeTextUnsupportedCharacter(t *testing.T) {
	backend := &recordingBackend{badRunes: map[rune]bool{'€': true}}
	c := newTestController(backend)

	err := c.TypeText("ab€cd")
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrUnsupportedCharacter)
	// The characters before the failure were typed; nothing after it.
	require.Len(t, backend.events, 2)
	assert.Equal(t, 'a', backend.events[0].r)
	assert.Equal(t, 'b', backend.events[1].r)
}

func TestButtonDownUpPrimitives(t *testing.T) {
	backend := &recordingBackend{}
	c := newTestController(backend)

	from := geom.Point{X: 10, Y: 10}
	to := geom.Point{X: 60, Y: 40}
	require.NoError(t, c.ButtonDown(platform.MouseLeft, from))
	require.NoError(t, c.MoveTo(to))
	require.NoError(t, c.ButtonUp(platform.MouseLeft, to))

	require.Len(t, backend.events, 3)
	assert.Equal(t, []string{"down", "move", "up"},
		[]string{backend.events[0].kind, backend.events[1].kind, backend.events[2].kind})
}
