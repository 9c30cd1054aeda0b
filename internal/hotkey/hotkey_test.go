package hotkey

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrmemo/internal/config"
)

var chord = config.HotkeyConfig{Modifier: config.ModSuper, Key: config.KeyJ}

const trigger = Key(config.KeyJ)

func countFires(m *Machine, events ...Event) int {
	fires := 0
	for _, ev := range events {
		if m.Handle(ev) == Fire {
			fires++
		}
	}
	return fires
}

func TestMachine_Sequences(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		fires  int
		state  State
	}{
		{
			name:   "modifier then trigger",
			events: []Event{KeyPress(KeySuperLeft), KeyPress(trigger)},
			fires:  1,
			state:  ModifierHeld,
		},
		{
			name:   "trigger alone",
			events: []Event{KeyPress(trigger)},
			fires:  0,
			state:  Idle,
		},
		{
			name:   "modifier released before trigger",
			events: []Event{KeyPress(KeySuperLeft), KeyRelease(KeySuperLeft), KeyPress(trigger)},
			fires:  0,
			state:  Idle,
		},
		{
			name:   "trigger pressed twice",
			events: []Event{KeyPress(KeySuperLeft), KeyPress(trigger), KeyPress(trigger)},
			fires:  2,
			state:  ModifierHeld,
		},
		{
			name:   "right variant",
			events: []Event{KeyPress(KeySuperRight), KeyPress(trigger)},
			fires:  1,
			state:  ModifierHeld,
		},
		{
			name: "left and right collapse",
			events: []Event{
				KeyPress(KeySuperLeft), KeyPress(KeySuperRight),
				KeyRelease(KeySuperRight), KeyPress(trigger),
			},
			fires: 0,
			state: Idle,
		},
		{
			name:   "other modifier ignored",
			events: []Event{KeyPress(KeyCtrlLeft), KeyPress(trigger)},
			fires:  0,
			state:  Idle,
		},
		{
			name:   "trigger release is noop",
			events: []Event{KeyPress(KeySuperLeft), KeyRelease(trigger), KeyPress(Key(config.KeyK))},
			fires:  0,
			state:  ModifierHeld,
		},
		{
			name:   "release in idle is noop",
			events: []Event{KeyRelease(KeySuperLeft), KeyRelease(trigger)},
			fires:  0,
			state:  Idle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(chord)
			assert.Equal(t, Idle, m.State())
			assert.Equal(t, tt.fires, countFires(m, tt.events...))
			assert.Equal(t, tt.state, m.State())
		})
	}
}

func TestMachine_CustomChord(t *testing.T) {
	m := NewMachine(config.HotkeyConfig{Modifier: config.ModCtrl, Key: config.KeyF5})
	assert.Equal(t, 0, countFires(m, KeyPress(KeySuperLeft), KeyPress(Key(config.KeyJ))))
	assert.Equal(t, 1, countFires(m, KeyPress(KeyCtrlRight), KeyPress(Key(config.KeyF5))))
}

func TestModifierKey(t *testing.T) {
	assert.Equal(t, KeySuperLeft, ModifierKey(config.ModSuper))
	assert.Equal(t, KeyCtrlLeft, ModifierKey(config.ModCtrl))
	assert.Equal(t, KeyAltLeft, ModifierKey(config.ModAlt))
	assert.Equal(t, KeyShiftLeft, ModifierKey(config.ModShift))
}

type chanSource struct {
	ch chan Event
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan Event, 16)}
}

func (s *chanSource) Events() <-chan Event { return s.ch }
func (s *chanSource) Close() error         { close(s.ch); return nil }

func TestListener_FiresPipeline(t *testing.T) {
	src := newChanSource()
	l := NewListener(NewMachine(chord))

	fired := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- l.Run(context.Background(), src, func(context.Context) {
			fired <- struct{}{}
		})
	}()

	src.ch <- KeyPress(KeySuperLeft)
	src.ch <- KeyPress(trigger)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline was not fired")
	}

	require.NoError(t, src.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after source closed")
	}
	assert.Zero(t, l.Dropped())
}

func TestListener_DoesNotBlockOnBusyWorker(t *testing.T) {
	src := newChanSource()
	l := NewListener(NewMachine(chord))

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx, src, func(context.Context) {
			calls.Add(1)
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
		})
	}()

	src.ch <- KeyPress(KeySuperLeft)
	src.ch <- KeyPress(trigger)
	<-started

	// Воркер занят: одно нажатие встанет в очередь, остальные будут отброшены,
	// но цикл событий продолжит читать.
	for i := 0; i < 5; i++ {
		src.ch <- KeyPress(trigger)
	}
	assert.Eventually(t, func() bool { return l.Dropped() == 4 }, 2*time.Second, 10*time.Millisecond)

	close(release)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
	assert.LessOrEqual(t, calls.Load(), int32(2))
}
