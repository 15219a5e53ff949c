package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/loop/server"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/scene"
)

// fakeSky records what a session sends and serves a private scene.
type fakeSky struct {
	mu           sync.Mutex
	handle       *server.ClientHandle
	stimuli      []loop.Stimulus
	unregistered []int
	scene        *scene.Scene
}

func newFakeSky() *fakeSky {
	return &fakeSky{
		handle: &server.ClientHandle{ID: 7, EventsCh: make(chan server.ClientEvent, 4)},
		scene: scene.New(scene.Options{
			View:    object.NewScreen(960, 600),
			Sampler: object.MidpointSampler{},
		}),
	}
}

func (f *fakeSky) RegisterClient(username string) *server.ClientHandle {
	f.handle.Username = username
	return f.handle
}

func (f *fakeSky) UnregisterClient(clientID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, clientID)
}

func (f *fakeSky) SendStimulus(_ int, st loop.Stimulus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stimuli = append(f.stimuli, st)
}

func (f *fakeSky) View(fn func(sc *scene.Scene)) {
	fn(f.scene)
}

func (f *fakeSky) Stats() server.Stats {
	return server.Stats{Rockets: f.scene.Rockets(), Particles: f.scene.Particles(), Viewers: 1}
}

func (f *fakeSky) sent() []loop.Stimulus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]loop.Stimulus(nil), f.stimuli...)
}

func fixedSize() (int, int, error) { return 96, 30, nil }

func TestClientForwardsPointerAsStimuli(t *testing.T) {
	sky := newFakeSky()
	pr, pw := io.Pipe()
	defer pw.Close()

	c := NewClient(sky, bufio.NewReader(pr), io.Discard, ClientOptions{
		TermSizeFunc: fixedSize,
		Username:     "alice",
	})
	assert.Equal(t, "alice", sky.handle.Username)

	go func() { _, _ = pw.Write([]byte("\x1b[<0;1;1M ")) }()

	require.Eventually(t, func() bool {
		c.processInput()
		return len(sky.sent()) >= 2
	}, time.Second, 5*time.Millisecond)

	sent := sky.sent()
	assert.Equal(t, loop.StimulusClick, sent[0].Kind)
	assert.InDelta(t, 5.0, sent[0].X, 1e-9)
	assert.InDelta(t, 10.0, sent[0].Y, 1e-9)
	assert.Equal(t, loop.StimulusLaunch, sent[1].Kind)
	assert.Equal(t, SessionWatching, c.state.State, "any input dismisses the intro")
}

func TestClientShutdownEvent(t *testing.T) {
	sky := newFakeSky()
	c := NewClient(sky, bufio.NewReader(strings.NewReader("")), io.Discard, ClientOptions{TermSizeFunc: fixedSize})

	sky.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	assert.Equal(t, SessionShutdown, c.state.State)
	assert.Equal(t, 5.0, c.state.shutdownTimer)

	c.state.delta = 6 * time.Second
	c.updateShutdownState()
	assert.False(t, c.state.Running)
}

func TestClientRunRendersAndUnregisters(t *testing.T) {
	sky := newFakeSky()
	sky.scene.Click(480, 300)

	var out bytes.Buffer
	c := NewClient(sky, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{TermSizeFunc: fixedSize})

	// The empty reader closes the stream, which ends the session.
	require.NoError(t, c.Run())

	assert.Equal(t, []int{7}, sky.unregistered)
	assert.Contains(t, out.String(), "\033[?1003h")
}

func TestClientDrawFrameShowsSky(t *testing.T) {
	sky := newFakeSky()
	sky.scene.Click(480, 300)

	var out bytes.Buffer
	c := NewClient(sky, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{TermSizeFunc: fixedSize})
	c.state.State = SessionWatching

	require.NoError(t, c.drawFrame())

	s := out.String()
	assert.Contains(t, s, "\033[38;2;", "burst light is rendered")
	assert.Contains(t, s, "particles: 30")
	assert.Contains(t, s, "viewers: 1")
}
