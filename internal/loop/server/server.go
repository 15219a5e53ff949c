package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"github.com/sasha-s/go-deadlock"

	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/loop/config"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/scene"
)

// SkyServer is the interface sessions use to talk to the shared sky.
// Decouples the Client from the concrete Server implementation.
type SkyServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendStimulus(clientID int, st loop.Stimulus)
	View(fn func(sc *scene.Scene))
	Stats() Stats
}

// Server owns the shared scene and applies stimuli from all sessions.
type Server struct {
	sky      *SkyState
	launcher *loop.Launcher
	mu       deadlock.RWMutex // Guards sky.Scene

	clients      *intmap.Map[int, *ClientHandle]
	clientsMu    deadlock.RWMutex
	nextClientID atomic.Int64
	viewers      atomic.Int32

	stimuliCh    chan ClientStimulus
	registerCh   chan *ClientHandle
	unregisterCh chan int

	logger *log.Logger
}

// Compile-time check that Server implements SkyServer.
var _ SkyServer = (*Server)(nil)

// Options configures the server's scene and launcher.
type Options struct {
	Sampler        object.Sampler
	Palette        object.Palette
	Profiles       *object.Profiles
	LaunchInterval time.Duration
	Logger         *log.Logger
}

// ClientHandle represents a session's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the session

	budget int // Stimuli still accepted this frame
}

// ClientStimulus is a stimulus from a specific session.
type ClientStimulus struct {
	ClientID int
	Stimulus loop.Stimulus
}

// ClientEvent represents an event sent from server to session.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Stats is a point-in-time summary of the sky.
type Stats struct {
	Rockets   int
	Particles int
	Viewers   int
	Frames    uint64
}

// NewServer creates a server with an empty sky.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		sky: NewSkyState(scene.Options{
			View:     object.NewScreen(config.ViewWidth, config.ViewHeight),
			Sampler:  opts.Sampler,
			Palette:  opts.Palette,
			Profiles: opts.Profiles,
		}),
		launcher:     loop.NewLauncher(opts.LaunchInterval),
		clients:      intmap.New[int, *ClientHandle](16),
		stimuliCh:    make(chan ClientStimulus, 1024),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       logger,
	}
	s.nextClientID.Store(1)
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	defer s.launcher.Stop()
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		s.processRegistrations()
		s.tick(delta)

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
}

// tick applies the queued stimuli and launches, then advances the scene one frame.
func (s *Server) tick(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collectStimuli()
	for n := s.launcher.Advance(delta); n > 0; n-- {
		s.sky.Scene.Launch()
	}
	s.sky.Advance()
}

// Shutdown notifies every session and waits for them to disconnect, up to
// the given timeout. The caller should cancel the server context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.clientsMu.RLock()
	s.clients.ForEach(func(_ int, handle *ClientHandle) bool {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
		return true
	})
	s.clientsMu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "sessions", s.viewers.Load())
			return
		case <-ticker.C:
			s.processRegistrations()
			if s.viewers.Load() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new session and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       int(s.nextClientID.Add(1) - 1),
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a session from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendStimulus queues a stimulus for the next frame. It never blocks; a full
// queue drops the stimulus.
func (s *Server) SendStimulus(clientID int, st loop.Stimulus) {
	select {
	case s.stimuliCh <- ClientStimulus{ClientID: clientID, Stimulus: st}:
	default:
	}
}

// View calls fn with the scene under the read lock. fn must not mutate it.
func (s *Server) View(fn func(sc *scene.Scene)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.sky.Scene)
}

// Stats returns the current counts.
func (s *Server) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Rockets:   s.sky.Scene.Rockets(),
		Particles: s.sky.Scene.Particles(),
		Viewers:   int(s.viewers.Load()),
		Frames:    s.sky.Frames,
	}
}

// processRegistrations handles pending registrations and unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.clientsMu.Lock()
			s.clients.Put(handle.ID, handle)
			s.viewers.Store(int32(s.clients.Len()))
			s.clientsMu.Unlock()
			s.logger.Debug("session joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.clientsMu.Lock()
			if handle, ok := s.clients.Get(clientID); ok {
				close(handle.EventsCh)
				s.clients.Del(clientID)
				s.logger.Debug("session left", "id", clientID, "user", handle.Username)
			}
			s.viewers.Store(int32(s.clients.Len()))
			s.clientsMu.Unlock()
		default:
			return
		}
	}
}

// collectStimuli applies every queued stimulus. Each session may contribute at
// most MaxStimuliPerFrame per frame; the rest are dropped. Must be called with
// mu held.
func (s *Server) collectStimuli() {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	s.clients.ForEach(func(_ int, handle *ClientHandle) bool {
		handle.budget = config.MaxStimuliPerFrame
		return true
	})

	for {
		select {
		case cs := <-s.stimuliCh:
			handle, ok := s.clients.Get(cs.ClientID)
			if !ok || handle.budget <= 0 {
				continue
			}
			handle.budget--
			loop.Apply(s.sky.Scene, cs.Stimulus)
		default:
			return
		}
	}
}
