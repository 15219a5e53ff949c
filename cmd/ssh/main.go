package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/loop/client"
	"github.com/tomz197/fireworks/internal/loop/server"
	"github.com/tomz197/fireworks/internal/object"
)

const (
	skyShutdownTimeout = 15 * time.Second
	sshShutdownTimeout = 5 * time.Second
)

func main() {
	configFile := pflag.StringP("config", "c", "", "optional config file (yaml, toml or json)")
	pflag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		config.NewLogger("info", "ssh").Fatal("load settings", "err", err)
	}
	logger := config.NewLogger(settings.LogLevel, "ssh")

	palette, profiles, err := config.LoadTuning(settings.TuningFile)
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("get working directory", "err", err)
	}
	logger.Info("ssh config",
		"host", settings.SSHHost,
		"port", settings.SSHPort,
		"hostKey", settings.HostKeyPath,
		"workingDir", workingDir,
	)

	// The shared sky, drawn by every SSH session
	sky := server.NewServer(server.Options{
		Sampler:        object.NewRandSampler(settings.Seed),
		Palette:        palette,
		Profiles:       &profiles,
		LaunchInterval: settings.LaunchInterval,
		Logger:         logger.WithPrefix("sky"),
	})

	addr := net.JoinHostPort(settings.SSHHost, settings.SSHPort)
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			skyMiddleware(sky, logger, settings.Monochrome),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.HostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create ssh server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The sky outlives the signal so sessions can see the shutdown notice.
	skyCtx, cancelSky := context.WithCancel(context.Background())
	defer cancelSky()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sky.Run(skyCtx)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down, notifying viewers", "viewers", sky.Stats().Viewers)
		sky.Shutdown(skyShutdownTimeout)
		cancelSky()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), sshShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
	logger.Info("bye")
}

// skyMiddleware handles SSH sessions and runs a viewer of the shared sky.
func skyMiddleware(sky server.SkyServer, logger *log.Logger, monochrome bool) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new session",
				"user", sess.User(),
				"term", pty.Term,
				"width", pty.Window.Width,
				"height", pty.Window.Height,
			)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c := client.NewClient(sky, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Monochrome:   monochrome,
			})
			if err := c.Run(); err != nil {
				logger.Error("session error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
