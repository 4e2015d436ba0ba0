package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"
)

// ErrPortInUse is returned when the listen port is already bound.
var ErrPortInUse = errors.New("port already in use")

// Default values.
const (
	// DefaultPort is the preview port.
	DefaultPort = 8000

	// DefaultShutdownTimeout bounds how long in-flight requests may finish.
	DefaultShutdownTimeout = 5 * time.Second

	// Title is printed in the startup banner.
	Title = "高空作业平台租金跟踪系统"
)

// Server serves a directory with caching disabled.
type Server struct {
	root            string
	host            string
	port            int
	openFile        string
	out             io.Writer
	logger          *slog.Logger
	openBrowser     func(url string) error
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithRoot sets the served directory.
func WithRoot(root string) Option {
	return func(s *Server) {
		s.root = root
	}
}

// WithHost sets the interface to bind. Empty binds all interfaces.
func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

// WithPort sets the listen port. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithOpenFile sets the file whose URL is printed and opened.
func WithOpenFile(name string) Option {
	return func(s *Server) {
		s.openFile = name
	}
}

// WithOutput sets where the banner is printed.
func WithOutput(w io.Writer) Option {
	return func(s *Server) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBrowserOpener replaces the function that opens the browser.
// A nil opener disables opening the browser.
func WithBrowserOpener(open func(url string) error) Option {
	return func(s *Server) {
		s.openBrowser = open
	}
}

// WithShutdownTimeout sets how long in-flight requests may finish on shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New creates a Server with the given options.
func New(opts ...Option) *Server {
	s := &Server{
		root:            ".",
		port:            DefaultPort,
		out:             os.Stdout,
		logger:          slog.Default(),
		openBrowser:     browser.OpenURL,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NoCache wraps next so that every response disables browser caching.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// Handler returns the file server for the root directory.
func (s *Server) Handler() http.Handler {
	return NoCache(http.FileServer(http.Dir(s.root)))
}

// Listen binds the configured address.
func (s *Server) Listen() (net.Listener, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %d", ErrPortInUse, s.port)
		}
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// URL returns the address of the open file on the bound listener.
func (s *Server) URL(ln net.Listener) string {
	port := s.port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort("localhost", strconv.Itoa(port)),
		Path:   "/" + strings.TrimPrefix(s.openFile, "/"),
	}
	return u.String()
}

// Run binds the port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// A cancelled context is a normal stop and returns nil.
//
// Design decision: The listener is bound by the caller before Serve runs,
// so the banner and the browser only appear for a server that can answer.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	target := s.URL(ln)
	s.printBanner(target)

	if s.openBrowser != nil {
		if err := s.openBrowser(target); err != nil {
			s.logger.Debug("failed to open browser", "url", target, "error", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	fmt.Fprintf(s.out, "\n\n服务器已停止\n")
	return err
}

func (s *Server) printBanner(target string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, Title)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintf(s.out, "\n服务器已启动!\n")
	fmt.Fprintf(s.out, "访问地址: %s\n", target)
	fmt.Fprintf(s.out, "\n按 Ctrl+C 停止服务器\n\n")
	fmt.Fprintln(s.out, rule)
}
