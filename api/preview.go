package api

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// notFoundContent is served in place of the document when it has not been written yet.
const notFoundContent = "# documentation not found\n"

const shutdownTimeout = 5 * time.Second

// ServerConfig holds the settings for the documentation preview server.
type ServerConfig struct {
	Host         string   // Interface to bind; the port is always chosen by the OS
	DocPath      string   // Markdown document re-read on every request
	AllowOrigins []string // Optional CORS origins; empty disables CORS handling
}

// Server serves the generated document as escaped HTML.
type Server struct {
	config   ServerConfig
	listener net.Listener
	http     *http.Server
}

// NewRouter builds the preview routes. Only GET / and GET /index.html are served;
// everything else is a bodiless 404. No request logging middleware is installed.
func NewRouter(config ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Disable proxy trusting - the preview only ever runs locally
	r.SetTrustedProxies(nil)

	if len(config.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: config.AllowOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Accept"},
		}))
	}

	handler := HandleDocumentRequest(config.DocPath)
	r.GET("/", handler)
	r.GET("/index.html", handler)

	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return r
}

// HandleDocumentRequest returns the current document wrapped in a <pre> block.
func HandleDocumentRequest(docPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := os.ReadFile(docPath)
		if errors.Is(err, os.ErrNotExist) {
			content = []byte(notFoundContent)
		} else if err != nil {
			slog.Warn("Failed to read document", "path", docPath, "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		body := "<html><body><pre>" + html.EscapeString(string(content)) + "</pre></body></html>"
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}

// NewServer binds an ephemeral port on config.Host. The server does not accept
// connections until Serve is called.
func NewServer(config ServerConfig) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	listener, err := net.Listen("tcp", net.JoinHostPort(config.Host, "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", config.Host, err)
	}

	return &Server{
		config:   config,
		listener: listener,
		http: &http.Server{
			Handler:           NewRouter(config),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// URL is the address the preview is reachable at.
func (s *Server) URL() string {
	port := s.listener.Addr().(*net.TCPAddr).Port
	return "http://" + net.JoinHostPort(s.config.Host, strconv.Itoa(port)) + "/"
}

// Serve blocks until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Serve(s.listener) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop preview server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
