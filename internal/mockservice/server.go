package mockservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"stlcctl/pkg/logging"
)

const subsystem = "MockService"

// RootMessage is returned by GET /.
const RootMessage = "STLC AI Agent System Backend is running!"

// Config holds the listen address of the mock service.
type Config struct {
	Host    string
	Port    int
	Release bool // Run gin in release mode
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewRouter builds the gin engine serving the generation endpoints.
func NewRouter(release bool) *gin.Engine {
	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": RootMessage})
	})
	r.POST("/chat", handleChat)
	return r
}

func handleChat(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": []gin.H{{"loc": []string{"body", "requirements"}, "msg": err.Error(), "type": "value_error"}},
		})
		return
	}

	if strings.Contains(strings.ToLower(*in.Requirements), MarkerServiceFailure) {
		logging.Warn(subsystem, "Simulating a pipeline failure for request %s", c.GetHeader("X-Request-ID"))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Simulated STLC pipeline failure"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": RunPipeline(in)})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Info(subsystem, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

// Server runs the mock service until its context is cancelled.
type Server struct {
	cfg        Config
	httpServer *http.Server
}

// NewServer creates a server for cfg.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg.Release),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run listens on the configured address and blocks until ctx is done or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logging.Info(subsystem, "Mock STLC service listening on http://%s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Info(subsystem, "Shutting down mock STLC service")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down mock service: %w", err)
		}
		return nil
	}
}
