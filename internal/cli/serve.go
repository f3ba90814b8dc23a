package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/observability"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

const (
	// maxBodyBytes bounds the records accepted by POST /render.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 5 * time.Second

	headerRequestID = "X-Request-ID"
)

// serveCommand runs the HTTP rendering service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree rendering over HTTP",
		Long: `Serve exposes the render pipeline over HTTP:

  POST /render?format=svg&tree=0   body: key records, response: artifact
  GET  /formats                    supported formats
  GET  /healthz                    liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve")

			observability.NewLogHooks(c.Logger).Register()
			defer observability.Reset()

			srv := newServer(runner, c.Logger, c.Config)
			return srv.listen(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// =============================================================================
// Server
// =============================================================================

// server renders trees for HTTP clients. Handlers share one runner.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

func newServer(runner *pipeline.Runner, logger *log.Logger, cfg Config) *server {
	return &server{runner: runner, logger: logger, cfg: cfg}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/formats", s.handleFormats)
	r.Post("/render", s.handleRender)
	return r
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return ctx.Err()
}

// requestID tags every request with a uuid, echoes it in X-Request-ID and
// reports the request to the HTTP hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set(headerRequestID, id)

		start := time.Now()
		observability.HTTP().OnRequest(ctx, id, r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(ctx, id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": pipeline.FormatNames()})
}

// handleRender renders one tree of the posted records. Query parameters:
// format, tree, scale, base, max, standalone, delimiter.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, index, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	input, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts.Logger = s.logger.With("request_id", requestIDFromContext(r.Context()))
	res, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if index >= len(res.Trees) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "tree %d not found (input has %d)", index, len(res.Trees)))
		return
	}

	format := opts.Formats[0]
	tr := res.Trees[index]
	cacheStatus := "miss"
	if tr.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Trees", strconv.Itoa(len(res.Trees)))
	w.Header().Set("X-Warnings", strconv.Itoa(tr.Warnings))
	w.WriteHeader(http.StatusOK)
	w.Write(tr.Artifacts[format])
}

// renderOptions reads query parameters over the server configuration.
func (s *server) renderOptions(r *http.Request) (pipeline.Options, int, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{pipeline.DefaultFormat},
		Layout:     s.cfg.Layout,
		Standalone: s.cfg.Render.Standalone,
		Delimiter:  s.cfg.Render.Delimiter,
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if d := q.Get("delimiter"); d != "" {
		opts.Delimiter = d
	}

	floats := []struct {
		name string
		set  func(float64)
	}{
		{"scale", opts.Layout.SetScale},
		{"base", opts.Layout.SetBase},
		{"max", opts.Layout.SetMax},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, v)
		}
		f.set(n)
	}

	if v := q.Get("standalone"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, 0, errors.New(errors.ErrCodeInvalidInput, "invalid standalone: %q", v)
		}
		opts.Standalone = b
	}

	index := 0
	if v := q.Get("tree"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, 0, errors.New(errors.ErrCodeInvalidInput, "invalid tree index: %q", v)
		}
		index = n
	}
	return opts, index, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render request failed", "request_id", requestIDFromContext(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: requestIDFromContext(r.Context()),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
