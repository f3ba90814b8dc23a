package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a charmbracelet logger.
// It implements PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for all hook categories.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseComplete(_ context.Context, trees, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("parsed records", "trees", trees, "nodes", nodes, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, tree int, formats []string) {
	h.logger.Debug("render start", "tree", tree, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, tree int, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "tree", tree, "err", err)
		return
	}
	h.logger.Debug("render done", "tree", tree, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "id", id, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
