// Package pipeline turns key records into rendered tree diagrams.
//
// The same pipeline backs the CLI render command and the HTTP service, so
// both apply identical defaults, validation and caching.
//
// # Stages
//
//  1. Parse: read records into one search tree per delimited group
//  2. Layout: compute sibling distances with the configured layout.Config
//  3. Render: emit every requested format for every tree
//
// Trees are rendered concurrently, one goroutine per tree. A tree is never
// shared between goroutines because rendering rewrites its node metrics.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, []byte("5 3 8 ; 1 2"), pipeline.Options{
//	    Formats: []string{pipeline.FormatTikZ, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex := res.Trees[0].Artifacts["tikz"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/errors"
	bstio "github.com/matzehuels/bstviz/pkg/io"
	"github.com/matzehuels/bstviz/pkg/render/layout"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output formats.
const (
	FormatTikZ   = "tikz"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPDF    = "pdf"
	FormatPNG    = "png"
	FormatJSON   = "json"
	FormatEvents = "events"
)

// DefaultFormat is the format produced when none is requested.
const DefaultFormat = FormatTikZ

// DefaultPNGScale is the PNG rasterization factor.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTikZ:   true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPDF:    true,
	FormatPNG:    true,
	FormatJSON:   true,
	FormatEvents: true,
}

// formatList is ValidFormats in display order.
var formatList = []string{FormatTikZ, FormatDOT, FormatSVG, FormatPDF, FormatPNG, FormatJSON, FormatEvents}

// FormatNames returns the supported formats in display order.
func FormatNames() []string { return append([]string(nil), formatList...) }

// Extension returns the file extension used for a format.
func Extension(format string) string {
	switch format {
	case FormatTikZ:
		return ".tex"
	case FormatEvents:
		return ".txt"
	default:
		return "." + format
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatTikZ:
		return "application/x-tex; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats    []string      `json:"formats,omitempty"`
	Layout     layout.Config `json:"layout"`
	Standalone bool          `json:"standalone,omitempty"`
	Delimiter  string        `json:"delimiter,omitempty"`
	PNGScale   float64       `json:"png_scale,omitempty"`

	// Refresh skips cache reads but still stores fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives tree diagnostics. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Trees []TreeResult
	Stats Stats
}

// TreeResult holds the artifacts of one input tree.
type TreeResult struct {
	Index     int
	Nodes     int
	Height    int
	Warnings  int
	Artifacts map[string][]byte
	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Trees      int
	Nodes      int
	ParseTime  time.Duration
	RenderTime time.Duration
	CacheHits  int
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatList, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills unset fields. A zero Scale is never valid, so it marks
// the layout as unset: Scale gets its default, and so does Base when it is
// zero too. A zero Base next to an explicit Scale is kept. Max is never
// defaulted.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Layout.Scale == 0 {
		o.Layout.Scale = layout.DefaultScale
		if o.Layout.Base == 0 {
			o.Layout.Base = layout.DefaultBase
		}
	}
	if o.Delimiter == "" {
		o.Delimiter = bstio.DefaultDelimiter
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without changing them.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	if err := errors.ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive, got %g", o.PNGScale)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Layout.Scale,
		Base:   o.Layout.Base,
		Max:    o.Layout.Max,
	}
	if format == FormatTikZ {
		opts.Standalone = o.Standalone
	}
	if format == FormatPNG {
		opts.Format = fmt.Sprintf("%s@%g", format, o.PNGScale)
	}
	return opts
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
