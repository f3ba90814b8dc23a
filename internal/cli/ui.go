package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors, red nodes
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCacheHit    = lipgloss.NewStyle().Foreground(colorGreen)

	styleRedNode   = lipgloss.NewStyle().Foreground(colorRed)
	styleBlackNode = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// statusOut receives status lines. Artifacts written to stdout must not be
// mixed with them, so commands that stream artifacts stay silent.
var statusOut io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

func status(icon string, format string, args ...any) {
	fmt.Fprintln(statusOut, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess.Render(iconSuccess), format, args...)
}

func printError(format string, args ...any) {
	status(styleIconError.Render(iconError), format, args...)
}

func printInfo(format string, args ...any) {
	status(StyleDim.Render(iconInfo), format, args...)
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact path.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats summarizes a pipeline run on one line, e.g.
// "2 trees · 9 nodes · 1/2 cached · 3 warnings".
func printStats(res *pipeline.Result) {
	parts := []string{
		StyleDim.Render(plural(res.Stats.Trees, "tree")),
		StyleDim.Render(plural(res.Stats.Nodes, "node")),
	}

	cached := fmt.Sprintf("%d/%d cached", res.Stats.CacheHits, res.Stats.Trees)
	if res.Stats.CacheHits > 0 {
		parts = append(parts, styleCacheHit.Render(cached))
	} else {
		parts = append(parts, StyleDim.Render(cached))
	}

	warnings := 0
	for _, tr := range res.Trees {
		warnings += tr.Warnings
	}
	if warnings > 0 {
		parts = append(parts, StyleWarning.Render(plural(warnings, "warning")))
	}

	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(separator)))
}

// printNextStep suggests a follow-up shell command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
