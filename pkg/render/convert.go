package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// rsvgConvert is the external converter used for PDF and PNG output.
const rsvgConvert = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG, scaled by the zoom factor.
func ToPNG(ctx context.Context, svg []byte, zoom float64) ([]byte, error) {
	return convertSVG(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", zoom))
}

// HasConverter reports whether PDF and PNG conversion is available.
func HasConverter() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

func convertSVG(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !HasConverter() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %v: %s", rsvgConvert, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
