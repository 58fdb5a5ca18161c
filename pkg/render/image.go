package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/jmichalek/netlayout/pkg/errors"
)

// Format names a render output format.
type Format string

// Supported formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatDOT, FormatSVG, FormatPNG}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG, FormatPNG:
		return Format(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown format %q (valid: %v)", s, Formats())
}

// Render renders DOT source to the given format. For FormatDOT the source
// is returned as-is.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return SVG(ctx, dot)
	case FormatPNG:
		return PNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

// SVG renders DOT source to SVG using Graphviz. The viewBox of the output
// is normalized to start at the origin so the image embeds predictably.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	buf, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(buf), nil
}

// PNG renders DOT source to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
