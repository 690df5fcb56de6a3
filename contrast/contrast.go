// CLAUDE:SUMMARY WCAG relative luminance and contrast ratio between two 6-hex-digit sRGB colors.
// Package contrast computes the luminance contrast ratio used by the
// contrast_ratio accessibility rule.
//
// Only #rrggbb colors are accepted. Shorthand (#fff), named colors and
// functional notations are rejected by Parse with ErrMalformedColor so that
// callers can exclude them instead of guessing.
package contrast

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrMalformedColor is returned by Parse for anything but a 6-hex-digit color.
var ErrMalformedColor = errors.New("contrast: malformed color value")

// AAThreshold is the minimum ratio for normal-size text.
const AAThreshold = 4.5

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Color is an opaque sRGB color.
type Color struct {
	c colorful.Color
}

// Parse decodes a #rrggbb color. Surrounding whitespace is ignored.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexColorRe.MatchString(s) {
		return Color{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, s, err)
	}
	return Color{c: c}, nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as lowercase #rrggbb.
func (c Color) Hex() string {
	return c.c.Hex()
}

// Luminance returns the relative luminance in [0, 1]: channels are
// gamma-expanded to linear light and weighted 0.2126, 0.7152, 0.0722.
func Luminance(c Color) float64 {
	r, g, b := c.c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Ratio returns (lighter + 0.05) / (darker + 0.05). The result is symmetric
// in its arguments and lies in [1, 21].
func Ratio(a, b Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	hi, lo := max(la, lb), min(la, lb)
	return (hi + 0.05) / (lo + 0.05)
}
