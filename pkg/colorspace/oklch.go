// Package colorspace converts stored hex colors into the OKLCH-style
// strings the storefront stylesheet uses. The transform is a perceptual
// approximation tuned for theme interpolation, not a colorimetrically
// exact conversion.
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FallbackOKLCH is returned for malformed hex input; a neutral mid gray.
const FallbackOKLCH = "oklch(0.5 0 0)"

// HexToOKLCH converts a #rgb or #rrggbb string into an oklch() literal.
// The lightness term is a gamma-corrected luma approximation; chroma and
// hue come from a simplified opponent-color transform.
func HexToOKLCH(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return FallbackOKLCH
	}

	rLin := toLinear(r)
	gLin := toLinear(g)
	bLin := toLinear(b)

	l := math.Sqrt(0.299*rLin + 0.587*gLin + 0.114*bLin)

	// Opponent axes use the gamma-encoded channels on purpose; that is
	// what the storefront has always rendered.
	a := (r - g) * 0.5
	bb := (r + g - 2*b) * 0.25
	c := math.Sqrt(a*a+bb*bb) * 0.4
	h := math.Atan2(bb, a) * (180 / math.Pi)
	if h < 0 {
		h += 360
	}

	l = clamp(l, 0, 1)
	c = clamp(c, 0, 0.4)

	return fmt.Sprintf("oklch(%.3f %.3f %.1f)", l, c, h)
}

func parseHex(hex string) (r, g, b float64, ok bool) {
	if !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}

	normalized := hex
	if len(hex) == 4 {
		normalized = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
	}
	if len(normalized) != 7 {
		return 0, 0, 0, false
	}

	rv, errR := strconv.ParseUint(normalized[1:3], 16, 8)
	gv, errG := strconv.ParseUint(normalized[3:5], 16, 8)
	bv, errB := strconv.ParseUint(normalized[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return 0, 0, 0, false
	}

	return float64(rv) / 255, float64(gv) / 255, float64(bv) / 255, true
}

// toLinear applies the standard sRGB gamma expansion.
func toLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
