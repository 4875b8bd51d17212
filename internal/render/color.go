package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

var named = map[string]color.RGBA{
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"blue":   {R: 0, G: 0, B: 255, A: 255},
	"green":  {R: 0, G: 128, B: 0, A: 255},
	"grey":   {R: 128, G: 128, B: 128, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"purple": {R: 128, G: 0, B: 128, A: 255},
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
}

// ParseColor accepts "#rrggbb", "#rgb" or one of a few CSS color names.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// IdentityScale colors identities from orange (lowest) through red to black
// (highest). Moreland luminance maps need rising luminance, so the map runs
// black, red, orange and is read backwards.
type IdentityScale struct {
	cm palette.ColorMap
}

// NewIdentityScale spans [lo,hi]. A degenerate range colors everything as
// the lowest identity.
func NewIdentityScale(lo, hi float64) (*IdentityScale, error) {
	cm, err := moreland.NewLuminance([]color.Color{named["black"], named["red"], named["orange"]})
	if err != nil {
		return nil, err
	}
	if hi <= lo {
		hi = lo + 1
	}
	cm.SetMin(lo)
	cm.SetMax(hi)
	return &IdentityScale{cm: cm}, nil
}

// At returns the color for identity; values outside the range are clamped.
func (s *IdentityScale) At(identity float64) (color.Color, error) {
	lo, hi := s.cm.Min(), s.cm.Max()
	v := hi - (identity - lo)
	return s.cm.At(math.Max(lo, math.Min(hi, v)))
}

func translucent(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}
