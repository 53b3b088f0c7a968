package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errBadColor = errors.New("want #RRGGBB, #RRGGBBAA or a color name")

// ParseColor parses "#RRGGBB", "#RRGGBBAA" or an SVG color name such as
// "steelblue".
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return nil, fmt.Errorf("%w: %q", errBadColor, s)
	}

	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("%w: %q", errBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errBadColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
