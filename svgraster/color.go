package svgraster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errParamMismatch = errors.New("param mismatch")

// parseSVGColor returns nil for none.
// Supported forms are named colors, #rgb, #rrggbb, #rrggbbaa and rgb(r, g, b).
func parseSVGColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "none", "transparent":
		return nil, nil
	case "currentcolor":
		return color.Black, nil
	}

	if strings.HasPrefix(v, "#") {
		return parseHexColor(v[1:])
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		vals := splitOnCommaOrSpace(v[4 : len(v)-1])
		if len(vals) != 3 {
			return nil, errParamMismatch
		}
		var out [3]uint8
		for i, s := range vals {
			c, err := strconv.ParseUint(s, 10, 8)
			if err != nil {
				return nil, err
			}
			out[i] = uint8(c)
		}
		return color.NRGBA{out[0], out[1], out[2], 0xff}, nil
	}

	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid color %q", v)
}

func parseHexColor(hex string) (color.Color, error) {
	switch len(hex) {
	case 3: // #rgb is #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid hex color %q", hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q", hex)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
