// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cell/palette.go
// Summary: Maps indexed terminal colors to RGB and provides color math helpers.
// Usage: Used by renderers that need concrete RGB values for styled cells.

package cell

import (
	"github.com/lucasb-eyer/go-colorful"
)

// The standard xterm palette for the first 16 colors. Values beyond 15 are
// derived: 16-231 form a 6x6x6 color cube, 232-255 a grayscale ramp.
var standardPalette = [16][3]uint8{
	{0x00, 0x00, 0x00}, // black
	{0xcd, 0x00, 0x00}, // red
	{0x00, 0xcd, 0x00}, // green
	{0xcd, 0xcd, 0x00}, // yellow
	{0x00, 0x00, 0xee}, // blue
	{0xcd, 0x00, 0xcd}, // magenta
	{0x00, 0xcd, 0xcd}, // cyan
	{0xe5, 0xe5, 0xe5}, // white
	{0x7f, 0x7f, 0x7f}, // bright black
	{0xff, 0x00, 0x00}, // bright red
	{0x00, 0xff, 0x00}, // bright green
	{0xff, 0xff, 0x00}, // bright yellow
	{0x5c, 0x5c, 0xff}, // bright blue
	{0xff, 0x00, 0xff}, // bright magenta
	{0x00, 0xff, 0xff}, // bright cyan
	{0xff, 0xff, 0xff}, // bright white
}

// cubeLevels are the channel values used by the 6x6x6 color cube.
var cubeLevels = [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// Resolve converts a Color to concrete RGB channels. Default colors resolve
// to the supplied fallbacks so renderers can honor the terminal theme.
func Resolve(c Color, defFG, defBG [3]uint8, isFG bool) (r, g, b uint8) {
	switch c.Mode {
	case ColorModeRGB:
		return c.R, c.G, c.B
	case ColorModeStandard:
		p := standardPalette[c.Value&0x0f]
		return p[0], p[1], p[2]
	case ColorMode256:
		return resolve256(c.Value)
	default:
		if isFG {
			return defFG[0], defFG[1], defFG[2]
		}
		return defBG[0], defBG[1], defBG[2]
	}
}

func resolve256(v uint8) (r, g, b uint8) {
	switch {
	case v < 16:
		p := standardPalette[v]
		return p[0], p[1], p[2]
	case v < 232:
		idx := int(v) - 16
		return cubeLevels[idx/36], cubeLevels[(idx/6)%6], cubeLevels[idx%6]
	default:
		gray := uint8(8 + 10*(int(v)-232))
		return gray, gray, gray
	}
}

// Blend mixes two colors in the perceptual Luv space, t=0 yields a and t=1
// yields b. Renderers use this for dimmed and faded presentation.
func Blend(a, b Color, t float64) Color {
	ar, ag, ab := Resolve(a, [3]uint8{0xe5, 0xe5, 0xe5}, [3]uint8{0, 0, 0}, true)
	br, bg, bb := Resolve(b, [3]uint8{0xe5, 0xe5, 0xe5}, [3]uint8{0, 0, 0}, true)

	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	mixed := ca.BlendLuv(cb, t).Clamped()

	return Color{
		Mode: ColorModeRGB,
		R:    uint8(mixed.R*255 + 0.5),
		G:    uint8(mixed.G*255 + 0.5),
		B:    uint8(mixed.B*255 + 0.5),
	}
}

// Luminance returns the perceived lightness of a color in [0,1]. Useful for
// picking a readable cursor or selection overlay.
func Luminance(c Color) float64 {
	r, g, b := Resolve(c, [3]uint8{0xe5, 0xe5, 0xe5}, [3]uint8{0, 0, 0}, true)
	col := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	_, _, l := col.Hsl()
	return l
}
