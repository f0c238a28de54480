// Package label rasterizes short lines of text into RGBA images that can be
// uploaded as textures.
package label

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Ink is the default text colour.
var Ink = color.RGBA{R: 0x1a, G: 0x16, B: 0x12, A: 0xff}

// Render draws lines onto a transparent w x h image, one line per
// horizontal band, each centred in its band. Lines wider than the image
// are clipped.
func Render(lines []string, w, h int, ink color.Color) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(lines) == 0 {
		return img
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	textHeight := metrics.Ascent + metrics.Descent
	band := fixed.I(h) / fixed.Int26_6(len(lines))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
	}
	for i, line := range lines {
		top := band * fixed.Int26_6(i)
		d.Dot = fixed.Point26_6{
			X: (fixed.I(w) - d.MeasureString(line)) / 2,
			Y: top + (band-textHeight)/2 + metrics.Ascent,
		}
		d.DrawString(line)
	}
	return img
}
