package charts

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// StampNote draws a small footnote near the bottom-left corner of img.
// An empty note returns img unchanged.
func StampNote(img image.Image, note string) image.Image {
	if img == nil || strings.TrimSpace(note) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 4
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(note).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	// backing box behind the text
	bg := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 230})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(note)
	return rgba
}
