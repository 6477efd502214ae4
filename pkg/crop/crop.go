// Package crop computes the visible crop hint used when an image is applied as a wallpaper.
package crop

import (
	"fmt"
	"image"
)

// Dimensions is the pixel extent of a source image or a target display.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether both extents are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// String returns the dimensions in WxH form.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DimensionsOf returns the pixel extent of an image.
func DimensionsOf(img image.Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Rect is an axis-aligned rectangle in the source image's pixel space.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rectangle converts r to an image.Rectangle anchored at the origin.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Size returns the width and height of r.
func (r Rect) Size() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// IsFull reports whether r covers the whole source.
func (r Rect) IsFull(source Dimensions) bool {
	return r.X == 0 && r.Y == 0 && r.Width == source.Width && r.Height == source.Height
}

// Within reports whether r lies entirely inside source.
func (r Rect) Within(source Dimensions) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X+r.Width <= source.Width && r.Y+r.Height <= source.Height
}

// String returns the rect in (x, y, w, h) form.
func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.X, r.Y, r.Width, r.Height)
}

// Compute returns the centered rectangle of source whose aspect ratio matches target.
//
// The ratios are height over width. A source that is relatively taller than the
// target keeps its full width and loses rows top and bottom; otherwise it keeps its
// full height and loses columns left and right. Equal ratios take the second branch,
// which yields the whole image.
//
// Ratios are compared and divided by cross-multiplying in int64, so every result is
// the floor of the exact real quotient. Non-positive dimensions yield a zero Rect.
func Compute(source, target Dimensions) Rect {
	if !source.Valid() || !target.Valid() {
		return Rect{}
	}

	sw, sh := int64(source.Width), int64(source.Height)
	tw, th := int64(target.Width), int64(target.Height)

	// sh/sw > th/tw
	if sh*tw > th*sw {
		cropHeight := sw * th / tw
		y := (sh - cropHeight) / 2
		return Rect{X: 0, Y: int(y), Width: source.Width, Height: int(cropHeight)}
	}

	cropWidth := sh * tw / th
	x := (sw - cropWidth) / 2
	return Rect{X: int(x), Y: 0, Width: int(cropWidth), Height: source.Height}
}

// centerOn moves a rect of the given size so its center sits at (cx, cy),
// then clamps it to source.
func centerOn(size, source Dimensions, cx, cy int) Rect {
	r := Rect{
		X:      cx - size.Width/2,
		Y:      cy - size.Height/2,
		Width:  size.Width,
		Height: size.Height,
	}
	return clamp(r, source)
}

// clamp translates r so it lies inside source. r must not be larger than source.
func clamp(r Rect, source Dimensions) Rect {
	if r.X+r.Width > source.Width {
		r.X = source.Width - r.Width
	}
	if r.Y+r.Height > source.Height {
		r.Y = source.Height - r.Height
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}
