// Package image1bit provides a 1-bit monochrome image in the page-addressed
// layout used by SSD1306-class display controllers.
//
// Each byte holds 8 vertically stacked pixels of one column. Bit 0 is the
// topmost pixel of the byte. Bytes are grouped in pages of 8 pixel rows.
package image1bit

import (
	"image"
	"image/color"
)

// PageHeight is the number of pixel rows packed in one byte.
const PageHeight = 8

// Bit is a monochrome color: true is a lit pixel.
type Bit bool

const (
	// On is a lit pixel.
	On Bit = true
	// Off is a dark pixel.
	Off Bit = false
)

// RGBA converts the Bit to opaque white or black.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// String implements fmt.Stringer.
func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Same luminance weights as color.GrayModel; lit when above half scale.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image stored in pages of 8 rows. Within a page,
// each byte is one column and bit 0 is the top row of that page.
type VerticalLSB struct {
	Pix    []byte          // Pixel data, page-major
	Stride int             // Bytes per page (the image width)
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height is rounded up to a whole number of pages.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &VerticalLSB{Rect: r}
	}
	pages := (h + PageHeight - 1) / PageHeight
	return &VerticalLSB{
		Pix:    make([]byte, w*pages),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// Pages returns the number of 8-row pages backing the image.
func (p *VerticalLSB) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.PixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y). Out of bounds writes are
// ignored.
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.PixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// PixOffset returns the byte offset and bit mask for the pixel at (x, y).
//
//	offset = page*Stride + column, page = row/8
//	mask   = 1 << (row%8)
func (p *VerticalLSB) PixOffset(x, y int) (offset int, mask byte) {
	row := y - p.Rect.Min.Y
	offset = (row/PageHeight)*p.Stride + (x - p.Rect.Min.X)
	mask = 1 << uint(row%PageHeight)
	return
}

// Clear turns every pixel off.
func (p *VerticalLSB) Clear() {
	clear(p.Pix)
}
