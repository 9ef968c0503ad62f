// Package framebuffer composes pixels and glyphs into an off-screen,
// page-addressed frame before it is sent to the display.
//
// The buffer is PAGE x WIDTH bytes where PAGE = HEIGHT/8. Each byte is a
// column of 8 pixels, bit 0 on top. Writes outside the buffer are clipped
// silently.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/flavioheleno/ssd1306/fonts"
	"github.com/flavioheleno/ssd1306/image1bit"
)

const (
	// DefaultWidth is the width of the reference 128x64 panel.
	DefaultWidth = 128
	// DefaultHeight is the height of the reference 128x64 panel.
	DefaultHeight = 64
	// PageHeight is the number of pixel rows in one page.
	PageHeight = image1bit.PageHeight
)

// FrameBuffer is an owned off-screen frame. It is not safe for concurrent
// use.
type FrameBuffer struct {
	img   *image1bit.VerticalLSB
	w, h  int
	pages int
}

// New creates a zeroed w x h frame buffer. h must be a multiple of 8.
func New(w, h int) (*FrameBuffer, error) {
	if w <= 0 {
		return nil, fmt.Errorf("framebuffer: width %d must be positive", w)
	}
	if h <= 0 || h%PageHeight != 0 {
		return nil, fmt.Errorf("framebuffer: height %d must be a positive multiple of %d", h, PageHeight)
	}
	return &FrameBuffer{
		img:   image1bit.NewVerticalLSB(image.Rect(0, 0, w, h)),
		w:     w,
		h:     h,
		pages: h / PageHeight,
	}, nil
}

// NewDefault creates a zeroed 128x64 frame buffer.
func NewDefault() *FrameBuffer {
	fb, err := New(DefaultWidth, DefaultHeight)
	if err != nil {
		panic(err)
	}
	return fb
}

// Width returns the frame width in pixels.
func (fb *FrameBuffer) Width() int { return fb.w }

// Height returns the frame height in pixels.
func (fb *FrameBuffer) Height() int { return fb.h }

// Pages returns the number of 8-row pages.
func (fb *FrameBuffer) Pages() int { return fb.pages }

// Bounds returns the frame rectangle.
func (fb *FrameBuffer) Bounds() image.Rectangle { return fb.img.Rect }

// Image returns the backing image, for composition with image/draw. Writes
// through it are writes to the frame.
func (fb *FrameBuffer) Image() *image1bit.VerticalLSB {
	return fb.img
}

// Clear zeroes the frame.
func (fb *FrameBuffer) Clear() {
	fb.img.Clear()
}

// SetPixel lights or clears the pixel at (x, y). Out of range coordinates
// are ignored.
func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	if x < 0 || x >= fb.w || y < 0 || y >= fb.h {
		return
	}
	page, bit := y/PageHeight, uint(y%PageHeight)
	i := page*fb.w + x
	if on {
		fb.img.Pix[i] |= 1 << bit
	} else {
		fb.img.Pix[i] &^= 1 << bit
	}
}

// Pixel reports whether the pixel at (x, y) is lit.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	return bool(fb.img.BitAt(x, y))
}

// At returns the byte at page, column x, or 0 when out of range.
func (fb *FrameBuffer) At(page, x int) byte {
	if page < 0 || page >= fb.pages || x < 0 || x >= fb.w {
		return 0
	}
	return fb.img.Pix[page*fb.w+x]
}

// put overwrites the byte at page, column x. Out of range cells are dropped.
func (fb *FrameBuffer) put(page, x int, b byte) {
	if page < 0 || page >= fb.pages || x < 0 || x >= fb.w {
		return
	}
	fb.img.Pix[page*fb.w+x] = b
}

// DrawGlyph renders ch with its top-left corner at (x, y) and returns the
// advance width and the font line height.
//
// Glyph bytes overwrite the destination. When y is not a multiple of 8 each
// glyph byte is split over two pages:
//
//	page+i   = b << (y%8)
//	page+i+1 = b >> (8 - y%8)
//
// Both halves are clipped independently.
func (fb *FrameBuffer) DrawGlyph(x, y int, f *fonts.Font, ch rune) (advance, lineHeight int, err error) {
	g, err := f.Glyph(ch)
	if err != nil {
		return 0, 0, err
	}
	page, offset := floorDiv(y, PageHeight)
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			b := g.Byte(i, j)
			if offset == 0 {
				fb.put(page+i, x+j, b)
				continue
			}
			fb.put(page+i, x+j, b<<uint(offset))
			fb.put(page+i+1, x+j, b>>uint(PageHeight-offset))
		}
	}
	return g.Cols(), f.Height(), nil
}

// DrawString renders text starting at (x, y). When the column reaches the
// frame width it wraps to column 0 one line lower. Rendering stops at the
// first character the font cannot represent; glyphs drawn before it stay in
// the frame.
func (fb *FrameBuffer) DrawString(x, y int, f *fonts.Font, text string) error {
	col, row := x, y
	for _, ch := range text {
		w, h, err := fb.DrawGlyph(col, row, f, ch)
		if err != nil {
			return err
		}
		col += w
		if col >= fb.w {
			col = 0
			row += h
		}
	}
	return nil
}

// Snapshot returns a copy of the whole frame, page-major, Pages()*Width()
// bytes long.
func (fb *FrameBuffer) Snapshot() []byte {
	return slices.Clone(fb.img.Pix)
}

// Page returns a copy of the Width() bytes of page p.
func (fb *FrameBuffer) Page(p int) ([]byte, error) {
	if p < 0 || p >= fb.pages {
		return nil, errors.New("framebuffer: page out of range")
	}
	return slices.Clone(fb.img.Pix[p*fb.w : (p+1)*fb.w]), nil
}

// Load replaces the frame contents with raw page-major bytes.
func (fb *FrameBuffer) Load(pix []byte) error {
	if len(pix) != len(fb.img.Pix) {
		return errors.New("framebuffer: invalid buffer size")
	}
	copy(fb.img.Pix, pix)
	return nil
}

func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("framebuffer.FrameBuffer{%dx%d}", fb.w, fb.h)
}

// floorDiv splits v into a page index and a bit offset in [0, 8) so that
// negative rows land on negative pages and get clipped.
func floorDiv(v, d int) (q, r int) {
	q, r = v/d, v%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
