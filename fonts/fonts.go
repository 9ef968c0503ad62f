// Package fonts holds the compiled-in bitmap fonts used to render text into
// a page-addressed frame buffer.
//
// A glyph is stored as rows x cols bytes, rows = height/8, where each byte
// encodes 8 vertically stacked pixels with bit 0 on top. This is the same
// layout the controller RAM uses, so a glyph aligned on a page boundary is
// copied byte for byte.
package fonts

import (
	"errors"
	"fmt"
	"slices"
)

const (
	firstASCII = ' '
	lastASCII  = '~'
	asciiCount = lastASCII - firstASCII + 1
)

var (
	// ErrNotRepresentable is returned when a font has no glyph for a rune.
	ErrNotRepresentable = errors.New("fonts: character not representable")
	// ErrUnsupportedFont is returned when no built-in font matches a request.
	ErrUnsupportedFont = errors.New("fonts: unsupported font")
)

// Spec names a font size in pixels.
type Spec struct {
	Height uint8
	Width  uint8
}

// Rows returns the number of 8-pixel byte strips per glyph.
func (s Spec) Rows() int {
	return int(s.Height) / 8
}

// GlyphSize returns the number of bytes of one glyph.
func (s Spec) GlyphSize() int {
	return s.Rows() * int(s.Width)
}

func (s Spec) String() string {
	return fmt.Sprintf("%dx%d", s.Height, s.Width)
}

// LookupError reports a rune that has no glyph in a font.
type LookupError struct {
	Font Spec
	Char rune
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("fonts: character %q not representable in %v font", e.Char, e.Font)
}

// Unwrap makes errors.Is(err, ErrNotRepresentable) hold.
func (e *LookupError) Unwrap() error {
	return ErrNotRepresentable
}

// Glyph is an immutable view of one character bitmap.
type Glyph struct {
	rows, cols int
	data       []byte
}

// Rows returns the number of byte strips (height/8).
func (g Glyph) Rows() int { return g.rows }

// Cols returns the glyph width in pixels.
func (g Glyph) Cols() int { return g.cols }

// Byte returns the byte at strip row, column col.
func (g Glyph) Byte(row, col int) byte {
	return g.data[row*g.cols+col]
}

// Bytes returns a copy of the glyph data, row-major.
func (g Glyph) Bytes() []byte {
	return slices.Clone(g.data)
}

// Font binds a Spec to its glyph table: the printable ASCII range starting
// at space, plus an optional small set of extra runes.
type Font struct {
	spec   Spec
	ascii  []byte
	extras []rune
	extra  []byte
}

// newFont validates the tables against spec and panics on mismatch. The
// tables are built at package init, so a mismatch is a programming error.
func newFont(spec Spec, ascii []byte, extras []rune, extra []byte) *Font {
	if spec.Height == 0 || spec.Height%8 != 0 || spec.Width == 0 {
		panic(fmt.Sprintf("fonts: invalid spec %v", spec))
	}
	if want := asciiCount * spec.GlyphSize(); len(ascii) != want {
		panic(fmt.Sprintf("fonts: %v ascii table has %d bytes, want %d", spec, len(ascii), want))
	}
	if want := len(extras) * spec.GlyphSize(); len(extra) != want {
		panic(fmt.Sprintf("fonts: %v extras table has %d bytes, want %d", spec, len(extra), want))
	}
	return &Font{spec: spec, ascii: ascii, extras: extras, extra: extra}
}

// Spec returns the font size.
func (f *Font) Spec() Spec {
	return f.spec
}

// Height returns the line height in pixels.
func (f *Font) Height() int {
	return int(f.spec.Height)
}

// Width returns the advance width in pixels.
func (f *Font) Width() int {
	return int(f.spec.Width)
}

// Extras returns the non-ASCII runes the font supports.
func (f *Font) Extras() []rune {
	return slices.Clone(f.extras)
}

// index maps ch to its table and glyph index.
func (f *Font) index(ch rune) (table []byte, i int, ok bool) {
	if ch >= firstASCII && ch <= lastASCII {
		return f.ascii, int(ch - firstASCII), true
	}
	if ch < 0x80 {
		return nil, 0, false
	}
	if i := slices.Index(f.extras, ch); i >= 0 {
		return f.extra, i, true
	}
	return nil, 0, false
}

// Glyph returns the bitmap for ch.
func (f *Font) Glyph(ch rune) (Glyph, error) {
	table, i, ok := f.index(ch)
	if !ok {
		return Glyph{}, &LookupError{Font: f.spec, Char: ch}
	}
	n := f.spec.GlyphSize()
	return Glyph{
		rows: f.spec.Rows(),
		cols: int(f.spec.Width),
		data: table[i*n : (i+1)*n : (i+1)*n],
	}, nil
}

// GlyphWidth returns the advance width of ch.
func (f *Font) GlyphWidth(ch rune) (int, error) {
	if _, _, ok := f.index(ch); !ok {
		return 0, &LookupError{Font: f.spec, Char: ch}
	}
	return int(f.spec.Width), nil
}

// Supports reports whether ch has a glyph.
func (f *Font) Supports(ch rune) bool {
	_, _, ok := f.index(ch)
	return ok
}

func (f *Font) String() string {
	return "fonts.Font{" + f.spec.String() + "}"
}
