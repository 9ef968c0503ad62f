package fonts

import "fmt"

var (
	// Font8 is an 8 pixel high font with 6 pixel wide cells.
	Font8 = newFont(Spec{Height: 8, Width: 6}, ascii8x6[:], extras8x6, extra8x6[:])

	// Font16 is a 16 pixel high font with 8 pixel wide cells, rasterised
	// from basicfont.Face7x13.
	Font16 = rasterBasic()

	// Font24 is a 24 pixel high font with 12 pixel wide cells, rasterised
	// from Go Mono.
	Font24 = rasterMono()
)

// All returns the built-in fonts, smallest first.
func All() []*Font {
	return []*Font{Font8, Font16, Font24}
}

// BySpec returns the built-in font with exactly spec s.
func BySpec(s Spec) (*Font, error) {
	for _, f := range All() {
		if f.spec == s {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFont, s)
}

// ByHeight returns the built-in font with line height h.
func ByHeight(h int) (*Font, error) {
	for _, f := range All() {
		if f.Height() == h {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: height %d", ErrUnsupportedFont, h)
}

// ByHeightOr returns the font with line height h, or fallback when there is
// none.
func ByHeightOr(h int, fallback *Font) *Font {
	if f, err := ByHeight(h); err == nil {
		return f
	}
	return fallback
}

// GlyphFor returns the glyph of ch in the font with spec s.
func GlyphFor(s Spec, ch rune) (Glyph, error) {
	f, err := BySpec(s)
	if err != nil {
		return Glyph{}, err
	}
	return f.Glyph(ch)
}

// GlyphWidth returns the advance width of ch in the font with spec s.
func GlyphWidth(s Spec, ch rune) (int, error) {
	f, err := BySpec(s)
	if err != nil {
		return 0, err
	}
	return f.GlyphWidth(ch)
}

// FontHeight returns the line height of s.
func FontHeight(s Spec) uint8 {
	return s.Height
}
