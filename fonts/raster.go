package fonts

import (
	"image"
	"slices"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/ssd1306/image1bit"
)

var (
	extras16x8  = []rune{'°', '±', 'µ', '×', '÷', '£'}
	extras24x12 = []rune{'°', '±'}
)

// rasterBasic builds the 16x8 table from basicfont.Face7x13.
func rasterBasic() *Font {
	face := basicfont.Face7x13
	has := func(ch rune) bool {
		for _, rng := range face.Ranges {
			if ch >= rng.Low && ch < rng.High {
				return true
			}
		}
		return false
	}
	return raster(Spec{Height: 16, Width: 8}, face, has, extras16x8)
}

// rasterMono builds the 24x12 table from Go Mono. At 20px the advance of
// Go Mono is 12px, which matches the cell width.
func rasterMono() *Font {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		panic("fonts: parse Go Mono: " + err.Error())
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    20,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()
	has := func(ch rune) bool {
		return f.Index(ch) != 0
	}
	return raster(Spec{Height: 24, Width: 12}, face, has, extras24x12)
}

// raster draws each glyph of face into a cell of spec's size, vertically
// centred on the face metrics, and keeps the cell's page bytes. Extras the
// face has no glyph for are left out of the font.
func raster(spec Spec, face xfont.Face, has func(rune) bool, extras []rune) *Font {
	w, h := int(spec.Width), int(spec.Height)
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	baseline := max((h-ascent-descent)/2, 0) + ascent

	cell := image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))
	d := &xfont.Drawer{
		Dst:  cell,
		Src:  image.NewUniform(image1bit.On),
		Face: face,
	}
	render := func(ch rune) []byte {
		cell.Clear()
		x := 0
		if adv, ok := face.GlyphAdvance(ch); ok {
			x = max((w-adv.Round())/2, 0)
		}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(string(ch))
		return slices.Clone(cell.Pix)
	}

	ascii := make([]byte, 0, asciiCount*spec.GlyphSize())
	for ch := rune(firstASCII); ch <= lastASCII; ch++ {
		ascii = append(ascii, render(ch)...)
	}
	var (
		supported []rune
		extra     []byte
	)
	for _, ch := range extras {
		if !has(ch) {
			continue
		}
		supported = append(supported, ch)
		extra = append(extra, render(ch)...)
	}
	return newFont(spec, ascii, supported, extra)
}
