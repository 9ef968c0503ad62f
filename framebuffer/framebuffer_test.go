package framebuffer

import (
	"bytes"
	"image"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/ssd1306/fonts"
	"github.com/flavioheleno/ssd1306/image1bit"
)

func glyphBytes(t *testing.T, f *fonts.Font, ch rune) fonts.Glyph {
	t.Helper()
	g, err := f.Glyph(ch)
	require.NoError(t, err)
	return g
}

func fill(fb *FrameBuffer, b byte) {
	for i := range fb.img.Pix {
		fb.img.Pix[i] = b
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		wantErr   bool
		wantPages int
	}{
		{"128x64", 128, 64, false, 8},
		{"128x32", 128, 32, false, 4},
		{"one page", 1, 8, false, 1},
		{"zero width", 0, 64, true, 0},
		{"negative height", 128, -8, true, 0},
		{"height not multiple of 8", 128, 60, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := New(tt.w, tt.h)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, fb.Pages())
			assert.Equal(t, tt.w, fb.Width())
			assert.Equal(t, tt.h, fb.Height())
			assert.Len(t, fb.Snapshot(), tt.wantPages*tt.w)
		})
	}
}

func TestNewDefault(t *testing.T) {
	fb := NewDefault()
	assert.Equal(t, image.Rect(0, 0, 128, 64), fb.Bounds())
	assert.Equal(t, "framebuffer.FrameBuffer{128x64}", fb.String())
}

func TestClearSnapshot(t *testing.T) {
	fb := NewDefault()
	fill(fb, 0xA5)

	fb.Clear()

	assert.Equal(t, make([]byte, 8*128), fb.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	fb := NewDefault()
	snap := fb.Snapshot()
	snap[0] = 0xFF
	assert.Equal(t, byte(0), fb.At(0, 0))

	page, err := fb.Page(0)
	require.NoError(t, err)
	page[0] = 0xFF
	assert.Equal(t, byte(0), fb.At(0, 0))
}

func TestSetPixelRoundTrip(t *testing.T) {
	fb := NewDefault()
	fill(fb, 0x5A)

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x += 7 {
			before := fb.At(y/8, x)
			fb.SetPixel(x, y, true)
			assert.True(t, fb.Pixel(x, y))
			fb.SetPixel(x, y, false)
			assert.False(t, fb.Pixel(x, y))
			if before&(1<<uint(y%8)) != 0 {
				fb.SetPixel(x, y, true)
			}
			require.Equal(t, before, fb.At(y/8, x), "pixel (%d, %d)", x, y)
		}
	}
}

func TestSetPixelAddressing(t *testing.T) {
	fb := NewDefault()

	fb.SetPixel(5, 0, true)
	fb.SetPixel(5, 7, true)
	fb.SetPixel(127, 63, true)
	fb.SetPixel(64, 35, true)

	assert.Equal(t, byte(0x81), fb.At(0, 5))
	assert.Equal(t, byte(0x80), fb.At(7, 127))
	assert.Equal(t, byte(0x08), fb.At(4, 64))
}

func TestSetPixelOutOfRange(t *testing.T) {
	fb := NewDefault()
	fill(fb, 0x3C)
	want := fb.Snapshot()

	for _, p := range []image.Point{{128, 0}, {0, 64}, {-1, 0}, {0, -1}, {1000, 1000}} {
		fb.SetPixel(p.X, p.Y, true)
		fb.SetPixel(p.X, p.Y, false)
	}

	assert.Equal(t, want, fb.Snapshot())
}

func TestDrawGlyphAligned(t *testing.T) {
	fb := NewDefault()
	fill(fb, 0xFF)
	g := glyphBytes(t, fonts.Font16, 'A')

	w, h, err := fb.DrawGlyph(10, 16, fonts.Font16, 'A')
	require.NoError(t, err)
	assert.Equal(t, 8, w)
	assert.Equal(t, 16, h)

	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			assert.Equal(t, g.Byte(i, j), fb.At(2+i, 10+j), "row %d col %d", i, j)
		}
	}
	for j := 10; j < 18; j++ {
		assert.Equal(t, byte(0xFF), fb.At(1, j), "page above touched at col %d", j)
		assert.Equal(t, byte(0xFF), fb.At(4, j), "page below touched at col %d", j)
	}
	assert.Equal(t, byte(0xFF), fb.At(2, 9))
	assert.Equal(t, byte(0xFF), fb.At(2, 18))
}

func TestDrawGlyphOverwrites(t *testing.T) {
	fb := NewDefault()
	fill(fb, 0xFF)

	_, _, err := fb.DrawGlyph(0, 0, fonts.Font8, ' ')
	require.NoError(t, err)

	for j := 0; j < 6; j++ {
		assert.Equal(t, byte(0), fb.At(0, j))
	}
	assert.Equal(t, byte(0xFF), fb.At(0, 6))

	// Idempotent without an intervening clear.
	_, _, err = fb.DrawGlyph(20, 8, fonts.Font8, 'Q')
	require.NoError(t, err)
	first := fb.Snapshot()
	_, _, err = fb.DrawGlyph(20, 8, fonts.Font8, 'Q')
	require.NoError(t, err)
	assert.Equal(t, first, fb.Snapshot())
}

func TestDrawGlyphSplitsAcrossPages(t *testing.T) {
	for offset := 1; offset < 8; offset++ {
		fb := NewDefault()
		g := glyphBytes(t, fonts.Font8, 'A')

		_, _, err := fb.DrawGlyph(0, 8+offset, fonts.Font8, 'A')
		require.NoError(t, err)

		for j := 0; j < g.Cols(); j++ {
			low, high := fb.At(1, j), fb.At(2, j)
			assert.Equal(t, g.Byte(0, j)<<uint(offset), low)
			assert.Equal(t, g.Byte(0, j)>>uint(8-offset), high)
			// Recombining both halves gives the glyph byte back.
			assert.Equal(t, g.Byte(0, j), low>>uint(offset)|high<<uint(8-offset), "offset %d col %d", offset, j)
		}
		assert.Equal(t, byte(0), fb.At(0, 0))
		assert.Equal(t, byte(0), fb.At(3, 1))
	}
}

func TestDrawGlyphSplitMultiRow(t *testing.T) {
	fb := NewDefault()
	g := glyphBytes(t, fonts.Font24, 'M')

	_, _, err := fb.DrawGlyph(30, 13, fonts.Font24, 'M')
	require.NoError(t, err)

	// Pixel-level comparison: glyph pixel (j, r) lands at (30+j, 13+r).
	for j := 0; j < g.Cols(); j++ {
		for r := 0; r < 24; r++ {
			want := g.Byte(r/8, j)&(1<<uint(r%8)) != 0
			assert.Equal(t, want, fb.Pixel(30+j, 13+r), "col %d row %d", j, r)
		}
	}
}

func TestDrawGlyphClipping(t *testing.T) {
	t.Run("right edge", func(t *testing.T) {
		fb := NewDefault()
		g := glyphBytes(t, fonts.Font8, 'H')
		_, _, err := fb.DrawGlyph(125, 0, fonts.Font8, 'H')
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			assert.Equal(t, g.Byte(0, j), fb.At(0, 125+j))
		}
		assert.Equal(t, byte(0), fb.At(1, 0), "clipped columns must not wrap")
	})

	t.Run("bottom edge", func(t *testing.T) {
		fb := NewDefault()
		g := glyphBytes(t, fonts.Font16, 'H')
		_, _, err := fb.DrawGlyph(0, 60, fonts.Font16, 'H')
		require.NoError(t, err)
		for j := 0; j < g.Cols(); j++ {
			assert.Equal(t, g.Byte(0, j)<<4, fb.At(7, j))
		}
		assert.Len(t, fb.Snapshot(), 1024)
	})

	t.Run("negative origin", func(t *testing.T) {
		fb := NewDefault()
		g := glyphBytes(t, fonts.Font8, 'H')
		_, _, err := fb.DrawGlyph(-2, -3, fonts.Font8, 'H')
		require.NoError(t, err)
		for j := 2; j < g.Cols(); j++ {
			assert.Equal(t, g.Byte(0, j)>>3, fb.At(0, j-2))
		}
	})

	t.Run("fully outside", func(t *testing.T) {
		fb := NewDefault()
		_, _, err := fb.DrawGlyph(200, 200, fonts.Font24, 'H')
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 1024), fb.Snapshot())
	})
}

func TestDrawGlyphLookupFailure(t *testing.T) {
	fb := NewDefault()
	_, _, err := fb.DrawGlyph(0, 0, fonts.Font8, '\x01')
	assert.ErrorIs(t, err, fonts.ErrNotRepresentable)
	assert.Equal(t, make([]byte, 1024), fb.Snapshot())
}

func TestDrawString(t *testing.T) {
	fb := NewDefault()
	require.NoError(t, fb.DrawString(0, 0, fonts.Font8, "Hi"))

	h := glyphBytes(t, fonts.Font8, 'H')
	i := glyphBytes(t, fonts.Font8, 'i')
	page, err := fb.Page(0)
	require.NoError(t, err)
	assert.Equal(t, append(h.Bytes(), i.Bytes()...), page[:12])
}

func TestDrawStringWraps(t *testing.T) {
	fb := NewDefault()

	// 'A' at 120, 'B' at 126 (clipped), then the column reaches 132 and 'C'
	// wraps to column 0 one line down.
	require.NoError(t, fb.DrawString(120, 0, fonts.Font8, "ABC"))

	c := glyphBytes(t, fonts.Font8, 'C')
	page, err := fb.Page(1)
	require.NoError(t, err)
	assert.Equal(t, c.Bytes(), page[:6])
	assert.Equal(t, glyphBytes(t, fonts.Font8, 'A').Bytes(), fb.Snapshot()[120:126])
}

func TestDrawStringStopsAtFirstFailure(t *testing.T) {
	fb := NewDefault()

	err := fb.DrawString(0, 0, fonts.Font8, "AB\x01C")
	require.ErrorIs(t, err, fonts.ErrNotRepresentable)

	snap := fb.Snapshot()
	assert.Equal(t, glyphBytes(t, fonts.Font8, 'A').Bytes(), snap[0:6])
	assert.Equal(t, glyphBytes(t, fonts.Font8, 'B').Bytes(), snap[6:12])
	assert.True(t, bytes.Equal(make([]byte, 1024-12), snap[12:]), "nothing rendered after the failure")
}

func TestPageOutOfRange(t *testing.T) {
	fb := NewDefault()
	_, err := fb.Page(8)
	assert.Error(t, err)
	_, err = fb.Page(-1)
	assert.Error(t, err)
	assert.Equal(t, byte(0), fb.At(8, 0))
}

func TestLoad(t *testing.T) {
	fb, err := New(4, 8)
	require.NoError(t, err)

	require.NoError(t, fb.Load([]byte{1, 2, 3, 4}))
	assert.Equal(t, []byte{1, 2, 3, 4}, fb.Snapshot())
	assert.EqualError(t, fb.Load([]byte{1}), "framebuffer: invalid buffer size")
}

func TestImageComposition(t *testing.T) {
	fb := NewDefault()
	draw.Draw(fb.Image(), image.Rect(0, 0, 2, 8), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
	assert.Equal(t, byte(0xFF), fb.At(0, 0))
	assert.Equal(t, byte(0xFF), fb.At(0, 1))
	assert.Equal(t, byte(0x00), fb.At(0, 2))
}
