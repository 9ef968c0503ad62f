package ssd1306

import (
	"fmt"

	"github.com/flavioheleno/ssd1306/fonts"
	"github.com/flavioheleno/ssd1306/framebuffer"
	"github.com/flavioheleno/ssd1306/linebuf"
)

// DrawLines renders the lines of lb into fb, most recent first: line i
// starts at (x, y + i*f.Height()). Lines starting below the frame are
// skipped. It stops at the first character f cannot represent.
func DrawLines(fb *framebuffer.FrameBuffer, lb *linebuf.Buffer, x, y int, f *fonts.Font) error {
	for i := 0; i < lb.Len(); i++ {
		row := y + i*f.Height()
		if row >= fb.Height() {
			break
		}
		line, _ := lb.Line(i)
		if err := fb.DrawString(x, row, f, line); err != nil {
			return fmt.Errorf("ssd1306: line %d: %w", i, err)
		}
	}
	return nil
}
