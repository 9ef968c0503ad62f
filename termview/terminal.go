package termview

import (
	"github.com/gdamore/tcell/v2"
)

// Terminal paints an Emulator on a tcell screen after each frame.
type Terminal struct {
	*Emulator
	screen tcell.Screen
	style  tcell.Style
	ox, oy int
}

// NewTerminal wraps an initialized screen. The panel is painted with its
// top-left corner at (ox, oy).
func NewTerminal(screen tcell.Screen, w, h, ox, oy int) *Terminal {
	return &Terminal{
		Emulator: NewEmulator(w, h),
		screen:   screen,
		style:    tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Background(tcell.ColorBlack),
		ox:       ox,
		oy:       oy,
	}
}

// OpenTerminal initializes the controlling terminal and returns a Terminal
// drawing on it. Close must be called to restore the terminal.
func OpenTerminal(w, h int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	return NewTerminal(screen, w, h, 0, 0), nil
}

// Screen returns the underlying screen, for event polling.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Paint copies the glass into the screen's back buffer.
func (t *Terminal) Paint() {
	w, h := t.Size()
	for cy := 0; cy < (h+1)/2; cy++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(t.ox+x, t.oy+cy, t.cell(x, cy), nil, t.style)
		}
	}
}

// Flush implements ssd1306.Flusher.
func (t *Terminal) Flush() error {
	t.Paint()
	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
