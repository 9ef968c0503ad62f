// Package termview emulates an SSD1306 controller in software and paints its
// display RAM on a terminal. It implements the same byte transport as the
// I²C and SPI links, so a render loop can run without hardware.
package termview

import (
	"slices"
	"strings"
)

// argCount is the number of argument bytes that follow a command.
var argCount = map[byte]int{
	0x20: 1, // Memory addressing mode
	0x21: 2, // Column address
	0x22: 2, // Page address
	0x26: 6, // Right horizontal scroll
	0x27: 6, // Left horizontal scroll
	0x29: 5, // Vertical and right scroll
	0x2A: 5, // Vertical and left scroll
	0x81: 1, // Contrast
	0x8D: 1, // Charge pump
	0xA3: 2, // Vertical scroll area
	0xA8: 1, // Multiplex ratio
	0xD3: 1, // Display offset
	0xD5: 1, // Clock divide
	0xD9: 1, // Precharge
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH deselect
}

// Emulator decodes the command and data stream of a page-addressed
// controller into a copy of its display RAM.
type Emulator struct {
	w, pages  int
	ram       []byte
	page, col int

	on, inverted, allOn, scrolling bool
	contrast                       byte

	pending byte
	args    []byte
	need    int
}

// NewEmulator returns an emulator for a w x h panel, h a multiple of 8.
func NewEmulator(w, h int) *Emulator {
	pages := h / 8
	return &Emulator{
		w:        w,
		pages:    pages,
		ram:      make([]byte, w*pages),
		contrast: 0x7F, // Reset value
	}
}

// Transmit implements ssd1306.Transport.
func (e *Emulator) Transmit(isCommand bool, b byte) error {
	if !isCommand {
		e.write(b)
		return nil
	}
	if e.need > 0 {
		e.args = append(e.args, b)
		e.need--
		if e.need == 0 {
			e.apply(e.pending, e.args)
		}
		return nil
	}
	switch {
	case b <= 0x0F:
		e.col = e.col&0xF0 | int(b&0x0F)
	case b <= 0x1F:
		e.col = int(b&0x0F)<<4 | e.col&0x0F
	case b >= 0xB0 && b <= 0xB7:
		e.page = int(b & 0x07)
	case b == 0x2E:
		e.scrolling = false
	case b == 0x2F:
		e.scrolling = true
	case b == 0xA4:
		e.allOn = false
	case b == 0xA5:
		e.allOn = true
	case b == 0xA6:
		e.inverted = false
	case b == 0xA7:
		e.inverted = true
	case b == 0xAE:
		e.on = false
	case b == 0xAF:
		e.on = true
	default:
		if n, ok := argCount[b]; ok {
			e.pending, e.args, e.need = b, e.args[:0], n
		}
	}
	return nil
}

// TransmitBulk implements ssd1306.BulkTransmitter.
func (e *Emulator) TransmitBulk(isCommand bool, p []byte) error {
	for _, b := range p {
		if err := e.Transmit(isCommand, b); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emulator) apply(cmd byte, args []byte) {
	if cmd == 0x81 {
		e.contrast = args[0]
	}
}

// write stores a data byte at the RAM pointer and advances the column. In
// page addressing mode the column wraps to 0 on the same page. A column
// selected beyond the panel width drops the write.
func (e *Emulator) write(b byte) {
	if e.page >= e.pages || e.col >= e.w {
		return
	}
	e.ram[e.page*e.w+e.col] = b
	e.col = (e.col + 1) % e.w
}

// RAM returns a copy of the display RAM, page-major.
func (e *Emulator) RAM() []byte {
	return slices.Clone(e.ram)
}

// Pixel reports whether the RAM bit for (x, y) is set.
func (e *Emulator) Pixel(x, y int) bool {
	if x < 0 || x >= e.w || y < 0 || y >= e.pages*8 {
		return false
	}
	return e.ram[(y/8)*e.w+x]&(1<<uint(y%8)) != 0
}

// Lit reports whether (x, y) is lit on the glass, taking display on/off,
// entire display on and inversion into account.
func (e *Emulator) Lit(x, y int) bool {
	if !e.on {
		return false
	}
	if e.allOn {
		return true
	}
	return e.Pixel(x, y) != e.inverted
}

// On reports whether the display is switched on.
func (e *Emulator) On() bool { return e.on }

// Inverted reports whether inverse display is active.
func (e *Emulator) Inverted() bool { return e.inverted }

// Scrolling reports whether hardware scrolling is active.
func (e *Emulator) Scrolling() bool { return e.scrolling }

// Contrast returns the last programmed contrast.
func (e *Emulator) Contrast() byte { return e.contrast }

// Size returns the panel size in pixels.
func (e *Emulator) Size() (w, h int) { return e.w, e.pages * 8 }

// cell returns the half block for the two pixel rows 2*cy and 2*cy+1.
func (e *Emulator) cell(x, cy int) rune {
	top, bottom := e.Lit(x, 2*cy), e.Lit(x, 2*cy+1)
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Render draws the glass as text, two pixel rows per line.
func (e *Emulator) Render() string {
	var sb strings.Builder
	_, h := e.Size()
	for cy := 0; cy < (h+1)/2; cy++ {
		for x := 0; x < e.w; x++ {
			sb.WriteRune(e.cell(x, cy))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
