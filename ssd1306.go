package ssd1306

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"slices"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/ssd1306/framebuffer"
	"github.com/flavioheleno/ssd1306/image1bit"
)

// Controller commands used by the driver.
const (
	cmdSetLowColumn      = 0x00
	cmdSetHighColumn     = 0x10
	cmdSetMemoryMode     = 0x20
	cmdScrollRight       = 0x26
	cmdScrollLeft        = 0x27
	cmdDeactivateScroll  = 0x2E
	cmdActivateScroll    = 0x2F
	cmdSetStartLine      = 0x40
	cmdSetContrast       = 0x81
	cmdSetChargePump     = 0x8D
	cmdSegmentRemapOff   = 0xA0
	cmdSegmentRemapOn    = 0xA1
	cmdDisplayAllResume  = 0xA4
	cmdNormalDisplay     = 0xA6
	cmdInvertDisplay     = 0xA7
	cmdSetMultiplexRatio = 0xA8
	cmdDisplayOff        = 0xAE
	cmdDisplayOn         = 0xAF
	cmdSetPageStart      = 0xB0
	cmdComScanInc        = 0xC0
	cmdComScanDec        = 0xC8
	cmdSetDisplayOffset  = 0xD3
	cmdSetClockDiv       = 0xD5
	cmdSetPrecharge      = 0xD9
	cmdSetComPins        = 0xDA
	cmdSetVCOMDetect     = 0xDB
)

const (
	maxWidth  = 128
	maxHeight = 64

	// DefaultContrast is the contrast programmed at init.
	DefaultContrast = 0xDF

	resetPulse = 10 * time.Millisecond
)

// ErrHalted is returned by every operation after Halt.
var ErrHalted = errors.New("ssd1306: halted")

// ColorMode selects normal or inverted output.
type ColorMode int

const (
	// ColorNormal shows lit pixels on a dark background.
	ColorNormal ColorMode = iota
	// ColorInverted shows dark pixels on a lit background.
	ColorInverted
)

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 64, must be a multiple of 8 and ≤64)

	// Rotation and wiring
	Rotated    bool // 180° rotation
	Sequential bool // Sequential COM pin configuration (128x32 modules)

	// Optional hardware reset pin
	RST gpio.PinIO

	// Logger receives debug records. nil discards them.
	Logger *slog.Logger
}

// Dev is the device handle for the SSD1306 display.
type Dev struct {
	t   Transport
	rst gpio.PinIO
	log *slog.Logger

	rect  image.Rectangle
	pages int

	// frame backs Draw and Write.
	frame *framebuffer.FrameBuffer

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewI2C creates a new SSD1306 device on an I²C bus. addr 0 means
// DefaultAddr.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr == 0 {
		addr = DefaultAddr
	}
	return New(NewI2CTransport(b, addr), opts)
}

// NewSPI creates a new SSD1306 device on a 4-wire SPI port. The dc
// (Data/Command) GPIO pin must be provided.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	t, err := NewSPITransport(p, dc)
	if err != nil {
		return nil, err
	}
	return New(t, opts)
}

// New creates a device on an arbitrary transport and runs the
// initialization sequence.
//
// opts can be nil to use defaults (128x64 display).
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("ssd1306: nil transport")
	}
	o := Opts{W: maxWidth, H: maxHeight}
	if opts != nil {
		o = *opts
	}
	if o.W <= 0 || o.W > maxWidth {
		return nil, fmt.Errorf("ssd1306: width must be between 1 and %d", maxWidth)
	}
	if o.H <= 0 || o.H > maxHeight || o.H%framebuffer.PageHeight != 0 {
		return nil, fmt.Errorf("ssd1306: height must be a multiple of 8 between 8 and %d", maxHeight)
	}
	frame, err := framebuffer.New(o.W, o.H)
	if err != nil {
		return nil, err
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	d := &Dev{
		t:     t,
		rst:   o.RST,
		log:   log,
		rect:  image.Rect(0, 0, o.W, o.H),
		pages: o.H / framebuffer.PageHeight,
		frame: frame,
	}
	if err := d.init(&o); err != nil {
		return nil, err
	}
	return d, nil
}

// initSequence returns the register writes that bring the panel up, display
// left off.
func initSequence(opts *Opts) []byte {
	segRemap, comScan := byte(cmdSegmentRemapOn), byte(cmdComScanDec)
	if opts.Rotated {
		segRemap, comScan = cmdSegmentRemapOff, cmdComScanInc
	}
	comPins := byte(0x12)
	if opts.Sequential {
		comPins = 0x02
	}
	return []byte{
		cmdDisplayOff,
		cmdSetMemoryMode, 0x10, // Page addressing mode
		cmdSetPageStart,
		comScan,
		cmdSetLowColumn,
		cmdSetHighColumn,
		cmdSetStartLine,
		cmdSetContrast, DefaultContrast,
		segRemap,
		cmdNormalDisplay,
		cmdSetMultiplexRatio, byte(opts.H - 1),
		cmdDisplayAllResume,
		cmdSetDisplayOffset, 0x00,
		cmdSetClockDiv, 0xF0,
		cmdSetPrecharge, 0x22,
		cmdSetComPins, comPins,
		cmdSetVCOMDetect, 0x20,
		cmdSetChargePump, 0x14, // Enable internal charge pump
	}
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST low: %w", err)
		}
		time.Sleep(resetPulse)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST high: %w", err)
		}
		time.Sleep(resetPulse)
	}

	if err := d.sendCommands(initSequence(opts)...); err != nil {
		return err
	}
	if err := d.clearRAM(); err != nil {
		return err
	}
	d.log.Debug("ssd1306: initialized", "width", opts.W, "height", opts.H, "rotated", opts.Rotated)
	return d.sendCommands(cmdDisplayOn)
}

// selectPage points the RAM write pointer at column x of page p.
func (d *Dev) selectPage(p, x int) error {
	return d.sendCommands(
		cmdSetPageStart+byte(p),
		cmdSetLowColumn|byte(x&0x0F),
		cmdSetHighColumn|byte(x>>4),
	)
}

// clearRAM zeroes every page of display RAM.
func (d *Dev) clearRAM() error {
	zeros := make([]byte, d.rect.Dx())
	for p := 0; p < d.pages; p++ {
		if err := d.selectPage(p, 0); err != nil {
			return err
		}
		if err := d.sendData(zeros...); err != nil {
			return err
		}
	}
	return nil
}

// sendCommands sends command bytes.
func (d *Dev) sendCommands(cmds ...byte) error {
	return d.send(true, cmds)
}

// sendData sends data bytes.
func (d *Dev) sendData(data ...byte) error {
	return d.send(false, data)
}

func (d *Dev) send(isCommand bool, p []byte) error {
	if bt, ok := d.t.(BulkTransmitter); ok {
		if err := bt.TransmitBulk(isCommand, p); err != nil {
			return &TransportError{Command: isCommand, Data: slices.Clone(p), Err: err}
		}
		return nil
	}
	for _, b := range p {
		if err := d.t.Transmit(isCommand, b); err != nil {
			return &TransportError{Command: isCommand, Data: []byte{b}, Err: err}
		}
	}
	return nil
}

// NewFrameBuffer returns an empty frame buffer sized for the display.
func (d *Dev) NewFrameBuffer() *framebuffer.FrameBuffer {
	fb, err := framebuffer.New(d.rect.Dx(), d.rect.Dy())
	if err != nil {
		// Dimensions were validated in New.
		panic(err)
	}
	return fb
}

// ShowFrame ships fb to the display: for each page, select the page and
// column 0, then stream the page bytes.
func (d *Dev) ShowFrame(fb *framebuffer.FrameBuffer) error {
	if d.halted {
		return ErrHalted
	}
	if fb.Bounds() != d.rect {
		return fmt.Errorf("ssd1306: frame is %v, display is %v", fb.Bounds(), d.rect)
	}
	snap := fb.Snapshot()
	w := d.rect.Dx()
	for p := 0; p < d.pages; p++ {
		if err := d.selectPage(p, 0); err != nil {
			return err
		}
		if err := d.sendData(snap[p*w : (p+1)*w]...); err != nil {
			return err
		}
	}
	if f, ok := d.t.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("ssd1306: flush: %w", err)
		}
	}
	d.log.Debug("ssd1306: frame shown", "pages", d.pages)
	return nil
}

// Show writes a single byte at column x of page p, bypassing any frame
// buffer.
func (d *Dev) Show(x, page int, b byte) error {
	if d.halted {
		return ErrHalted
	}
	if x < 0 || x >= d.rect.Dx() || page < 0 || page >= d.pages {
		return errors.New("ssd1306: position out of range")
	}
	if err := d.selectPage(page, x); err != nil {
		return err
	}
	return d.sendData(b)
}

// ClearDisplay zeroes display RAM. Frame buffers are left untouched.
func (d *Dev) ClearDisplay() error {
	if d.halted {
		return ErrHalted
	}
	return d.clearRAM()
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw composes src into the device frame and shows it. Pixels outside r
// keep the content of previous Draw or Write calls.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	draw.Draw(d.frame.Image(), r, src, sp, draw.Src)
	return d.ShowFrame(d.frame)
}

// Write writes raw page-major pixel data to the display. The data must be
// exactly W * H / 8 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if err := d.frame.Load(pixels); err != nil {
		return 0, errors.New("ssd1306: invalid buffer size")
	}
	if err := d.ShowFrame(d.frame); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetColorMode switches between normal and inverted output.
func (d *Dev) SetColorMode(mode ColorMode) error {
	if d.halted {
		return ErrHalted
	}
	switch mode {
	case ColorNormal:
		return d.sendCommands(cmdNormalDisplay)
	case ColorInverted:
		return d.sendCommands(cmdInvertDisplay)
	default:
		return fmt.Errorf("ssd1306: unknown color mode %d", mode)
	}
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if invert {
		return d.SetColorMode(ColorInverted)
	}
	return d.SetColorMode(ColorNormal)
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommands(cmdSetContrast, contrast)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.sendCommands(cmdDisplayOff)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed defines the interval between horizontal scroll steps, in
// frames.
type ScrollSpeed byte

const (
	Speed2Frames   ScrollSpeed = 0x07
	Speed3Frames   ScrollSpeed = 0x04
	Speed4Frames   ScrollSpeed = 0x05
	Speed5Frames   ScrollSpeed = 0x00
	Speed25Frames  ScrollSpeed = 0x06
	Speed64Frames  ScrollSpeed = 0x01
	Speed128Frames ScrollSpeed = 0x02
	Speed256Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts continuous horizontal scrolling of pages
// startPage through endPage. If right is true, scrolls right; otherwise
// scrolls left.
func (d *Dev) ScrollHorizontal(startPage, endPage byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return ErrHalted
	}
	if int(startPage) >= d.pages || int(endPage) >= d.pages || startPage > endPage {
		return errors.New("ssd1306: scroll page out of range")
	}
	if speed > 0x07 {
		return errors.New("ssd1306: invalid scroll speed")
	}

	scrollCmd := byte(cmdScrollLeft)
	if right {
		scrollCmd = cmdScrollRight
	}
	d.log.Debug("ssd1306: scroll", "start", startPage, "end", endPage, "right", right)
	return d.sendCommands(
		cmdDeactivateScroll, // Parameters may only change while stopped
		scrollCmd,
		0x00, // Dummy byte
		startPage,
		byte(speed),
		endPage,
		0x00, 0xFF, // Dummy bytes
		cmdActivateScroll,
	)
}

// StopScroll stops scrolling. Display RAM must be rewritten afterwards.
func (d *Dev) StopScroll() error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommands(cmdDeactivateScroll)
}
