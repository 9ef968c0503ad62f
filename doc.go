// Package ssd1306 controls a SSD1306 OLED display via I²C or SPI.
//
// The SSD1306 is a monochrome OLED controller driving up to 128×64 pixels.
// This driver uses page addressing mode and implements the display.Drawer
// interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel
// - 128×64 or 128×32 panels (any width up to 128, height a multiple of 8)
// - RAM organised in pages of 8 pixel rows, one byte per column per page
// - Hardware scrolling support (horizontal only)
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the SSD1306 display to your system via I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//	RES         → Optional: GPIO for hardware reset
//
// Most modules answer at address 0x3C (DefaultAddr). Modules wired for
// 4-wire SPI additionally need a Data/Command GPIO, see NewSPI.
//
// # Basic Usage
//
// Frames are composed off-screen and shipped in one go:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//		"github.com/flavioheleno/ssd1306"
//		"github.com/flavioheleno/ssd1306/fonts"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open I²C bus
//		bus, _ := i2creg.Open("")
//
//		// Create device (nil opts means 128×64)
//		dev, _ := ssd1306.NewI2C(bus, ssd1306.DefaultAddr, nil)
//		defer dev.Halt()
//
//		// Compose a frame and show it
//		fb := dev.NewFrameBuffer()
//		fb.DrawString(16, 16, fonts.Font24, "12:34:56")
//		dev.ShowFrame(fb)
//	}
//
// # Using Hardware Reset Pin (Optional)
//
// If your display has a reset (RST) pin connected to a GPIO, you can provide it
// in the Opts struct:
//
//	dev, _ := ssd1306.NewI2C(bus, 0, &ssd1306.Opts{
//		W:   128,
//		H:   64,
//		RST: gpioreg.ByName("GPIO24"),
//	})
//
// The driver pulls RST low for 10ms, then high for 10ms, before sending the
// initialization sequence. If RST is nil the driver relies on power-on reset.
//
// # Fonts
//
// Package fonts carries three fixed-size fonts: Font8 (8×6), Font16 (8×16)
// and Font24 (12×24). Each covers printable ASCII plus a few extra symbols
// such as '°'. Drawing a character a font lacks fails with
// fonts.ErrNotRepresentable; nothing is substituted.
//
// # Drawing Modes
//
// ## Frame Buffer
//
// framebuffer.FrameBuffer mirrors display RAM. Glyphs may start at any pixel
// row; a glyph that straddles two pages is split across them. Writes replace
// the bytes they touch and are clipped at the edges.
//
//	fb := dev.NewFrameBuffer()
//	fb.DrawString(0, 3, fonts.Font16, "23.5°")
//	dev.ShowFrame(fb)
//
// ## Scrolling Text
//
// linebuf.Buffer keeps the most recent lines of a text stream. '\n' starts a
// new line on top and '\r' rewrites the current one, so a clock can redraw
// itself in place:
//
//	lb := linebuf.New(8)
//	lb.Push("boot ok\n12:00:00")
//	lb.Push("\r12:00:01")
//	ssd1306.DrawLines(fb, lb, 0, 0, fonts.Font8)
//
// ## Raw Pixels
//
// Write sends W*H/8 bytes of page-major data; Draw converts any image.Image
// with image1bit.BitModel. Both always ship the full frame.
//
// # Hardware Scrolling
//
// The display supports horizontal scrolling of a page range:
//
//	// Start scrolling left
//	dev.ScrollHorizontal(0, 7, ssd1306.Speed5Frames, false)
//	time.Sleep(5 * time.Second)
//
//	// Stop scrolling
//	dev.StopScroll()
//
// # Terminal Preview
//
// Package termview decodes the controller's command stream and renders the
// glass on a terminal with tcell. Pass its Emulator or Terminal to New in
// place of a bus transport to run without hardware.
//
// # Performance
//
// A full 128×64 frame is 1024 data bytes plus 24 command bytes:
// - 400kHz I²C: ~25ms per frame
// - 10MHz SPI: ~1ms per frame
//
// # Datasheet
//
// For detailed register descriptions and timing information, see:
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package ssd1306
