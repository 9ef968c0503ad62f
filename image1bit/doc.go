// Package image1bit provides a 1-bit image format for SSD1306-class OLED
// controllers.
//
// The controller memory is split in pages of 8 pixel rows. Within a page a
// byte is one column of 8 pixels, with the least significant bit on top.
//
// Memory layout example for a 3-column, 8-row image:
//
//	Column:   0     1     2
//	Row 0:    #     .     #
//	Row 1:    .     #     #
//	Row 2-7:  .     .     .
//	Bytes:    0x01  0x02  0x03
//
// This package provides:
//
// - Bit: a color type that is either On or Off
// - BitModel: a color model converting standard Go colors to Bit
// - VerticalLSB: a draw.Image whose Pix slice is exactly what the
// controller expects in page addressing mode
//
// Example usage:
//
//	// Create a 128x64 image (8 pages of 128 bytes)
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
