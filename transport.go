package ssd1306

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultAddr is the usual I²C address of SSD1306 modules.
const DefaultAddr = 0x3C

// I²C control bytes: Co=0, D/C# selects command or data stream.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// Transport sends one command or data byte to the controller.
type Transport interface {
	Transmit(isCommand bool, b byte) error
}

// BulkTransmitter is implemented by transports that can send a run of bytes
// of the same kind in one bus transaction. Dev uses it when available.
type BulkTransmitter interface {
	TransmitBulk(isCommand bool, p []byte) error
}

// Flusher is implemented by transports that buffer output. Dev calls Flush
// after each full frame.
type Flusher interface {
	Flush() error
}

// TransportError reports a failed transmission. It is surfaced as is; the
// driver does not retry.
type TransportError struct {
	Command bool
	Data    []byte
	Err     error
}

func (e *TransportError) Error() string {
	kind := "data"
	if e.Command {
		kind = "command"
	}
	if len(e.Data) == 1 {
		return fmt.Sprintf("ssd1306: transmit %s 0x%02X: %v", kind, e.Data[0], e.Err)
	}
	return fmt.Sprintf("ssd1306: transmit %d %s bytes: %v", len(e.Data), kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// I2CTransport talks to the controller over I²C. Every transaction starts
// with a control byte selecting the command or data stream.
type I2CTransport struct {
	c conn.Conn
}

// NewI2CTransport returns a transport for the device at addr on b.
func NewI2CTransport(b i2c.Bus, addr uint16) *I2CTransport {
	return &I2CTransport{c: &i2c.Dev{Bus: b, Addr: addr}}
}

// Transmit implements Transport.
func (t *I2CTransport) Transmit(isCommand bool, b byte) error {
	return t.TransmitBulk(isCommand, []byte{b})
}

// TransmitBulk implements BulkTransmitter.
func (t *I2CTransport) TransmitBulk(isCommand bool, p []byte) error {
	ctrl := byte(i2cData)
	if isCommand {
		ctrl = i2cCommand
	}
	w := make([]byte, 0, len(p)+1)
	w = append(w, ctrl)
	w = append(w, p...)
	return t.c.Tx(w, nil)
}

func (t *I2CTransport) String() string {
	return fmt.Sprintf("ssd1306.I2CTransport{%s}", t.c)
}

// SPITransport talks to the controller over 4-wire SPI, with the D/C pin
// selecting command (low) or data (high).
type SPITransport struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPITransport connects to p at 10MHz, Mode0, 8-bit words.
func NewSPITransport(p spi.Port, dc gpio.PinOut) (*SPITransport, error) {
	if dc == nil {
		return nil, fmt.Errorf("ssd1306: SPI transport requires a D/C pin")
	}
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: connect SPI: %w", err)
	}
	return &SPITransport{c: c, dc: dc}, nil
}

// Transmit implements Transport.
func (t *SPITransport) Transmit(isCommand bool, b byte) error {
	return t.TransmitBulk(isCommand, []byte{b})
}

// TransmitBulk implements BulkTransmitter.
func (t *SPITransport) TransmitBulk(isCommand bool, p []byte) error {
	level := gpio.High
	if isCommand {
		level = gpio.Low
	}
	if err := t.dc.Out(level); err != nil {
		return err
	}
	return t.c.Tx(p, nil)
}

func (t *SPITransport) String() string {
	return fmt.Sprintf("ssd1306.SPITransport{%s}", t.c)
}
