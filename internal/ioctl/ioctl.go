// Package ioctl implements the control-request surface of the cc1101
// character device driver. One Conn wraps one open file handle; every
// request marshals its payload explicitly and passes it through a single
// ioctl syscall.
//
// Errors are returned raw, wrapping the unix.Errno, so the caller can
// classify them into its own taxonomy.
package ioctl

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/subghz/cc1101/config"
)

// Linux _IOC request encoding.
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

// deviceMagic is the driver's ioctl type character.
const deviceMagic = 'c'

// Request numbers of the cc1101 driver, in protocol order.
const (
	nrGetVersion       = 0
	nrReset            = 1
	nrSetTXConf        = 2
	nrSetRXConf        = 3
	nrGetTXConf        = 4
	nrGetTXRawConf     = 5
	nrGetRXConf        = 6
	nrGetRXRawConf     = 7
	nrGetDevRawConf    = 8
	nrGetRSSI          = 9
	nrGetMaxPacketSize = 10
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<iocDirShift | deviceMagic<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

// wireSize returns the marshaled size of a config payload.
func wireSize(m encoding.BinaryMarshaler) uintptr {
	buf, err := m.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("ioctl: marshal zero value: %v", err))
	}
	return uintptr(len(buf))
}

var (
	rxConfSize = wireSize(&config.RXConfig{})
	txConfSize = wireSize(&config.TXConfig{})
)

// Conn is one open handle to a cc1101 device node.
type Conn struct {
	f *os.File
}

// Open opens the device node read-write. It performs no version check;
// that is the session's responsibility.
func Open(path string) (*Conn, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Conn{f: f}, nil
}

// Close releases the handle.
func (c *Conn) Close() error {
	return c.f.Close()
}

// Read reads one buffered packet into p.
func (c *Conn) Read(p []byte) (int, error) {
	return c.f.Read(p)
}

// Write queues p for transmission and blocks until it is sent.
func (c *Conn) Write(p []byte) (int, error) {
	return c.f.Write(p)
}

// ioctl issues one request with buf as the payload (nil for no payload).
func (c *Conn) ioctl(req uintptr, buf []byte) error {
	var arg uintptr
	if len(buf) > 0 {
		arg = uintptr(unsafe.Pointer(&buf[0]))
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, c.f.Fd(), req, arg)
	if errno != 0 {
		return fmt.Errorf("ioctl request %d: %w", req&0xFF, errno)
	}
	return nil
}

// Version returns the driver's protocol version.
func (c *Conn) Version() (uint32, error) {
	buf := make([]byte, 4)
	if err := c.ioctl(ioc(iocRead, nrGetVersion, 4), buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// Reset puts the driver back into idle and clears its receive buffer.
func (c *Conn) Reset() error {
	return c.ioctl(ioc(iocNone, nrReset, 0), nil)
}

// SetRXConfig pushes a receive configuration. The driver resets its receive
// buffer as a side effect.
func (c *Conn) SetRXConfig(cfg *config.RXConfig) error {
	buf, err := cfg.MarshalBinary()
	if err != nil {
		return err
	}
	return c.ioctl(ioc(iocWrite, nrSetRXConf, rxConfSize), buf)
}

// RXConfig reads back the receive configuration live on the driver.
func (c *Conn) RXConfig() (*config.RXConfig, error) {
	buf := make([]byte, rxConfSize)
	if err := c.ioctl(ioc(iocRead, nrGetRXConf, rxConfSize), buf); err != nil {
		return nil, err
	}
	cfg := new(config.RXConfig)
	if err := cfg.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetTXConfig pushes a transmit configuration.
func (c *Conn) SetTXConfig(cfg *config.TXConfig) error {
	buf, err := cfg.MarshalBinary()
	if err != nil {
		return err
	}
	return c.ioctl(ioc(iocWrite, nrSetTXConf, txConfSize), buf)
}

// TXConfig reads back the transmit configuration live on the driver.
func (c *Conn) TXConfig() (*config.TXConfig, error) {
	buf := make([]byte, txConfSize)
	if err := c.ioctl(ioc(iocRead, nrGetTXConf, txConfSize), buf); err != nil {
		return nil, err
	}
	cfg := new(config.TXConfig)
	if err := cfg.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Registers reads one of the three raw register snapshots.
func (c *Conn) Registers(t config.RegistersType) (config.Registers, error) {
	var nr uintptr
	switch t {
	case config.RegistersTX:
		nr = nrGetTXRawConf
	case config.RegistersRX:
		nr = nrGetRXRawConf
	default:
		nr = nrGetDevRawConf
	}
	buf := make([]byte, config.RegistersSize)
	if err := c.ioctl(ioc(iocRead, nr, config.RegistersSize), buf); err != nil {
		return config.Registers{}, err
	}
	var regs config.Registers
	if err := regs.UnmarshalBinary(buf); err != nil {
		return config.Registers{}, err
	}
	return regs, nil
}

// RSSI returns the instantaneous signal strength as the raw register value.
func (c *Conn) RSSI() (byte, error) {
	buf := make([]byte, 1)
	if err := c.ioctl(ioc(iocRead, nrGetRSSI, 1), buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// MaxPacketSize returns the largest packet the driver accepts, in bytes.
func (c *Conn) MaxPacketSize() (uint32, error) {
	buf := make([]byte, 4)
	if err := c.ioctl(ioc(iocRead, nrGetMaxPacketSize, 4), buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}
