// Package cc1101 drives a CC1101 sub-GHz transceiver through its Linux
// character-device driver.
//
// A Device is one logical session to one device node. It owns the handle
// lifecycle, negotiates the driver protocol version, and keeps the last
// receive configuration it applied so it can reconcile the driver's live
// state before every read. Configurations are built from physical units by
// the config package.
//
// A Device is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves. Every operation is
// synchronous: Transmit blocks for the whole transmission, Receive returns
// as soon as the driver has no more buffered packets.
package cc1101

import (
	"errors"
	"fmt"

	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/ioctl"
)

// protocolVersion is the driver protocol this library speaks. The driver
// must report exactly this value at open time.
const protocolVersion = 2

// conn is the set of operations the session needs from one open handle.
// The real implementation lives in internal/ioctl; tests substitute fakes.
type conn interface {
	Version() (uint32, error)
	Reset() error
	SetRXConfig(*config.RXConfig) error
	RXConfig() (*config.RXConfig, error)
	SetTXConfig(*config.TXConfig) error
	TXConfig() (*config.TXConfig, error)
	Registers(config.RegistersType) (config.Registers, error)
	RSSI() (byte, error)
	MaxPacketSize() (uint32, error)
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Close() error
}

// openFunc acquires a raw handle to a device node.
type openFunc func(path string) (conn, error)

func openDevice(path string) (conn, error) {
	c, err := ioctl.Open(path)
	if err != nil {
		return nil, classifyOpenError(err)
	}
	return c, nil
}

// Device is a session to one CC1101 device node.
//
// In exclusive mode the handle is acquired once and retained until Close,
// which keeps every other process away from the radio. In shared mode a
// fresh handle is acquired and released around every operation, so
// transmit/receive can be multiplexed between processes; the price is that
// another process may reconfigure the device between calls, which the
// receive path detects and corrects.
type Device struct {
	path      string
	exclusive bool
	handle    conn // retained handle, exclusive mode only
	rxConfig  *config.RXConfig
	closed    bool
	dial      openFunc
}

// Open acquires a session to the device node at path and verifies the
// driver protocol version. A mismatch is terminal: the session cannot be
// used and another library build is required.
//
// If rxConfig is non-nil it is pushed to the driver immediately, as
// SetRXConfig would.
func Open(path string, rxConfig *config.RXConfig, exclusive bool) (*Device, error) {
	return open(path, rxConfig, exclusive, openDevice)
}

func open(path string, rxConfig *config.RXConfig, exclusive bool, dial openFunc) (*Device, error) {
	d := &Device{path: path, exclusive: exclusive, dial: dial}

	h, err := d.connect()
	if err != nil {
		return nil, err
	}

	if rxConfig != nil {
		cfg := *rxConfig
		if err := d.reconcileRXConfig(h, &cfg); err != nil {
			h.Close()
			return nil, err
		}
		d.rxConfig = &cfg
	}

	if exclusive {
		d.handle = h
	} else {
		h.Close()
	}
	return d, nil
}

// connect opens a raw handle and checks the protocol version. Shared-mode
// sessions go through this for every operation, so a driver swapped out
// underneath the session is still caught.
func (d *Device) connect() (conn, error) {
	h, err := d.dial(d.path)
	if err != nil {
		return nil, err
	}
	version, err := h.Version()
	if err != nil {
		h.Close()
		return nil, classifyRequestError(err)
	}
	if version != protocolVersion {
		h.Close()
		return nil, fmt.Errorf("%w: driver speaks v%d, library speaks v%d", ErrVersionMismatch, version, protocolVersion)
	}
	return h, nil
}

// acquire hands out the handle for one operation together with its release
// function: the retained handle in exclusive mode, a fresh one otherwise.
func (d *Device) acquire() (conn, func(), error) {
	if d.closed {
		return nil, nil, fmt.Errorf("%w: session closed", ErrHandleClone)
	}
	if d.exclusive {
		if d.handle == nil {
			return nil, nil, fmt.Errorf("%w: no retained handle", ErrHandleClone)
		}
		return d.handle, func() {}, nil
	}
	h, err := d.connect()
	if err != nil {
		return nil, nil, err
	}
	return h, func() { h.Close() }, nil
}

// Close releases the session. In exclusive mode this drops the retained
// handle and lets other processes open the device.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.handle != nil {
		h := d.handle
		d.handle = nil
		return h.Close()
	}
	return nil
}

// Path returns the device node this session is bound to.
func (d *Device) Path() string {
	return d.path
}

// Exclusive reports whether the session retains its handle for life.
func (d *Device) Exclusive() bool {
	return d.exclusive
}

// reconcileRXConfig drives the driver's receive state towards want, pushing
// at most one corrective update. Pushing a config always resets the
// driver's receive buffer, dropping any packets buffered so far, so pushes
// are avoided whenever the driver can be proven up to date:
//
//   - cached config absent or different: push unconditionally.
//   - cached config equal, exclusive session: nothing to do, nobody else
//     can have touched the device.
//   - cached config equal, shared session: read the live config and push
//     only if another process has drifted it.
func (d *Device) reconcileRXConfig(h conn, want *config.RXConfig) error {
	if d.rxConfig == nil || *d.rxConfig != *want {
		return classifyRequestError(h.SetRXConfig(want))
	}

	if d.exclusive {
		return nil
	}

	live, err := h.RXConfig()
	if err != nil {
		return classifyRequestError(err)
	}
	if *live != *want {
		return classifyRequestError(h.SetRXConfig(want))
	}
	return nil
}

// SetRXConfig makes cfg the session's receive intent and synchronizes the
// driver with it. The driver's receive buffer is reset whenever a push is
// needed.
func (d *Device) SetRXConfig(cfg *config.RXConfig) error {
	if cfg == nil {
		return ErrNoRXConfig
	}
	h, release, err := d.acquire()
	if err != nil {
		return err
	}
	defer release()

	next := *cfg
	if err := d.reconcileRXConfig(h, &next); err != nil {
		return err
	}
	d.rxConfig = &next
	return nil
}

// RXConfig returns the session's receive intent: the configuration most
// recently applied through Open or SetRXConfig. Nil if none was ever set.
// In shared mode the driver's live state may differ; see DeviceRXConfig.
func (d *Device) RXConfig() *config.RXConfig {
	if d.rxConfig == nil {
		return nil
	}
	cfg := *d.rxConfig
	return &cfg
}

// Receive synchronizes the receive configuration and drains every packet
// the driver has buffered, in arrival order. An empty result just means
// nothing arrived since the last call.
func (d *Device) Receive() ([][]byte, error) {
	if d.rxConfig == nil {
		return nil, ErrNoRXConfig
	}
	h, release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := d.reconcileRXConfig(h, d.rxConfig); err != nil {
		return nil, err
	}

	var packets [][]byte
	for {
		packet := make([]byte, d.rxConfig.PacketLength())
		if _, err := h.Read(packet); err != nil {
			err = classifyReadError(err)
			if errors.Is(err, ErrBufferEmpty) {
				return packets, nil
			}
			return nil, err
		}
		packets = append(packets, packet)
	}
}

// Transmit pushes cfg to the driver and writes one packet. The transmit
// configuration is pushed on every call; the driver suspends reception,
// transmits, and restores its previous receive state on its own.
func (d *Device) Transmit(cfg *config.TXConfig, payload []byte) error {
	h, release, err := d.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := h.SetTXConfig(cfg); err != nil {
		return classifyRequestError(err)
	}
	if _, err := h.Write(payload); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// Reset puts the driver back into idle and clears its receive buffer. The
// session's receive intent is kept; the next Receive call reapplies it.
func (d *Device) Reset() error {
	h, release, err := d.acquire()
	if err != nil {
		return err
	}
	defer release()
	return classifyRequestError(h.Reset())
}

// DeviceRXConfig returns the receive configuration live on the driver. In
// shared mode this may differ from RXConfig if another process
// reconfigured the device.
func (d *Device) DeviceRXConfig() (*config.RXConfig, error) {
	h, release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	cfg, err := h.RXConfig()
	if err != nil {
		return nil, classifyRequestError(err)
	}
	return cfg, nil
}

// DeviceTXConfig returns the transmit configuration live on the driver.
func (d *Device) DeviceTXConfig() (*config.TXConfig, error) {
	h, release, err := d.acquire()
	if err != nil {
		return nil, err
	}
	defer release()
	cfg, err := h.TXConfig()
	if err != nil {
		return nil, classifyRequestError(err)
	}
	return cfg, nil
}

// DeviceRegisters returns one of the driver's raw register snapshots, for
// diagnostics only.
func (d *Device) DeviceRegisters(t config.RegistersType) (config.Registers, error) {
	h, release, err := d.acquire()
	if err != nil {
		return config.Registers{}, err
	}
	defer release()
	regs, err := h.Registers(t)
	if err != nil {
		return config.Registers{}, classifyRequestError(err)
	}
	return regs, nil
}

// RSSI returns the instantaneous signal strength as the raw register
// value; config.RSSIToDBm converts it to dBm.
func (d *Device) RSSI() (byte, error) {
	h, release, err := d.acquire()
	if err != nil {
		return 0, err
	}
	defer release()
	rssi, err := h.RSSI()
	if err != nil {
		return 0, classifyRequestError(err)
	}
	return rssi, nil
}

// MaxPacketSize returns the largest packet the driver accepts, in bytes.
func (d *Device) MaxPacketSize() (uint32, error) {
	h, release, err := d.acquire()
	if err != nil {
		return 0, err
	}
	defer release()
	size, err := h.MaxPacketSize()
	if err != nil {
		return 0, classifyRequestError(err)
	}
	return size, nil
}
