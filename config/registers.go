package config

import (
	"fmt"
	"strings"
)

// RegistersType selects which register snapshot the driver returns.
type RegistersType uint8

const (
	// RegistersDevice is the live hardware register state.
	RegistersDevice RegistersType = 0
	// RegistersTX is the driver's staged transmit register set.
	RegistersTX RegistersType = 1
	// RegistersRX is the driver's staged receive register set.
	RegistersRX RegistersType = 2
)

func (t RegistersType) String() string {
	switch t {
	case RegistersDevice:
		return "device"
	case RegistersTX:
		return "tx"
	case RegistersRX:
		return "rx"
	default:
		return fmt.Sprintf("RegistersType(%d)", uint8(t))
	}
}

// RegistersSize is the exact size of a register snapshot on the driver
// boundary: 47 single-byte registers, packed, no padding.
const RegistersSize = 47

// Registers mirrors the CC1101 control register map, one byte per register
// in hardware address order. It is a read-only diagnostic value: the driver
// fills it, this library never builds one.
type Registers struct {
	IOCFG2   byte // GDO2 output pin configuration
	IOCFG1   byte // GDO1 output pin configuration
	IOCFG0   byte // GDO0 output pin configuration
	FIFOTHR  byte // RX FIFO and TX FIFO thresholds
	SYNC1    byte // Sync word, high byte
	SYNC0    byte // Sync word, low byte
	PKTLEN   byte // Packet length
	PKTCTRL1 byte // Packet automation control
	PKTCTRL0 byte // Packet automation control
	ADDR     byte // Device address
	CHANNR   byte // Channel number
	FSCTRL1  byte // Frequency synthesizer control
	FSCTRL0  byte // Frequency synthesizer control
	FREQ2    byte // Frequency control word, high byte
	FREQ1    byte // Frequency control word, middle byte
	FREQ0    byte // Frequency control word, low byte
	MDMCFG4  byte // Modem configuration
	MDMCFG3  byte // Modem configuration
	MDMCFG2  byte // Modem configuration
	MDMCFG1  byte // Modem configuration
	MDMCFG0  byte // Modem configuration
	DEVIATN  byte // Modem deviation setting
	MCSM2    byte // Main radio control state machine configuration
	MCSM1    byte // Main radio control state machine configuration
	MCSM0    byte // Main radio control state machine configuration
	FOCCFG   byte // Frequency offset compensation configuration
	BSCFG    byte // Bit synchronization configuration
	AGCCTRL2 byte // AGC control
	AGCCTRL1 byte // AGC control
	AGCCTRL0 byte // AGC control
	WOREVT1  byte // High byte event0 timeout
	WOREVT0  byte // Low byte event0 timeout
	WORCTRL  byte // Wake on radio control
	FREND1   byte // Front end RX configuration
	FREND0   byte // Front end TX configuration
	FSCAL3   byte // Frequency synthesizer calibration
	FSCAL2   byte // Frequency synthesizer calibration
	FSCAL1   byte // Frequency synthesizer calibration
	FSCAL0   byte // Frequency synthesizer calibration
	RCCTRL1  byte // RC oscillator configuration
	RCCTRL0  byte // RC oscillator configuration
	FSTEST   byte // Frequency synthesizer calibration control
	PTEST    byte // Production test
	AGCTEST  byte // AGC test
	TEST2    byte // Various test settings
	TEST1    byte // Various test settings
	TEST0    byte // Various test settings
}

// fields returns pointers to every register in hardware address order. The
// codec and the dumper both walk this list so the wire order is declared
// exactly once.
func (r *Registers) fields() []struct {
	name string
	p    *byte
} {
	return []struct {
		name string
		p    *byte
	}{
		{"IOCFG2", &r.IOCFG2}, {"IOCFG1", &r.IOCFG1}, {"IOCFG0", &r.IOCFG0},
		{"FIFOTHR", &r.FIFOTHR}, {"SYNC1", &r.SYNC1}, {"SYNC0", &r.SYNC0},
		{"PKTLEN", &r.PKTLEN}, {"PKTCTRL1", &r.PKTCTRL1}, {"PKTCTRL0", &r.PKTCTRL0},
		{"ADDR", &r.ADDR}, {"CHANNR", &r.CHANNR}, {"FSCTRL1", &r.FSCTRL1},
		{"FSCTRL0", &r.FSCTRL0}, {"FREQ2", &r.FREQ2}, {"FREQ1", &r.FREQ1},
		{"FREQ0", &r.FREQ0}, {"MDMCFG4", &r.MDMCFG4}, {"MDMCFG3", &r.MDMCFG3},
		{"MDMCFG2", &r.MDMCFG2}, {"MDMCFG1", &r.MDMCFG1}, {"MDMCFG0", &r.MDMCFG0},
		{"DEVIATN", &r.DEVIATN}, {"MCSM2", &r.MCSM2}, {"MCSM1", &r.MCSM1},
		{"MCSM0", &r.MCSM0}, {"FOCCFG", &r.FOCCFG}, {"BSCFG", &r.BSCFG},
		{"AGCCTRL2", &r.AGCCTRL2}, {"AGCCTRL1", &r.AGCCTRL1}, {"AGCCTRL0", &r.AGCCTRL0},
		{"WOREVT1", &r.WOREVT1}, {"WOREVT0", &r.WOREVT0}, {"WORCTRL", &r.WORCTRL},
		{"FREND1", &r.FREND1}, {"FREND0", &r.FREND0}, {"FSCAL3", &r.FSCAL3},
		{"FSCAL2", &r.FSCAL2}, {"FSCAL1", &r.FSCAL1}, {"FSCAL0", &r.FSCAL0},
		{"RCCTRL1", &r.RCCTRL1}, {"RCCTRL0", &r.RCCTRL0}, {"FSTEST", &r.FSTEST},
		{"PTEST", &r.PTEST}, {"AGCTEST", &r.AGCTEST}, {"TEST2", &r.TEST2},
		{"TEST1", &r.TEST1}, {"TEST0", &r.TEST0},
	}
}

// UnmarshalBinary decodes a packed register snapshot.
func (r *Registers) UnmarshalBinary(data []byte) error {
	if len(data) != RegistersSize {
		return fmt.Errorf("config: register snapshot is %d bytes, want %d", len(data), RegistersSize)
	}
	for i, f := range r.fields() {
		*f.p = data[i]
	}
	return nil
}

// MarshalBinary re-encodes the snapshot in the same packed layout.
func (r *Registers) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RegistersSize)
	for i, f := range r.fields() {
		buf[i] = *f.p
	}
	return buf, nil
}

// String renders the snapshot as one "NAME=0xVV" pair per register, in
// hardware address order.
func (r *Registers) String() string {
	var b strings.Builder
	for i, f := range r.fields() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-8s = 0x%02X", f.name, *f.p)
	}
	return b.String()
}
