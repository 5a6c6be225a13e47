package config

import (
	"encoding/binary"
	"fmt"
)

// RXConfig is a complete receive configuration. A Device keeps the last
// successfully applied RXConfig as its receive intent and reconciles it with
// the driver before every read.
//
// RXConfig is comparable; two configs are interchangeable exactly when their
// values are equal.
type RXConfig struct {
	CommonConfig
	bandwidthMantissa uint8
	bandwidthExponent uint8
	maxLNAGain        uint8
	maxDVGAGain       uint8
	magnitudeTarget   uint8
	carrierSenseMode  CarrierSenseMode
	carrierSense      int8
	packetLength      uint32
}

// rxWireSize is the encoded size on the driver boundary: common config,
// seven u8 fields, 1 byte of C struct padding, u32 packet length.
const rxWireSize = commonWireSize + 12

// DefaultPacketLength is the packet read size used by DefaultRXConfig.
const DefaultPacketLength = 1024

// DefaultRXConfig returns the stock receive configuration: 433.92 MHz, OOK
// at 1 kBaud, no sync word, default bandwidth and AGC settings, carrier
// sense disabled, packet length 1024.
func DefaultRXConfig() *RXConfig {
	return &RXConfig{
		CommonConfig:      defaultCommonConfig(),
		bandwidthMantissa: 0x00,
		bandwidthExponent: 0x02,
		magnitudeTarget:   33,
		carrierSenseMode:  CarrierSenseDisabled,
		packetLength:      DefaultPacketLength,
	}
}

// NewRXConfig builds a receive configuration from physical units. The
// bandwidth defaults to 203.125 kHz, AGC gains to full, the magnitude
// target to 33 dB and carrier sense to disabled; use the setters to change
// them. packetLength is the read size in bytes handed to the driver for
// every packet.
func NewRXConfig(frequencyMHz float64, modulation Modulation, baudRate float64, packetLength uint32) (*RXConfig, error) {
	common, err := NewCommonConfig(frequencyMHz, modulation, baudRate)
	if err != nil {
		return nil, err
	}
	if packetLength == 0 {
		return nil, fmt.Errorf("%w: packet length must be > 0", ErrInvalidPacketLength)
	}
	return &RXConfig{
		CommonConfig:      common,
		bandwidthMantissa: 0x00,
		bandwidthExponent: 0x02, // 203.125 kHz
		magnitudeTarget:   33,
		carrierSenseMode:  CarrierSenseDisabled,
		packetLength:      packetLength,
	}, nil
}

// SetBandwidth sets the channel filter bandwidth in kHz. The representable
// values are 58.035714, 67.708333, 81.25, 101.5625, 116.071429, 135.416667,
// 162.5, 203.125, 232.142857, 270.833333, 325, 406.25, 464.285714,
// 541.666667, 650 and 812.5.
func (c *RXConfig) SetBandwidth(bandwidth float64) error {
	mantissa, exponent, err := bandwidthToConfig(bandwidth)
	if err != nil {
		return err
	}
	c.bandwidthMantissa = mantissa
	c.bandwidthExponent = exponent
	return nil
}

// Bandwidth returns the configured channel filter bandwidth in kHz.
func (c *RXConfig) Bandwidth() float64 {
	return configToBandwidth(c.bandwidthMantissa, c.bandwidthExponent)
}

// SetMaxLNAGain caps the LNA gain at maxGainDB decibels below maximum.
// Valid reductions are 0, 3, 6, 7, 9, 12, 15, 17, 24 and 26 dB.
func (c *RXConfig) SetMaxLNAGain(maxGainDB uint8) error {
	if err := validMaxLNAGain(maxGainDB); err != nil {
		return err
	}
	c.maxLNAGain = maxGainDB
	return nil
}

// MaxLNAGain returns the configured LNA gain reduction in dB.
func (c *RXConfig) MaxLNAGain() uint8 {
	return c.maxLNAGain
}

// SetMaxDVGAGain caps the DVGA gain at maxGainDB decibels below maximum.
// Valid reductions are 0, 6, 12 and 18 dB.
func (c *RXConfig) SetMaxDVGAGain(maxGainDB uint8) error {
	if err := validMaxDVGAGain(maxGainDB); err != nil {
		return err
	}
	c.maxDVGAGain = maxGainDB
	return nil
}

// MaxDVGAGain returns the configured DVGA gain reduction in dB.
func (c *RXConfig) MaxDVGAGain() uint8 {
	return c.maxDVGAGain
}

// SetMagnitudeTarget sets the channel-filter amplitude target in dB. Valid
// values are 24, 27, 30, 33, 36, 38, 40 and 42 dB.
func (c *RXConfig) SetMagnitudeTarget(targetDB uint8) error {
	if err := validMagnitudeTarget(targetDB); err != nil {
		return err
	}
	c.magnitudeTarget = targetDB
	return nil
}

// MagnitudeTarget returns the configured channel-filter amplitude target in
// dB.
func (c *RXConfig) MagnitudeTarget() uint8 {
	return c.magnitudeTarget
}

// SetCarrierSenseRelative triggers reception on a sudden RSSI increase of
// stepDB. Valid steps are 6, 10 and 14 dB.
func (c *RXConfig) SetCarrierSenseRelative(stepDB int8) error {
	if !validRelativeCarrierSense(stepDB) {
		return fmt.Errorf("%w: relative step %d dB not in %v", ErrInvalidCarrierSense, stepDB, relativeCarrierSenseSteps)
	}
	c.carrierSenseMode = CarrierSenseRelative
	c.carrierSense = stepDB
	return nil
}

// SetCarrierSenseAbsolute triggers reception when RSSI crosses the
// magnitude target plus offsetDB. Valid offsets are -7 to 7 dB.
func (c *RXConfig) SetCarrierSenseAbsolute(offsetDB int8) error {
	if !validAbsoluteCarrierSense(offsetDB) {
		return fmt.Errorf("%w: absolute offset %d dB outside -7..7", ErrInvalidCarrierSense, offsetDB)
	}
	c.carrierSenseMode = CarrierSenseAbsolute
	c.carrierSense = offsetDB
	return nil
}

// DisableCarrierSense removes the carrier-sense gate; reception is keyed on
// the sync word alone.
func (c *RXConfig) DisableCarrierSense() {
	c.carrierSenseMode = CarrierSenseDisabled
	c.carrierSense = 0
}

// CarrierSense returns the configured carrier-sense mode and its dB value
// (step for relative, offset for absolute, 0 when disabled).
func (c *RXConfig) CarrierSense() (CarrierSenseMode, int8) {
	return c.carrierSenseMode, c.carrierSense
}

// SetPacketLength sets the packet read size in bytes.
func (c *RXConfig) SetPacketLength(packetLength uint32) error {
	if packetLength == 0 {
		return fmt.Errorf("%w: packet length must be > 0", ErrInvalidPacketLength)
	}
	c.packetLength = packetLength
	return nil
}

// PacketLength returns the configured packet read size in bytes.
func (c *RXConfig) PacketLength() uint32 {
	return c.packetLength
}

// MarshalBinary encodes the config for the driver boundary.
func (c *RXConfig) MarshalBinary() ([]byte, error) {
	buf := make([]byte, rxWireSize)
	common, err := c.CommonConfig.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(buf, common)
	buf[16] = c.bandwidthMantissa
	buf[17] = c.bandwidthExponent
	buf[18] = c.maxLNAGain
	buf[19] = c.maxDVGAGain
	buf[20] = c.magnitudeTarget
	buf[21] = byte(c.carrierSenseMode)
	buf[22] = byte(c.carrierSense)
	// byte 23: struct padding
	binary.LittleEndian.PutUint32(buf[24:28], c.packetLength)
	return buf, nil
}

// UnmarshalBinary decodes a config read back from the driver.
func (c *RXConfig) UnmarshalBinary(data []byte) error {
	if len(data) != rxWireSize {
		return fmt.Errorf("config: RX config is %d bytes, want %d", len(data), rxWireSize)
	}
	if err := c.CommonConfig.UnmarshalBinary(data[:commonWireSize]); err != nil {
		return err
	}
	c.bandwidthMantissa = data[16]
	c.bandwidthExponent = data[17]
	c.maxLNAGain = data[18]
	c.maxDVGAGain = data[19]
	c.magnitudeTarget = data[20]
	c.carrierSenseMode = CarrierSenseMode(data[21])
	c.carrierSense = int8(data[22])
	c.packetLength = binary.LittleEndian.Uint32(data[24:28])
	return nil
}
