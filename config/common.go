package config

import (
	"encoding/binary"
	"fmt"
)

// CommonConfig holds the fields shared between receive and transmit
// configurations. Every field is stored register-encoded; the only way to
// set one is through a validating setter, so a CommonConfig never carries an
// encoding that did not come out of the datasheet conversion.
type CommonConfig struct {
	frequency         uint32
	modulation        Modulation
	baudRateMantissa  uint8
	baudRateExponent  uint8
	deviationMantissa uint8
	deviationExponent uint8
	syncWord          uint32
}

// commonWireSize is the encoded size of CommonConfig on the driver
// boundary: u32 frequency, five u8 fields, 3 bytes of C struct padding,
// u32 sync word.
const commonWireSize = 16

// defaultCommonConfig is mid-band OOK at 1 kBaud with no sync word. The
// encoded values are 433.92 MHz (0x10B071) and DRATE 0x43/0x05; deviation
// keeps the hardware reset value of 47.607422 kHz (0x07/0x04).
func defaultCommonConfig() CommonConfig {
	return CommonConfig{
		frequency:         0x10B071,
		modulation:        OOK,
		baudRateMantissa:  0x43,
		baudRateExponent:  0x05,
		deviationMantissa: 0x07,
		deviationExponent: 0x04,
		syncWord:          0x0000,
	}
}

// NewCommonConfig builds a CommonConfig from physical units. The sync word
// starts at zero and the deviation at the hardware reset value; both can be
// changed afterwards with SetSyncWord and SetDeviation.
func NewCommonConfig(frequencyMHz float64, modulation Modulation, baudRate float64) (CommonConfig, error) {
	c := defaultCommonConfig()
	if err := c.SetFrequency(frequencyMHz); err != nil {
		return CommonConfig{}, err
	}
	if err := c.SetModulationAndBaudRate(modulation, baudRate); err != nil {
		return CommonConfig{}, err
	}
	return c, nil
}

// SetFrequency sets the carrier frequency in MHz. Valid values lie in the
// 300-348, 387-464 and 779-928 MHz bands.
func (c *CommonConfig) SetFrequency(frequencyMHz float64) error {
	word, err := frequencyToConfig(frequencyMHz)
	if err != nil {
		return err
	}
	c.frequency = word
	return nil
}

// Frequency returns the configured carrier frequency in MHz, decoded from
// the frequency control word.
func (c *CommonConfig) Frequency() float64 {
	return configToFrequency(c.frequency)
}

// SetModulationAndBaudRate sets the modulation scheme together with the
// baud rate in kBaud. The two are coupled because the legal baud-rate window
// depends on the scheme:
//
//	FSK2  0.6 - 500
//	GFSK  0.6 - 250
//	OOK   0.6 - 250
//	FSK4  0.6 - 300
//	MSK   26  - 500
func (c *CommonConfig) SetModulationAndBaudRate(modulation Modulation, baudRate float64) error {
	mantissa, exponent, err := baudRateToConfig(modulation, baudRate)
	if err != nil {
		return err
	}
	c.modulation = modulation
	c.baudRateMantissa = mantissa
	c.baudRateExponent = exponent
	return nil
}

// Modulation returns the configured modulation scheme.
func (c *CommonConfig) Modulation() Modulation {
	return c.modulation
}

// BaudRate returns the configured baud rate in kBaud.
func (c *CommonConfig) BaudRate() float64 {
	return configToBaudRate(c.baudRateMantissa, c.baudRateExponent)
}

// SetDeviation sets the frequency deviation in kHz. Only the 64 values
// representable by the DEVIATN register are accepted.
func (c *CommonConfig) SetDeviation(deviation float64) error {
	mantissa, exponent, err := deviationToConfig(deviation)
	if err != nil {
		return err
	}
	c.deviationMantissa = mantissa
	c.deviationExponent = exponent
	return nil
}

// Deviation returns the configured frequency deviation in kHz.
func (c *CommonConfig) Deviation() float64 {
	return configToDeviation(c.deviationMantissa, c.deviationExponent)
}

// SetSyncWord sets the sync word. Any value up to 0xFFFF is allowed; wider
// values must repeat the same 16-bit pattern in both halves.
//
// In RX the device searches for the sync word to begin reception; in TX it
// is prepended to every packet.
func (c *CommonConfig) SetSyncWord(syncWord uint32) error {
	if err := validateSyncWord(syncWord); err != nil {
		return err
	}
	c.syncWord = syncWord
	return nil
}

// SyncWord returns the configured sync word.
func (c *CommonConfig) SyncWord() uint32 {
	return c.syncWord
}

// MarshalBinary encodes the config for the driver boundary: little-endian,
// C struct layout, declared field order.
func (c *CommonConfig) MarshalBinary() ([]byte, error) {
	buf := make([]byte, commonWireSize)
	binary.LittleEndian.PutUint32(buf[0:4], c.frequency)
	buf[4] = byte(c.modulation)
	buf[5] = c.baudRateMantissa
	buf[6] = c.baudRateExponent
	buf[7] = c.deviationMantissa
	buf[8] = c.deviationExponent
	// bytes 9-11: struct padding
	binary.LittleEndian.PutUint32(buf[12:16], c.syncWord)
	return buf, nil
}

// UnmarshalBinary decodes a config read back from the driver.
func (c *CommonConfig) UnmarshalBinary(data []byte) error {
	if len(data) != commonWireSize {
		return fmt.Errorf("config: common config is %d bytes, want %d", len(data), commonWireSize)
	}
	c.frequency = binary.LittleEndian.Uint32(data[0:4])
	c.modulation = Modulation(data[4])
	c.baudRateMantissa = data[5]
	c.baudRateExponent = data[6]
	c.deviationMantissa = data[7]
	c.deviationExponent = data[8]
	c.syncWord = binary.LittleEndian.Uint32(data[12:16])
	return nil
}
