package config

import "fmt"

// TXConfig is a complete transmit configuration. It is supplied per
// transmit call; the session never caches it.
type TXConfig struct {
	CommonConfig
	txPower byte
}

// txWireSize is the encoded size on the driver boundary: common config,
// u8 power byte, 3 bytes of C struct padding.
const txWireSize = commonWireSize + 4

// NewTXConfig builds a transmit configuration with the output power given
// in dBm. The frequency must be within 1 MHz of one of the calibrated ISM
// band centers (315, 433, 868 or 915 MHz) and the power must be one of the
// calibrated levels for that band.
func NewTXConfig(frequencyMHz float64, modulation Modulation, baudRate float64, txPowerDBm float64) (*TXConfig, error) {
	common, err := NewCommonConfig(frequencyMHz, modulation, baudRate)
	if err != nil {
		return nil, err
	}
	c := &TXConfig{CommonConfig: common}
	if err := c.SetTXPowerDBm(txPowerDBm); err != nil {
		return nil, err
	}
	return c, nil
}

// NewTXConfigRaw builds a transmit configuration with the output power
// given as a raw PATABLE byte. Any legal frequency is accepted; the byte is
// handed to the hardware untranslated.
func NewTXConfigRaw(frequencyMHz float64, modulation Modulation, baudRate float64, txPower byte) (*TXConfig, error) {
	common, err := NewCommonConfig(frequencyMHz, modulation, baudRate)
	if err != nil {
		return nil, err
	}
	return &TXConfig{CommonConfig: common, txPower: txPower}, nil
}

// SetTXPowerDBm sets the output power to a calibrated dBm level for the
// ISM band containing the configured frequency.
func (c *TXConfig) SetTXPowerDBm(txPowerDBm float64) error {
	raw, err := txPowerToConfig(c.Frequency(), txPowerDBm)
	if err != nil {
		return err
	}
	c.txPower = raw
	return nil
}

// TXPowerDBm returns the calibrated output power in dBm. It fails when the
// configured frequency is outside every ISM band or the raw byte is not a
// calibrated level.
func (c *TXConfig) TXPowerDBm() (float64, error) {
	return configToTXPower(c.Frequency(), c.txPower)
}

// SetTXPowerRaw sets the output power as a raw PATABLE byte.
func (c *TXConfig) SetTXPowerRaw(txPower byte) {
	c.txPower = txPower
}

// TXPowerRaw returns the raw PATABLE power byte.
func (c *TXConfig) TXPowerRaw() byte {
	return c.txPower
}

// MarshalBinary encodes the config for the driver boundary.
func (c *TXConfig) MarshalBinary() ([]byte, error) {
	buf := make([]byte, txWireSize)
	common, err := c.CommonConfig.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(buf, common)
	buf[16] = c.txPower
	// bytes 17-19: struct padding
	return buf, nil
}

// UnmarshalBinary decodes a config read back from the driver.
func (c *TXConfig) UnmarshalBinary(data []byte) error {
	if len(data) != txWireSize {
		return fmt.Errorf("config: TX config is %d bytes, want %d", len(data), txWireSize)
	}
	if err := c.CommonConfig.UnmarshalBinary(data[:commonWireSize]); err != nil {
		return err
	}
	c.txPower = data[16]
	return nil
}
