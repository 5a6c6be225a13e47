package config

import (
	"errors"
	"testing"
)

func TestNewCommonConfig(t *testing.T) {
	c, err := NewCommonConfig(433.92, OOK, 1.0)
	if err != nil {
		t.Fatalf("NewCommonConfig: %v", err)
	}
	if got := c.Frequency(); got != 433.919983 {
		t.Fatalf("Frequency() = %f, want 433.919983", got)
	}
	if c.Modulation() != OOK {
		t.Fatalf("Modulation() = %s, want OOK", c.Modulation())
	}
	if got := c.BaudRate(); got != 1.00112 {
		t.Fatalf("BaudRate() = %f, want 1.00112", got)
	}
	if c.SyncWord() != 0 {
		t.Fatalf("SyncWord() = %#x, want 0", c.SyncWord())
	}

	if _, err := NewCommonConfig(100.0, OOK, 1.0); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("bad frequency = %v, want ErrInvalidFrequency", err)
	}
	if _, err := NewCommonConfig(433.92, MSK, 1.0); !errors.Is(err, ErrInvalidBaudRate) {
		t.Fatalf("bad baud rate = %v, want ErrInvalidBaudRate", err)
	}
}

func TestParseModulation(t *testing.T) {
	good := map[string]Modulation{
		"2-FSK": FSK2,
		"fsk":   FSK2,
		"GFSK":  GFSK,
		"ook":   OOK,
		"4-fsk": FSK4,
		"msk":   MSK,
	}
	for s, want := range good {
		got, err := ParseModulation(s)
		if err != nil {
			t.Fatalf("ParseModulation(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseModulation(%q) = %s, want %s", s, got, want)
		}
	}
	if _, err := ParseModulation("qam"); err == nil {
		t.Fatalf("ParseModulation accepted an unknown scheme")
	}
}

func TestCommonConfigSettersAreAtomic(t *testing.T) {
	c, err := NewCommonConfig(433.92, FSK2, 115.051)
	if err != nil {
		t.Fatalf("NewCommonConfig: %v", err)
	}
	before := c

	if err := c.SetFrequency(500.0); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("SetFrequency(500) = %v, want ErrInvalidFrequency", err)
	}
	if err := c.SetModulationAndBaudRate(MSK, 1.0); !errors.Is(err, ErrInvalidBaudRate) {
		t.Fatalf("SetModulationAndBaudRate(MSK, 1) = %v, want ErrInvalidBaudRate", err)
	}
	if err := c.SetDeviation(400.0); !errors.Is(err, ErrInvalidDeviation) {
		t.Fatalf("SetDeviation(400) = %v, want ErrInvalidDeviation", err)
	}
	if err := c.SetSyncWord(0xAAAABBBB); !errors.Is(err, ErrInvalidSyncWord) {
		t.Fatalf("SetSyncWord = %v, want ErrInvalidSyncWord", err)
	}

	if c != before {
		t.Fatalf("failed setters mutated the config: %+v != %+v", c, before)
	}
}

func TestCommonConfigDeviation(t *testing.T) {
	c, err := NewCommonConfig(433.92, FSK2, 1.0)
	if err != nil {
		t.Fatalf("NewCommonConfig: %v", err)
	}
	// hardware reset value until set
	if got := c.Deviation(); got != 47.607422 {
		t.Fatalf("default Deviation() = %f, want 47.607422", got)
	}
	if err := c.SetDeviation(380.85938); err != nil {
		t.Fatalf("SetDeviation: %v", err)
	}
	if got := c.Deviation(); got != 380.859375 {
		t.Fatalf("Deviation() = %f, want 380.859375", got)
	}
}

func TestNewRXConfigDefaults(t *testing.T) {
	c, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}
	if got := c.Bandwidth(); got != 203.125 {
		t.Fatalf("default Bandwidth() = %f, want 203.125", got)
	}
	if got := c.MagnitudeTarget(); got != 33 {
		t.Fatalf("default MagnitudeTarget() = %d, want 33", got)
	}
	if got := c.MaxLNAGain(); got != 0 {
		t.Fatalf("default MaxLNAGain() = %d, want 0", got)
	}
	if got := c.MaxDVGAGain(); got != 0 {
		t.Fatalf("default MaxDVGAGain() = %d, want 0", got)
	}
	if mode, _ := c.CarrierSense(); mode != CarrierSenseDisabled {
		t.Fatalf("default carrier sense mode = %s, want disabled", mode)
	}
	if got := c.PacketLength(); got != 64 {
		t.Fatalf("PacketLength() = %d, want 64", got)
	}
}

func TestDefaultRXConfig(t *testing.T) {
	c := DefaultRXConfig()
	if got := c.Frequency(); got != 433.919983 {
		t.Fatalf("default Frequency() = %f, want 433.919983", got)
	}
	if c.Modulation() != OOK {
		t.Fatalf("default Modulation() = %s, want OOK", c.Modulation())
	}
	if got := c.BaudRate(); got != 1.00112 {
		t.Fatalf("default BaudRate() = %f, want 1.00112", got)
	}
	if c.SyncWord() != 0 {
		t.Fatalf("default SyncWord() = %#x, want 0", c.SyncWord())
	}
	if got := c.PacketLength(); got != DefaultPacketLength {
		t.Fatalf("default PacketLength() = %d, want %d", got, DefaultPacketLength)
	}
	want, err := NewRXConfig(433.92, OOK, 1.0, DefaultPacketLength)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}
	if *c != *want {
		t.Fatalf("DefaultRXConfig() = %+v, want %+v", *c, *want)
	}
}

func TestNewRXConfigRejectsZeroPacketLength(t *testing.T) {
	if _, err := NewRXConfig(433.92, OOK, 1.0, 0); !errors.Is(err, ErrInvalidPacketLength) {
		t.Fatalf("packet length 0 = %v, want ErrInvalidPacketLength", err)
	}
	c, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}
	if err := c.SetPacketLength(0); !errors.Is(err, ErrInvalidPacketLength) {
		t.Fatalf("SetPacketLength(0) = %v, want ErrInvalidPacketLength", err)
	}
	if got := c.PacketLength(); got != 64 {
		t.Fatalf("failed SetPacketLength mutated the config: %d", got)
	}
}

func TestRXConfigCarrierSense(t *testing.T) {
	c, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}

	for _, step := range []int8{6, 10, 14} {
		if err := c.SetCarrierSenseRelative(step); err != nil {
			t.Fatalf("SetCarrierSenseRelative(%d): %v", step, err)
		}
		mode, v := c.CarrierSense()
		if mode != CarrierSenseRelative || v != step {
			t.Fatalf("CarrierSense() = (%s, %d), want (relative, %d)", mode, v, step)
		}
	}
	for _, step := range []int8{0, 8, 15, -6} {
		if err := c.SetCarrierSenseRelative(step); !errors.Is(err, ErrInvalidCarrierSense) {
			t.Fatalf("SetCarrierSenseRelative(%d) = %v, want ErrInvalidCarrierSense", step, err)
		}
	}

	for _, offset := range []int8{-7, 0, 7} {
		if err := c.SetCarrierSenseAbsolute(offset); err != nil {
			t.Fatalf("SetCarrierSenseAbsolute(%d): %v", offset, err)
		}
		mode, v := c.CarrierSense()
		if mode != CarrierSenseAbsolute || v != offset {
			t.Fatalf("CarrierSense() = (%s, %d), want (absolute, %d)", mode, v, offset)
		}
	}
	for _, offset := range []int8{-8, 8, 127} {
		if err := c.SetCarrierSenseAbsolute(offset); !errors.Is(err, ErrInvalidCarrierSense) {
			t.Fatalf("SetCarrierSenseAbsolute(%d) = %v, want ErrInvalidCarrierSense", offset, err)
		}
	}

	c.DisableCarrierSense()
	if mode, v := c.CarrierSense(); mode != CarrierSenseDisabled || v != 0 {
		t.Fatalf("CarrierSense() after disable = (%s, %d), want (disabled, 0)", mode, v)
	}
}

func TestRXConfigAGCSettings(t *testing.T) {
	c, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}

	for _, db := range maxLNAGains {
		if err := c.SetMaxLNAGain(db); err != nil {
			t.Fatalf("SetMaxLNAGain(%d): %v", db, err)
		}
	}
	if err := c.SetMaxLNAGain(5); !errors.Is(err, ErrInvalidMaxLNAGain) {
		t.Fatalf("SetMaxLNAGain(5) = %v, want ErrInvalidMaxLNAGain", err)
	}

	for _, db := range maxDVGAGains {
		if err := c.SetMaxDVGAGain(db); err != nil {
			t.Fatalf("SetMaxDVGAGain(%d): %v", db, err)
		}
	}
	if err := c.SetMaxDVGAGain(7); !errors.Is(err, ErrInvalidMaxDVGAGain) {
		t.Fatalf("SetMaxDVGAGain(7) = %v, want ErrInvalidMaxDVGAGain", err)
	}

	for _, db := range magnitudeTargets {
		if err := c.SetMagnitudeTarget(db); err != nil {
			t.Fatalf("SetMagnitudeTarget(%d): %v", db, err)
		}
	}
	if err := c.SetMagnitudeTarget(25); !errors.Is(err, ErrInvalidMagnitudeTarget) {
		t.Fatalf("SetMagnitudeTarget(25) = %v, want ErrInvalidMagnitudeTarget", err)
	}
}

func TestRXConfigEquality(t *testing.T) {
	a, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}
	b, err := NewRXConfig(433.92, OOK, 1.0, 64)
	if err != nil {
		t.Fatalf("NewRXConfig: %v", err)
	}
	if *a != *b {
		t.Fatalf("identically built configs differ: %+v != %+v", *a, *b)
	}
	if err := b.SetBandwidth(101.5625); err != nil {
		t.Fatalf("SetBandwidth: %v", err)
	}
	if *a == *b {
		t.Fatalf("configs with different bandwidths compare equal")
	}
}

func TestNewTXConfig(t *testing.T) {
	c, err := NewTXConfig(433.92, OOK, 1.0, 0.1)
	if err != nil {
		t.Fatalf("NewTXConfig: %v", err)
	}
	if got := c.TXPowerRaw(); got != 0x60 {
		t.Fatalf("TXPowerRaw() = %#02x, want 0x60", got)
	}
	dbm, err := c.TXPowerDBm()
	if err != nil {
		t.Fatalf("TXPowerDBm: %v", err)
	}
	if dbm != 0.1 {
		t.Fatalf("TXPowerDBm() = %f, want 0.1", dbm)
	}

	// A power level that is not in the 433 MHz table.
	if _, err := NewTXConfig(433.92, OOK, 1.0, 11.0); !errors.Is(err, ErrInvalidTXPower) {
		t.Fatalf("uncalibrated power = %v, want ErrInvalidTXPower", err)
	}
	// A legal carrier frequency outside every calibrated band.
	if _, err := NewTXConfig(347.0, OOK, 1.0, 0.1); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("non-ISM frequency = %v, want ErrInvalidFrequency", err)
	}
}

func TestNewTXConfigRaw(t *testing.T) {
	// The raw constructor accepts any legal frequency, ISM band or not.
	c, err := NewTXConfigRaw(347.0, OOK, 1.0, 0xC0)
	if err != nil {
		t.Fatalf("NewTXConfigRaw: %v", err)
	}
	if got := c.TXPowerRaw(); got != 0xC0 {
		t.Fatalf("TXPowerRaw() = %#02x, want 0xC0", got)
	}
	// ...but the dBm view needs a calibrated band.
	if _, err := c.TXPowerDBm(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("TXPowerDBm outside ISM bands = %v, want ErrInvalidFrequency", err)
	}
}
