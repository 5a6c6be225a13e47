package config

import (
	"fmt"
	"math"
)

// The CC1101 derives every timing parameter from a fixed 26 MHz crystal.
const (
	xtalMHz = 26.0
	xtalHz  = xtalMHz * 1e6
)

// lookupTolerance is the slack, in the unit of the compared quantity (kHz),
// used when matching a requested deviation or bandwidth against a
// representable value. Representable values are at least ~0.198 kHz apart,
// so 0.1 Hz of slack cannot select the wrong pair, while it still accepts
// inputs quoted at 6-digit precision.
const lookupTolerance = 1e-4

// round6 rounds to 6 decimal places, the precision used for every decoded
// physical value.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Legal carrier bands in MHz. The bounds are the exact representable edges
// of the 300-348 / 387-464 / 779-928 MHz bands from section 21 of the
// datasheet.
var frequencyBands = [3][2]float64{
	{299.99976, 347.99994},
	{386.99994, 463.9998},
	{778.9999, 928.0},
}

// frequencyToConfig converts a carrier frequency in MHz to the 24-bit
// frequency control word: word = freq * 2^16 / f_xtal.
func frequencyToConfig(frequencyMHz float64) (uint32, error) {
	ok := false
	for _, band := range frequencyBands {
		if frequencyMHz >= band[0] && frequencyMHz <= band[1] {
			ok = true
			break
		}
	}
	if !ok {
		return 0, fmt.Errorf("%w: %f MHz outside 300-348/387-464/779-928", ErrInvalidFrequency, frequencyMHz)
	}
	return uint32(frequencyMHz * 65536.0 / xtalMHz), nil
}

// configToFrequency converts a frequency control word back to MHz. The
// conversion is lossy by truncation; round trips agree to ~396 Hz.
func configToFrequency(word uint32) float64 {
	return round6((xtalMHz / 65536.0) * float64(word))
}

// baudRateToConfig converts a baud rate in kBaud to the DRATE_M/DRATE_E
// register pair using the formula from section 12 of the datasheet. The
// legal window depends on the modulation scheme.
func baudRateToConfig(modulation Modulation, baudRate float64) (mantissa, exponent uint8, err error) {
	if !modulation.valid() {
		return 0, 0, fmt.Errorf("%w: unknown modulation %d", ErrInvalidBaudRate, uint8(modulation))
	}
	lo, hi := modulation.baudRateRange()
	if baudRate < lo || baudRate > hi {
		return 0, 0, fmt.Errorf("%w: %f kBaud outside %g-%g for %s", ErrInvalidBaudRate, baudRate, lo, hi, modulation)
	}

	rData := baudRate * 1000.0
	e := math.Floor(math.Log2(rData * math.Exp2(20) / xtalHz))
	m := math.Round(rData*math.Exp2(28)/(xtalHz*math.Exp2(e)) - 256.0)

	return uint8(m), uint8(e), nil
}

// configToBaudRate converts a DRATE_M/DRATE_E pair back to kBaud.
func configToBaudRate(mantissa, exponent uint8) float64 {
	rData := (float64(256+uint32(mantissa)) * math.Exp2(float64(exponent)) / math.Exp2(28)) * xtalHz
	return round6(rData / 1000.0)
}

// configToDeviation converts a DEVIATION_M/DEVIATION_E pair to kHz using the
// formula from section 16.1 of the datasheet.
func configToDeviation(mantissa, exponent uint8) float64 {
	dev := (xtalHz / math.Exp2(17)) * float64(mantissa+8) * math.Exp2(float64(exponent))
	return round6(dev / 1000.0)
}

// deviationToConfig converts a deviation in kHz to a DEVIATION_M/DEVIATION_E
// pair. Only 64 deviations are representable, so this searches every pair
// for a match instead of inverting the formula.
func deviationToConfig(deviation float64) (mantissa, exponent uint8, err error) {
	for m := uint8(0); m < 8; m++ {
		for e := uint8(0); e < 8; e++ {
			if math.Abs(configToDeviation(m, e)-deviation) < lookupTolerance {
				return m, e, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %f kHz is not a representable deviation", ErrInvalidDeviation, deviation)
}

// configToBandwidth converts a CHANBW_M/CHANBW_E pair to kHz using the
// formula from section 13 of the datasheet.
func configToBandwidth(mantissa, exponent uint8) float64 {
	bw := xtalHz / (8.0 * (float64(mantissa) + 4.0) * math.Exp2(float64(exponent)))
	return round6(bw / 1000.0)
}

// bandwidthToConfig converts a channel bandwidth in kHz to a
// CHANBW_M/CHANBW_E pair. 16 bandwidths are representable.
func bandwidthToConfig(bandwidth float64) (mantissa, exponent uint8, err error) {
	for m := uint8(0); m < 4; m++ {
		for e := uint8(0); e < 4; e++ {
			if math.Abs(configToBandwidth(m, e)-bandwidth) < lookupTolerance {
				return m, e, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: %f kHz is not a representable bandwidth", ErrInvalidBandwidth, bandwidth)
}

// validateSyncWord checks a sync word. Any 16-bit value is legal; wider
// values are legal only when the high and low halves repeat the same 16-bit
// pattern, since the hardware transmits a 16-bit word once or twice.
func validateSyncWord(syncWord uint32) error {
	if syncWord > 0xFFFF && syncWord&0xFFFF != syncWord>>16 {
		return fmt.Errorf("%w: %#08x high and low halves differ", ErrInvalidSyncWord, syncWord)
	}
	return nil
}

// RSSIToDBm converts a raw RSSI register readout to dBm using the two's
// complement conversion from section 17.3 of the datasheet.
func RSSIToDBm(raw byte) float64 {
	v := float64(raw)
	if raw >= 128 {
		v -= 256
	}
	return v/2.0 - 74.0
}
