package config

import "fmt"

// Discrete AGC settings from the AGCCTRL2 register tables of the datasheet.
// The driver stores each as a plain dB byte and maps it to the register
// field internally.
var (
	// maxLNAGains are the selectable reductions of maximum LNA+LNA2 gain,
	// in dB below full gain.
	maxLNAGains = []uint8{0, 3, 6, 7, 9, 12, 15, 17, 24, 26}

	// maxDVGAGains are the selectable reductions of maximum DVGA gain, in
	// dB below full gain.
	maxDVGAGains = []uint8{0, 6, 12, 18}

	// magnitudeTargets are the selectable channel-filter amplitude targets
	// in dB.
	magnitudeTargets = []uint8{24, 27, 30, 33, 36, 38, 40, 42}
)

func validMaxLNAGain(db uint8) error {
	for _, v := range maxLNAGains {
		if db == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %d dB not in %v", ErrInvalidMaxLNAGain, db, maxLNAGains)
}

func validMaxDVGAGain(db uint8) error {
	for _, v := range maxDVGAGains {
		if db == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %d dB not in %v", ErrInvalidMaxDVGAGain, db, maxDVGAGains)
}

func validMagnitudeTarget(db uint8) error {
	for _, v := range magnitudeTargets {
		if db == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %d dB not in %v", ErrInvalidMagnitudeTarget, db, magnitudeTargets)
}
