package config

import (
	"fmt"
	"strings"
)

// Modulation selects the radio modulation scheme. The values match the
// MOD_FORMAT field of the MDMCFG2 register.
type Modulation uint8

const (
	// FSK2 is 2-level frequency shift keying.
	FSK2 Modulation = 0
	// GFSK is Gaussian-shaped frequency shift keying.
	GFSK Modulation = 1
	// OOK is on-off keying.
	OOK Modulation = 3
	// FSK4 is 4-level frequency shift keying.
	FSK4 Modulation = 4
	// MSK is minimum shift keying.
	MSK Modulation = 7
)

func (m Modulation) String() string {
	switch m {
	case FSK2:
		return "2-FSK"
	case GFSK:
		return "GFSK"
	case OOK:
		return "OOK"
	case FSK4:
		return "4-FSK"
	case MSK:
		return "MSK"
	default:
		return fmt.Sprintf("Modulation(%d)", uint8(m))
	}
}

// ParseModulation converts a scheme name ("2-fsk", "gfsk", "ook", "4-fsk",
// "msk") to a Modulation.
func ParseModulation(s string) (Modulation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2-fsk", "2fsk", "fsk":
		return FSK2, nil
	case "gfsk":
		return GFSK, nil
	case "ook":
		return OOK, nil
	case "4-fsk", "4fsk":
		return FSK4, nil
	case "msk":
		return MSK, nil
	default:
		return Modulation(0), fmt.Errorf("config: unsupported modulation %q", s)
	}
}

func (m Modulation) valid() bool {
	switch m {
	case FSK2, GFSK, OOK, FSK4, MSK:
		return true
	default:
		return false
	}
}

// baudRateRange returns the legal baud-rate window in kBaud for the scheme.
// The bounds are the exact lowest/highest representable rates inside the
// datasheet limits (0.6-500 kBaud nominal).
func (m Modulation) baudRateRange() (lo, hi float64) {
	switch m {
	case GFSK, OOK:
		return 0.599742, 249.939
	case FSK4:
		return 0.599742, 299.927
	case MSK:
		return 25.9857, 499.878
	default: // FSK2
		return 0.599742, 500.0
	}
}
