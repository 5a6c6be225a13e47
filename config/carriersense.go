package config

import "fmt"

// CarrierSenseMode selects how the carrier-sense receive trigger operates.
type CarrierSenseMode uint8

const (
	// CarrierSenseDisabled turns the carrier-sense trigger off; reception
	// is gated on the sync word alone.
	CarrierSenseDisabled CarrierSenseMode = 0
	// CarrierSenseRelative triggers on a sudden RSSI increase of at least
	// the configured step.
	CarrierSenseRelative CarrierSenseMode = 1
	// CarrierSenseAbsolute triggers when RSSI crosses the channel-filter
	// magnitude target plus the configured offset.
	CarrierSenseAbsolute CarrierSenseMode = 2
)

func (m CarrierSenseMode) String() string {
	switch m {
	case CarrierSenseDisabled:
		return "disabled"
	case CarrierSenseRelative:
		return "relative"
	case CarrierSenseAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("CarrierSenseMode(%d)", uint8(m))
	}
}

// relativeCarrierSenseSteps are the RSSI step sizes the AGCCTRL1
// CARRIER_SENSE_REL_THR field can express.
var relativeCarrierSenseSteps = []int8{6, 10, 14}

func validRelativeCarrierSense(stepDB int8) bool {
	for _, s := range relativeCarrierSenseSteps {
		if stepDB == s {
			return true
		}
	}
	return false
}

func validAbsoluteCarrierSense(offsetDB int8) bool {
	return offsetDB >= -7 && offsetDB <= 7
}
