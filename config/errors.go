package config

import "errors"

// Validation errors returned by constructors and setters. All of them are
// recoverable by adjusting the offending input.
var (
	ErrInvalidFrequency       = errors.New("config: invalid frequency")
	ErrInvalidBandwidth       = errors.New("config: invalid bandwidth")
	ErrInvalidCarrierSense    = errors.New("config: invalid carrier sense")
	ErrInvalidTXPower         = errors.New("config: invalid TX power")
	ErrInvalidBaudRate        = errors.New("config: invalid baud rate")
	ErrInvalidDeviation       = errors.New("config: invalid deviation")
	ErrInvalidSyncWord        = errors.New("config: invalid sync word")
	ErrInvalidMaxLNAGain      = errors.New("config: invalid max LNA gain")
	ErrInvalidMaxDVGAGain     = errors.New("config: invalid max DVGA gain")
	ErrInvalidMagnitudeTarget = errors.New("config: invalid magnitude target")
	ErrInvalidPacketLength    = errors.New("config: invalid packet length")
)
