// Package config converts physical radio parameters (carrier frequency,
// baud rate, frequency deviation, channel bandwidth, transmit power) into
// the register encodings expected by the CC1101 driver, and back.
//
// All conversions follow the formulas in the CC1101 datasheet with a fixed
// 26 MHz crystal. Deviation and bandwidth have only a small set of
// realizable values (3-bit/2-bit hardware fields), so their inverses are
// lookups over every representable pair rather than closed-form math.
//
// RXConfig and TXConfig are value objects: constructors and setters validate
// every field and fail without partial mutation.
package config
