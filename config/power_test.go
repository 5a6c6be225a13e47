package config

import (
	"errors"
	"testing"
)

func TestPowerTableSelection(t *testing.T) {
	// Anything within 1 MHz of a band center selects that band's table.
	for _, mhz := range []float64{315.0, 314.1, 315.9, 433.0, 433.92, 868.0, 915.0} {
		if _, err := powerTable(mhz); err != nil {
			t.Fatalf("powerTable(%f): %v", mhz, err)
		}
	}
	for _, mhz := range []float64{123.0, 300.0, 434.5, 866.9, 916.1, 999.0} {
		if _, err := powerTable(mhz); !errors.Is(err, ErrInvalidFrequency) {
			t.Fatalf("powerTable(%f) = %v, want ErrInvalidFrequency", mhz, err)
		}
	}
}

func TestTXPowerRoundTrip(t *testing.T) {
	// Every calibrated (byte, dBm) pair must survive lookups in both
	// directions in every band.
	for _, mhz := range []float64{315.0, 433.0, 868.0, 915.0} {
		table, err := powerTable(mhz)
		if err != nil {
			t.Fatalf("powerTable(%f): %v", mhz, err)
		}
		for _, p := range table {
			raw, err := txPowerToConfig(mhz, p.dbm)
			if err != nil {
				t.Fatalf("txPowerToConfig(%f, %f): %v", mhz, p.dbm, err)
			}
			if raw != p.raw {
				t.Fatalf("txPowerToConfig(%f, %f) = %#02x, want %#02x", mhz, p.dbm, raw, p.raw)
			}
			dbm, err := configToTXPower(mhz, p.raw)
			if err != nil {
				t.Fatalf("configToTXPower(%f, %#02x): %v", mhz, p.raw, err)
			}
			if dbm != p.dbm {
				t.Fatalf("configToTXPower(%f, %#02x) = %f, want %f", mhz, p.raw, dbm, p.dbm)
			}
		}
	}
}

func TestTXPowerLookupFailures(t *testing.T) {
	if _, err := configToTXPower(123.0, 0xFF); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("configToTXPower far from all bands = %v, want ErrInvalidFrequency", err)
	}
	if _, err := configToTXPower(433.0, 0xFF); !errors.Is(err, ErrInvalidTXPower) {
		t.Fatalf("configToTXPower(433, 0xFF) = %v, want ErrInvalidTXPower", err)
	}
	if _, err := txPowerToConfig(433.0, -1.0); !errors.Is(err, ErrInvalidTXPower) {
		t.Fatalf("txPowerToConfig(433, -1.0) = %v, want ErrInvalidTXPower", err)
	}
}

func TestPowerTableShape(t *testing.T) {
	// The tables transcribe a fixed calibration reference; a duplicate raw
	// byte inside one band would make inversion ambiguous.
	sizes := map[float64]int{315.0: 109, 433.0: 103, 868.0: 109, 915.0: 71}
	for mhz, want := range sizes {
		table, err := powerTable(mhz)
		if err != nil {
			t.Fatalf("powerTable(%f): %v", mhz, err)
		}
		if len(table) != want {
			t.Fatalf("band %f has %d entries, want %d", mhz, len(table), want)
		}
		seen := make(map[byte]bool, len(table))
		for _, p := range table {
			if seen[p.raw] {
				t.Fatalf("band %f lists byte %#02x twice", mhz, p.raw)
			}
			seen[p.raw] = true
		}
	}
}
