package ioctl

import "testing"

func TestRequestEncoding(t *testing.T) {
	// Linux _IOC layout: dir<<30 | size<<16 | type<<8 | nr.
	cases := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"get version", ioc(iocRead, nrGetVersion, 4), 0x80046300},
		{"reset", ioc(iocNone, nrReset, 0), 0x00006301},
		{"set tx config", ioc(iocWrite, nrSetTXConf, txConfSize), 0x40146302},
		{"set rx config", ioc(iocWrite, nrSetRXConf, rxConfSize), 0x401C6303},
		{"get tx config", ioc(iocRead, nrGetTXConf, txConfSize), 0x80146304},
		{"get tx registers", ioc(iocRead, nrGetTXRawConf, 47), 0x802F6305},
		{"get rx config", ioc(iocRead, nrGetRXConf, rxConfSize), 0x801C6306},
		{"get rx registers", ioc(iocRead, nrGetRXRawConf, 47), 0x802F6307},
		{"get device registers", ioc(iocRead, nrGetDevRawConf, 47), 0x802F6308},
		{"get rssi", ioc(iocRead, nrGetRSSI, 1), 0x80016309},
		{"get max packet size", ioc(iocRead, nrGetMaxPacketSize, 4), 0x8004630A},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("%s: request = %#08x, want %#08x", c.name, c.got, c.want)
		}
	}
}

func TestPayloadSizes(t *testing.T) {
	if rxConfSize != 28 {
		t.Fatalf("RX config payload is %d bytes, want 28", rxConfSize)
	}
	if txConfSize != 20 {
		t.Fatalf("TX config payload is %d bytes, want 20", txConfSize)
	}
}
