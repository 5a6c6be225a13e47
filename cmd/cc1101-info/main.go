// Command cc1101-info dumps the state of a CC1101 device node: driver
// limits, live configurations, signal strength and raw register snapshots.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/logging"
)

func main() {
	device := flag.String("device", "/dev/cc1101.0.0", "device node path")
	registers := flag.String("registers", "", "also dump a register snapshot (device|rx|tx)")
	logLevel := flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	log, err := logging.NewFromFlags(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Shared mode: an info dump must not kick an exclusive holder off the
	// device, and every query reopens cheaply.
	dev, err := cc1101.Open(*device, nil, false)
	if err != nil {
		log.Error("open device", logging.F("device", *device), logging.F("err", err))
		os.Exit(1)
	}
	defer dev.Close()

	fmt.Printf("device:          %s\n", dev.Path())

	if size, err := dev.MaxPacketSize(); err != nil {
		log.Warn("max packet size", logging.F("err", err))
	} else {
		fmt.Printf("max packet size: %d bytes\n", size)
	}

	if raw, err := dev.RSSI(); err != nil {
		log.Warn("rssi", logging.F("err", err))
	} else {
		fmt.Printf("rssi:            %.1f dBm (raw 0x%02X)\n", config.RSSIToDBm(raw), raw)
	}

	if cfg, err := dev.DeviceRXConfig(); err != nil {
		log.Warn("live receive config", logging.F("err", err))
	} else {
		mode, cs := cfg.CarrierSense()
		fmt.Printf("rx config:       %.6f MHz %s %.6f kBaud bw=%.6f kHz sync=0x%08X cs=%s/%d pkt=%d\n",
			cfg.Frequency(), cfg.Modulation(), cfg.BaudRate(), cfg.Bandwidth(),
			cfg.SyncWord(), mode, cs, cfg.PacketLength())
	}

	if cfg, err := dev.DeviceTXConfig(); err != nil {
		log.Warn("live transmit config", logging.F("err", err))
	} else {
		fmt.Printf("tx config:       %.6f MHz %s %.6f kBaud power=0x%02X\n",
			cfg.Frequency(), cfg.Modulation(), cfg.BaudRate(), cfg.TXPowerRaw())
	}

	if *registers != "" {
		t, err := parseRegistersType(*registers)
		if err != nil {
			log.Error("registers", logging.F("err", err))
			os.Exit(1)
		}
		regs, err := dev.DeviceRegisters(t)
		if err != nil {
			log.Error("registers", logging.F("err", err))
			os.Exit(1)
		}
		fmt.Printf("\n%s registers:\n%s\n", t, regs.String())
	}
}

func parseRegistersType(s string) (config.RegistersType, error) {
	switch s {
	case "device":
		return config.RegistersDevice, nil
	case "rx":
		return config.RegistersRX, nil
	case "tx":
		return config.RegistersTX, nil
	default:
		return 0, fmt.Errorf("unknown register set %q (device|rx|tx)", s)
	}
}
