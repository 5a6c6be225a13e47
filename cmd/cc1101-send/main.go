// Command cc1101-send transmits packets through a CC1101 device node. The
// payload is given as a hex string argument or read from stdin, one hex
// line per packet.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/logging"
)

func main() {
	device := flag.String("device", "/dev/cc1101.0.0", "device node path")
	freq := flag.Float64("freq", 433.92, "carrier frequency in MHz")
	modName := flag.String("modulation", "ook", "modulation scheme (2-fsk|gfsk|ook|4-fsk|msk)")
	baud := flag.Float64("baud", 1.0, "baud rate in kBaud")
	deviation := flag.Float64("deviation", 0, "frequency deviation in kHz (0 keeps the default)")
	syncWord := flag.Uint64("sync", 0, "sync word (0 disables the preamble sync)")
	powerDBm := flag.Float64("power", 0.1, "output power in dBm (calibrated ISM levels only)")
	powerRaw := flag.Uint("power-raw", 0, "raw PATABLE power byte; overrides -power when non-zero")
	repeat := flag.Int("repeat", 1, "number of times to send each packet")
	interval := flag.Duration("interval", 100*time.Millisecond, "delay between repeated transmissions")
	shared := flag.Bool("shared", false, "open the device in shared mode")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	log, err := logging.NewFromFlags(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log = log.With(logging.F("device", *device))

	cfg, err := buildTXConfig(*freq, *modName, *baud, *deviation, *syncWord, *powerDBm, *powerRaw)
	if err != nil {
		log.Error("build transmit config", logging.F("err", err))
		os.Exit(1)
	}

	payloads, err := collectPayloads(flag.Args())
	if err != nil {
		log.Error("parse payload", logging.F("err", err))
		os.Exit(1)
	}
	if len(payloads) == 0 {
		log.Error("nothing to send: pass a hex payload argument or pipe hex lines on stdin")
		os.Exit(1)
	}

	dev, err := cc1101.Open(*device, nil, !*shared)
	if err != nil {
		log.Error("open device", logging.F("err", err))
		os.Exit(1)
	}
	defer dev.Close()

	for _, payload := range payloads {
		for i := 0; i < *repeat; i++ {
			if i > 0 {
				time.Sleep(*interval)
			}
			if err := dev.Transmit(cfg, payload); err != nil {
				log.Error("transmit", logging.F("err", err))
				os.Exit(1)
			}
			log.Info("sent", logging.F("bytes", len(payload)))
		}
	}
}

func buildTXConfig(freq float64, modName string, baud, deviation float64, syncWord uint64, powerDBm float64, powerRaw uint) (*config.TXConfig, error) {
	modulation, err := config.ParseModulation(modName)
	if err != nil {
		return nil, err
	}
	var cfg *config.TXConfig
	if powerRaw != 0 {
		cfg, err = config.NewTXConfigRaw(freq, modulation, baud, byte(powerRaw))
	} else {
		cfg, err = config.NewTXConfig(freq, modulation, baud, powerDBm)
	}
	if err != nil {
		return nil, err
	}
	if deviation != 0 {
		if err := cfg.SetDeviation(deviation); err != nil {
			return nil, err
		}
	}
	if syncWord != 0 {
		if err := cfg.SetSyncWord(uint32(syncWord)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// collectPayloads decodes the packet payloads: the positional hex arguments
// if any, otherwise one hex string per stdin line.
func collectPayloads(args []string) ([][]byte, error) {
	var payloads [][]byte
	if len(args) > 0 {
		for _, arg := range args {
			p, err := hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("payload %q: %w", arg, err)
			}
			payloads = append(payloads, p)
		}
		return payloads, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		p, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("payload %q: %w", line, err)
		}
		payloads = append(payloads, p)
	}
	return payloads, scanner.Err()
}
