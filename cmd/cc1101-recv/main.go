// Command cc1101-recv polls a CC1101 device node for incoming packets and
// prints them as hex lines on stdout, one packet per line.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/logging"
)

func main() {
	device := flag.String("device", "/dev/cc1101.0.0", "device node path")
	freq := flag.Float64("freq", 433.92, "carrier frequency in MHz")
	modName := flag.String("modulation", "ook", "modulation scheme (2-fsk|gfsk|ook|4-fsk|msk)")
	baud := flag.Float64("baud", 1.0, "baud rate in kBaud")
	bandwidth := flag.Float64("bandwidth", 0, "channel filter bandwidth in kHz (0 keeps the default)")
	deviation := flag.Float64("deviation", 0, "frequency deviation in kHz (0 keeps the default)")
	syncWord := flag.Uint64("sync", 0, "sync word (0 disables sync matching)")
	packetLength := flag.Uint("packet-length", 64, "packet read size in bytes")
	shared := flag.Bool("shared", false, "open the device in shared mode")
	withRSSI := flag.Bool("rssi", false, "append the RSSI in dBm to every packet line")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	log, err := logging.NewFromFlags(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log = log.With(logging.F("device", *device))

	cfg, err := buildRXConfig(*freq, *modName, *baud, *bandwidth, *deviation, *syncWord, *packetLength)
	if err != nil {
		log.Error("build receive config", logging.F("err", err))
		os.Exit(1)
	}

	dev, err := cc1101.Open(*device, cfg, !*shared)
	if err != nil {
		log.Error("open device", logging.F("err", err))
		os.Exit(1)
	}
	defer dev.Close()
	log.Info("listening",
		logging.F("freq_mhz", cfg.Frequency()),
		logging.F("modulation", cfg.Modulation()),
		logging.F("baud_kbaud", cfg.BaudRate()),
		logging.F("bandwidth_khz", cfg.Bandwidth()),
		logging.F("packet_bytes", cfg.PacketLength()),
		logging.F("exclusive", dev.Exclusive()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := poll(ctx, dev, log, *withRSSI); err != nil {
		log.Error("receive", logging.F("err", err))
		os.Exit(1)
	}
	log.Info("stopped")
}

func buildRXConfig(freq float64, modName string, baud, bandwidth, deviation float64, syncWord uint64, packetLength uint) (*config.RXConfig, error) {
	modulation, err := config.ParseModulation(modName)
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewRXConfig(freq, modulation, baud, uint32(packetLength))
	if err != nil {
		return nil, err
	}
	if bandwidth != 0 {
		if err := cfg.SetBandwidth(bandwidth); err != nil {
			return nil, err
		}
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

// poll drains the driver's receive buffer in a loop. Idle periods back off
// exponentially to keep a quiet channel cheap; any received packet resets
// the interval so bursts are drained at full speed.
func poll(ctx context.Context, dev *cc1101.Device, log logging.Logger, withRSSI bool) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = 0 // poll forever
	bo.Reset()

	for {
		packets, err := dev.Receive()
		if err != nil {
			return err
		}
		for _, packet := range packets {
			line := hex.EncodeToString(packet)
			if withRSSI {
				raw, err := dev.RSSI()
				if err != nil {
					return err
				}
				line = fmt.Sprintf("%s %.1f", line, config.RSSIToDBm(raw))
			}
			fmt.Println(line)
		}
		if len(packets) > 0 {
			log.Debug("drained", logging.F("packets", len(packets)))
			bo.Reset()
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(bo.NextBackOff()):
		}
	}
}
