// Command cc1101-rssi samples the signal strength seen by a CC1101 device
// node and prints summary statistics, for antenna placement and noise-floor
// surveys.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/logging"
)

func main() {
	device := flag.String("device", "/dev/cc1101.0.0", "device node path")
	samples := flag.Int("samples", 100, "number of RSSI samples to take")
	interval := flag.Duration("interval", 50*time.Millisecond, "delay between samples")
	logLevel := flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	log, err := logging.NewFromFlags(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dev, err := cc1101.Open(*device, nil, false)
	if err != nil {
		log.Error("open device", logging.F("device", *device), logging.F("err", err))
		os.Exit(1)
	}
	defer dev.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	values, err := sample(ctx, dev, *samples, *interval)
	if err != nil {
		log.Error("sample rssi", logging.F("err", err))
		os.Exit(1)
	}
	if len(values) == 0 {
		log.Error("no samples collected")
		os.Exit(1)
	}

	mean, std := stat.MeanStdDev(values, nil)
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	fmt.Printf("samples: %d\n", len(values))
	fmt.Printf("mean:    %.1f dBm\n", mean)
	fmt.Printf("stddev:  %.1f dB\n", std)
	fmt.Printf("min:     %.1f dBm\n", lo)
	fmt.Printf("max:     %.1f dBm\n", hi)
}

func sample(ctx context.Context, dev *cc1101.Device, n int, interval time.Duration) ([]float64, error) {
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return values, nil
			case <-time.After(interval):
			}
		}
		raw, err := dev.RSSI()
		if err != nil {
			return nil, err
		}
		values = append(values, config.RSSIToDBm(raw))
	}
	return values, nil
}
