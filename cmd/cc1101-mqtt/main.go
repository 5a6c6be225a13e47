// Command cc1101-mqtt bridges a CC1101 device node to an MQTT broker.
// Received packets are published as JSON to <prefix>/rx; JSON messages on
// <prefix>/tx are transmitted. Settings come from a YAML config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/internal/logging"
)

func main() {
	configPath := flag.String("config", "cc1101-mqtt.yaml", "path to the YAML config file")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", "text", "log format (text|json)")
	flag.Parse()

	log, err := logging.NewFromFlags(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Error("load config", logging.F("path", *configPath), logging.F("err", err))
		os.Exit(1)
	}
	log = log.With(logging.F("device", cfg.Device.Path))

	rxCfg, err := cfg.rxConfig()
	if err != nil {
		log.Error("build receive config", logging.F("err", err))
		os.Exit(1)
	}
	txCfg, err := cfg.txConfig()
	if err != nil {
		log.Error("build transmit config", logging.F("err", err))
		os.Exit(1)
	}

	dev, err := cc1101.Open(cfg.Device.Path, rxCfg, !cfg.Device.Shared)
	if err != nil {
		log.Error("open device", logging.F("err", err))
		os.Exit(1)
	}
	defer dev.Close()
	log.Info("radio ready",
		logging.F("freq_mhz", rxCfg.Frequency()),
		logging.F("modulation", rxCfg.Modulation()),
		logging.F("baud_kbaud", rxCfg.BaudRate()))

	b, err := newBridge(cfg, dev, txCfg, log)
	if err != nil {
		log.Error("connect bridge", logging.F("err", err))
		os.Exit(1)
	}
	defer b.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.run(ctx); err != nil {
		log.Error("bridge", logging.F("err", err))
		os.Exit(1)
	}
	log.Info("stopped")
}
