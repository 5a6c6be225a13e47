package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/subghz/cc1101/config"
)

// Config is the YAML configuration of the bridge.
type Config struct {
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Device DeviceConfig `yaml:"device"`
	Radio  RadioConfig  `yaml:"radio"`
	Poll   PollConfig   `yaml:"poll"`
}

// MQTTConfig describes the broker connection. Packets received by the radio
// are published to <topic_prefix>/rx; payloads published to
// <topic_prefix>/tx are transmitted.
type MQTTConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// DeviceConfig selects the device node.
type DeviceConfig struct {
	Path   string `yaml:"path"`
	Shared bool   `yaml:"shared"`
}

// RadioConfig holds the physical-unit radio settings shared by both
// directions, plus the transmit power.
type RadioConfig struct {
	FrequencyMHz float64 `yaml:"frequency_mhz"`
	Modulation   string  `yaml:"modulation"`
	BaudRate     float64 `yaml:"baud_rate_kbaud"`
	BandwidthKHz float64 `yaml:"bandwidth_khz"`
	DeviationKHz float64 `yaml:"deviation_khz"`
	SyncWord     uint32  `yaml:"sync_word"`
	PacketLength uint32  `yaml:"packet_length"`
	TXPowerDBm   float64 `yaml:"tx_power_dbm"`
	TXPowerRaw   uint8   `yaml:"tx_power_raw"`
}

// PollConfig tunes the receive poll loop. Interval is a Go duration string
// ("50ms", "1s"); the parsed value lands in IntervalDuration.
type PollConfig struct {
	Interval    string `yaml:"interval"`
	PublishRSSI bool   `yaml:"publish_rssi"`

	IntervalDuration time.Duration `yaml:"-"`
}

// DefaultConfig returns the configuration the bridge starts from before the
// YAML file is applied.
func DefaultConfig() Config {
	return Config{
		MQTT: MQTTConfig{
			Host:        "localhost",
			Port:        1883,
			TopicPrefix: "cc1101",
		},
		Device: DeviceConfig{
			Path: "/dev/cc1101.0.0",
		},
		Radio: RadioConfig{
			FrequencyMHz: 433.92,
			Modulation:   "ook",
			BaudRate:     1.0,
			PacketLength: 64,
		},
		Poll: PollConfig{
			Interval: "50ms",
		},
	}
}

// LoadConfig reads and validates the YAML configuration at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MQTT.Host == "" {
		return fmt.Errorf("config: mqtt.host is required")
	}
	if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
		return fmt.Errorf("config: mqtt.port %d out of range", c.MQTT.Port)
	}
	if c.MQTT.TopicPrefix == "" {
		return fmt.Errorf("config: mqtt.topic_prefix is required")
	}
	if c.Device.Path == "" {
		return fmt.Errorf("config: device.path is required")
	}
	interval, err := time.ParseDuration(c.Poll.Interval)
	if err != nil {
		return fmt.Errorf("config: poll.interval: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("config: poll.interval must be positive")
	}
	c.Poll.IntervalDuration = interval
	return nil
}

// rxConfig builds the receive configuration from the radio settings.
func (c *Config) rxConfig() (*config.RXConfig, error) {
	modulation, err := config.ParseModulation(c.Radio.Modulation)
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewRXConfig(c.Radio.FrequencyMHz, modulation, c.Radio.BaudRate, c.Radio.PacketLength)
	if err != nil {
		return nil, err
	}
	if c.Radio.BandwidthKHz != 0 {
		if err := cfg.SetBandwidth(c.Radio.BandwidthKHz); err != nil {
			return nil, err
		}
	}
	if c.Radio.DeviationKHz != 0 {
		if err := cfg.SetDeviation(c.Radio.DeviationKHz); err != nil {
			return nil, err
		}
	}
	if c.Radio.SyncWord != 0 {
		if err := cfg.SetSyncWord(c.Radio.SyncWord); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// txConfig builds the transmit configuration from the radio settings. A
// non-zero tx_power_raw takes precedence over tx_power_dbm.
func (c *Config) txConfig() (*config.TXConfig, error) {
	modulation, err := config.ParseModulation(c.Radio.Modulation)
	if err != nil {
		return nil, err
	}
	var cfg *config.TXConfig
	if c.Radio.TXPowerRaw != 0 {
		cfg, err = config.NewTXConfigRaw(c.Radio.FrequencyMHz, modulation, c.Radio.BaudRate, c.Radio.TXPowerRaw)
	} else {
		cfg, err = config.NewTXConfig(c.Radio.FrequencyMHz, modulation, c.Radio.BaudRate, c.Radio.TXPowerDBm)
	}
	if err != nil {
		return nil, err
	}
	if c.Radio.DeviationKHz != 0 {
		if err := cfg.SetDeviation(c.Radio.DeviationKHz); err != nil {
			return nil, err
		}
	}
	if c.Radio.SyncWord != 0 {
		if err := cfg.SetSyncWord(c.Radio.SyncWord); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
