package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cc1101-mqtt.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  host: broker.local
  port: 8883
  username: radio
  password: hunter2
  topic_prefix: home/cc1101
device:
  path: /dev/cc1101.1.0
  shared: true
radio:
  frequency_mhz: 868.0
  modulation: gfsk
  baud_rate_kbaud: 38.4
  bandwidth_khz: 101.5625
  sync_word: 0xD391
  packet_length: 32
  tx_power_dbm: -0.3
poll:
  interval: 100ms
  publish_rssi: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MQTT.Host != "broker.local" || cfg.MQTT.Port != 8883 {
		t.Fatalf("broker = %s:%d, want broker.local:8883", cfg.MQTT.Host, cfg.MQTT.Port)
	}
	if cfg.MQTT.TopicPrefix != "home/cc1101" {
		t.Fatalf("topic prefix = %q", cfg.MQTT.TopicPrefix)
	}
	if cfg.Device.Path != "/dev/cc1101.1.0" || !cfg.Device.Shared {
		t.Fatalf("device = %+v", cfg.Device)
	}
	if cfg.Poll.IntervalDuration != 100*time.Millisecond || !cfg.Poll.PublishRSSI {
		t.Fatalf("poll = %+v", cfg.Poll)
	}

	rx, err := cfg.rxConfig()
	if err != nil {
		t.Fatalf("rxConfig: %v", err)
	}
	if rx.Bandwidth() != 101.5625 {
		t.Fatalf("bandwidth = %f, want 101.5625", rx.Bandwidth())
	}
	if rx.SyncWord() != 0xD391 {
		t.Fatalf("sync word = %#x, want 0xD391", rx.SyncWord())
	}
	if rx.PacketLength() != 32 {
		t.Fatalf("packet length = %d, want 32", rx.PacketLength())
	}

	tx, err := cfg.txConfig()
	if err != nil {
		t.Fatalf("txConfig: %v", err)
	}
	dbm, err := tx.TXPowerDBm()
	if err != nil {
		t.Fatalf("TXPowerDBm: %v", err)
	}
	if dbm != -0.3 {
		t.Fatalf("tx power = %f dBm, want -0.3", dbm)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  host: broker.local
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := DefaultConfig()
	if cfg.MQTT.Port != def.MQTT.Port {
		t.Fatalf("port = %d, want default %d", cfg.MQTT.Port, def.MQTT.Port)
	}
	if cfg.Radio.FrequencyMHz != def.Radio.FrequencyMHz {
		t.Fatalf("frequency = %f, want default %f", cfg.Radio.FrequencyMHz, def.Radio.FrequencyMHz)
	}
	if cfg.Poll.IntervalDuration != 50*time.Millisecond {
		t.Fatalf("interval = %v, want default 50ms", cfg.Poll.IntervalDuration)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"missing host": `
mqtt:
  host: ""
`,
		"bad port": `
mqtt:
  host: broker.local
  port: 70000
`,
		"unknown key": `
mqtt:
  host: broker.local
  broker_url: tcp://x
`,
		"zero interval": `
mqtt:
  host: broker.local
poll:
  interval: 0s
`,
	}
	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: config accepted", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
