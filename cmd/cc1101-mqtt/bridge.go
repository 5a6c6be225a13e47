package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/subghz/cc1101"
	"github.com/subghz/cc1101/config"
	"github.com/subghz/cc1101/internal/logging"
)

// rxMessage is the JSON payload published for every received packet.
type rxMessage struct {
	Time    time.Time `json:"time"`
	Data    string    `json:"data"` // hex encoded
	RSSIDBm *float64  `json:"rssi_dbm,omitempty"`
}

// txMessage is the JSON payload accepted on the transmit topic.
type txMessage struct {
	Data   string `json:"data"` // hex encoded
	Repeat int    `json:"repeat,omitempty"`
}

type txRequest struct {
	payload []byte
	repeat  int
}

// bridge couples one radio session to one broker connection. The device is
// not safe for concurrent use, so subscription callbacks only queue transmit
// requests; the run loop is the single goroutine touching the session.
type bridge struct {
	cfg     Config
	dev     *cc1101.Device
	tx      *config.TXConfig
	conn    mqtt.Client
	txQueue chan txRequest
	log     logging.Logger
}

func newBridge(cfg Config, dev *cc1101.Device, tx *config.TXConfig, log logging.Logger) (*bridge, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	opts.ClientID = cfg.MQTT.ClientID
	opts.Username = cfg.MQTT.Username
	opts.Password = cfg.MQTT.Password
	opts.AutoReconnect = true

	conn := mqtt.NewClient(opts)
	if token := conn.Connect(); !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to broker: timeout")
	} else if token.Error() != nil {
		return nil, fmt.Errorf("connect to broker: %w", token.Error())
	}

	b := &bridge{
		cfg:     cfg,
		dev:     dev,
		tx:      tx,
		conn:    conn,
		txQueue: make(chan txRequest, 16),
		log:     log,
	}
	topic := cfg.MQTT.TopicPrefix + "/tx"
	if token := conn.Subscribe(topic, 1, b.handleTX); !token.WaitTimeout(5 * time.Second) {
		conn.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: timeout", topic)
	} else if token.Error() != nil {
		conn.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Info("broker connected",
		logging.F("broker", fmt.Sprintf("%s:%d", cfg.MQTT.Host, cfg.MQTT.Port)),
		logging.F("prefix", cfg.MQTT.TopicPrefix))
	return b, nil
}

func (b *bridge) close() {
	b.conn.Disconnect(250)
}

// run is the bridge's main loop: it drains the radio on every tick,
// publishes what arrived, and serves queued transmit requests in between.
func (b *bridge) run(ctx context.Context) error {
	ticker := time.NewTicker(b.cfg.Poll.IntervalDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-b.txQueue:
			if err := b.transmit(req); err != nil {
				return err
			}
		case <-ticker.C:
			if err := b.publishReceived(); err != nil {
				return err
			}
		}
	}
}

func (b *bridge) publishReceived() error {
	packets, err := b.dev.Receive()
	if err != nil {
		return err
	}
	topic := b.cfg.MQTT.TopicPrefix + "/rx"
	for _, packet := range packets {
		msg := rxMessage{Time: time.Now(), Data: hex.EncodeToString(packet)}
		if b.cfg.Poll.PublishRSSI {
			if raw, err := b.dev.RSSI(); err == nil {
				dbm := config.RSSIToDBm(raw)
				msg.RSSIDBm = &dbm
			}
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		b.conn.Publish(topic, 1, false, payload)
		b.log.Debug("published", logging.F("bytes", len(packet)))
	}
	return nil
}

func (b *bridge) transmit(req txRequest) error {
	for i := 0; i < req.repeat; i++ {
		if err := b.dev.Transmit(b.tx, req.payload); err != nil {
			return err
		}
	}
	b.log.Info("transmitted", logging.F("bytes", len(req.payload)), logging.F("repeat", req.repeat))
	return nil
}

// handleTX runs on a paho callback goroutine; it only validates and queues.
func (b *bridge) handleTX(_ mqtt.Client, m mqtt.Message) {
	var msg txMessage
	if err := json.Unmarshal(m.Payload(), &msg); err != nil {
		b.log.Warn("bad transmit payload", logging.F("err", err))
		return
	}
	payload, err := hex.DecodeString(msg.Data)
	if err != nil {
		b.log.Warn("bad transmit payload", logging.F("err", err))
		return
	}
	if len(payload) == 0 {
		b.log.Warn("empty transmit payload")
		return
	}
	repeat := msg.Repeat
	if repeat < 1 {
		repeat = 1
	}
	select {
	case b.txQueue <- txRequest{payload: payload, repeat: repeat}:
	default:
		b.log.Warn("transmit queue full, dropping packet")
	}
}
