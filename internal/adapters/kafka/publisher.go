package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"propcomfy/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter accepts a comma-separated broker list.
func NewWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(splitBrokers(brokers)...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Publisher emits asset_recorded events keyed by client id.
type Publisher struct {
	w messageWriter
}

func NewPublisher(w messageWriter) *Publisher { return &Publisher{w: w} }

func (p *Publisher) PublishAssetRecorded(ctx context.Context, e domain.AssetRecorded) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal asset_recorded: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.ClientID),
		Value: b,
		Time:  time.UnixMilli(e.TsUnixMs),
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("asset_recorded")},
		},
	})
}

func (p *Publisher) Close() error { return p.w.Close() }

// Nop drops events; used when no brokers are configured.
type Nop struct{}

func (Nop) PublishAssetRecorded(ctx context.Context, e domain.AssetRecorded) error {
	log.Debug().Str("asset", e.Asset.ID).Msg("asset_recorded dropped (no broker)")
	return nil
}
