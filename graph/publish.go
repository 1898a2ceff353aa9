// Package graph publishes the output graphs of a run to NATS JetStream.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/m0convert/export"
)

// StreamPublisher publishes to a JetStream stream. *natsclient.Client
// satisfies it.
type StreamPublisher interface {
	PublishToStream(ctx context.Context, subject string, data []byte) error
}

// Publisher sends each written graph to {prefix}.{graph}.
type Publisher struct {
	client StreamPublisher
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a publisher. A nil client disables publishing.
func NewPublisher(client StreamPublisher, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, prefix: prefix, logger: logger, now: time.Now}
}

// Subject returns the subject a graph is published on. Dots in the graph
// name would add subject tokens and are replaced.
func Subject(prefix, graph string) string {
	return prefix + "." + strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_").Replace(graph)
}

// Publish sends one serialized graph.
func (p *Publisher) Publish(ctx context.Context, graph string, format export.Format, content string, triples int) error {
	if p.client == nil {
		return nil
	}

	payload := &GraphPayload{
		Graph:       graph,
		Format:      string(format),
		Triples:     triples,
		Content:     content,
		PublishedAt: p.now().UTC(),
	}
	if info, ok := export.GetFormatInfo(format); ok {
		payload.MIMEType = info.MIMEType
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid graph payload: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal graph payload: %w", err)
	}

	subject := Subject(p.prefix, graph)
	if err := p.client.PublishToStream(ctx, subject, data); err != nil {
		return fmt.Errorf("publish graph %s: %w", graph, err)
	}
	p.logger.Info("Published graph", "subject", subject, "triples", triples, "bytes", len(data))
	return nil
}

// EnsureStream creates or updates the stream capturing every subject under
// prefix.
func EnsureStream(ctx context.Context, js jetstream.JetStream, name, prefix string) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        name,
		Description: "Target graphs produced by m0convert",
		Subjects:    []string{prefix + ".>"},
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}
