package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/serroba/shortlink/internal/audit"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	events chan *audit.LinkCreatedEvent
}

func (s *recordingSink) LinkCreated(_ context.Context, event *audit.LinkCreatedEvent) error {
	s.events <- event

	return nil
}

func TestLogSink_LinkCreated(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := audit.NewLogSink(zap.New(core))

	err := sink.LinkCreated(context.Background(), &audit.LinkCreatedEvent{
		Code:      "promo",
		Target:    "https://example.com",
		Custom:    true,
		CreatedAt: time.Now(),
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "promo", fields["code"])
	assert.Equal(t, "https://example.com", fields["target"])
	assert.Equal(t, true, fields["custom"])
}

func TestLinkCreatedEvent_JSON(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := audit.LinkCreatedEvent{Code: "abc123", Target: "https://example.com", CreatedAt: createdAt}

	payload, err := json.Marshal(event)

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"code":"abc123","target":"https://example.com","custom":false,"createdAt":"2024-05-01T12:00:00Z"}`,
		string(payload),
	)
}

func TestNewConsumer_DeliversPublishedEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	sink := &recordingSink{events: make(chan *audit.LinkCreatedEvent, 1)}
	consumer := audit.NewConsumer(message.Subscriber(pubSub), sink, zap.NewNop())
	require.NoError(t, consumer.Start(context.Background()))
	t.Cleanup(func() { _ = consumer.Shutdown() })

	publish := messaging.NewPublishFunc[audit.LinkCreatedEvent](pubSub, audit.TopicLinkCreated)
	require.NoError(t, publish(&audit.LinkCreatedEvent{Code: "abc123", Target: "https://example.com"}))

	select {
	case event := <-sink.events:
		assert.Equal(t, "abc123", event.Code)
		assert.Equal(t, "https://example.com", event.Target)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}
