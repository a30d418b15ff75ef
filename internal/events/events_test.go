package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"studiodesk/config"
	"studiodesk/infras/kafka"
	kafkaMocks "studiodesk/infras/kafka/mocks"
	otelMocks "studiodesk/infras/otel/mocks"
	"studiodesk/internal/events"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topic.Booking = "studiodesk.booking"
	cfg.Kafka.Topic.Invoice = "studiodesk.invoice"

	return cfg
}

func TestPublisher_Booking(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	client.EXPECT().
		SendMessages(gomock.Any(), "studiodesk.booking", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
			assert.Len(t, msgs, 1)
			assert.Equal(t, "aB3xY9", msgs[0].Key)

			event, ok := msgs[0].Value.(events.Event)
			assert.True(t, ok)
			assert.Equal(t, events.TypeBookingCreated, event.Type)
			assert.Equal(t, "aB3xY9", event.EntityID)
			assert.NotEmpty(t, event.ID)
			assert.False(t, event.OccurredAt.IsZero())

			return nil
		})

	publisher := events.New(client, newConfig(), otelMocks.NewOtel())
	publisher.Booking(context.Background(), events.TypeBookingCreated, "aB3xY9", nil)
}

func TestPublisher_InvoiceSurvivesBrokerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	client.EXPECT().
		SendMessages(gomock.Any(), "studiodesk.invoice", gomock.Any()).
		Return(errors.New("broker unavailable"))

	publisher := events.New(client, newConfig(), otelMocks.NewOtel())

	assert.NotPanics(t, func() {
		publisher.Invoice(context.Background(), events.TypeInvoiceDeleted, "INV001", nil)
	})
}

func TestPublisher_CanceledRequestStillPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	client.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...kafka.Message) error {
			assert.NoError(t, ctx.Err())

			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events.New(client, newConfig(), otelMocks.NewOtel()).Invoice(ctx, events.TypeInvoiceCreated, "INV001", nil)
}
