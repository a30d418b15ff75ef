package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/kafka"
	"studiodesk/infras/otel"
	"studiodesk/shared/constant"
	"studiodesk/shared/timezone"
)

const publishTimeout = 5 * time.Second

const (
	TypeBookingCreated = "booking.created"
	TypeInvoiceCreated = "invoice.created"
	TypeInvoiceUpdated = "invoice.updated"
	TypeInvoiceDeleted = "invoice.deleted"
)

// Event is the envelope written to Kafka. EntityID doubles as the message key
// so every event for one booking or invoice lands on the same partition.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Publisher emits domain events after a write has committed. Delivery is best
// effort: failures are logged and never fail the originating request.
type Publisher interface {
	Booking(ctx context.Context, eventType, bookingID string, data any)
	Invoice(ctx context.Context, eventType, invoiceID string, data any)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) Booking(ctx context.Context, eventType, bookingID string, data any) {
	p.publish(ctx, p.cfg.Kafka.Topic.Booking, eventType, bookingID, data)
}

func (p *publisherImpl) Invoice(ctx context.Context, eventType, invoiceID string, data any) {
	p.publish(ctx, p.cfg.Kafka.Topic.Invoice, eventType, invoiceID, data)
}

func (p *publisherImpl) publish(ctx context.Context, topic, eventType, entityID string, data any) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+eventType)
	defer scope.End()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: timezone.Now(),
		Data:       data,
	}

	err := p.client.SendMessages(ctx, topic, kafka.Message{Key: entityID, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", eventType).Str("entity", entityID).Msg("failed to publish event")
	}
}
