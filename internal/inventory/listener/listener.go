package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/tijara/storefront-service/internal/inventory"
	"github.com/tijara/storefront-service/internal/inventory/dto"
	invrepo "github.com/tijara/storefront-service/internal/inventory/repository"
	"github.com/tijara/storefront-service/pkg/broker"
	"github.com/tijara/storefront-service/pkg/logger"
	"go.uber.org/zap"
)

// StockListener consumes order events and deducts stock for tracked
// products. Orders themselves are owned by the checkout service; this
// service only reacts to them.
type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.Logger) *StockListener {
	return &StockListener{consumer: consumer, uc: uc, logger: log}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting stock Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping stock Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID      string             `json:"id"`
	StoreID string             `json:"store_id"`
	Items   []OrderItemPayload `json:"items"`
}

// OrderItemPayload matches the cart entries the quote flow emits: one
// entry per physical item, quantity always 1.
type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	// Entries for the same product collapse into one deduction.
	perProduct := make(map[string]int)
	for _, item := range event.Payload.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		perProduct[item.ProductID] += qty
	}

	for productID, qty := range perProduct {
		_, err := l.uc.AdjustStock(ctx, &dto.AdjustStockInput{
			StoreID:        event.Payload.StoreID,
			ProductID:      productID,
			QuantityChange: -qty,
			Reason:         "Order sale",
			ReferenceType:  "order",
			ReferenceID:    event.Payload.ID,
			UserID:         "system",
		})
		if err != nil {
			// Untracked products are expected to show up here; only real
			// failures are worth an error entry.
			if errors.Is(err, invrepo.ErrNotTracked) {
				continue
			}
			l.logger.Error("Failed to adjust stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
	}
}
