// Package kafka publica las entradas del kardex en un tópico Kafka después de cada validación.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventTypeLedgerEntry tipo del evento en el header "event-type".
const EventTypeLedgerEntry = "stockmaster.stock_ledger.entry_created"

// ErrCircuitOpen el breaker está abierto y no se intentó publicar.
var ErrCircuitOpen = errors.New("kafka: circuit breaker abierto")

var _ inventory.LedgerPublisher = (*LedgerPublisher)(nil)

// LedgerEvent cuerpo JSON de cada mensaje.
type LedgerEvent struct {
	EntryID         string          `json:"entry_id"`
	Seq             int64           `json:"seq"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	OperationType   string          `json:"operation_type"`
	OperationKind   string          `json:"operation_kind"`
	OperationID     string          `json:"operation_id"`
	OperationNumber string          `json:"operation_number"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	StockBefore     decimal.Decimal `json:"stock_before"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BreakerSettings umbrales del circuit breaker.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// DefaultBreakerSettings abre tras 5 fallos seguidos y reintenta a los 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

// LedgerPublisher escribe un mensaje por entrada del kardex, con clave product_id para
// conservar el orden por producto dentro de la partición.
type LedgerPublisher struct {
	writer  messageWriter
	topic   string
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

// NewLedgerPublisher crea el publisher sobre un kafka.Writer síncrono.
func NewLedgerPublisher(cfg config.KafkaConfig, log *logger.Logger) *LedgerPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.LedgerTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return newLedgerPublisher(w, cfg.LedgerTopic, DefaultBreakerSettings(), log)
}

func newLedgerPublisher(w messageWriter, topic string, bs BreakerSettings, log *logger.Logger) *LedgerPublisher {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("kafka")
	settings := gobreaker.Settings{
		Name:        "kafka-ledger",
		MaxRequests: 1,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cambio de estado del circuit breaker")
		},
	}
	return &LedgerPublisher{
		writer:  w,
		topic:   topic,
		breaker: gobreaker.NewCircuitBreaker(settings),
		log:     log,
	}
}

// PublishLedgerEntries publica las entradas de una operación validada.
func (p *LedgerPublisher) PublishLedgerEntries(ctx context.Context, op *entity.Operation, entries []*entity.StockLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs, err := buildMessages(ctx, op, entries)
	if err != nil {
		return err
	}
	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, msgs...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	if err != nil {
		return fmt.Errorf("publicar kardex en %s: %w", p.topic, err)
	}
	p.log.Debug().Str("operation_id", op.ID).Int("messages", len(msgs)).Msg("kardex publicado")
	return nil
}

// Close libera el writer.
func (p *LedgerPublisher) Close() error {
	return p.writer.Close()
}

func buildMessages(ctx context.Context, op *entity.Operation, entries []*entity.StockLedgerEntry) ([]kafka.Message, error) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(LedgerEvent{
			EntryID:         e.ID,
			Seq:             e.Seq,
			ProductID:       e.ProductID,
			WarehouseID:     e.WarehouseID,
			OperationType:   e.OperationType,
			OperationKind:   op.Kind,
			OperationID:     e.OperationID,
			OperationNumber: e.OperationNumber,
			QuantityChange:  e.QuantityChange,
			StockBefore:     e.StockBefore,
			StockAfter:      e.StockAfter,
			CreatedBy:       e.CreatedBy,
			CreatedAt:       e.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("serializar entrada %s: %w", e.ID, err)
		}
		headers := []kafka.Header{
			{Key: "event-type", Value: []byte(EventTypeLedgerEntry)},
			{Key: "event-id", Value: []byte(e.ID)},
			{Key: "operation-number", Value: []byte(op.Number)},
			{Key: "content-type", Value: []byte("application/json")},
		}
		for k, v := range carrier {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(e.ProductID),
			Value:   data,
			Headers: headers,
			Time:    e.CreatedAt,
		})
	}
	return msgs, nil
}
