package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products   repository.ProductRepository
	Stock      repository.StockRepository
	Ledger     repository.StockLedgerRepository
	Operations repository.OperationRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// LedgerPublisher publica las entradas del kardex de una operación ya confirmada.
type LedgerPublisher interface {
	PublishLedgerEntries(ctx context.Context, op *entity.Operation, entries []*entity.StockLedgerEntry) error
}

// DocumentGenerator genera el comprobante imprimible de una operación.
type DocumentGenerator interface {
	GenerateOperationPDF(ctx context.Context, op *dto.OperationResponse) ([]byte, error)
}

// NoopPublisher descarta los eventos (Kafka deshabilitado).
type NoopPublisher struct{}

// PublishLedgerEntries no hace nada.
func (NoopPublisher) PublishLedgerEntries(context.Context, *entity.Operation, []*entity.StockLedgerEntry) error {
	return nil
}
