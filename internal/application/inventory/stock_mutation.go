package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	rules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

// StockMutationService aplica las líneas de una operación sobre el stock y el kardex.
// Debe ejecutarse dentro de la transacción de la validación: ante cualquier error el
// caller hace Rollback y no queda ningún cambio parcial.
type StockMutationService struct{}

// NewStockMutationService construye el servicio.
func NewStockMutationService() *StockMutationService {
	return &StockMutationService{}
}

// ApplyOperationLines recorre las líneas en orden. Por cada efecto: lee el stock, calcula el
// cambio, rechaza salidas que dejarían el stock negativo, escribe el nuevo stock y agrega la
// entrada al kardex. Los productos se bloquean primero en orden ascendente de ID para que dos
// validaciones concurrentes no se bloqueen mutuamente.
// En ajustes fija OldQuantity y Difference de cada línea en op.
func (s *StockMutationService) ApplyOperationLines(
	ctx context.Context,
	repos TxRepos,
	op *entity.Operation,
	actor string,
	now time.Time,
) ([]*entity.StockLedgerEntry, error) {
	ids := op.ProductIDs()
	sort.Strings(ids)

	// Bloquea las filas (SELECT FOR UPDATE) y deja el stock de trabajo en memoria
	current := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			current[id] = p.CurrentStock
		}
	}

	entries := make([]*entity.StockLedgerEntry, 0, len(op.Lines))
	for i := range op.Lines {
		line := &op.Lines[i]
		before, ok := current[line.ProductID]
		if !ok {
			return nil, &domain.StockError{Line: i, ProductID: line.ProductID, Err: domain.ErrProductNotFound}
		}

		effects, err := rules.LineEffects(op, *line, before)
		if err != nil {
			return nil, err
		}
		if op.Kind == entity.OperationKindAdjustment {
			old := before
			diff := line.NewQuantity.Sub(before)
			line.OldQuantity = &old
			line.Difference = &diff
		}

		for _, e := range effects {
			stockBefore := current[line.ProductID]
			stockAfter, err := rules.Apply(stockBefore, e)
			if err != nil {
				return nil, &domain.StockError{Line: i, ProductID: line.ProductID, Err: err}
			}
			if err := repos.Products.UpdateStock(ctx, line.ProductID, stockAfter, now); err != nil {
				return nil, err
			}
			current[line.ProductID] = stockAfter

			if err := s.moveWarehouseBalance(ctx, repos, line.ProductID, e, now); err != nil {
				return nil, err
			}

			entry := &entity.StockLedgerEntry{
				ID:              uuid.New().String(),
				ProductID:       line.ProductID,
				WarehouseID:     e.WarehouseID,
				OperationType:   e.OperationType,
				OperationID:     op.ID,
				OperationNumber: op.Number,
				QuantityChange:  e.Change,
				StockBefore:     stockBefore,
				StockAfter:      stockAfter,
				CreatedBy:       actor,
				CreatedAt:       now,
			}
			if err := repos.Ledger.Append(ctx, entry); err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// moveWarehouseBalance mantiene el saldo informativo por bodega en la misma transacción.
func (s *StockMutationService) moveWarehouseBalance(ctx context.Context, repos TxRepos, productID string, e rules.Effect, now time.Time) error {
	if e.WarehouseID == "" {
		return nil
	}
	st, err := repos.Stock.Get(ctx, productID, e.WarehouseID)
	if err != nil {
		return err
	}
	st.Quantity = st.Quantity.Add(e.Change)
	st.UpdatedAt = now
	return repos.Stock.Upsert(ctx, st)
}
