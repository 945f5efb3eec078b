package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.OperationRepository   = (*OperationRepo)(nil)
	_ repository.StockLedgerRepository = (*LedgerRepo)(nil)
	_ repository.StockRepository       = (*StockRepo)(nil)
)

// OperationRepo operaciones con sus líneas en memoria.
type OperationRepo struct{ a access }

func (r *OperationRepo) Create(_ context.Context, op *entity.Operation) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.operations {
			if other.Kind == op.Kind && other.Number == op.Number {
				return domain.ErrDuplicate
			}
		}
		st.operations[op.ID] = copyOperation(*op)
		return nil
	})
}

func (r *OperationRepo) GetByID(_ context.Context, kind, id string) (*entity.Operation, error) {
	var out *entity.Operation
	err := r.a.do(func(st *state) error {
		if op, ok := st.operations[id]; ok && op.Kind == kind {
			c := copyOperation(op)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *OperationRepo) GetForUpdate(ctx context.Context, kind, id string) (*entity.Operation, error) {
	return r.GetByID(ctx, kind, id)
}

func (r *OperationRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var list []*entity.Operation
	err := r.a.do(func(st *state) error {
		for _, op := range st.operations {
			if op.Kind != f.Kind || (f.Status != "" && op.Status != f.Status) {
				continue
			}
			c := copyOperation(op)
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Number > list[j].Number
	})
	return applyPage(list, f.Limit, f.Offset), err
}

func (r *OperationRepo) MarkDone(_ context.Context, op *entity.Operation) error {
	return r.a.do(func(st *state) error {
		cur, ok := st.operations[op.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = op.Status
		cur.ValidatedBy = op.ValidatedBy
		cur.ValidatedAt = op.ValidatedAt
		cur.UpdatedAt = op.UpdatedAt
		cur.Lines = append([]entity.OperationLine(nil), op.Lines...)
		st.operations[op.ID] = cur
		return nil
	})
}

func (r *OperationRepo) Delete(_ context.Context, kind, id string) error {
	return r.a.do(func(st *state) error {
		if op, ok := st.operations[id]; ok && op.Kind == kind {
			delete(st.operations, id)
		}
		return nil
	})
}

// LedgerRepo kardex en memoria, solo append.
type LedgerRepo struct{ a access }

func (r *LedgerRepo) Append(_ context.Context, e *entity.StockLedgerEntry) error {
	return r.a.do(func(st *state) error {
		st.seq++
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.Seq = st.seq
		st.ledger = append(st.ledger, *e)
		return nil
	})
}

func (r *LedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	var list []*entity.StockLedgerEntry
	err := r.a.do(func(st *state) error {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			e := st.ledger[i]
			if f.ProductID != "" && e.ProductID != f.ProductID {
				continue
			}
			if f.WarehouseID != "" && e.WarehouseID != f.WarehouseID {
				continue
			}
			if f.OperationType != "" && e.OperationType != f.OperationType {
				continue
			}
			if f.OperationID != "" && e.OperationID != f.OperationID {
				continue
			}
			if f.From != nil && e.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !e.CreatedAt.Before(*f.To) {
				continue
			}
			list = append(list, &e)
			if f.Limit > 0 && len(list) == f.Limit {
				break
			}
		}
		return nil
	})
	return list, err
}

func (r *LedgerRepo) SumByProduct(_ context.Context) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	err := r.a.do(func(st *state) error {
		for _, e := range st.ledger {
			out[e.ProductID] = out[e.ProductID].Add(e.QuantityChange)
		}
		return nil
	})
	return out, err
}

// StockRepo saldos por bodega en memoria.
type StockRepo struct{ a access }

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.a.do(func(st *state) error {
		s, ok := st.stock[stockKey{productID, warehouseID}]
		if !ok {
			s = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *StockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	return r.a.do(func(st *state) error {
		st.stock[stockKey{s.ProductID, s.WarehouseID}] = *s
		return nil
	})
}

func (r *StockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.Stock, error) {
	var list []*entity.Stock
	err := r.a.do(func(st *state) error {
		for k, s := range st.stock {
			if k.warehouseID == warehouseID {
				s := s
				list = append(list, &s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, err
}
