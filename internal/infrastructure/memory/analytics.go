package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo proyecciones del dashboard calculadas sobre el estado en memoria.
type AnalyticsRepo struct{ a access }

func (r *AnalyticsRepo) CountActiveProducts(_ context.Context) (int, error) {
	n := 0
	err := r.a.do(func(st *state) error {
		for _, p := range st.products {
			if p.IsActive {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountLowStockProducts(_ context.Context) (int, error) {
	n := 0
	err := r.a.do(func(st *state) error {
		for _, p := range st.products {
			if p.IsLowStock() {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) CountOperations(_ context.Context, kind, status string) (int, error) {
	n := 0
	err := r.a.do(func(st *state) error {
		for _, op := range st.operations {
			if op.Kind == kind && op.Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AnalyticsRepo) TopSellingProducts(_ context.Context, from, to time.Time, limit int) ([]repository.ProductQuantityResult, error) {
	var out []repository.ProductQuantityResult
	err := r.a.do(func(st *state) error {
		totals := map[string]decimal.Decimal{}
		for _, op := range st.operations {
			if op.Kind != entity.OperationKindDelivery || op.Status != entity.OperationStatusDone || op.ValidatedAt == nil {
				continue
			}
			if op.ValidatedAt.Before(from) || !op.ValidatedAt.Before(to) {
				continue
			}
			for _, l := range op.Lines {
				totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
			}
		}
		for id, qty := range totals {
			p, ok := st.products[id]
			if !ok {
				continue
			}
			out = append(out, repository.ProductQuantityResult{
				ProductID:    id,
				ProductName:  p.Name,
				SKU:          p.SKU,
				CategoryName: st.categories[p.CategoryID].Name,
				Quantity:     qty,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c > 0
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *AnalyticsRepo) RecentPurchasedProducts(_ context.Context, limit int) ([]repository.RecentPurchaseResult, error) {
	type row struct {
		res    repository.RecentPurchaseResult
		lineNo int
	}
	var rows []row
	err := r.a.do(func(st *state) error {
		for _, op := range st.operations {
			if op.Kind != entity.OperationKindReceipt || op.Status != entity.OperationStatusDone || op.ValidatedAt == nil {
				continue
			}
			for _, l := range op.Lines {
				p, ok := st.products[l.ProductID]
				if !ok {
					continue
				}
				rows = append(rows, row{
					lineNo: l.LineNo,
					res: repository.RecentPurchaseResult{
						ProductID:       p.ID,
						ProductName:     p.Name,
						SKU:             p.SKU,
						Quantity:        l.Quantity,
						OperationNumber: op.Number,
						PartnerName:     st.partners[op.PartnerID].Name,
						ValidatedAt:     *op.ValidatedAt,
					},
				})
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].res, rows[j].res
		if !a.ValidatedAt.Equal(b.ValidatedAt) {
			return a.ValidatedAt.After(b.ValidatedAt)
		}
		if a.OperationNumber != b.OperationNumber {
			return a.OperationNumber > b.OperationNumber
		}
		return rows[i].lineNo < rows[j].lineNo
	})
	out := make([]repository.RecentPurchaseResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.res)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, err
}
