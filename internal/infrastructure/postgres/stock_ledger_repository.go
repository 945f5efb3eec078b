package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

const ledgerTable = "stock_ledger"

// StockLedgerRepo kardex append-only sobre PostgreSQL. seq es BIGSERIAL.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append inserta la entrada y devuelve en ella el seq asignado.
func (r *StockLedgerRepo) Append(ctx context.Context, e *entity.StockLedgerEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_ledger (id, product_id, warehouse_id, operation_type, operation_id, operation_number,
			quantity_change, stock_before, stock_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`,
		e.ID, e.ProductID, e.WarehouseID, e.OperationType, e.OperationID, e.OperationNumber,
		e.QuantityChange, e.StockBefore, e.StockAfter, e.CreatedBy, e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("append stock ledger: %w", err)
	}
	return nil
}

// List entradas filtradas, más recientes primero (seq descendente).
func (r *StockLedgerRepo) List(ctx context.Context, f repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	ds := builder.From(ledgerTable).
		Select("id", "seq", "product_id", "warehouse_id", "operation_type", "operation_id", "operation_number",
			"quantity_change", "stock_before", "stock_after", "created_by", "created_at").
		Order(goqu.I("seq").Desc()).
		Prepared(true)

	where := goqu.Ex{}
	if f.ProductID != "" {
		where["product_id"] = f.ProductID
	}
	if f.WarehouseID != "" {
		where["warehouse_id"] = f.WarehouseID
	}
	if f.OperationType != "" {
		where["operation_type"] = f.OperationType
	}
	if f.OperationID != "" {
		where["operation_id"] = f.OperationID
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}
	if f.From != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*f.From))
	}
	if f.To != nil {
		ds = ds.Where(goqu.C("created_at").Lt(*f.To))
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build stock ledger query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(
			&e.ID, &e.Seq, &e.ProductID, &e.WarehouseID, &e.OperationType, &e.OperationID, &e.OperationNumber,
			&e.QuantityChange, &e.StockBefore, &e.StockAfter, &e.CreatedBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock ledger: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByProduct Σ quantity_change por producto (conciliación).
func (r *StockLedgerRepo) SumByProduct(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, SUM(quantity_change) FROM stock_ledger GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("sum stock ledger: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			id  string
			sum decimal.Decimal
		)
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan stock ledger sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}
