package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationColumns = `id, kind, number, partner_id, warehouse_id, to_warehouse_id, status, date, reason, notes,
	created_by, validated_by, validated_at, created_at, updated_at`

// OperationRepo cabeceras y líneas de las cuatro clases de operación sobre PostgreSQL.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

// Create inserta cabecera y líneas. Se espera que el llamador esté dentro de una tx.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO operations (`+operationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		op.ID, op.Kind, op.Number, nullable(op.PartnerID), op.WarehouseID, nullable(op.ToWarehouseID),
		op.Status, op.Date, op.Reason, op.Notes, op.CreatedBy, op.ValidatedBy, op.ValidatedAt,
		op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	for _, l := range op.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO operation_lines (id, operation_id, line_no, product_id, quantity, new_quantity, old_quantity, difference)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, op.ID, l.LineNo, l.ProductID, l.Quantity, l.NewQuantity, l.OldQuantity, l.Difference,
		)
		if err != nil {
			return fmt.Errorf("insert operation line %d: %w", l.LineNo, err)
		}
	}
	return nil
}

// GetByID obtiene la operación con sus líneas. (nil, nil) si no existe o es de otro tipo.
func (r *OperationRepo) GetByID(ctx context.Context, kind, id string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE kind = $1 AND id = $2`, kind, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la tx.
func (r *OperationRepo) GetForUpdate(ctx context.Context, kind, id string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE kind = $1 AND id = $2 FOR UPDATE`, kind, id)
}

func (r *OperationRepo) getOne(ctx context.Context, query, kind, id string) (*entity.Operation, error) {
	op, err := scanOperation(r.q.QueryRow(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	lines, err := r.loadLines(ctx, []string{op.ID})
	if err != nil {
		return nil, err
	}
	op.Lines = lines[op.ID]
	return op, nil
}

// List cabeceras con líneas, más recientes primero.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	ds := builder.From("operations").
		Select(goqu.L(operationColumns)).
		Where(goqu.C("kind").Eq(f.Kind)).
		Order(goqu.C("created_at").Desc(), goqu.C("number").Desc()).
		Prepared(true)
	if f.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(f.Status))
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build operation list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	var (
		list []*entity.Operation
		ids  []string
	)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
		ids = append(ids, op.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, op := range list {
		op.Lines = lines[op.ID]
	}
	return list, nil
}

// MarkDone persiste la transición a done y los valores capturados de los ajustes.
func (r *OperationRepo) MarkDone(ctx context.Context, op *entity.Operation) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE operations SET status = $3, validated_by = $4, validated_at = $5, updated_at = $6
		WHERE kind = $1 AND id = $2`,
		op.Kind, op.ID, op.Status, op.ValidatedBy, op.ValidatedAt, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("mark operation done: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if op.Kind != entity.OperationKindAdjustment {
		return nil
	}
	for _, l := range op.Lines {
		_, err := r.q.Exec(ctx,
			`UPDATE operation_lines SET old_quantity = $2, difference = $3 WHERE id = $1`,
			l.ID, l.OldQuantity, l.Difference,
		)
		if err != nil {
			return fmt.Errorf("update adjustment line %d: %w", l.LineNo, err)
		}
	}
	return nil
}

// Delete elimina la cabecera; las líneas caen por ON DELETE CASCADE.
func (r *OperationRepo) Delete(ctx context.Context, kind, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM operations WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OperationRepo) loadLines(ctx context.Context, operationIDs []string) (map[string][]entity.OperationLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, operation_id, line_no, product_id, quantity, new_quantity, old_quantity, difference
		FROM operation_lines WHERE operation_id = ANY($1::uuid[])
		ORDER BY operation_id, line_no`,
		operationIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list operation lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.OperationLine, len(operationIDs))
	for rows.Next() {
		var l entity.OperationLine
		if err := rows.Scan(&l.ID, &l.OperationID, &l.LineNo, &l.ProductID, &l.Quantity, &l.NewQuantity, &l.OldQuantity, &l.Difference); err != nil {
			return nil, fmt.Errorf("scan operation line: %w", err)
		}
		out[l.OperationID] = append(out[l.OperationID], l)
	}
	return out, rows.Err()
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var (
		op                     entity.Operation
		partnerID, toWarehouse *string
	)
	err := row.Scan(
		&op.ID, &op.Kind, &op.Number, &partnerID, &op.WarehouseID, &toWarehouse, &op.Status, &op.Date,
		&op.Reason, &op.Notes, &op.CreatedBy, &op.ValidatedBy, &op.ValidatedAt, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.PartnerID = deref(partnerID)
	op.ToWarehouseID = deref(toWarehouse)
	return &op, nil
}
