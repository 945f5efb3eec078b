package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	rules "github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/metrics"
	"github.com/jhoicas/stockmaster-api/pkg/telemetry"
)

// Prefijos de numeración por tipo de operación.
var numberPrefix = map[string]string{
	entity.OperationKindReceipt:    "REC",
	entity.OperationKindDelivery:   "DEL",
	entity.OperationKindTransfer:   "TRF",
	entity.OperationKindAdjustment: "ADJ",
}

// OperationUseCase ciclo de vida de las operaciones de inventario: draft -> done.
// Solo Validate mueve stock, siempre dentro de una transacción.
type OperationUseCase struct {
	txRunner   TxRunner
	operations repository.OperationRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	partners   repository.PartnerRepository
	mutation   *StockMutationService
	publisher  LedgerPublisher
	documents  DocumentGenerator
	metrics    *metrics.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// OperationDeps dependencias del caso de uso. Publisher, Documents, Metrics y Logger son opcionales.
type OperationDeps struct {
	TxRunner   TxRunner
	Operations repository.OperationRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Partners   repository.PartnerRepository
	Publisher  LedgerPublisher
	Documents  DocumentGenerator
	Metrics    *metrics.Metrics
	Logger     *logger.Logger
	Clock      func() time.Time
}

// NewOperationUseCase construye el caso de uso.
func NewOperationUseCase(deps OperationDeps) *OperationUseCase {
	uc := &OperationUseCase{
		txRunner:   deps.TxRunner,
		operations: deps.Operations,
		products:   deps.Products,
		warehouses: deps.Warehouses,
		partners:   deps.Partners,
		mutation:   NewStockMutationService(),
		publisher:  deps.Publisher,
		documents:  deps.Documents,
		metrics:    deps.Metrics,
		log:        deps.Logger,
		now:        deps.Clock,
	}
	if uc.publisher == nil {
		uc.publisher = NoopPublisher{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.now == nil {
		uc.now = func() time.Time { return time.Now().UTC() }
	}
	uc.log = uc.log.Component("operations")
	return uc
}

// Create persiste cabecera y líneas en draft como una unidad. Nunca mueve stock.
func (uc *OperationUseCase) Create(ctx context.Context, kind, actor string, in dto.CreateOperationRequest) (*dto.OperationResponse, error) {
	if !entity.ValidOperationKind(kind) {
		return nil, domain.InvalidInput("tipo de operación desconocido %q", kind)
	}
	now := uc.now()
	op := &entity.Operation{
		ID:        uuid.New().String(),
		Kind:      kind,
		Number:    strings.TrimSpace(in.Number),
		Status:    entity.OperationStatusDraft,
		Date:      now,
		Notes:     in.Notes,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Date != nil {
		op.Date = in.Date.UTC()
	}
	if err := uc.buildHeader(ctx, op, in); err != nil {
		return nil, err
	}

	lines := make([]entity.OperationLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		line := entity.OperationLine{
			ID:          uuid.New().String(),
			OperationID: op.ID,
			LineNo:      i + 1,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
		}
		if kind == entity.OperationKindAdjustment {
			if l.NewQuantity == nil {
				return nil, domain.InvalidInput("línea %d: new_quantity requerido", i+1)
			}
			line.NewQuantity = *l.NewQuantity
		}
		lines = append(lines, line)
	}
	if err := rules.ValidateLines(kind, lines); err != nil {
		return nil, err
	}
	for _, l := range lines {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("línea %d: %w", l.LineNo, domain.ErrProductNotFound)
		}
	}
	op.Lines = lines
	if op.Number == "" {
		op.Number = GenerateNumber(kind, now)
	}

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		return repos.Operations.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, op, newLookupCache())
}

// buildHeader valida contraparte y bodegas según el tipo.
func (uc *OperationUseCase) buildHeader(ctx context.Context, op *entity.Operation, in dto.CreateOperationRequest) error {
	switch op.Kind {
	case entity.OperationKindTransfer:
		from := in.FromWarehouseID
		if from == "" {
			from = in.WarehouseID
		}
		if from == "" || in.ToWarehouseID == "" {
			return domain.InvalidInput("from_warehouse_id y to_warehouse_id son requeridos")
		}
		if from == in.ToWarehouseID {
			return domain.InvalidInput("las bodegas de origen y destino deben ser distintas")
		}
		op.WarehouseID = from
		op.ToWarehouseID = in.ToWarehouseID
	default:
		if in.WarehouseID == "" {
			return domain.InvalidInput("warehouse_id es requerido")
		}
		op.WarehouseID = in.WarehouseID
	}
	for _, id := range []string{op.WarehouseID, op.ToWarehouseID} {
		if id == "" {
			continue
		}
		wh, err := uc.warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
		}
		if !wh.IsActive {
			return domain.InvalidInput("la bodega %s está inactiva", wh.Name)
		}
	}

	if in.PartnerID != "" {
		var want string
		switch op.Kind {
		case entity.OperationKindReceipt:
			want = entity.PartnerTypeSupplier
		case entity.OperationKindDelivery:
			want = entity.PartnerTypeCustomer
		default:
			return domain.InvalidInput("partner_id solo aplica a recepciones y entregas")
		}
		p, err := uc.partners.GetByID(ctx, in.PartnerID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("contraparte %s: %w", in.PartnerID, domain.ErrNotFound)
		}
		if p.Type != want {
			return domain.InvalidInput("la contraparte debe ser de tipo %s", want)
		}
		op.PartnerID = in.PartnerID
	}
	if op.Kind == entity.OperationKindAdjustment {
		op.Reason = in.Reason
	}
	return nil
}

// Get devuelve la operación con sus detalles. (nil, nil) si no existe.
func (uc *OperationUseCase) Get(ctx context.Context, kind, id string) (*dto.OperationResponse, error) {
	op, err := uc.operations.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, op, newLookupCache())
}

// List lista operaciones de un tipo, más recientes primero.
func (uc *OperationUseCase) List(ctx context.Context, kind string, in dto.OperationListRequest) (*dto.OperationListResponse, error) {
	if !entity.ValidOperationKind(kind) {
		return nil, domain.InvalidInput("tipo de operación desconocido %q", kind)
	}
	in.DefaultPage()
	list, err := uc.operations.List(ctx, repository.OperationFilter{
		Kind:   kind,
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	cache := newLookupCache()
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		r, err := uc.toResponse(ctx, op, cache)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Validate es la única transición draft -> done. En una sola transacción bloquea la cabecera,
// aplica las líneas sobre el stock y el kardex y marca la operación como done.
// ErrNotFound si no existe, ErrInvalidState si ya está done; cualquier error de las líneas
// deja stock, kardex y estado sin cambios.
func (uc *OperationUseCase) Validate(ctx context.Context, kind, id, actor string) (*dto.OperationResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "operation.validate")
	defer span.End()
	span.SetAttributes(
		attribute.String("operation.kind", kind),
		attribute.String("operation.id", id),
	)

	var (
		validated *entity.Operation
		entries   []*entity.StockLedgerEntry
	)
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		op, err := repos.Operations.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if !op.IsDraft() {
			return domain.ErrInvalidState
		}
		now := uc.now()
		entries, err = uc.mutation.ApplyOperationLines(ctx, repos, op, actor, now)
		if err != nil {
			return err
		}
		op.Status = entity.OperationStatusDone
		op.ValidatedBy = actor
		op.ValidatedAt = &now
		op.UpdatedAt = now
		if err := repos.Operations.MarkDone(ctx, op); err != nil {
			return err
		}
		validated = op
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.ValidationDone(kind, errorCode(err))
		uc.log.Warn().Err(err).Str("kind", kind).Str("operation_id", id).Str("actor", actor).Msg("validación rechazada")
		return nil, err
	}

	span.SetAttributes(attribute.Int("ledger.entries", len(entries)))
	uc.metrics.ValidationDone(kind, "ok")
	for _, e := range entries {
		uc.metrics.LedgerEntryWritten(e.OperationType)
	}
	uc.log.Info().
		Str("kind", kind).
		Str("operation_id", validated.ID).
		Str("number", validated.Number).
		Str("actor", actor).
		Int("ledger_entries", len(entries)).
		Msg("operación validada")

	// Publicación best-effort: la transacción ya está confirmada.
	if err := uc.publisher.PublishLedgerEntries(ctx, validated, entries); err != nil {
		uc.metrics.LedgerPublishFailed()
		uc.log.Error().Err(err).Str("operation_id", validated.ID).Msg("no se pudo publicar el kardex")
	}
	return uc.toResponse(ctx, validated, newLookupCache())
}

// Delete elimina una operación y sus líneas. Solo se permite en draft.
func (uc *OperationUseCase) Delete(ctx context.Context, kind, id string) error {
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		op, err := repos.Operations.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if !op.IsDraft() {
			return domain.ErrInvalidState
		}
		return repos.Operations.Delete(ctx, kind, id)
	})
}

// Document genera el PDF imprimible de la operación.
func (uc *OperationUseCase) Document(ctx context.Context, kind, id string) ([]byte, *dto.OperationResponse, error) {
	if uc.documents == nil {
		return nil, nil, errors.New("generador de documentos no configurado")
	}
	out, err := uc.Get(ctx, kind, id)
	if err != nil {
		return nil, nil, err
	}
	if out == nil {
		return nil, nil, domain.ErrNotFound
	}
	pdf, err := uc.documents.GenerateOperationPDF(ctx, out)
	if err != nil {
		return nil, nil, err
	}
	return pdf, out, nil
}

// GenerateNumber arma el número legible: PREFIJO-YYYYMMDD-XXXXXXXX.
func GenerateNumber(kind string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", numberPrefix[kind], at.Format("20060102"), suffix)
}

// errorCode etiqueta corta del error para métricas.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	default:
		return "internal"
	}
}

// lookupCache evita releer productos, bodegas y contrapartes al armar varias respuestas.
type lookupCache struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	partners   map[string]*entity.Partner
}

func newLookupCache() *lookupCache {
	return &lookupCache{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		partners:   map[string]*entity.Partner{},
	}
}

func (uc *OperationUseCase) warehouseName(ctx context.Context, c *lookupCache, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	w, ok := c.warehouses[id]
	if !ok {
		var err error
		if w, err = uc.warehouses.GetByID(ctx, id); err != nil {
			return "", err
		}
		c.warehouses[id] = w
	}
	if w == nil {
		return "", nil
	}
	return w.Name, nil
}

func (uc *OperationUseCase) toResponse(ctx context.Context, op *entity.Operation, c *lookupCache) (*dto.OperationResponse, error) {
	out := &dto.OperationResponse{
		ID:            op.ID,
		Kind:          op.Kind,
		Number:        op.Number,
		Status:        op.Status,
		PartnerID:     op.PartnerID,
		WarehouseID:   op.WarehouseID,
		ToWarehouseID: op.ToWarehouseID,
		Date:          op.Date,
		Reason:        op.Reason,
		Notes:         op.Notes,
		CreatedBy:     op.CreatedBy,
		ValidatedBy:   op.ValidatedBy,
		ValidatedAt:   op.ValidatedAt,
		CreatedAt:     op.CreatedAt,
		UpdatedAt:     op.UpdatedAt,
		Lines:         make([]dto.OperationLineResponse, 0, len(op.Lines)),
	}
	var err error
	if out.WarehouseName, err = uc.warehouseName(ctx, c, op.WarehouseID); err != nil {
		return nil, err
	}
	if out.ToWarehouseName, err = uc.warehouseName(ctx, c, op.ToWarehouseID); err != nil {
		return nil, err
	}
	if op.PartnerID != "" {
		p, ok := c.partners[op.PartnerID]
		if !ok {
			if p, err = uc.partners.GetByID(ctx, op.PartnerID); err != nil {
				return nil, err
			}
			c.partners[op.PartnerID] = p
		}
		if p != nil {
			out.PartnerName = p.Name
		}
	}
	for _, l := range op.Lines {
		lr := dto.OperationLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			OldQuantity: l.OldQuantity,
			Difference:  l.Difference,
		}
		if op.Kind == entity.OperationKindAdjustment {
			nq := l.NewQuantity
			lr.NewQuantity = &nq
		}
		p, ok := c.products[l.ProductID]
		if !ok {
			if p, err = uc.products.GetByID(ctx, l.ProductID); err != nil {
				return nil, err
			}
			c.products[l.ProductID] = p
		}
		if p != nil {
			lr.ProductName = p.Name
			lr.SKU = p.SKU
		}
		out.Lines = append(out.Lines, lr)
	}
	return out, nil
}
