// Package memory implementa los repositorios sobre un estado en memoria protegido por un mutex.
// Cada transacción toma el mutex completo y guarda una copia del estado para restaurarla si
// la función falla, por lo que las transacciones son serializables.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	categories map[string]entity.Category
	partners   map[string]entity.Partner
	operations map[string]entity.Operation
	stock      map[stockKey]entity.Stock
	ledger     []entity.StockLedgerEntry
	seq        int64
}

func newState() *state {
	return &state{
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		categories: map[string]entity.Category{},
		partners:   map[string]entity.Partner{},
		operations: map[string]entity.Operation{},
		stock:      map[stockKey]entity.Stock{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(s.products)),
		warehouses: make(map[string]entity.Warehouse, len(s.warehouses)),
		categories: make(map[string]entity.Category, len(s.categories)),
		partners:   make(map[string]entity.Partner, len(s.partners)),
		operations: make(map[string]entity.Operation, len(s.operations)),
		stock:      make(map[stockKey]entity.Stock, len(s.stock)),
		ledger:     append([]entity.StockLedgerEntry(nil), s.ledger...),
		seq:        s.seq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.partners {
		c.partners[k] = v
	}
	for k, v := range s.operations {
		c.operations[k] = copyOperation(v)
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	return c
}

func copyOperation(op entity.Operation) entity.Operation {
	op.Lines = append([]entity.OperationLine(nil), op.Lines...)
	return op
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access ejecuta fn sobre el estado; fuera de una transacción toma el mutex.
type access struct {
	store  *Store
	locked bool // true dentro de TxRunner.Run
}

func (a access) do(fn func(st *state) error) error {
	if !a.locked {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.st)
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepo     { return &ProductRepo{a: access{store: s}} }
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{a: access{store: s}} }
func (s *Store) Categories() *CategoryRepo  { return &CategoryRepo{a: access{store: s}} }
func (s *Store) Partners() *PartnerRepo     { return &PartnerRepo{a: access{store: s}} }
func (s *Store) Operations() *OperationRepo { return &OperationRepo{a: access{store: s}} }
func (s *Store) Ledger() *LedgerRepo        { return &LedgerRepo{a: access{store: s}} }
func (s *Store) Stock() *StockRepo          { return &StockRepo{a: access{store: s}} }
func (s *Store) Analytics() *AnalyticsRepo  { return &AnalyticsRepo{a: access{store: s}} }

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn con repositorios atados al estado bloqueado. Si fn falla se restaura la copia.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	a := access{store: s, locked: true}
	err := fn(inventory.TxRepos{
		Products:   &ProductRepo{a: a},
		Stock:      &StockRepo{a: a},
		Ledger:     &LedgerRepo{a: a},
		Operations: &OperationRepo{a: a},
	})
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func applyPage[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return list[:0]
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
