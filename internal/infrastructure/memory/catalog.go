package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.PartnerRepository   = (*PartnerRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el mutex.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return nil
		}
		for id, other := range st.products {
			if id != p.ID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		cur.Name = p.Name
		cur.SKU = p.SKU
		cur.CategoryID = p.CategoryID
		cur.UnitOfMeasure = p.UnitOfMeasure
		cur.MinStockLevel = p.MinStockLevel
		cur.IsActive = p.IsActive
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, qty decimal.Decimal, at time.Time) error {
	return r.a.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		cur.CurrentStock = qty
		cur.UpdatedAt = at
		st.products[id] = cur
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.a.do(func(st *state) error {
		search := strings.ToLower(f.Search)
		for _, p := range st.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.Active != nil && p.IsActive != *f.Active {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Name < list[j].Name
	})
	return applyPage(list, f.Limit, f.Offset), err
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.a.do(func(st *state) error {
		for _, p := range st.products {
			if p.IsLowStock() {
				p := p
				list = append(list, &p)
			}
		}
		return nil
	})
	sortLowStock(list)
	return list, err
}

func sortLowStock(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].CurrentStock.Cmp(list[j].CurrentStock); c != 0 {
			return c < 0
		}
		return list[i].Name < list[j].Name
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		delete(st.products, id)
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ a access }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.warehouses {
			if other.Name == w.Name {
				return domain.ErrDuplicate
			}
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.a.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.warehouses[w.ID]; !ok {
			return nil
		}
		for id, other := range st.warehouses {
			if id != w.ID && other.Name == w.Name {
				return domain.ErrDuplicate
			}
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := r.a.do(func(st *state) error {
		for _, w := range st.warehouses {
			if activeOnly && !w.IsActive {
				continue
			}
			w := w
			list = append(list, &w)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return applyPage(list, limit, offset), err
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		delete(st.warehouses, id)
		return nil
	})
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ a access }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.do(func(st *state) error {
		for _, other := range st.categories {
			if other.Name == c.Name {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.a.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.do(func(st *state) error {
		for id, other := range st.categories {
			if id != c.ID && other.Name == c.Name {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.categories[c.ID]; ok {
			st.categories[c.ID] = *c
		}
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.a.do(func(st *state) error {
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

// Delete deja sin categoría a los productos que la usaban.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		delete(st.categories, id)
		for pid, p := range st.products {
			if p.CategoryID == id {
				p.CategoryID = ""
				st.products[pid] = p
			}
		}
		return nil
	})
}

// PartnerRepo proveedores y clientes en memoria.
type PartnerRepo struct{ a access }

func (r *PartnerRepo) Create(_ context.Context, p *entity.Partner) error {
	return r.a.do(func(st *state) error {
		st.partners[p.ID] = *p
		return nil
	})
}

func (r *PartnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	var out *entity.Partner
	err := r.a.do(func(st *state) error {
		if p, ok := st.partners[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PartnerRepo) Update(_ context.Context, p *entity.Partner) error {
	return r.a.do(func(st *state) error {
		if _, ok := st.partners[p.ID]; ok {
			st.partners[p.ID] = *p
		}
		return nil
	})
}

func (r *PartnerRepo) List(_ context.Context, partnerType string, limit, offset int) ([]*entity.Partner, error) {
	var list []*entity.Partner
	err := r.a.do(func(st *state) error {
		for _, p := range st.partners {
			if partnerType != "" && p.Type != partnerType {
				continue
			}
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return applyPage(list, limit, offset), err
}

func (r *PartnerRepo) Delete(_ context.Context, id string) error {
	return r.a.do(func(st *state) error {
		delete(st.partners, id)
		return nil
	})
}
