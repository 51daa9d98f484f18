package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

var (
	_ repository.InventoryRepository   = (*InventoryRepo)(nil)
	_ repository.BalanceRepository     = (*BalanceRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.SaleRepository        = (*SaleRepo)(nil)
	_ repository.PurchaseRepository    = (*PurchaseRepo)(nil)
	_ repository.ClienteRepository     = (*ClienteRepo)(nil)
	_ repository.ProveedorRepository   = (*ProveedorRepo)(nil)
)

func (s *Store) Inventory() *InventoryRepo      { return &InventoryRepo{s: s} }
func (s *Store) Balance() *BalanceRepo          { return &BalanceRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) Sales() *SaleRepo               { return &SaleRepo{s: s} }
func (s *Store) Purchases() *PurchaseRepo       { return &PurchaseRepo{s: s} }
func (s *Store) Clientes() *ClienteRepo         { return &ClienteRepo{s: s} }
func (s *Store) Proveedores() *ProveedorRepo    { return &ProveedorRepo{s: s} }

// page recorta [offset, offset+limit) sobre n elementos; limit <= 0 significa sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

// InventoryRepo acceso directo (fuera de transacción) al inventario.
type InventoryRepo struct{ s *Store }

func (r *InventoryRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InventoryItem, 0, len(r.s.items))
	for _, g := range entity.Grades {
		if rec, ok := r.s.items[g]; ok {
			it := rec.item
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *InventoryRepo) GetByID(_ context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	it, _ := r.s.readItem(grade)
	return it, nil
}

// GetForUpdate fuera de transacción equivale a GetByID.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, grade)
}

func (r *InventoryRepo) UpdateStock(_ context.Context, grade entity.Grade, stock int) error {
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.items[grade]
	if !ok {
		return domain.ErrNotFound
	}
	it := rec.item
	it.Stock = stock
	r.s.putItemLocked(it)
	return nil
}

func (r *InventoryRepo) UpdatePrice(_ context.Context, grade entity.Grade, precio decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.items[grade]
	if !ok {
		return domain.ErrNotFound
	}
	it := rec.item
	it.Precio = precio
	r.s.putItemLocked(it)
	return nil
}

func (r *InventoryRepo) Upsert(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.putItemLocked(*item)
	return nil
}

// BalanceRepo acceso directo al saldo.
type BalanceRepo struct{ s *Store }

func (r *BalanceRepo) Get(_ context.Context) (*entity.Balance, error) {
	b, _ := r.s.readBalance()
	return b, nil
}

func (r *BalanceRepo) GetForUpdate(ctx context.Context) (*entity.Balance, error) {
	return r.Get(ctx)
}

func (r *BalanceRepo) Update(_ context.Context, monto decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.balance == nil {
		return domain.ErrNotFound
	}
	r.s.putBalanceLocked(monto)
	return nil
}

func (r *BalanceRepo) Initialize(_ context.Context, monto decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.balance != nil {
		return domain.ErrConflict
	}
	r.s.putBalanceLocked(monto)
	return nil
}

// TransactionRepo acceso directo al libro de transacciones.
type TransactionRepo struct{ s *Store }

func (r *TransactionRepo) Create(_ context.Context, tr *entity.LedgerTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.txByID[tr.ID]; dup {
		return domain.ErrDuplicate
	}
	cp := *tr
	r.s.transactions = append(r.s.transactions, &cp)
	r.s.txByID[cp.ID] = &cp
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.LedgerTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tr, ok := r.s.txByID[id]
	if !ok {
		return nil, nil
	}
	cp := *tr
	return &cp, nil
}

func (r *TransactionRepo) List(_ context.Context, limit, offset int) ([]*entity.LedgerTransaction, error) {
	r.s.mu.RLock()
	all := make([]*entity.LedgerTransaction, 0, len(r.s.transactions))
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		cp := *r.s.transactions[i]
		all = append(all, &cp)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return all[i].Fecha.After(all[j].Fecha) })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.sales[sale.ID]; dup {
		return domain.ErrDuplicate
	}
	cp := cloneSale(sale)
	r.s.sales[cp.ID] = cp
	r.s.saleOrder = append(r.s.saleOrder, cp.ID)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	from, to := page(len(r.s.saleOrder), limit, offset)
	out := make([]*entity.Sale, 0, to-from)
	for i := len(r.s.saleOrder) - 1 - from; i > len(r.s.saleOrder)-1-to; i-- {
		out = append(out, cloneSale(r.s.sales[r.s.saleOrder[i]]))
	}
	return out, nil
}

// cloneSale copia la venta y sus líneas para no compartir el slice guardado.
func cloneSale(sale *entity.Sale) *entity.Sale {
	cp := *sale
	cp.Items = append([]entity.OrderLineItem(nil), sale.Items...)
	return &cp
}

func clonePurchase(p *entity.Purchase) *entity.Purchase {
	cp := *p
	cp.Items = append([]entity.OrderLineItem(nil), p.Items...)
	return &cp
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct{ s *Store }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.purchases[p.ID]; dup {
		return domain.ErrDuplicate
	}
	cp := clonePurchase(p)
	r.s.purchases[cp.ID] = cp
	r.s.purchOrder = append(r.s.purchOrder, cp.ID)
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return clonePurchase(p), nil
}

func (r *PurchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	from, to := page(len(r.s.purchOrder), limit, offset)
	out := make([]*entity.Purchase, 0, to-from)
	for i := len(r.s.purchOrder) - 1 - from; i > len(r.s.purchOrder)-1-to; i-- {
		out = append(out, clonePurchase(r.s.purchases[r.s.purchOrder[i]]))
	}
	return out, nil
}

// ClienteRepo clientes en memoria; cédula única.
type ClienteRepo struct{ s *Store }

func (r *ClienteRepo) cedulaTakenLocked(cedula, exceptID string) bool {
	for _, c := range r.s.clientes {
		if c.Cedula == cedula && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.clientes[c.ID]; dup || r.cedulaTakenLocked(c.Cedula, "") {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.clientes[cp.ID] = &cp
	return nil
}

func (r *ClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *ClienteRepo) GetByCedula(_ context.Context, cedula string) (*entity.Cliente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clientes {
		if c.Cedula == cedula {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ClienteRepo) List(_ context.Context, limit, offset int) ([]*entity.Cliente, error) {
	r.s.mu.RLock()
	all := make([]*entity.Cliente, 0, len(r.s.clientes))
	for _, c := range r.s.clientes {
		cp := *c
		all = append(all, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Nombre < all[j].Nombre })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *ClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.cedulaTakenLocked(c.Cedula, c.ID) {
		return domain.ErrDuplicate
	}
	cp := *c
	cp.UpdatedAt = time.Now().UTC()
	r.s.clientes[cp.ID] = &cp
	return nil
}

func (r *ClienteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.clientes, id)
	return nil
}

// ProveedorRepo proveedores en memoria; NIT único.
type ProveedorRepo struct{ s *Store }

func (r *ProveedorRepo) nitTakenLocked(nit, exceptID string) bool {
	for _, p := range r.s.proveedores {
		if p.NIT == nit && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ProveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.proveedores[p.ID]; dup || r.nitTakenLocked(p.NIT, "") {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.proveedores[cp.ID] = &cp
	return nil
}

func (r *ProveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.proveedores[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProveedorRepo) GetByNIT(_ context.Context, nit string) (*entity.Proveedor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.proveedores {
		if p.NIT == nit {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProveedorRepo) List(_ context.Context, limit, offset int) ([]*entity.Proveedor, error) {
	r.s.mu.RLock()
	all := make([]*entity.Proveedor, 0, len(r.s.proveedores))
	for _, p := range r.s.proveedores {
		cp := *p
		all = append(all, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Nombre < all[j].Nombre })
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r *ProveedorRepo) Update(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.proveedores[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nitTakenLocked(p.NIT, p.ID) {
		return domain.ErrDuplicate
	}
	cp := *p
	cp.UpdatedAt = time.Now().UTC()
	r.s.proveedores[cp.ID] = &cp
	return nil
}

func (r *ProveedorRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.proveedores[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.proveedores, id)
	return nil
}
