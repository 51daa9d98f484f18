package memory

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/application/ledger"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Run ejecuta fn en una transacción optimista. Si al confirmar algún registro leído cambió,
// descarta las escrituras y vuelve a ejecutar fn completa, hasta maxRetries intentos.
func (s *Store) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	balRepo repository.BalanceRepository,
	txRepo repository.TransactionRepository,
) error) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := s.begin()
		if err := fn(&txInventoryRepo{t: t}, &txBalanceRepo{t: t}, &txTransactionRepo{t: t}); err != nil {
			return err
		}
		err := t.commit()
		if err == nil {
			return nil
		}
		if !errors.Is(err, errVersionConflict) {
			return err
		}
		lastErr = err
		if attempt < s.maxRetries {
			if err := backoff(ctx, attempt); err != nil {
				return err
			}
		}
	}
	return &domain.ConcurrencyConflictError{Attempts: s.maxRetries, Err: lastErr}
}

func backoff(ctx context.Context, attempt int) error {
	d := time.Duration(attempt)*time.Millisecond + time.Duration(rand.Intn(1000))*time.Microsecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// memTx conjunto de lecturas (llave -> versión) y escrituras pendientes.
type memTx struct {
	s     *Store
	reads map[string]uint64

	items      map[entity.Grade]entity.InventoryItem
	balance    *decimal.Decimal
	initialize bool
	created    []*entity.LedgerTransaction
}

func (s *Store) begin() *memTx {
	return &memTx{
		s:     s,
		reads: make(map[string]uint64),
		items: make(map[entity.Grade]entity.InventoryItem),
	}
}

// track guarda la versión de la primera lectura de cada llave.
func (t *memTx) track(key string, version uint64) {
	if _, ok := t.reads[key]; !ok {
		t.reads[key] = version
	}
}

func (t *memTx) getItem(g entity.Grade) *entity.InventoryItem {
	if it, ok := t.items[g]; ok {
		return &it
	}
	it, ver := t.s.readItem(g)
	t.track(inventoryKey(g), ver)
	return it
}

func (t *memTx) getBalance() *entity.Balance {
	cur, ver := t.s.readBalance()
	t.track(balanceKey, ver)
	if t.balance != nil {
		return &entity.Balance{Monto: *t.balance}
	}
	return cur
}

func (t *memTx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ver := range t.reads {
		if s.versionOf(key) != ver {
			return errVersionConflict
		}
	}
	if t.initialize && s.balance != nil {
		return domain.ErrConflict
	}
	for _, tr := range t.created {
		if _, dup := s.txByID[tr.ID]; dup {
			return domain.ErrDuplicate
		}
	}

	grades := make([]entity.Grade, 0, len(t.items))
	for g := range t.items {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i] < grades[j] })
	for _, g := range grades {
		s.putItemLocked(t.items[g])
	}
	if t.balance != nil {
		s.putBalanceLocked(*t.balance)
	}
	for _, tr := range t.created {
		s.transactions = append(s.transactions, tr)
		s.txByID[tr.ID] = tr
	}
	return nil
}

// txInventoryRepo inventario atado a una transacción.
type txInventoryRepo struct{ t *memTx }

func (r *txInventoryRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(entity.Grades))
	for _, g := range entity.Grades {
		if it := r.t.getItem(g); it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *txInventoryRepo) GetByID(_ context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	return r.t.getItem(grade), nil
}

func (r *txInventoryRepo) GetForUpdate(ctx context.Context, grade entity.Grade) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, grade)
}

func (r *txInventoryRepo) UpdateStock(_ context.Context, grade entity.Grade, stock int) error {
	it := r.t.getItem(grade)
	if it == nil {
		return domain.ErrNotFound
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	it.Stock = stock
	r.t.items[grade] = *it
	return nil
}

func (r *txInventoryRepo) UpdatePrice(_ context.Context, grade entity.Grade, precio decimal.Decimal) error {
	it := r.t.getItem(grade)
	if it == nil {
		return domain.ErrNotFound
	}
	it.Precio = precio
	r.t.items[grade] = *it
	return nil
}

func (r *txInventoryRepo) Upsert(_ context.Context, item *entity.InventoryItem) error {
	r.t.getItem(item.ID)
	r.t.items[item.ID] = *item
	return nil
}

// txBalanceRepo saldo atado a una transacción.
type txBalanceRepo struct{ t *memTx }

func (r *txBalanceRepo) Get(_ context.Context) (*entity.Balance, error) {
	return r.t.getBalance(), nil
}

func (r *txBalanceRepo) GetForUpdate(ctx context.Context) (*entity.Balance, error) {
	return r.Get(ctx)
}

func (r *txBalanceRepo) Update(_ context.Context, monto decimal.Decimal) error {
	if r.t.getBalance() == nil {
		return domain.ErrNotFound
	}
	m := monto
	r.t.balance = &m
	return nil
}

func (r *txBalanceRepo) Initialize(_ context.Context, monto decimal.Decimal) error {
	if r.t.getBalance() != nil {
		return domain.ErrConflict
	}
	m := monto
	r.t.balance = &m
	r.t.initialize = true
	return nil
}

// txTransactionRepo libro de transacciones atado a una transacción.
type txTransactionRepo struct{ t *memTx }

func (r *txTransactionRepo) Create(_ context.Context, tr *entity.LedgerTransaction) error {
	cp := *tr
	r.t.created = append(r.t.created, &cp)
	return nil
}

func (r *txTransactionRepo) GetByID(ctx context.Context, id string) (*entity.LedgerTransaction, error) {
	for _, tr := range r.t.created {
		if tr.ID == id {
			cp := *tr
			return &cp, nil
		}
	}
	return (&TransactionRepo{s: r.t.s}).GetByID(ctx, id)
}

func (r *txTransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.LedgerTransaction, error) {
	return (&TransactionRepo{s: r.t.s}).List(ctx, limit, offset)
}
