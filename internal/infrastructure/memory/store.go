// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
// Las transacciones son optimistas: registran la versión de cada registro leído y al confirmar
// verifican, bajo el mutex, que ninguno cambió; si alguno cambió, se reintenta el callback completo.
package memory

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/huevos-kikes-scm/internal/domain/entity"
)

const balanceKey = entity.BalanceID

func inventoryKey(g entity.Grade) string { return "inventario/" + string(g) }

// errVersionConflict un registro leído cambió antes del commit.
var errVersionConflict = errors.New("memory: conflicto de versión")

type itemRecord struct {
	item    entity.InventoryItem
	version uint64
}

// Store almacenamiento en memoria seguro para uso concurrente.
type Store struct {
	mu         sync.RWMutex
	clock      uint64
	maxRetries int

	items      map[entity.Grade]*itemRecord
	balance    *entity.Balance
	balanceVer uint64

	transactions []*entity.LedgerTransaction
	txByID       map[string]*entity.LedgerTransaction

	sales      map[string]*entity.Sale
	saleOrder  []string
	purchases  map[string]*entity.Purchase
	purchOrder []string

	clientes    map[string]*entity.Cliente
	proveedores map[string]*entity.Proveedor
}

// New crea un store vacío. maxRetries acota los reintentos de Run (mínimo 1).
func New(maxRetries int) *Store {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Store{
		maxRetries:  maxRetries,
		items:       make(map[entity.Grade]*itemRecord),
		txByID:      make(map[string]*entity.LedgerTransaction),
		sales:       make(map[string]*entity.Sale),
		purchases:   make(map[string]*entity.Purchase),
		clientes:    make(map[string]*entity.Cliente),
		proveedores: make(map[string]*entity.Proveedor),
	}
}

// SeedInventory crea los tres grados con precios de catálogo y el stock indicado.
func (s *Store) SeedInventory(stock map[entity.Grade]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, g := range entity.Grades {
		s.clock++
		s.items[g] = &itemRecord{
			item: entity.InventoryItem{
				ID:        g,
				Nombre:    entity.DefaultNames[g],
				Precio:    decimal.NewFromInt(entity.DefaultPrices[g]),
				Stock:     stock[g],
				UpdatedAt: now,
			},
			version: s.clock,
		}
	}
}

// SeedBalance fija el saldo en caja, exista o no.
func (s *Store) SeedBalance(monto decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock++
	s.balance = &entity.Balance{Monto: monto, UpdatedAt: time.Now().UTC()}
	s.balanceVer = s.clock
}

// versionOf devuelve la versión actual de una llave; 0 si el registro no existe. Requiere mu tomado.
func (s *Store) versionOf(key string) uint64 {
	if key == balanceKey {
		return s.balanceVer
	}
	if rec, ok := s.items[entity.Grade(strings.TrimPrefix(key, "inventario/"))]; ok {
		return rec.version
	}
	return 0
}

func (s *Store) readItem(g entity.Grade) (*entity.InventoryItem, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[g]
	if !ok {
		return nil, 0
	}
	it := rec.item
	return &it, rec.version
}

func (s *Store) readBalance() (*entity.Balance, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.balance == nil {
		return nil, s.balanceVer
	}
	b := *s.balance
	return &b, s.balanceVer
}

// putItemLocked escribe un ítem y avanza su versión. Requiere mu tomado en escritura.
func (s *Store) putItemLocked(it entity.InventoryItem) {
	s.clock++
	it.UpdatedAt = time.Now().UTC()
	s.items[it.ID] = &itemRecord{item: it, version: s.clock}
}

func (s *Store) putBalanceLocked(monto decimal.Decimal) {
	s.clock++
	s.balance = &entity.Balance{Monto: monto, UpdatedAt: time.Now().UTC()}
	s.balanceVer = s.clock
}
