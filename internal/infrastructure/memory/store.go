// Package memory implementa los puertos de persistencia en memoria del proceso.
// Las transacciones trabajan sobre una copia del estado y la publican solo al confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state datos de la bodega más los contadores de IDs.
type state struct {
	products  map[string]entity.Product
	batches   map[int64]entity.Batch
	sales     map[int64]entity.Sale
	returns   []entity.Return
	movements []entity.Movement
	settings  *entity.Settings

	batchSeq    int64
	saleSeq     int64
	returnSeq   int64
	movementSeq int64
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		batches:  make(map[int64]entity.Batch),
		sales:    make(map[int64]entity.Sale),
	}
}

// clone copia profunda; los slices de traza de ventas y operadores no se comparten.
func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(s.products)),
		batches:     make(map[int64]entity.Batch, len(s.batches)),
		sales:       make(map[int64]entity.Sale, len(s.sales)),
		returns:     append([]entity.Return(nil), s.returns...),
		movements:   append([]entity.Movement(nil), s.movements...),
		settings:    cloneSettings(s.settings),
		batchSeq:    s.batchSeq,
		saleSeq:     s.saleSeq,
		returnSeq:   s.returnSeq,
		movementSeq: s.movementSeq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.sales {
		v.BatchesUsed = append([]entity.BatchUsage(nil), v.BatchesUsed...)
		c.sales[k] = v
	}
	return c
}

// Store almacenamiento en memoria. Un único mutex serializa lecturas y transacciones.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado. Si fn devuelve error, la copia se descarta
// y ninguna escritura queda visible.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.state.clone()
	v := &txView{st: snap}
	if err := fn(reposFor(v)); err != nil {
		return err
	}
	s.state = snap
	return nil
}

// Repos repositorios fuera de transacción (lecturas de reportes y catálogo).
func (s *Store) Repos() repository.TxRepos {
	return reposFor(&liveView{store: s})
}

// Settings repositorio de configuración.
func (s *Store) Settings() repository.SettingsRepository {
	return &SettingsRepo{v: &liveView{store: s}}
}

// view da acceso al estado: el vivo (con lock) o la copia de una transacción en curso.
type view interface {
	with(fn func(st *state) error) error
}

type liveView struct{ store *Store }

func (l *liveView) with(fn func(st *state) error) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return fn(l.store.state)
}

// txView ya corre bajo el lock tomado por Run.
type txView struct{ st *state }

func (t *txView) with(fn func(st *state) error) error { return fn(t.st) }

func reposFor(v view) repository.TxRepos {
	return repository.TxRepos{
		Products:  &ProductRepo{v: v},
		Batches:   &BatchRepo{v: v},
		Sales:     &SaleRepo{v: v},
		Returns:   &ReturnRepo{v: v},
		Movements: &MovementRepo{v: v},
	}
}

func cloneSettings(s *entity.Settings) *entity.Settings {
	if s == nil {
		return nil
	}
	c := *s
	c.Operators = append([]string(nil), s.Operators...)
	c.Columns = append([]string(nil), s.Columns...)
	return &c
}
