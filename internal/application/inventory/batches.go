package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
)

// Section vista de lotes: inventario vendible o lotes nacidos de devoluciones/anulaciones.
type Section string

const (
	SectionAll       Section = ""
	SectionInventory Section = "inventory"
	SectionReturns   Section = "returns"
)

// BatchService repositorio de lotes del motor: consultas de stock y escrituras que nunca
// dejan cantidades negativas. Se construye sobre el repositorio de la transacción en curso
// o sobre el del pool para lecturas.
type BatchService struct {
	repo repository.BatchRepository
}

// NewBatchService construye el servicio.
func NewBatchService(repo repository.BatchRepository) *BatchService {
	return &BatchService{repo: repo}
}

// StockFor suma las unidades del SKU; con excludeReturned omite lotes devueltos al proveedor.
func (s *BatchService) StockFor(ctx context.Context, sku string, excludeReturned bool) (int, error) {
	batches, err := s.repo.ListBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	return domaininv.Available(batches, excludeReturned), nil
}

// EligibleForSale lotes vendibles del SKU en orden FIFO (created_at, id). Bloquea las filas.
func (s *BatchService) EligibleForSale(ctx context.Context, sku string) ([]*entity.Batch, error) {
	batches, err := s.repo.ListBySKUForUpdate(ctx, sku)
	if err != nil {
		return nil, err
	}
	return domaininv.Eligible(batches), nil
}

// ByID devuelve el lote o (nil, nil) si no existe.
func (s *BatchService) ByID(ctx context.Context, id int64) (*entity.Batch, error) {
	return s.repo.GetByID(ctx, id)
}

// Create persiste un lote nuevo (activo salvo que se indique otro estado).
func (s *BatchService) Create(ctx context.Context, b *entity.Batch) error {
	if b.ProductSKU == "" || b.Quantity < 0 || b.PurchasePrice.IsNegative() || !b.Origin.Valid() {
		return fmt.Errorf("%w: lote inválido", domain.ErrInvalidInput)
	}
	if b.Status == "" {
		b.Status = entity.BatchActive
	}
	return s.repo.Create(ctx, b)
}

// Decrement resta amount unidades del lote, acotado a lo que le queda.
func (s *BatchService) Decrement(ctx context.Context, id int64, amount int) (*entity.Batch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrBatchNotFound, id)
	}
	if amount < 0 {
		amount = 0
	}
	b.Quantity -= min(amount, b.Quantity)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// MarkReturned marca el lote como devuelto al proveedor: nueva etiqueta, estado returned y cantidad 0.
func (s *BatchService) MarkReturned(ctx context.Context, id int64, lot string) (*entity.Batch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrBatchNotFound, id)
	}
	if b.Status == entity.BatchReturned {
		return nil, domain.ErrAlreadyReturned
	}
	b.Lot = lot
	b.Origin = entity.OriginReturnOfPurchase
	b.Status = entity.BatchReturned
	b.Quantity = 0
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List lotes filtrados por SKU (opcional) y sección, en orden FIFO.
func (s *BatchService) List(ctx context.Context, sku string, section Section) ([]*entity.Batch, error) {
	var (
		batches []*entity.Batch
		err     error
	)
	if sku != "" {
		batches, err = s.repo.ListBySKU(ctx, sku)
	} else {
		batches, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if InSection(b, section) {
			out = append(out, b)
		}
	}
	domaininv.SortFIFO(out)
	return out, nil
}

// InSection indica si el lote se muestra en la sección.
func InSection(b *entity.Batch, section Section) bool {
	switch section {
	case SectionInventory:
		return !b.IsReturned() && b.Quantity > 0
	case SectionReturns:
		return b.Origin != entity.OriginIngreso
	default:
		return true
	}
}
