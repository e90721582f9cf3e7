package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-ledger/internal/domain/inventory"
	"github.com/jhoicas/bodega-ledger/pkg/logger"
)

// LedgerUseCase motor del libro de inventario: valida y aplica ingresos, ventas (FIFO),
// devoluciones, anulaciones de venta y devoluciones a proveedor. Cada evento aceptado
// escribe producto/lotes/venta/devolución y exactamente un movimiento en una sola transacción.
type LedgerUseCase struct {
	txRunner  TxRunner
	log       *logger.Logger
	observers []Observer
	now       func() time.Time
}

// Option configura el LedgerUseCase.
type Option func(*LedgerUseCase)

// WithLogger registra eventos aceptados y rechazados.
func WithLogger(l *logger.Logger) Option {
	return func(uc *LedgerUseCase) { uc.log = l.Component("ledger") }
}

// WithObserver agrega un observador de eventos.
func WithObserver(o Observer) Option {
	return func(uc *LedgerUseCase) { uc.observers = append(uc.observers, o) }
}

// WithClock reemplaza el reloj (eventos sin timestamp, anulaciones y devoluciones a proveedor).
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el motor.
func NewLedgerUseCase(txRunner TxRunner, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner: txRunner,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// eventInput evento ya normalizado: identificador resuelto, cantidad acotada, sesión aplicada.
type eventInput struct {
	eventID  string
	kind     entity.EventKind
	sku      string
	name     string
	qty      int
	purchase *decimal.Decimal
	sale     *decimal.Decimal
	lot      string
	expiry   *time.Time
	category *string
	source   entity.IngresoSource
	operator string
	deviceID string
	bodega   string
	ts       time.Time
}

// ProcessEvent valida y aplica un evento de ingreso, venta o devolución genérica.
// Las validaciones (sesión, tipo, identificador, nombre) ocurren antes de cualquier escritura;
// la cantidad nunca se rechaza: se normaliza a max(1, floor(q)).
func (uc *LedgerUseCase) ProcessEvent(ctx context.Context, sess entity.Session, p entity.EventPayload) (*entity.AppliedEvent, error) {
	if !sess.Connected {
		return uc.reject(ctx, p.Event, p.Identifier(), domain.ErrNotConnected)
	}
	switch p.Event {
	case entity.EventIngreso, entity.EventVenta, entity.EventDevolucion:
	default:
		return uc.reject(ctx, p.Event, p.Identifier(), fmt.Errorf("%w: %q", domain.ErrUnknownEvent, p.Event))
	}
	sku := strings.TrimSpace(p.Identifier())
	if sku == "" {
		return uc.reject(ctx, p.Event, "", domain.ErrMissingIdentifier)
	}

	in := eventInput{
		eventID:  uuid.New().String(),
		kind:     p.Event,
		sku:      sku,
		name:     strings.TrimSpace(p.Name),
		qty:      domaininv.ClampQuantity(p.Quantity),
		purchase: p.PurchasePrice,
		sale:     p.SalePrice,
		lot:      p.Lot,
		expiry:   p.Expiry,
		category: p.Category,
		source:   p.Source,
		operator: firstNonEmpty(p.Operator, sess.Operator),
		deviceID: firstNonEmpty(p.DeviceID, sess.DeviceID),
		bodega:   firstNonEmpty(p.Bodega, sess.Bodega),
		ts:       p.Timestamp,
	}
	if in.ts.IsZero() {
		in.ts = uc.now()
	}

	var (
		applied *entity.AppliedEvent
		err     error
	)
	switch p.Event {
	case entity.EventIngreso:
		applied, err = uc.ingreso(ctx, in)
	case entity.EventVenta:
		applied, err = uc.venta(ctx, in)
	case entity.EventDevolucion:
		applied, err = uc.devolucion(ctx, in)
	}
	if err != nil {
		return uc.reject(ctx, p.Event, sku, err)
	}
	return uc.accept(ctx, applied), nil
}

// sessionInput datos comunes para las operaciones dirigidas (anulación, devolución a proveedor).
func (uc *LedgerUseCase) sessionInput(kind entity.EventKind, sess entity.Session) eventInput {
	return eventInput{
		eventID:  uuid.New().String(),
		kind:     kind,
		operator: sess.Operator,
		deviceID: sess.DeviceID,
		bodega:   sess.Bodega,
		ts:       uc.now(),
	}
}

func (uc *LedgerUseCase) movement(in eventInput, t entity.MovementType, product *entity.Product, qty int, price decimal.Decimal, lot string) *entity.Movement {
	return &entity.Movement{
		EventID:   in.eventID,
		Type:      t,
		SKU:       product.SKU,
		Name:      product.Name,
		Quantity:  qty,
		Price:     price,
		Lot:       lot,
		Timestamp: in.ts,
		Operator:  in.operator,
		DeviceID:  in.deviceID,
		Bodega:    in.bodega,
	}
}

func (uc *LedgerUseCase) accept(ctx context.Context, evt *entity.AppliedEvent) *entity.AppliedEvent {
	uc.log.Info().
		Str("event_id", evt.EventID).
		Str("kind", string(evt.Kind)).
		Str("sku", evt.Movement.SKU).
		Int("quantity", evt.Movement.Quantity).
		Str("operator", evt.Movement.Operator).
		Msg("evento aplicado")
	for _, o := range uc.observers {
		o.EventApplied(ctx, evt)
	}
	return evt
}

// reject registra el rechazo. Errores fuera de la taxonomía vienen del almacenamiento y se
// envuelven con ErrStorage; la transacción ya fue revertida.
func (uc *LedgerUseCase) reject(ctx context.Context, kind entity.EventKind, sku string, err error) (*entity.AppliedEvent, error) {
	if !domain.IsDomainError(err) {
		err = fmt.Errorf("%w: %w", domain.ErrStorage, err)
		uc.log.Error().Err(err).Str("kind", string(kind)).Str("sku", sku).Msg("evento revertido")
	} else {
		uc.log.Warn().Err(err).
			Str("kind", string(kind)).
			Str("sku", sku).
			Str("error_kind", string(domain.KindOf(err))).
			Msg("evento rechazado")
	}
	for _, o := range uc.observers {
		o.EventRejected(ctx, kind, err)
	}
	return nil, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func ptr[T any](v T) *T { return &v }
