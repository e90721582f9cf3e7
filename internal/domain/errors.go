package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")

	// Sesión del dispositivo (escáner) no conectada; el motor no acepta eventos.
	ErrNotConnected = errors.New("dispositivo no conectado")

	// Validación previa a cualquier escritura.
	ErrUnknownEvent      = errors.New("tipo de evento desconocido")
	ErrMissingIdentifier = errors.New("sku o código de barras requerido")
	ErrMissingName       = errors.New("nombre requerido para producto nuevo")
	ErrInvalidPrice      = errors.New("el precio de venta debe ser mayor al de compra")
	ErrNothingToReturn   = errors.New("el lote no tiene unidades para devolver")

	ErrProductNotFound = errors.New("producto no encontrado")
	ErrSaleNotFound    = errors.New("venta no encontrada")
	ErrBatchNotFound   = errors.New("lote no encontrado")

	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverReturn        = errors.New("la devolución supera lo vendido")
	ErrAlreadyCancelled  = errors.New("la venta ya fue anulada")
	ErrAlreadyReturned   = errors.New("el lote ya fue devuelto")

	// Falla del almacenamiento transaccional; la transacción se revierte completa.
	ErrStorage = errors.New("error de almacenamiento")
)

// Kind clasifica un error según la taxonomía del motor de inventario.
type Kind string

const (
	KindNone              Kind = ""
	KindValidation        Kind = "validation"
	KindNotConnected      Kind = "not_connected"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindOverReturn        Kind = "over_return"
	KindAlreadyCancelled  Kind = "already_cancelled"
	KindAlreadyReturned   Kind = "already_returned"
	KindConflict          Kind = "conflict"
	KindUnauthorized      Kind = "unauthorized"
	KindStorage           Kind = "storage"
)

// KindOf devuelve la clase de err. Errores no reconocidos se consideran de almacenamiento.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotConnected):
		return KindNotConnected
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnknownEvent),
		errors.Is(err, ErrMissingIdentifier),
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrNothingToReturn):
		return KindValidation
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSaleNotFound),
		errors.Is(err, ErrBatchNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrOverReturn):
		return KindOverReturn
	case errors.Is(err, ErrAlreadyCancelled):
		return KindAlreadyCancelled
	case errors.Is(err, ErrAlreadyReturned):
		return KindAlreadyReturned
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindStorage
	}
}

// IsDomainError indica si err pertenece a la taxonomía (no es una falla de almacenamiento).
func IsDomainError(err error) bool {
	k := KindOf(err)
	return k != KindNone && k != KindStorage
}
