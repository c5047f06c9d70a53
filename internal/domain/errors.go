package domain

import "errors"

// Clases de error de dominio (sin dependencias externas).
// Cada fallo con nombre propio (ver abajo) se resuelve a una de estas clases con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Error es un fallo de dominio con código estable. Unwrap devuelve su clase
// (ErrInvalidInput, ErrNotFound, ErrConflict, ErrInsufficientStock).
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Lotes de manufactura.
var (
	ErrBatchNotFound         = newError(ErrNotFound, "BATCH_NOT_FOUND", "lote no encontrado")
	ErrBatchAlreadyCompleted = newError(ErrConflict, "BATCH_ALREADY_COMPLETED", "el lote ya está completado")
	ErrBatchCompleted        = newError(ErrConflict, "BATCH_COMPLETED", "el lote está completado, no admite más costos")
	ErrIdenticalStatus       = newError(ErrConflict, "IDENTICAL_STATUS", "el lote ya se encuentra en ese estado")
	ErrInvalidTransition     = newError(ErrConflict, "INVALID_TRANSITION", "solo se permite retroceder una etapa")
	ErrInvalidStatus         = newError(ErrInvalidInput, "INVALID_STATUS", "estado de lote inválido")
	ErrInvalidCostType       = newError(ErrInvalidInput, "INVALID_COST_TYPE", "tipo de costo no reconocido")
	ErrInvalidDates          = newError(ErrInvalidInput, "INVALID_DATES", "la fecha esperada no puede ser anterior al inicio")
)

// Inventario, traslados y ajustes.
var (
	ErrInvalidAmount               = newError(ErrInvalidInput, "INVALID_AMOUNT", "la cantidad o el monto debe ser mayor que cero")
	ErrInvalidAdjustmentType       = newError(ErrInvalidInput, "INVALID_ADJUSTMENT_TYPE", "tipo de ajuste inválido (add, remove, set)")
	ErrInvalidLocation             = newError(ErrInvalidInput, "INVALID_LOCATION", "ubicación inválida")
	ErrSameLocation                = newError(ErrConflict, "SAME_LOCATION", "origen y destino no pueden ser la misma ubicación")
	ErrSourceNotFound              = newError(ErrNotFound, "SOURCE_NOT_FOUND", "no hay inventario del producto en la ubicación de origen")
	ErrInsufficientQuantity        = newError(ErrInsufficientStock, "INSUFFICIENT_QUANTITY", "cantidad insuficiente en la ubicación de origen")
	ErrInventoryNotFound           = newError(ErrNotFound, "INVENTORY_NOT_FOUND", "registro de inventario no encontrado")
	ErrTransferNotFoundOrProcessed = newError(ErrNotFound, "TRANSFER_NOT_FOUND_OR_PROCESSED", "traslado no encontrado o ya procesado")
)

// Usuarios.
var (
	ErrUserNotFound          = newError(ErrNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	ErrUsernameAlreadyExists = newError(ErrDuplicate, "USERNAME_TAKEN", "el nombre de usuario ya está registrado")
	ErrInvalidCredentials    = newError(ErrUnauthorized, "INVALID_CREDENTIALS", "usuario o contraseña incorrectos")
	ErrUserInactive          = newError(ErrForbidden, "USER_INACTIVE", "el usuario está inactivo")
)

// Catálogo y ventas.
var (
	ErrProductNotFound  = newError(ErrNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado")
	ErrMaterialNotFound = newError(ErrNotFound, "MATERIAL_NOT_FOUND", "materia prima no encontrada")
	ErrSaleNotFound     = newError(ErrNotFound, "SALE_NOT_FOUND", "venta no encontrada")
	ErrProductInUse     = newError(ErrConflict, "PRODUCT_IN_USE", "el producto tiene inventario, lotes o ventas asociados")
)

// CodeOf devuelve el código estable de un *Error envuelto en err, o "" si no hay ninguno.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
