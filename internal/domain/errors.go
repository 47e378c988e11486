package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrProductNotFound     = errors.New("el producto no existe")
	ErrDuplicateProduct    = errors.New("este producto ya fue agregado")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor a 0")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrEmptyBatch          = errors.New("debes agregar al menos un producto")
	ErrMissingCode         = errors.New("el código de movimiento es obligatorio")
	ErrUnknownTransaction  = errors.New("el código de movimiento no existe")
	ErrDuplicateCode       = errors.New("el código de movimiento ya está registrado")
	ErrInvalidState        = errors.New("operación no permitida en el estado actual")
	ErrIndexOutOfRange     = errors.New("índice fuera de rango")
	ErrSessionBusy         = errors.New("la sesión está siendo modificada por otra petición")
)

// Errores de almacenamiento.
var (
	ErrConnectionUnavailable = errors.New("conexión a la base de datos no disponible")
	ErrStorageFailure        = errors.New("fallo de almacenamiento")
)
