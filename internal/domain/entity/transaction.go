package entity

import "time"

// RegistrationManual método de registro de las transacciones creadas por el flujo de captura.
const RegistrationManual = "manual"

// Transaction cabecera de un evento de negocio que autoriza uno o más movimientos.
// CodigoMov es la llave natural que une la cabecera con mov_inventario. Inmutable una vez creada.
type Transaction struct {
	ID                 int64
	Code               string
	UserID             int64
	Date               time.Time
	Reference          string // opcional; vacío se persiste como NULL
	RegistrationMethod string
}
