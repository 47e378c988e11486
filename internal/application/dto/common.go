package dto

// LimitQuery límite para listados cortos (?limit=).
type LimitQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Or devuelve Limit o def si no se envió.
func (q LimitQuery) Or(def int) int {
	if q.Limit <= 0 {
		return def
	}
	return q.Limit
}

// ErrorResponse cuerpo de error HTTP. Details lleva datos adicionales (ej. stock disponible).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
