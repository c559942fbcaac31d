package dto

// Límites de página de los listados (ledger, ventas, catálogo).
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// PageRequest paginación por query (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage normaliza la página: límite 0 o negativo = DefaultPageLimit, tope MaxPageLimit,
// offset negativo = 0.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página; Returned es la cantidad de items en esta página.
type PageResponse struct {
	Limit    int  `json:"limit"`
	Offset   int  `json:"offset"`
	Returned int  `json:"returned"`
	HasMore  bool `json:"has_more"`
}

// NewPageResponse arma los metadatos; una página llena indica que puede haber más.
func NewPageResponse(p PageRequest, returned int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Returned: returned, HasMore: returned == p.Limit}
}

// ErrorResponse cuerpo de error HTTP: Code estable para el cliente, Message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
