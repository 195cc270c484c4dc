package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LowStockAlert aviso de stock en o bajo el umbral mínimo. Es salida
// auxiliar: acompaña a la respuesta de la operación, nunca la bloquea.
type LowStockAlert struct {
	PartID   string `json:"part_id"`
	PartName string `json:"part_name"`
	Quantity int64  `json:"quantity"`
	MinStock int64  `json:"min_stock"`
}
