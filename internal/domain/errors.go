package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateBarcode  = errors.New("código de barras ya registrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
