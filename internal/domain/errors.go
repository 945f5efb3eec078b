package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockError describe el fallo de una línea al aplicar una operación sobre el stock.
// Unwrap devuelve el error de dominio, de modo que errors.Is(err, ErrInsufficientStock) funciona.
type StockError struct {
	Line      int // índice 0-based de la línea
	ProductID string
	Err       error
}

func (e *StockError) Error() string {
	return fmt.Sprintf("línea %d (producto %s): %v", e.Line+1, e.ProductID, e.Err)
}

func (e *StockError) Unwrap() error { return e.Err }

// InvalidInput envuelve ErrInvalidInput con un mensaje legible.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
