package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)

// StockInsufficientError se devuelve cuando un movimiento dejaría el saldo en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type StockInsufficientError struct {
	ProductID   string
	ProductName string
	BranchID    string
	Requested   int
	Current     int
}

func (e *StockInsufficientError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("stock insuficiente para %s. Actual: %d, Solicitado: %d", name, e.Current, e.Requested)
}

func (e *StockInsufficientError) Unwrap() error { return ErrInsufficientStock }

// Shortage describe un faltante detectado por la verificación previa (advisory) de una preventa.
type Shortage struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// ShortageError agrupa todos los faltantes de un ticket; no se crea nada cuando se devuelve.
type ShortageError struct {
	Items []Shortage
}

func (e *ShortageError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, s := range e.Items {
		names = append(names, fmt.Sprintf("%s (solicitado %d, disponible %d)", s.ProductName, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(names, "; ")
}

func (e *ShortageError) Unwrap() error { return ErrInsufficientStock }
