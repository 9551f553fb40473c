package inventory

import (
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// SignedDelta deriva el delta con signo a partir del tipo de movimiento (servicio de dominio).
// quantity es siempre una magnitud positiva; salidas y ajustes restan, entradas suman.
// Para TRA el signo lo da dir (OUT resta en origen, IN suma en destino).
func SignedDelta(kind entity.MovementKind, dir entity.Direction, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	switch kind {
	case entity.MovementKindSale, entity.MovementKindAdjustment, entity.MovementKindWebSale:
		return -quantity, nil
	case entity.MovementKindInbound:
		return quantity, nil
	case entity.MovementKindTransfer:
		switch dir {
		case entity.DirectionOut:
			return -quantity, nil
		case entity.DirectionIn:
			return quantity, nil
		}
	}
	return 0, domain.ErrInvalidInput
}

// Apply calcula el nuevo saldo; falla con *domain.StockInsufficientError si quedaría negativo.
func Apply(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, &domain.StockInsufficientError{Requested: -delta, Current: current}
	}
	return next, nil
}
