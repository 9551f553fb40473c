package transfer

import (
	"context"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// RemitoGenerator genera el remito (comprobante de envío) de una transferencia.
type RemitoGenerator interface {
	GenerateRemitoPDF(ctx context.Context, t *entity.Transfer) ([]byte, error)
}
