package entity

import "time"

// TransferStatus estado del ciclo de vida de una transferencia.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDIENTE"
	TransferInTransit TransferStatus = "EN_TRANSITO"
	TransferCompleted TransferStatus = "COMPLETADO"
	TransferCancelled TransferStatus = "CANCELADO"
)

// Transfer envío de uno o más productos de una sucursal a otra.
// Se debita el origen al crearla y se acredita el destino al confirmar la recepción.
type Transfer struct {
	ID                  string
	OriginBranchID      string
	OriginName          string
	DestinationBranchID string
	DestinationName     string
	CreatedBy           string
	CreatedAt           time.Time
	ReceivedBy          string
	ReceivedAt          *time.Time
	Status              TransferStatus
	Lines               []TransferLine
}

// TransferLine un producto y su cantidad dentro de una transferencia. Inmutable.
type TransferLine struct {
	ID          string
	TransferID  string
	ProductID   string
	ProductName string
	SKU         string
	Quantity    int
}

// TotalUnits suma de unidades de todas las líneas.
func (t *Transfer) TotalUnits() int {
	total := 0
	for _, l := range t.Lines {
		total += l.Quantity
	}
	return total
}
