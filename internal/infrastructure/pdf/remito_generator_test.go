package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/pdf"
)

func TestGenerateRemitoPDF_DevuelveUnPDF(t *testing.T) {
	now := time.Now()
	tr := &entity.Transfer{
		ID:              "0b7c9d1e-1111-2222-3333-444455556666",
		OriginName:      "Centro",
		DestinationName: "Norte",
		CreatedAt:       now,
		ReceivedAt:      &now,
		Status:          entity.TransferCompleted,
		Lines: []entity.TransferLine{
			{ProductID: "p-1", ProductName: "Yerba 1kg", SKU: "YER-1", Quantity: 3},
			{ProductID: "p-2", ProductName: "Azúcar 1kg", Quantity: 2},
		},
	}

	out, err := pdf.NewRemitoGenerator("Almacenes del Sur").GenerateRemitoPDF(context.Background(), tr)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
