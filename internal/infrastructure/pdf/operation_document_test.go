package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
)

func TestGenerateOperationPDF(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	old, diff, nq := decimal.NewFromInt(20), decimal.NewFromInt(-5), decimal.NewFromInt(15)

	cases := []*dto.OperationResponse{
		{
			Kind: entity.OperationKindReceipt, Number: "REC-20260301-0A1B2C3D", Status: entity.OperationStatusDraft,
			WarehouseName: "Central", PartnerName: "Proveedor SA", Date: now,
			Lines: []dto.OperationLineResponse{{ProductName: "Tornillo", SKU: "TOR-1", Quantity: decimal.NewFromInt(5)}},
		},
		{
			Kind: entity.OperationKindAdjustment, Number: "ADJ-20260301-0A1B2C3D", Status: entity.OperationStatusDone,
			WarehouseName: "Central", Reason: "conteo", Date: now, ValidatedBy: "u1", ValidatedAt: &now,
			Lines: []dto.OperationLineResponse{{ProductName: "Tuerca", SKU: "TU-1", NewQuantity: &nq, OldQuantity: &old, Difference: &diff}},
		},
	}
	g := pdf.NewMarotoPDFGenerator()
	for _, op := range cases {
		t.Run(op.Kind, func(t *testing.T) {
			out, err := g.GenerateOperationPDF(context.Background(), op)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateOperationPDF_Nil(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator().GenerateOperationPDF(context.Background(), nil)
	assert.Error(t, err)
}
