package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// CostUseCase registra costos contra lotes y calcula su desglose.
type CostUseCase struct {
	txRunner     ports.TxRunner
	batchRepo    repository.BatchRepository
	costRepo     repository.CostRepository
	materialRepo repository.RawMaterialRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	pdf          ports.CostSheetPDFGenerator
	activity     *activity.Logger
}

// NewCostUseCase construye el caso de uso.
func NewCostUseCase(
	txRunner ports.TxRunner,
	batchRepo repository.BatchRepository,
	costRepo repository.CostRepository,
	materialRepo repository.RawMaterialRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	pdf ports.CostSheetPDFGenerator,
	act *activity.Logger,
) *CostUseCase {
	return &CostUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		costRepo:     costRepo,
		materialRepo: materialRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		pdf:          pdf,
		activity:     act,
	}
}

// AddCostInput entrada para registrar un costo.
type AddCostInput struct {
	BatchID     string
	CostType    string
	Amount      decimal.Decimal
	Description string
	UserID      string
}

// AddCost inserta un costo. Un lote completed no admite más costos.
func (uc *CostUseCase) AddCost(ctx context.Context, in AddCostInput) (*entity.ManufacturingCost, error) {
	var cost *entity.ManufacturingCost
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// Bloquea el lote para que no se complete mientras se registra el costo
		b, err := r.Batches.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrBatchNotFound
		}
		if b.IsCompleted() {
			return domain.ErrBatchCompleted
		}
		if !entity.IsValidCostType(in.CostType) {
			return domain.ErrInvalidCostType
		}
		if !in.Amount.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidAmount
		}
		cost = &entity.ManufacturingCost{
			ID:           uuid.New().String(),
			BatchID:      b.ID,
			CostType:     in.CostType,
			Amount:       in.Amount,
			RecordedDate: time.Now(),
			Description:  strings.TrimSpace(in.Description),
			RecordedBy:   in.UserID,
		}
		if err := r.Costs.Create(ctx, cost); err != nil {
			return err
		}
		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionCreate,
			Module:      activity.ModuleCosts,
			Description: fmt.Sprintf("Costo %s de %s en lote %s", in.CostType, in.Amount, b.BatchNumber),
			EntityID:    cost.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cost, nil
}

// ListCosts costos registrados del lote.
func (uc *CostUseCase) ListCosts(ctx context.Context, batchID string) ([]*entity.ManufacturingCost, error) {
	if _, err := uc.batch(ctx, batchID); err != nil {
		return nil, err
	}
	return uc.costRepo.ListByBatch(ctx, batchID)
}

// GetCostBreakdown calcula el desglose del lote: materiales al promedio de sus 5 compras más
// recientes más los costos registrados agrupados por categoría.
func (uc *CostUseCase) GetCostBreakdown(ctx context.Context, batchID string) (*entity.ManufacturingBatch, manufacturing.Breakdown, error) {
	b, err := uc.batch(ctx, batchID)
	if err != nil {
		return nil, manufacturing.Breakdown{}, err
	}
	bd, _, err := uc.breakdown(ctx, b)
	if err != nil {
		return nil, manufacturing.Breakdown{}, err
	}
	return b, bd, nil
}

// BreakdownFor desglose de un lote ya cargado (reportes).
func (uc *CostUseCase) BreakdownFor(ctx context.Context, b *entity.ManufacturingBatch) (manufacturing.Breakdown, error) {
	bd, _, err := uc.breakdown(ctx, b)
	return bd, err
}

func (uc *CostUseCase) breakdown(ctx context.Context, b *entity.ManufacturingBatch) (manufacturing.Breakdown, []*entity.ManufacturingCost, error) {
	materials, err := uc.batchRepo.ListMaterials(ctx, b.ID)
	if err != nil {
		return manufacturing.Breakdown{}, nil, err
	}
	lines := make([]manufacturing.MaterialCostLine, 0, len(materials))
	for _, bm := range materials {
		line := manufacturing.MaterialCostLine{MaterialID: bm.MaterialID, QuantityRequired: bm.QuantityRequired}
		if mat, err := uc.materialRepo.GetByID(ctx, bm.MaterialID); err != nil {
			return manufacturing.Breakdown{}, nil, err
		} else if mat != nil {
			line.MaterialName = mat.Name
			line.Unit = mat.Unit
		}
		prices, err := uc.purchaseRepo.RecentUnitPrices(ctx, bm.MaterialID, manufacturing.RecentPurchaseWindow)
		if err != nil {
			return manufacturing.Breakdown{}, nil, err
		}
		line.AverageUnitPrice = manufacturing.AverageUnitPrice(prices)
		lines = append(lines, line)
	}
	costs, err := uc.costRepo.ListByBatch(ctx, b.ID)
	if err != nil {
		return manufacturing.Breakdown{}, nil, err
	}
	return manufacturing.BuildBreakdown(b.QuantityProduced, lines, costs), costs, nil
}

// CostSheetPDF genera la hoja de costos del lote en PDF.
func (uc *CostUseCase) CostSheetPDF(ctx context.Context, batchID, generatedBy string) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("cost sheet: generador PDF no configurado")
	}
	b, err := uc.batch(ctx, batchID)
	if err != nil {
		return nil, "", err
	}
	product, err := uc.productRepo.GetByID(ctx, b.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("cost sheet: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrProductNotFound
	}
	bd, costs, err := uc.breakdown(ctx, b)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.Generate(ports.CostSheetData{
		Batch:       b,
		Product:     product,
		Breakdown:   bd,
		Costs:       costs,
		GeneratedBy: generatedBy,
	})
	if err != nil {
		return nil, "", fmt.Errorf("cost sheet: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("costos-%s.pdf", b.BatchNumber), nil
}

func (uc *CostUseCase) batch(ctx context.Context, id string) (*entity.ManufacturingBatch, error) {
	b, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBatchNotFound
	}
	return b, nil
}
