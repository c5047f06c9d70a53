// Package production implementa el ciclo de vida de los lotes de manufactura y su costeo.
package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/inventory"
	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/manufacturing"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// maxBatchNumberAttempts reintentos para obtener un número de lote libre.
const maxBatchNumberAttempts = 5

// Options reglas configurables del ciclo de producción.
type Options struct {
	// StrictMaterialStock rechaza la creación si falta materia prima; por defecto se descuenta sin verificar.
	StrictMaterialStock bool
}

// BatchUseCase crea lotes y avanza su estado con sus efectos sobre materia prima e inventario.
type BatchUseCase struct {
	txRunner    ports.TxRunner
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	activity    *activity.Logger
	opts        Options
	now         func() time.Time
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	txRunner ports.TxRunner,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	act *activity.Logger,
	opts Options,
) *BatchUseCase {
	return &BatchUseCase{
		txRunner:    txRunner,
		batchRepo:   batchRepo,
		productRepo: productRepo,
		activity:    act,
		opts:        opts,
		now:         time.Now,
	}
}

// MaterialLine consumo solicitado de una materia prima.
type MaterialLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// CreateBatchInput entrada para crear un lote.
type CreateBatchInput struct {
	ProductID              string
	Quantity               decimal.Decimal
	StartDate              *time.Time // nil = hoy
	ExpectedCompletionDate *time.Time
	Notes                  string
	Materials              []MaterialLine
	UserID                 string
	Username               string
}

// Create inserta el lote en pending, fotografía sus materiales, descuenta la materia prima
// y registra la primera entrada del historial. Todo en una tx.
func (uc *BatchUseCase) Create(ctx context.Context, in CreateBatchInput) (*entity.ManufacturingBatch, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	now := uc.now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.ExpectedCompletionDate != nil && in.ExpectedCompletionDate.Before(start) {
		return nil, domain.ErrInvalidDates
	}
	seen := make(map[string]bool, len(in.Materials))
	for _, m := range in.Materials {
		if m.MaterialID == "" {
			return nil, fmt.Errorf("%w: material_id es obligatorio", domain.ErrInvalidInput)
		}
		if !m.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		if seen[m.MaterialID] {
			return nil, fmt.Errorf("%w: material %s repetido", domain.ErrInvalidInput, m.MaterialID)
		}
		seen[m.MaterialID] = true
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	var batch *entity.ManufacturingBatch
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		number, err := uc.freeBatchNumber(ctx, r.Batches, now)
		if err != nil {
			return err
		}
		batch = &entity.ManufacturingBatch{
			ID:                     uuid.New().String(),
			BatchNumber:            number,
			ProductID:              product.ID,
			QuantityProduced:       in.Quantity,
			Status:                 entity.BatchStatusPending,
			StartDate:              start,
			ExpectedCompletionDate: in.ExpectedCompletionDate,
			Notes:                  strings.TrimSpace(in.Notes),
			CreatedBy:              in.UserID,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := r.Batches.Create(ctx, batch); err != nil {
			return err
		}

		for _, line := range in.Materials {
			mat, err := r.Materials.GetForUpdate(ctx, line.MaterialID)
			if err != nil {
				return err
			}
			if mat == nil {
				return domain.ErrMaterialNotFound
			}
			if uc.opts.StrictMaterialStock && mat.StockQuantity.LessThan(line.Quantity) {
				return fmt.Errorf("%w: %s disponible %s, requerido %s",
					domain.ErrInsufficientStock, mat.Name, mat.StockQuantity, line.Quantity)
			}
			if err := r.Batches.AddMaterial(ctx, &entity.BatchMaterial{
				ID:               uuid.New().String(),
				BatchID:          batch.ID,
				MaterialID:       mat.ID,
				QuantityRequired: line.Quantity,
			}); err != nil {
				return err
			}
			if err := r.Materials.UpdateStock(ctx, mat.ID, mat.StockQuantity.Sub(line.Quantity)); err != nil {
				return err
			}
		}

		message := batch.Notes
		if message == "" {
			message = "Lote creado"
		}
		if err := r.Batches.AddStatusEntry(ctx, &entity.BatchStatusEntry{
			ID:            uuid.New().String(),
			BatchID:       batch.ID,
			FromStatus:    "",
			ToStatus:      entity.BatchStatusPending,
			Message:       message,
			ChangedBy:     in.UserID,
			ChangedByName: in.Username,
			ChangedAt:     now,
		}); err != nil {
			return err
		}

		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionCreate,
			Module:      activity.ModuleBatches,
			Description: fmt.Sprintf("Lote %s creado: %s unidades de %s", batch.BatchNumber, in.Quantity, product.Name),
			EntityID:    batch.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (uc *BatchUseCase) freeBatchNumber(ctx context.Context, repo repository.BatchRepository, now time.Time) (string, error) {
	for i := 0; i < maxBatchNumberAttempts; i++ {
		number := manufacturing.NewBatchNumber(now)
		exists, err := repo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("%w: no se encontró un número de lote libre", domain.ErrDuplicate)
}

// AdvanceInput entrada para cambiar el estado de un lote.
type AdvanceInput struct {
	BatchID  string
	Status   string
	Notes    string
	UserID   string
	Username string
}

// Advance cambia el estado del lote. Al entrar en completed fija completion_date = hoy y suma
// quantity_produced al inventario de manufacturing. Cualquier fallo revierte todo.
func (uc *BatchUseCase) Advance(ctx context.Context, in AdvanceInput) (*entity.ManufacturingBatch, error) {
	var batch *entity.ManufacturingBatch
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		var err error
		batch, err = r.Batches.GetForUpdate(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrBatchNotFound
		}
		if err := manufacturing.ValidateTransition(batch.Status, in.Status); err != nil {
			return err
		}

		now := uc.now()
		from := batch.Status
		batch.Status = in.Status
		batch.UpdatedAt = now
		if in.Status == entity.BatchStatusCompleted {
			y, m, d := now.Date()
			today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
			batch.CompletionDate = &today
			ledger := inventory.NewLedger(r.Inventory)
			if _, _, err := ledger.Increment(ctx, batch.ProductID, entity.LocationManufacturing, batch.QuantityProduced, ""); err != nil {
				return err
			}
		}
		if err := r.Batches.Update(ctx, batch); err != nil {
			return err
		}

		message := strings.TrimSpace(in.Notes)
		if message == "" {
			message = fmt.Sprintf("Estado cambiado de %s a %s", from, in.Status)
		}
		if err := r.Batches.AddStatusEntry(ctx, &entity.BatchStatusEntry{
			ID:            uuid.New().String(),
			BatchID:       batch.ID,
			FromStatus:    from,
			ToStatus:      in.Status,
			Message:       message,
			ChangedBy:     in.UserID,
			ChangedByName: in.Username,
			ChangedAt:     now,
		}); err != nil {
			return err
		}

		uc.activity.Log(ctx, r.Activity, activity.Entry{
			UserID:      in.UserID,
			Action:      activity.ActionStatusChange,
			Module:      activity.ModuleBatches,
			Description: fmt.Sprintf("Lote %s: %s → %s", batch.BatchNumber, from, in.Status),
			EntityID:    batch.ID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Get un lote por ID.
func (uc *BatchUseCase) Get(ctx context.Context, id string) (*entity.ManufacturingBatch, error) {
	b, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBatchNotFound
	}
	return b, nil
}

// List lotes filtrando por estado y/o producto.
func (uc *BatchUseCase) List(ctx context.Context, filter repository.BatchFilter) ([]*entity.ManufacturingBatch, error) {
	if filter.Status != "" && !manufacturing.IsValidStatus(filter.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return uc.batchRepo.List(ctx, filter)
}

// History historial de estados del lote en orden cronológico.
func (uc *BatchUseCase) History(ctx context.Context, batchID string) ([]*entity.BatchStatusEntry, error) {
	if _, err := uc.Get(ctx, batchID); err != nil {
		return nil, err
	}
	return uc.batchRepo.ListStatusEntries(ctx, batchID)
}

// Materials consumo de materia prima fotografiado al crear el lote.
func (uc *BatchUseCase) Materials(ctx context.Context, batchID string) ([]*entity.BatchMaterial, error) {
	if _, err := uc.Get(ctx, batchID); err != nil {
		return nil, err
	}
	return uc.batchRepo.ListMaterials(ctx, batchID)
}
