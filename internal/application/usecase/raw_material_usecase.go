package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// RawMaterialUseCase alta y mantenimiento de materias primas. El stock solo cambia por compras y lotes.
type RawMaterialUseCase struct {
	repo         repository.RawMaterialRepository
	activityRepo repository.ActivityLogRepository
	activity     *activity.Logger
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repo repository.RawMaterialRepository, activityRepo repository.ActivityLogRepository, act *activity.Logger) *RawMaterialUseCase {
	return &RawMaterialUseCase{repo: repo, activityRepo: activityRepo, activity: act}
}

// Create registra una materia prima con su stock inicial.
func (uc *RawMaterialUseCase) Create(ctx context.Context, userID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" {
		return nil, fmt.Errorf("%w: name y unit son obligatorios", domain.ErrInvalidInput)
	}
	if in.StockQuantity.LessThan(decimal.Zero) || in.MinStockLevel.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: stock y mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	m := &entity.RawMaterial{
		ID:            uuid.New().String(),
		Name:          name,
		Unit:          unit,
		StockQuantity: in.StockQuantity,
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.activity.Log(ctx, uc.activityRepo, activity.Entry{
		UserID:      userID,
		Action:      activity.ActionCreate,
		Module:      activity.ModuleCatalog,
		Description: fmt.Sprintf("Materia prima %s creada", m.Name),
		EntityID:    m.ID,
	})
	out := dto.NewMaterialResponse(m)
	return &out, nil
}

// GetByID obtiene una materia prima.
func (uc *RawMaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	out := dto.NewMaterialResponse(m)
	return &out, nil
}

// Update cambia nombre, unidad o nivel mínimo.
func (uc *RawMaterialUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		if strings.TrimSpace(*in.Unit) == "" {
			return nil, fmt.Errorf("%w: unit no puede quedar vacío", domain.ErrInvalidInput)
		}
		m.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinStockLevel != nil {
		if in.MinStockLevel.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: el mínimo no puede ser negativo", domain.ErrInvalidInput)
		}
		m.MinStockLevel = *in.MinStockLevel
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.activity.Log(ctx, uc.activityRepo, activity.Entry{
		UserID:      userID,
		Action:      activity.ActionUpdate,
		Module:      activity.ModuleCatalog,
		Description: fmt.Sprintf("Materia prima %s actualizada", m.Name),
		EntityID:    m.ID,
	})
	out := dto.NewMaterialResponse(m)
	return &out, nil
}

// List lista materias primas por nombre.
func (uc *RawMaterialUseCase) List(ctx context.Context, limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
