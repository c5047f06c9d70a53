package activity

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// UseCase consulta del log de actividad.
type UseCase struct {
	repo repository.ActivityLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ActivityLogRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las entradas más recientes, filtrando por módulo si no es vacío.
func (uc *UseCase) List(ctx context.Context, module string, limit, offset int) ([]*entity.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, module, limit, offset)
}
