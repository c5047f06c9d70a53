package testutil

import (
	"context"
	"sort"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// ReportRepo consultas de reporte sobre el Store.
type ReportRepo struct{ s *Store }

var _ repository.ReportRepository = ReportRepo{}

// Reports repositorio de reportes del Store.
func (s *Store) Reports() ReportRepo { return ReportRepo{s} }

func (r ReportRepo) BatchesByStatus(_ context.Context) ([]repository.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int{}
	for _, b := range r.s.d.batches {
		counts[b.Status]++
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r ReportRepo) StockByLocation(_ context.Context) ([]repository.LocationStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byLoc := map[string]*repository.LocationStock{}
	for _, rec := range r.s.d.inventory {
		ls, ok := byLoc[rec.Location]
		if !ok {
			ls = &repository.LocationStock{Location: rec.Location}
			byLoc[rec.Location] = ls
		}
		ls.Quantity = ls.Quantity.Add(rec.Quantity)
		ls.Products++
	}
	out := make([]repository.LocationStock, 0, len(byLoc))
	for _, ls := range byLoc {
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

func (r ReportRepo) CountPendingTransfers(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.d.transfers {
		if t.Status == entity.TransferStatusPending {
			n++
		}
	}
	return n, nil
}

func (r ReportRepo) CountLowStockMaterials(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.d.materials {
		if m.BelowMinimum() {
			n++
		}
	}
	return n, nil
}

func (r ReportRepo) InventoryRows(_ context.Context) ([]repository.InventoryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]repository.InventoryRow, 0, len(r.s.d.inventory))
	for _, rec := range r.s.d.inventory {
		p := r.s.d.products[rec.ProductID]
		out = append(out, repository.InventoryRow{
			ProductID:   rec.ProductID,
			SKU:         p.SKU,
			ProductName: p.Name,
			Location:    rec.Location,
			Quantity:    rec.Quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SKU != out[j].SKU {
			return out[i].SKU < out[j].SKU
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}
