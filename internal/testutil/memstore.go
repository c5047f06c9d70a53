// Package testutil provee dobles en memoria de los repositorios para pruebas de casos de uso.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Manufactura-api/internal/application/ports"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// ErrActivityDown error simulado del log de actividad.
var ErrActivityDown = errors.New("activity log no disponible")

// ErrWriteFailed error simulado de escritura para FailOn.
var ErrWriteFailed = errors.New("escritura simulada fallida")

// Operaciones de escritura que FailOn puede hacer fallar.
const (
	OpInventoryUpsert  = "inventory.upsert"
	OpInventorySave    = "inventory.save"
	OpAdjustmentCreate = "adjustments.create"
	OpTransferCreate   = "transfers.create"
	OpTransferUpdate   = "transfers.update"
	OpBatchCreate      = "batches.create"
	OpBatchUpdate      = "batches.update"
	OpBatchStatusEntry = "batches.status_entry"
	OpMaterialStock    = "materials.update_stock"
	OpCostCreate       = "costs.create"
	OpSaleCreate       = "sales.create"
)

type data struct {
	products       map[string]entity.Product
	materials      map[string]entity.RawMaterial
	purchases      []entity.Purchase
	inventory      map[string]entity.InventoryRecord
	adjustments    []entity.InventoryAdjustment
	transfers      map[string]entity.InventoryTransfer
	transferOrder  []string
	batches        map[string]entity.ManufacturingBatch
	batchOrder     []string
	batchMaterials []entity.BatchMaterial
	statusEntries  []entity.BatchStatusEntry
	costs          []entity.ManufacturingCost
	sales          map[string]entity.Sale
	saleOrder      []string
	activity       []entity.ActivityLog
	users          map[string]entity.User
}

func newData() data {
	return data{
		products:  map[string]entity.Product{},
		materials: map[string]entity.RawMaterial{},
		inventory: map[string]entity.InventoryRecord{},
		transfers: map[string]entity.InventoryTransfer{},
		batches:   map[string]entity.ManufacturingBatch{},
		sales:     map[string]entity.Sale{},
		users:     map[string]entity.User{},
	}
}

func (d data) clone() data {
	c := newData()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.materials {
		c.materials[k] = v
	}
	for k, v := range d.inventory {
		c.inventory[k] = v
	}
	for k, v := range d.transfers {
		c.transfers[k] = v
	}
	for k, v := range d.batches {
		c.batches[k] = v
	}
	for k, v := range d.sales {
		v.Items = append([]entity.SaleItem(nil), v.Items...)
		c.sales[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	c.purchases = append(c.purchases, d.purchases...)
	c.adjustments = append(c.adjustments, d.adjustments...)
	c.transferOrder = append(c.transferOrder, d.transferOrder...)
	c.batchOrder = append(c.batchOrder, d.batchOrder...)
	c.batchMaterials = append(c.batchMaterials, d.batchMaterials...)
	c.statusEntries = append(c.statusEntries, d.statusEntries...)
	c.costs = append(c.costs, d.costs...)
	c.saleOrder = append(c.saleOrder, d.saleOrder...)
	c.activity = append(c.activity, d.activity...)
	return c
}

// Store base de datos en memoria. Run serializa las transacciones y restaura el estado
// previo si fn devuelve error.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	d    data

	// FailActivity hace fallar toda escritura del log de actividad.
	FailActivity bool
	failures     map[string]error
	// Commits cantidad de transacciones confirmadas.
	Commits int
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

var _ ports.TxRunner = (*Store)(nil)

// Run ejecuta fn con los repos del Store; ante error revierte todo lo escrito en fn.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// FailOn hace que la operación op devuelva err (ErrWriteFailed si err es nil) hasta Recover.
func (s *Store) FailOn(op string, err error) {
	if err == nil {
		err = ErrWriteFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures == nil {
		s.failures = map[string]error{}
	}
	s.failures[op] = err
}

// Recover quita todas las fallas programadas con FailOn.
func (s *Store) Recover() {
	s.mu.Lock()
	s.failures = nil
	s.mu.Unlock()
}

// fault devuelve la falla programada para op. Se llama con mu tomado.
func (s *Store) fault(op string) error {
	return s.failures[op]
}

// Repos devuelve los repositorios en memoria (también sirven fuera de tx).
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Products:    ProductRepo{s},
		Materials:   MaterialRepo{s},
		Purchases:   PurchaseRepo{s},
		Inventory:   InventoryRepo{s},
		Adjustments: AdjustmentRepo{s},
		Transfers:   TransferRepo{s},
		Batches:     BatchRepo{s},
		Costs:       CostRepo{s},
		Sales:       SaleRepo{s},
		Activity:    ActivityRepo{s},
	}
}

// ── Seeds ────────────────────────────────────────────────────────────────────

// SeedProduct crea un producto y lo devuelve.
func (s *Store) SeedProduct(name, sku string, price decimal.Decimal) *entity.Product {
	now := time.Now()
	p := entity.Product{ID: uuid.New().String(), Name: name, SKU: sku, Price: price, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	s.d.products[p.ID] = p
	s.mu.Unlock()
	return &p
}

// SeedMaterial crea una materia prima.
func (s *Store) SeedMaterial(name, unit string, stock, minLevel decimal.Decimal) *entity.RawMaterial {
	now := time.Now()
	m := entity.RawMaterial{ID: uuid.New().String(), Name: name, Unit: unit, StockQuantity: stock, MinStockLevel: minLevel, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	s.d.materials[m.ID] = m
	s.mu.Unlock()
	return &m
}

// SeedPurchase registra una compra sin tocar el stock.
func (s *Store) SeedPurchase(materialID string, qty, unitPrice decimal.Decimal, date time.Time) {
	p := entity.Purchase{ID: uuid.New().String(), MaterialID: materialID, Quantity: qty, UnitPrice: unitPrice,
		TotalAmount: qty.Mul(unitPrice), PurchaseDate: date, CreatedAt: time.Now()}
	s.mu.Lock()
	s.d.purchases = append(s.d.purchases, p)
	s.mu.Unlock()
}

// SeedInventory fija la cantidad de un producto en una ubicación.
func (s *Store) SeedInventory(productID, location string, qty decimal.Decimal) *entity.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := invKey(productID, location)
	rec, ok := s.d.inventory[key]
	if !ok {
		rec = entity.InventoryRecord{ID: uuid.New().String(), ProductID: productID, Location: location, CreatedAt: time.Now()}
	}
	rec.Quantity = qty
	rec.UpdatedAt = time.Now()
	s.d.inventory[key] = rec
	return &rec
}

// DropInventory borra la fila (producto, ubicación) por fuera de cualquier flujo.
func (s *Store) DropInventory(productID, location string) {
	s.mu.Lock()
	delete(s.d.inventory, invKey(productID, location))
	s.mu.Unlock()
}

// SeedUser crea un usuario.
func (s *Store) SeedUser(u entity.User) *entity.User {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.mu.Lock()
	s.d.users[u.ID] = u
	s.mu.Unlock()
	return &u
}

// ── Consultas para asserts ───────────────────────────────────────────────────

// Quantity cantidad en (producto, ubicación); cero si no hay fila.
func (s *Store) Quantity(productID, location string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.d.inventory[invKey(productID, location)]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

// HasInventory indica si existe la fila (producto, ubicación).
func (s *Store) HasInventory(productID, location string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.d.inventory[invKey(productID, location)]
	return ok
}

// Inventory devuelve la fila (producto, ubicación) o nil.
func (s *Store) Inventory(productID, location string) *entity.InventoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.d.inventory[invKey(productID, location)]; ok {
		return &rec
	}
	return nil
}

// Material devuelve la materia prima o nil.
func (s *Store) Material(id string) *entity.RawMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.d.materials[id]; ok {
		return &m
	}
	return nil
}

// ActivityCount cantidad de entradas del log de actividad.
func (s *Store) ActivityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.activity)
}

// TransferCount cantidad de traslados.
func (s *Store) TransferCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.transfers)
}

// AdjustmentCount cantidad de ajustes auditados.
func (s *Store) AdjustmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.adjustments)
}

// SaleCount cantidad de ventas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.sales)
}

func invKey(productID, location string) string { return productID + "|" + location }

// ── Productos ────────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = ProductRepo{}

func (r ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.d.products {
		if x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.d.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.d.products {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.d.products))
	for _, p := range r.s.d.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	for _, rec := range r.s.d.inventory {
		if rec.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	for _, b := range r.s.d.batches {
		if b.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	for _, sale := range r.s.d.sales {
		for _, it := range sale.Items {
			if it.ProductID == id {
				return domain.ErrProductInUse
			}
		}
	}
	delete(r.s.d.products, id)
	return nil
}

// ── Materias primas y compras ────────────────────────────────────────────────

// MaterialRepo repositorio de materias primas en memoria.
type MaterialRepo struct{ s *Store }

var _ repository.RawMaterialRepository = MaterialRepo{}

func (r MaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.materials[m.ID] = *m
	return nil
}

func (r MaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	return r.s.Material(id), nil
}

func (r MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

func (r MaterialRepo) Update(_ context.Context, m *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.materials[m.ID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	cur.Name, cur.Unit, cur.MinStockLevel, cur.UpdatedAt = m.Name, m.Unit, m.MinStockLevel, m.UpdatedAt
	r.s.d.materials[m.ID] = cur
	return nil
}

func (r MaterialRepo) UpdateStock(_ context.Context, id string, qty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpMaterialStock); err != nil {
		return err
	}
	cur, ok := r.s.d.materials[id]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	cur.StockQuantity = qty
	cur.UpdatedAt = time.Now()
	r.s.d.materials[id] = cur
	return nil
}

func (r MaterialRepo) List(_ context.Context, limit, offset int) ([]*entity.RawMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.RawMaterial, 0, len(r.s.d.materials))
	for _, m := range r.s.d.materials {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r MaterialRepo) ListBelowMinimum(ctx context.Context) ([]*entity.RawMaterial, error) {
	all, _ := r.List(ctx, 0, 0)
	out := make([]*entity.RawMaterial, 0)
	for _, m := range all {
		if m.BelowMinimum() {
			out = append(out, m)
		}
	}
	return out, nil
}

// PurchaseRepo repositorio de compras en memoria.
type PurchaseRepo struct{ s *Store }

var _ repository.PurchaseRepository = PurchaseRepo{}

func (r PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.purchases = append(r.s.d.purchases, *p)
	return nil
}

func (r PurchaseRepo) recent(materialID string) []entity.Purchase {
	out := make([]entity.Purchase, 0)
	for i := len(r.s.d.purchases) - 1; i >= 0; i-- {
		p := r.s.d.purchases[i]
		if materialID == "" || p.MaterialID == materialID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out
}

func (r PurchaseRepo) List(_ context.Context, materialID string, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recent := r.recent(materialID)
	out := make([]*entity.Purchase, 0, len(recent))
	for i := range recent {
		out = append(out, &recent[i])
	}
	return page(out, limit, offset), nil
}

func (r PurchaseRepo) RecentUnitPrices(_ context.Context, materialID string, n int) ([]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]decimal.Decimal, 0, n)
	for _, p := range r.recent(materialID) {
		if len(out) == n {
			break
		}
		out = append(out, p.UnitPrice)
	}
	return out, nil
}

// ── Inventario ───────────────────────────────────────────────────────────────

// InventoryRepo ledger en memoria.
type InventoryRepo struct{ s *Store }

var _ repository.InventoryRepository = InventoryRepo{}

func (r InventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.d.inventory {
		if rec.ID == id {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (r InventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r InventoryRepo) Get(_ context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.s.Inventory(productID, location), nil
}

func (r InventoryRepo) GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.Get(ctx, productID, location)
}

func (r InventoryRepo) Upsert(_ context.Context, rec *entity.InventoryRecord, mode repository.UpsertMode) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpInventoryUpsert); err != nil {
		return false, err
	}
	key := invKey(rec.ProductID, rec.Location)
	cur, ok := r.s.d.inventory[key]
	if !ok {
		if rec.Quantity.LessThan(decimal.Zero) {
			return false, domain.ErrInsufficientQuantity
		}
		r.s.d.inventory[key] = *rec
		return true, nil
	}
	qty := rec.Quantity
	if mode == repository.UpsertAdd {
		qty = cur.Quantity.Add(rec.Quantity)
	}
	if qty.LessThan(decimal.Zero) {
		return false, domain.ErrInsufficientQuantity
	}
	cur.Quantity = qty
	if rec.AttributedTo != "" {
		cur.AttributedTo = rec.AttributedTo
	}
	cur.UpdatedAt = rec.UpdatedAt
	r.s.d.inventory[key] = cur
	*rec = cur
	return false, nil
}

func (r InventoryRepo) Save(_ context.Context, rec *entity.InventoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpInventorySave); err != nil {
		return err
	}
	key := invKey(rec.ProductID, rec.Location)
	cur, ok := r.s.d.inventory[key]
	if !ok || cur.ID != rec.ID {
		return domain.ErrInventoryNotFound
	}
	cur.Quantity, cur.AttributedTo, cur.UpdatedAt = rec.Quantity, rec.AttributedTo, rec.UpdatedAt
	r.s.d.inventory[key] = cur
	return nil
}

func (r InventoryRepo) List(_ context.Context, f repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryRecord, 0)
	for _, rec := range r.s.d.inventory {
		if f.ProductID != "" && rec.ProductID != f.ProductID {
			continue
		}
		if f.Location != "" && rec.Location != f.Location {
			continue
		}
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

// AdjustmentRepo auditoría de ajustes en memoria.
type AdjustmentRepo struct{ s *Store }

var _ repository.AdjustmentRepository = AdjustmentRepo{}

func (r AdjustmentRepo) Create(_ context.Context, a *entity.InventoryAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpAdjustmentCreate); err != nil {
		return err
	}
	r.s.d.adjustments = append(r.s.d.adjustments, *a)
	return nil
}

func (r AdjustmentRepo) ListByInventory(_ context.Context, inventoryID string) ([]*entity.InventoryAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryAdjustment, 0)
	for i := range r.s.d.adjustments {
		if r.s.d.adjustments[i].InventoryID == inventoryID {
			a := r.s.d.adjustments[i]
			out = append(out, &a)
		}
	}
	return out, nil
}

// ── Traslados ────────────────────────────────────────────────────────────────

// TransferRepo traslados en memoria.
type TransferRepo struct{ s *Store }

var _ repository.TransferRepository = TransferRepo{}

func (r TransferRepo) Create(_ context.Context, t *entity.InventoryTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpTransferCreate); err != nil {
		return err
	}
	r.s.d.transfers[t.ID] = *t
	r.s.d.transferOrder = append(r.s.d.transferOrder, t.ID)
	return nil
}

func (r TransferRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.d.transfers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r TransferRepo) GetPendingForUpdate(ctx context.Context, id string) (*entity.InventoryTransfer, error) {
	t, _ := r.GetByID(ctx, id)
	if t == nil || t.Status != entity.TransferStatusPending {
		return nil, nil
	}
	return t, nil
}

func (r TransferRepo) Update(_ context.Context, t *entity.InventoryTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpTransferUpdate); err != nil {
		return err
	}
	if _, ok := r.s.d.transfers[t.ID]; !ok {
		return domain.ErrTransferNotFoundOrProcessed
	}
	r.s.d.transfers[t.ID] = *t
	return nil
}

func (r TransferRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.InventoryTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventoryTransfer, 0)
	for i := len(r.s.d.transferOrder) - 1; i >= 0; i-- {
		t := r.s.d.transfers[r.s.d.transferOrder[i]]
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, &t)
	}
	return page(out, limit, offset), nil
}

// ── Lotes y costos ───────────────────────────────────────────────────────────

// BatchRepo lotes en memoria.
type BatchRepo struct{ s *Store }

var _ repository.BatchRepository = BatchRepo{}

func (r BatchRepo) Create(_ context.Context, b *entity.ManufacturingBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpBatchCreate); err != nil {
		return err
	}
	for _, x := range r.s.d.batches {
		if x.BatchNumber == b.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.d.batches[b.ID] = *b
	r.s.d.batchOrder = append(r.s.d.batchOrder, b.ID)
	return nil
}

func (r BatchRepo) GetByID(_ context.Context, id string) (*entity.ManufacturingBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.d.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ManufacturingBatch, error) {
	return r.GetByID(ctx, id)
}

func (r BatchRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.d.batches {
		if b.BatchNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r BatchRepo) Update(_ context.Context, b *entity.ManufacturingBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpBatchUpdate); err != nil {
		return err
	}
	cur, ok := r.s.d.batches[b.ID]
	if !ok {
		return domain.ErrBatchNotFound
	}
	cur.Status, cur.CompletionDate, cur.UpdatedAt = b.Status, b.CompletionDate, b.UpdatedAt
	r.s.d.batches[b.ID] = cur
	return nil
}

func (r BatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.ManufacturingBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ManufacturingBatch, 0)
	for i := len(r.s.d.batchOrder) - 1; i >= 0; i-- {
		b := r.s.d.batches[r.s.d.batchOrder[i]]
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.ProductID != "" && b.ProductID != f.ProductID {
			continue
		}
		out = append(out, &b)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r BatchRepo) AddMaterial(_ context.Context, m *entity.BatchMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.batchMaterials = append(r.s.d.batchMaterials, *m)
	return nil
}

func (r BatchRepo) ListMaterials(_ context.Context, batchID string) ([]*entity.BatchMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.BatchMaterial, 0)
	for _, m := range r.s.d.batchMaterials {
		if m.BatchID == batchID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r BatchRepo) AddStatusEntry(_ context.Context, e *entity.BatchStatusEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpBatchStatusEntry); err != nil {
		return err
	}
	if u, ok := r.s.d.users[e.ChangedBy]; ok && e.ChangedByName == "" {
		e.ChangedByName = u.Name
	}
	r.s.d.statusEntries = append(r.s.d.statusEntries, *e)
	return nil
}

func (r BatchRepo) ListStatusEntries(_ context.Context, batchID string) ([]*entity.BatchStatusEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.BatchStatusEntry, 0)
	for _, e := range r.s.d.statusEntries {
		if e.BatchID == batchID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

// CostRepo costos en memoria.
type CostRepo struct{ s *Store }

var _ repository.CostRepository = CostRepo{}

func (r CostRepo) Create(_ context.Context, c *entity.ManufacturingCost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpCostCreate); err != nil {
		return err
	}
	r.s.d.costs = append(r.s.d.costs, *c)
	return nil
}

func (r CostRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.ManufacturingCost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ManufacturingCost, 0)
	for _, c := range r.s.d.costs {
		if c.BatchID == batchID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria.
type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = SaleRepo{}

func (r SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(OpSaleCreate); err != nil {
		return err
	}
	for _, x := range r.s.d.sales {
		if x.SaleNumber == sale.SaleNumber {
			return domain.ErrDuplicate
		}
	}
	c := *sale
	c.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.s.d.sales[sale.ID] = c
	r.s.d.saleOrder = append(r.s.d.saleOrder, sale.ID)
	return nil
}

func (r SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale, ok := r.s.d.sales[id]; ok {
		sale.Items = append([]entity.SaleItem(nil), sale.Items...)
		return &sale, nil
	}
	return nil, nil
}

func (r SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Sale, 0)
	for i := len(r.s.d.saleOrder) - 1; i >= 0; i-- {
		sale := r.s.d.sales[r.s.d.saleOrder[i]]
		sale.Items = nil
		out = append(out, &sale)
	}
	return page(out, limit, offset), nil
}

// ── Actividad y usuarios ─────────────────────────────────────────────────────

// ActivityRepo log de actividad en memoria.
type ActivityRepo struct{ s *Store }

var _ repository.ActivityLogRepository = ActivityRepo{}

func (r ActivityRepo) Create(_ context.Context, e *entity.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailActivity {
		return ErrActivityDown
	}
	r.s.d.activity = append(r.s.d.activity, *e)
	return nil
}

func (r ActivityRepo) List(_ context.Context, module string, limit, offset int) ([]*entity.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ActivityLog, 0)
	for i := len(r.s.d.activity) - 1; i >= 0; i-- {
		e := r.s.d.activity[i]
		if module != "" && e.Module != module {
			continue
		}
		out = append(out, &e)
	}
	return page(out, limit, offset), nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = UserRepo{}

// Users repositorio de usuarios del Store.
func (s *Store) Users() UserRepo { return UserRepo{s} }

func (r UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.d.users {
		if x.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	r.s.d.users[u.ID] = *u
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.d.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.d.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
