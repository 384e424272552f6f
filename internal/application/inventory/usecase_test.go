package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, newQuantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = newQuantity
	return nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) CountActiveByCategory(string) (int, error) { return 0, nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes, y si el
// callback falla descarta los cambios de stock (simula el rollback).
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	backupProducts := map[string]entity.Product{}
	for id, p := range r.productRepo.products {
		backupProducts[id] = *p
	}
	backupMovs := len(r.movRepo.movements)

	if err := fn(r.movRepo, r.productRepo); err != nil {
		for id := range r.productRepo.products {
			p := backupProducts[id]
			r.productRepo.products[id] = &p
		}
		r.movRepo.movements = r.movRepo.movements[:backupMovs]
		return err
	}
	return nil
}

func newTestProduct(id string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		StockQuantity: stock,
		MinimumStock:  5,
		IsActive:      true,
	}
}

func buildUseCase(products ...*entity.Product) (*inventory.MovementUseCase, *fakeMovementRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, productRepo: productRepo}
	return inventory.NewMovementUseCase(runner, productRepo), movRepo, productRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_CompraSumaStock(t *testing.T) {
	uc, movRepo, productRepo := buildUseCase(newTestProduct("p1", 10))

	newQty, mov, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypePurchase,
		Quantity:  15,
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 25, newQty, "compra de 15 sobre stock 10 debe dejar 25")
	assert.Equal(t, 10, mov.PreviousQuantity)
	assert.Equal(t, 15, mov.Quantity, "el delta de una compra es positivo")
	assert.Equal(t, 25, mov.NewQuantity)
	assert.Len(t, movRepo.movements, 1, "debe quedar exactamente un registro en el ledger")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, 25, p.StockQuantity)
}

func TestApplyMovement_VentaRestaStock(t *testing.T) {
	uc, _, productRepo := buildUseCase(newTestProduct("p1", 10))

	newQty, mov, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeSale,
		Quantity:  4,
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, newQty)
	assert.Equal(t, -4, mov.Quantity, "el delta de una venta es negativo")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, 6, p.StockQuantity)
}

func TestApplyMovement_AjusteFijaValorAbsoluto(t *testing.T) {
	uc, _, _ := buildUseCase(newTestProduct("p1", 10))

	newQty, mov, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  3,
		UserID:    "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, newQty, "adjustment fija el stock en el valor indicado, no suma")
	assert.Equal(t, -7, mov.Quantity, "el delta registrado es la diferencia con el stock previo")
	assert.Equal(t, 10, mov.PreviousQuantity)
}

func TestApplyMovement_AjusteACero(t *testing.T) {
	uc, _, productRepo := buildUseCase(newTestProduct("p1", 10))

	newQty, _, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  0,
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, newQty, "adjustment a 0 es válido")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, 0, p.StockQuantity)
}

func TestApplyMovement_DevolucionSumaStock(t *testing.T) {
	uc, _, _ := buildUseCase(newTestProduct("p1", 2))

	newQty, mov, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeReturn,
		Quantity:  1,
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, newQty)
	assert.Equal(t, 1, mov.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos y rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_VentaSinStock_NoDejaRastro(t *testing.T) {
	uc, movRepo, productRepo := buildUseCase(newTestProduct("p1", 3))

	_, _, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeSale,
		Quantity:  5,
		UserID:    "u1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"venta mayor al stock debe fallar con stock insuficiente")

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "el error debe llevar el detalle tipado")
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, 3, p.StockQuantity, "el stock no debe cambiar tras un rechazo")
	assert.Empty(t, movRepo.movements, "no debe quedar ningún registro en el ledger")
}

func TestApplyMovement_TipoInvalido(t *testing.T) {
	uc, movRepo, _ := buildUseCase(newTestProduct("p1", 10))

	_, _, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1",
		Type:      "transfer",
		Quantity:  1,
		UserID:    "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
	assert.Empty(t, movRepo.movements)
}

func TestApplyMovement_CantidadInvalida(t *testing.T) {
	uc, _, _ := buildUseCase(newTestProduct("p1", 10))

	// Cantidad cero en compra
	_, _, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1", Type: entity.MovementTypePurchase, Quantity: 0, UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad negativa en adjustment
	_, _, err = uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: -1, UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, _, err := uc.ApplyMovement(context.Background(), inventory.ApplyMovementInput{
		ProductID: "nope", Type: entity.MovementTypePurchase, Quantity: 1, UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_InvarianteNewEqualsPreviousPlusQuantity(t *testing.T) {
	uc, movRepo, _ := buildUseCase(newTestProduct("p1", 0))

	steps := []inventory.ApplyMovementInput{
		{ProductID: "p1", Type: entity.MovementTypePurchase, Quantity: 20, UserID: "u1"},
		{ProductID: "p1", Type: entity.MovementTypeSale, Quantity: 7, UserID: "u1"},
		{ProductID: "p1", Type: entity.MovementTypeReturn, Quantity: 2, UserID: "u1"},
		{ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: 10, UserID: "u1"},
	}
	for _, s := range steps {
		_, _, err := uc.ApplyMovement(context.Background(), s)
		require.NoError(t, err)
	}

	require.Len(t, movRepo.movements, 4)
	for i, m := range movRepo.movements {
		assert.Equal(t, m.PreviousQuantity+m.Quantity, m.NewQuantity,
			"movimiento %d debe cumplir new = previous + quantity", i)
	}
	// Cada movimiento encadena con el anterior
	for i := 1; i < len(movRepo.movements); i++ {
		assert.Equal(t, movRepo.movements[i-1].NewQuantity, movRepo.movements[i].PreviousQuantity,
			"el previous del movimiento %d debe ser el new del anterior", i)
	}
	assert.Equal(t, 10, movRepo.movements[3].NewQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock (ajuste manual del endpoint update-stock)
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_SoloPurchaseYAdjustment(t *testing.T) {
	uc, _, _ := buildUseCase(newTestProduct("p1", 10))

	_, err := uc.AdjustStock(context.Background(), "p1", entity.MovementTypeSale, 1, "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType, "sale no se permite a mano")

	_, err = uc.AdjustStock(context.Background(), "p1", entity.MovementTypeReturn, 1, "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType, "return no se permite a mano")

	newQty, err := uc.AdjustStock(context.Background(), "p1", entity.MovementTypePurchase, 5, "compra", "u1")
	require.NoError(t, err)
	assert.Equal(t, 15, newQty)

	newQty, err = uc.AdjustStock(context.Background(), "p1", entity.MovementTypeAdjustment, 8, "conteo físico", "u1")
	require.NoError(t, err)
	assert.Equal(t, 8, newQty)
}
