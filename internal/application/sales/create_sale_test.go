package sales_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
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

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateStock(productID string, newQuantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeProductRepo) Deactivate(string) error                  { return nil }
func (r *fakeProductRepo) CountActiveByCategory(string) (int, error) { return 0, nil }

func (r *fakeProductRepo) snapshot() map[string]entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]entity.Product{}
	for id, p := range r.products {
		out[id] = *p
	}
	return out
}

func (r *fakeProductRepo) restore(snap map[string]entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.products {
		p := snap[id]
		r.products[id] = &p
	}
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) List(int, int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.StockMovement{}, r.movements...), nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *it
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetBySaleID(saleID string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.SaleID == saleID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SaleItem
	for _, it := range r.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(repository.SaleFilter) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Sale{}, r.sales...), nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(*entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) Deactivate(string) error                    { return nil }

// fakeSaleTxRunner serializa las transacciones con un mutex (equivalente al
// bloqueo de fila) y revierte todos los cambios si el callback falla.
type fakeSaleTxRunner struct {
	mu          sync.Mutex
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
}

func (r *fakeSaleTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	productSnap := r.productRepo.snapshot()
	salesLen := len(r.saleRepo.sales)
	itemsLen := len(r.saleRepo.items)
	movsLen := len(r.movRepo.movements)

	if err := fn(r.movRepo, r.productRepo, r.saleRepo); err != nil {
		r.productRepo.restore(productSnap)
		r.saleRepo.sales = r.saleRepo.sales[:salesLen]
		r.saleRepo.items = r.saleRepo.items[:itemsLen]
		r.movRepo.movements = r.movRepo.movements[:movsLen]
		return err
	}
	return nil
}

type saleFixture struct {
	uc          *sales.CreateSaleUseCase
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
	saleRepo    *fakeSaleRepo
}

func newSaleFixture(products ...*entity.Product) *saleFixture {
	productRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	saleRepo := &fakeSaleRepo{}
	runner := &fakeSaleTxRunner{movRepo: movRepo, productRepo: productRepo, saleRepo: saleRepo}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"cashier1": {ID: "cashier1", FullName: "Cajero Uno", Role: entity.RoleCashier, IsActive: true},
	}}
	return &saleFixture{
		uc:          sales.NewCreateSaleUseCase(runner, productRepo, userRepo),
		productRepo: productRepo,
		movRepo:     movRepo,
		saleRepo:    saleRepo,
	}
}

func activeProduct(id string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		SellingPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
		MinimumStock:  5,
		IsActive:      true,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Checkout exitoso
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_CheckoutCompleto(t *testing.T) {
	fx := newSaleFixture(
		activeProduct("a1", "2500", 10),
		activeProduct("b2", "1800", 20),
	)

	resp, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		TaxAmount:     dec("0"),
		FinalAmount:   dec("8600"), // 2*2500 + 2*1800
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 2, UnitPrice: dec("2500")},
			{ProductID: "b2", Quantity: 2, UnitPrice: dec("1800")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(dec("8600")))
	assert.True(t, resp.FinalAmount.Equal(dec("8600")))
	assert.Equal(t, "Cajero Uno", resp.CashierName)
	assert.Len(t, resp.Items, 2)

	// Formato del identificador legible
	assert.Regexp(t, regexp.MustCompile(`^SALE-[0-9A-F]{12}$`), resp.SaleID)

	// Stock descontado y ledger con un registro por línea
	pa, _ := fx.productRepo.GetByID("a1")
	pb, _ := fx.productRepo.GetByID("b2")
	assert.Equal(t, 8, pa.StockQuantity)
	assert.Equal(t, 18, pb.StockQuantity)
	require.Len(t, fx.movRepo.movements, 2)
	for _, m := range fx.movRepo.movements {
		assert.Equal(t, entity.MovementTypeSale, m.Type)
		assert.Equal(t, resp.SaleID, m.ReferenceID, "cada movimiento referencia la venta")
		assert.Equal(t, m.PreviousQuantity+m.Quantity, m.NewQuantity)
	}
}

func TestCreateSale_DescuentoEImpuesto(t *testing.T) {
	fx := newSaleFixture(activeProduct("a1", "10000", 5))

	// total = 10000*2 - 1000 (descuento de línea) = 19000
	// final = 19000 - 2000 (descuento global) + 3610 (impuesto) = 20610
	resp, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod:  entity.PaymentCard,
		DiscountAmount: dec("2000"),
		TaxAmount:      dec("3610"),
		FinalAmount:    dec("20610"),
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 2, UnitPrice: dec("10000"), Discount: dec("1000")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(dec("19000")))
	assert.True(t, resp.FinalAmount.Equal(dec("20610")))
	assert.True(t, resp.Items[0].TotalPrice.Equal(dec("19000")))
}

func TestCreateSale_ToleranciaDeRedondeo(t *testing.T) {
	fx := newSaleFixture(activeProduct("a1", "3333.33", 5))

	// Diferencia de 0.01 respecto al cálculo del servidor: se acepta.
	resp, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		FinalAmount:   dec("3333.34"),
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 1, UnitPrice: dec("3333.33")},
		},
	})
	require.NoError(t, err)
	// Se persiste el monto del servidor, no el del cliente.
	assert.True(t, resp.FinalAmount.Equal(dec("3333.33")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos: todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_StockInsuficienteEnUnaLinea_NadaSePersiste(t *testing.T) {
	fx := newSaleFixture(
		activeProduct("a1", "2500", 10),
		activeProduct("b2", "1800", 1), // insuficiente para 3
	)

	_, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		FinalAmount:   dec("10400"),
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 2, UnitPrice: dec("2500")},
			{ProductID: "b2", Quantity: 3, UnitPrice: dec("1800")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "b2", stockErr.ProductID)

	// Rollback total: ni venta, ni items, ni movimientos, ni stock tocado.
	assert.Empty(t, fx.saleRepo.sales)
	assert.Empty(t, fx.saleRepo.items)
	assert.Empty(t, fx.movRepo.movements)
	pa, _ := fx.productRepo.GetByID("a1")
	assert.Equal(t, 10, pa.StockQuantity, "la línea válida tampoco debe haberse descontado")
}

func TestCreateSale_FinalAmountNoCoincide(t *testing.T) {
	fx := newSaleFixture(activeProduct("a1", "2500", 10))

	_, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		FinalAmount:   dec("9999"),
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 2, UnitPrice: dec("2500")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)
	assert.Empty(t, fx.saleRepo.sales)
}

func TestCreateSale_ProductoInactivo(t *testing.T) {
	inactive := activeProduct("a1", "2500", 10)
	inactive.IsActive = false
	fx := newSaleFixture(inactive)

	_, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		FinalAmount:   dec("2500"),
		Items: []dto.SaleItemRequest{
			{ProductID: "a1", Quantity: 1, UnitPrice: dec("2500")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInactiveProduct)
}

func TestCreateSale_ValidacionesBasicas(t *testing.T) {
	fx := newSaleFixture(activeProduct("a1", "2500", 10))

	cases := []struct {
		name string
		req  dto.CreateSaleRequest
		want error
	}{
		{"sin items", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash}, domain.ErrInvalidInput},
		{"método de pago inválido", dto.CreateSaleRequest{
			PaymentMethod: "bitcoin",
			Items:         []dto.SaleItemRequest{{ProductID: "a1", Quantity: 1, UnitPrice: dec("2500")}},
		}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{
			PaymentMethod: entity.PaymentCash,
			Items:         []dto.SaleItemRequest{{ProductID: "a1", Quantity: 0, UnitPrice: dec("2500")}},
		}, domain.ErrInvalidInput},
		{"precio cero", dto.CreateSaleRequest{
			PaymentMethod: entity.PaymentCash,
			Items:         []dto.SaleItemRequest{{ProductID: "a1", Quantity: 1, UnitPrice: dec("0")}},
		}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreateSaleRequest{
			PaymentMethod: entity.PaymentCash,
			Items:         []dto.SaleItemRequest{{ProductID: "nope", Quantity: 1, UnitPrice: dec("2500")}},
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.uc.CreateSale(context.Background(), "cashier1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de bloqueo y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_LineasSeProcesanOrdenadasPorProducto(t *testing.T) {
	fx := newSaleFixture(
		activeProduct("zz", "1000", 10),
		activeProduct("aa", "1000", 10),
		activeProduct("mm", "1000", 10),
	)

	_, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		FinalAmount:   dec("3000"),
		Items: []dto.SaleItemRequest{
			{ProductID: "zz", Quantity: 1, UnitPrice: dec("1000")},
			{ProductID: "aa", Quantity: 1, UnitPrice: dec("1000")},
			{ProductID: "mm", Quantity: 1, UnitPrice: dec("1000")},
		},
	})
	require.NoError(t, err)

	require.Len(t, fx.movRepo.movements, 3)
	got := []string{
		fx.movRepo.movements[0].ProductID,
		fx.movRepo.movements[1].ProductID,
		fx.movRepo.movements[2].ProductID,
	}
	assert.Equal(t, []string{"aa", "mm", "zz"}, got,
		"los movimientos deben aplicarse en orden ascendente de producto")
}

func TestCreateSale_ConcurrenciaNoSobrevende(t *testing.T) {
	const stock = 10
	const workers = 25

	fx := newSaleFixture(activeProduct("a1", "1000", stock))

	var wg sync.WaitGroup
	var okCount, stockErrCount int
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.uc.CreateSale(context.Background(), "cashier1", dto.CreateSaleRequest{
				PaymentMethod: entity.PaymentCash,
				FinalAmount:   dec("1000"),
				Items: []dto.SaleItemRequest{
					{ProductID: "a1", Quantity: 1, UnitPrice: dec("1000")},
				},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, domain.ErrInsufficientStock):
				stockErrCount++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, okCount, "solo deben completarse tantas ventas como stock había")
	assert.Equal(t, workers-stock, stockErrCount)

	p, _ := fx.productRepo.GetByID("a1")
	assert.Equal(t, 0, p.StockQuantity, "el stock nunca baja de cero")
	assert.Len(t, fx.saleRepo.sales, stock)
	assert.Len(t, fx.movRepo.movements, stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// NewSaleID
// ──────────────────────────────────────────────────────────────────────────────

func TestNewSaleID_FormatoYUnicidad(t *testing.T) {
	re := regexp.MustCompile(`^SALE-[0-9A-F]{12}$`)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := sales.NewSaleID()
		assert.Regexp(t, re, id)
		assert.False(t, seen[id], "no debe repetirse en una muestra pequeña")
		seen[id] = true
	}
}
