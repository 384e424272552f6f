// seed puebla la base con datos de demostración: un usuario admin, un
// cajero, categorías y productos de ejemplo con stock inicial vía
// movimientos de compra (el stock nunca se escribe a mano).
//
// Uso: go run ./cmd/seed
// Idempotente: si el username o SKU ya existe, la fila se omite.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
)

type seedProduct struct {
	sku      string
	barcode  string
	name     string
	category string
	cost     string
	price    string
	stock    int
}

var seedCategories = []string{"Bebidas", "Snacks", "Aseo", "Lácteos"}

var seedProducts = []seedProduct{
	{"BEB-001", "7701234500011", "Gaseosa Cola 400ml", "Bebidas", "1200", "2500", 48},
	{"BEB-002", "7701234500028", "Agua sin gas 600ml", "Bebidas", "800", "1800", 60},
	{"SNK-001", "7701234500035", "Papas fritas 40g", "Snacks", "900", "2000", 36},
	{"SNK-002", "7701234500042", "Maní salado 50g", "Snacks", "1100", "2400", 24},
	{"ASE-001", "7701234500059", "Jabón de manos 250ml", "Aseo", "3500", "6900", 12},
	{"LAC-001", "7701234500066", "Leche entera 1L", "Lácteos", "2800", "4200", 30},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	movementUC := inventory.NewMovementUseCase(txRunner, productRepo)

	adminID := seedUser(userRepo, "admin", "admin@pos.local", "Administrador", entity.RoleAdmin)
	seedUser(userRepo, "caja1", "caja1@pos.local", "Cajero Uno", entity.RoleCashier)

	categoryIDs := map[string]string{}
	for _, name := range seedCategories {
		existing, err := categoryRepo.GetByName(name)
		if err != nil {
			fail("consultar categoría %s: %v", name, err)
		}
		if existing != nil {
			categoryIDs[name] = existing.ID
			continue
		}
		now := time.Now()
		c := &entity.Category{
			ID:        uuid.New().String(),
			Name:      name,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categoryRepo.Create(c); err != nil {
			fail("crear categoría %s: %v", name, err)
		}
		categoryIDs[name] = c.ID
		fmt.Printf("categoría creada: %s\n", name)
	}

	for _, sp := range seedProducts {
		existing, err := productRepo.GetBySKU(sp.sku)
		if err != nil {
			fail("consultar producto %s: %v", sp.sku, err)
		}
		if existing != nil {
			continue
		}
		now := time.Now()
		p := &entity.Product{
			ID:           uuid.New().String(),
			SKU:          sp.sku,
			Barcode:      sp.barcode,
			CategoryID:   categoryIDs[sp.category],
			Name:         sp.name,
			CostPrice:    decimal.RequireFromString(sp.cost),
			SellingPrice: decimal.RequireFromString(sp.price),
			MinimumStock: 5,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := productRepo.Create(p); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			fail("crear producto %s: %v", sp.sku, err)
		}
		// Stock inicial como compra, para que quede en el ledger.
		if _, _, err := movementUC.ApplyMovement(ctx, inventory.ApplyMovementInput{
			ProductID: p.ID,
			Type:      entity.MovementTypePurchase,
			Quantity:  sp.stock,
			Notes:     "stock inicial",
			UserID:    adminID,
		}); err != nil {
			fail("stock inicial %s: %v", sp.sku, err)
		}
		fmt.Printf("producto creado: %s (%s) stock %d\n", sp.name, sp.sku, sp.stock)
	}

	fmt.Println("seed completado")
}

func seedUser(repo *postgres.UserRepo, username, email, fullName, role string) string {
	existing, err := repo.GetByUsername(username)
	if err != nil {
		fail("consultar usuario %s: %v", username, err)
	}
	if existing != nil {
		return existing.ID
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "cambiar123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de contraseña: %v", err)
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(u); err != nil {
		fail("crear usuario %s: %v", username, err)
	}
	fmt.Printf("usuario creado: %s (%s)\n", username, role)
	return u.ID
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
