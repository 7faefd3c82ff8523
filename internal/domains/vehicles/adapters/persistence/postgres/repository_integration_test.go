//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
	"github.com/Apurer/go-vehicle-catalog/internal/platform/migrations"
)

func setupVehiclePostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func mustSave(t *testing.T, repo *Repository, brand, model string, year int, color string, price float64) *domain.Vehicle {
	t.Helper()
	vehicle, err := domain.NewVehicle(brand, model, year, color, price)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), vehicle)
	require.NoError(t, err)
	return saved
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupVehiclePostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved := mustSave(t, repo, "Toyota", "Corolla", 2020, "Black", 25000)

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "Toyota", fetched.Brand)
	assert.False(t, fetched.IsSold)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveUpsertsSaleState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupVehiclePostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved := mustSave(t, repo, "Toyota", "Corolla", 2020, "Black", 25000)
	require.NoError(t, saved.ApplyPayment("PAY-1", domain.PaymentPaid, "12345678900"))

	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.True(t, updated.IsSold)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, "PAY-1", updated.PaymentCode)
	assert.Equal(t, "12345678900", updated.BuyerCPF)
	require.NotNil(t, updated.SoldAt)

	byCode, err := repo.GetByPaymentCode(ctx, "PAY-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byCode.ID)

	_, err = repo.GetByPaymentCode(ctx, "PAY-404")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListingsOrderByPrice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupVehiclePostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	dear := mustSave(t, repo, "Toyota", "Camry", 2021, "White", 32000)
	cheap := mustSave(t, repo, "Fiat", "Uno", 2015, "Red", 18000)
	sold := mustSave(t, repo, "Honda", "Civic", 2019, "Silver", 27000)
	require.NoError(t, sold.ApplyPayment("PAY-1", domain.PaymentPaid, ""))
	_, err := repo.Save(ctx, sold)
	require.NoError(t, err)

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, cheap.ID, available[0].ID)
	assert.Equal(t, dear.ID, available[1].ID)

	soldList, err := repo.ListSold(ctx)
	require.NoError(t, err)
	require.Len(t, soldList, 1)
	assert.Equal(t, sold.ID, soldList[0].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_SearchFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupVehiclePostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	corolla := mustSave(t, repo, "Toyota", "Corolla", 2020, "Black", 25000)
	camry := mustSave(t, repo, "Toyota", "Camry", 2021, "White", 32000)
	soldYaris := mustSave(t, repo, "Toyota", "Yaris", 2018, "Blue", 19000)
	require.NoError(t, soldYaris.ApplyPayment("PAY-1", domain.PaymentPaid, ""))
	_, err := repo.Save(ctx, soldYaris)
	require.NoError(t, err)
	mustSave(t, repo, "Honda", "Civic", 2019, "Silver", 27000)

	// Brand match is a case-insensitive substring and the ordering puts
	// available vehicles first, each block price ascending.
	results, err := repo.Search(ctx, domain.SearchCriteria{Brand: "toy"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, corolla.ID, results[0].ID)
	assert.Equal(t, camry.ID, results[1].ID)
	assert.Equal(t, soldYaris.ID, results[2].ID)

	exactYear := 2020
	results, err = repo.Search(ctx, domain.SearchCriteria{Year: &exactYear})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, corolla.ID, results[0].ID)

	onlyAvailable := true
	minPrice := 20000.0
	results, err = repo.Search(ctx, domain.SearchCriteria{Brand: "toyota", MinPrice: &minPrice, IsAvailable: &onlyAvailable})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, corolla.ID, results[0].ID)
	assert.Equal(t, camry.ID, results[1].ID)
}

func TestRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupVehiclePostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved := mustSave(t, repo, "Toyota", "Corolla", 2020, "Black", 25000)

	err := repo.Delete(ctx, saved.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
