package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/domain"
	"github.com/Apurer/go-vehicle-catalog/internal/domains/vehicles/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists vehicles in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&vehicleRecord{})
	}
	return repo
}

type vehicleRecord struct {
	ID            string     `gorm:"primaryKey;column:id;size:36"`
	Brand         string     `gorm:"column:brand;index"`
	Model         string     `gorm:"column:model"`
	Year          int        `gorm:"column:year;index"`
	Color         string     `gorm:"column:color"`
	Price         float64    `gorm:"column:price;index"`
	IsSold        bool       `gorm:"column:is_sold;index"`
	PaymentStatus string     `gorm:"column:payment_status;type:varchar(32)"`
	PaymentCode   string     `gorm:"column:payment_code;index"`
	BuyerCPF      string     `gorm:"column:buyer_cpf"`
	SoldAt        *time.Time `gorm:"column:sold_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (vehicleRecord) TableName() string { return "vehicles" }

func newVehicleRecord(v *domain.Vehicle) vehicleRecord {
	return vehicleRecord{
		ID:            v.ID,
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		Color:         v.Color,
		Price:         v.Price,
		IsSold:        v.IsSold,
		PaymentStatus: string(v.PaymentStatus),
		PaymentCode:   v.PaymentCode,
		BuyerCPF:      v.BuyerCPF,
		SoldAt:        v.SoldAt,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *vehicleRecord) toDomain() *domain.Vehicle {
	if r == nil {
		return nil
	}
	vehicle := &domain.Vehicle{
		ID:            r.ID,
		Brand:         r.Brand,
		Model:         r.Model,
		Year:          r.Year,
		Color:         r.Color,
		Price:         r.Price,
		IsSold:        r.IsSold,
		PaymentStatus: domain.PaymentStatus(r.PaymentStatus),
		PaymentCode:   r.PaymentCode,
		BuyerCPF:      r.BuyerCPF,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.SoldAt != nil {
		soldAt := *r.SoldAt
		vehicle.SoldAt = &soldAt
	}
	return vehicle
}

// Save inserts or updates a vehicle aggregate.
func (r *Repository) Save(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, errors.New("cannot save nil vehicle")
	}
	record := newVehicleRecord(vehicle)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"brand":          record.Brand,
				"model":          record.Model,
				"year":           record.Year,
				"color":          record.Color,
				"price":          record.Price,
				"is_sold":        record.IsSold,
				"payment_status": record.PaymentStatus,
				"payment_code":   record.PaymentCode,
				"buyer_cpf":      record.BuyerCPF,
				"sold_at":        record.SoldAt,
				"updated_at":     record.UpdatedAt,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, vehicle.ID)
}

// GetByID fetches a vehicle by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record vehicleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByPaymentCode fetches the vehicle associated with a payment attempt.
func (r *Repository) GetByPaymentCode(ctx context.Context, paymentCode string) (*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentCode) == "" {
		return nil, ports.ErrNotFound
	}
	var record vehicleRecord
	if err := r.db.WithContext(ctx).First(&record, "payment_code = ?", paymentCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListAvailable returns unsold vehicles ordered by price ascending.
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	return r.listWhere(ctx, "is_sold = ?", false)
}

// ListSold returns sold vehicles ordered by price ascending.
func (r *Repository) ListSold(ctx context.Context) ([]*domain.Vehicle, error) {
	return r.listWhere(ctx, "is_sold = ?", true)
}

func (r *Repository) listWhere(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("price ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToDomain(records), nil
}

// List returns every persisted vehicle.
func (r *Repository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []vehicleRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToDomain(records), nil
}

// Search composes the filter set into a single query. All filters AND
// together; an exact year suppresses the year range.
func (r *Repository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Vehicle, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&vehicleRecord{})
	if brand := strings.TrimSpace(criteria.Brand); brand != "" {
		query = query.Where("brand ILIKE ?", "%"+brand+"%")
	}
	if model := strings.TrimSpace(criteria.Model); model != "" {
		query = query.Where("model ILIKE ?", "%"+model+"%")
	}
	if color := strings.TrimSpace(criteria.Color); color != "" {
		query = query.Where("color ILIKE ?", "%"+color+"%")
	}
	if criteria.MinPrice != nil {
		query = query.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		query = query.Where("price <= ?", *criteria.MaxPrice)
	}
	if criteria.Year != nil {
		query = query.Where("year = ?", *criteria.Year)
	} else {
		if criteria.MinYear != nil {
			query = query.Where("year >= ?", *criteria.MinYear)
		}
		if criteria.MaxYear != nil {
			query = query.Where("year <= ?", *criteria.MaxYear)
		}
	}
	if criteria.IsAvailable != nil {
		query = query.Where("is_sold = ?", !*criteria.IsAvailable)
	}
	var records []vehicleRecord
	if err := query.Order("is_sold ASC, price ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToDomain(records), nil
}

// Delete removes a vehicle by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&vehicleRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func recordsToDomain(records []vehicleRecord) []*domain.Vehicle {
	list := make([]*domain.Vehicle, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
