package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the catalog schema. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&vehicleRecord{})
}

// Vehicle schema mirrors the vehicles Postgres adapter.
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
