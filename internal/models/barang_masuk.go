package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BarangMasuk: penerimaan bahan dari supplier ke gudang pusat.
// Setiap record langsung mengkredit ledger gudang saat dibuat.
type BarangMasuk struct {
	ID      uint `gorm:"primaryKey"`
	BahanID uint `gorm:"index;not null"`
	Bahan   Bahan

	Supplier string          `gorm:"size:100;not null"`
	Jumlah   decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Tanggal  time.Time       `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
