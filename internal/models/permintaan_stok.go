package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatusPermintaan string

const (
	PermintaanDiajukan  StatusPermintaan = "diajukan"
	PermintaanDisetujui StatusPermintaan = "disetujui"
	PermintaanDitolak   StatusPermintaan = "ditolak"
	PermintaanFulfilled StatusPermintaan = "fulfilled"
)

// PermintaanStok: permintaan bahan dari outlet ke gudang pusat.
// Alur status: diajukan -> disetujui/ditolak; disetujui -> fulfilled
// (hanya lewat penerimaan BarangKeluar). ditolak dan fulfilled final.
type PermintaanStok struct {
	ID       uint `gorm:"primaryKey"`
	OutletID uint `gorm:"index;not null"`
	Outlet   Outlet
	BahanID  uint `gorm:"index;not null"`
	Bahan    Bahan

	Jumlah decimal.Decimal  `gorm:"type:numeric(20,4);not null"`
	Status StatusPermintaan `gorm:"size:20;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
