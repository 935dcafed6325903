package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LokasiGudang: ID lokasi untuk gudang pusat. Outlet memakai ID outlet-nya
// sendiri (> 0) sebagai ID lokasi.
const LokasiGudang uint = 0

// StokRecord: saldo stok per (lokasi, bahan). Tepat satu record per pasangan;
// Jumlah tidak boleh negatif setelah operasi apa pun di-commit.
type StokRecord struct {
	ID       uint `gorm:"primaryKey"`
	LokasiID uint `gorm:"not null;uniqueIndex:idx_stok_lokasi_bahan"`
	BahanID  uint `gorm:"not null;uniqueIndex:idx_stok_lokasi_bahan"`
	Bahan    Bahan
	Jumlah   decimal.Decimal `gorm:"type:numeric(20,4);not null"` // satuan dasar (gram)

	CreatedAt time.Time
	UpdatedAt time.Time
}
