package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bahan: bahan baku yang dilacak stoknya di gudang pusat dan outlet.
// Semua kuantitas stok disimpan dalam satuan dasar (gram untuk bahan
// yang ditimbang, unit untuk bahan satuan).
type Bahan struct {
	ID     uint   `gorm:"primaryKey"`
	Nama   string `gorm:"size:100;not null;unique"`
	Satuan string `gorm:"size:20;not null"` // kg, pcs, liter, gr, dll.

	// Data kemasan untuk konversi tampilan: 1 satuan berisi IsiPerSatuan
	// unit, masing-masing seberat BeratPerIsi gram.
	IsiPerSatuan decimal.Decimal `gorm:"type:numeric(20,4);not null;default:1"`
	BeratPerIsi  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"` // gram

	// Ambang batas pemesanan ulang per tingkat lokasi
	StokMinimumGudang decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	StokMinimumOutlet decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`

	KategoriID *uint
	Kategori   *Kategori

	CreatedAt time.Time
	UpdatedAt time.Time
}
