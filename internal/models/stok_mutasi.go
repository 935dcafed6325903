package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type JenisMutasi string

const (
	MutasiMasuk  JenisMutasi = "masuk"  // kredit (barang masuk, terima kiriman)
	MutasiKeluar JenisMutasi = "keluar" // debit (pengiriman keluar gudang)
	MutasiOpname JenisMutasi = "opname" // koreksi hasil stok opname
)

// StokMutasi: jurnal append-only untuk setiap mutasi ledger. Dipakai untuk
// riwayat stok dan untuk deteksi retry (IdempotencyKey unik per permintaan).
type StokMutasi struct {
	ID       uint `gorm:"primaryKey"`
	LokasiID uint `gorm:"index;not null"`
	BahanID  uint `gorm:"index;not null"`
	Bahan    Bahan

	Jenis  JenisMutasi     `gorm:"size:20;not null"`
	Jumlah decimal.Decimal `gorm:"type:numeric(20,4);not null"` // delta yang diterapkan (bertanda)
	Saldo  decimal.Decimal `gorm:"type:numeric(20,4);not null"` // saldo setelah mutasi

	RefType string `gorm:"size:30"` // barang_masuk / barang_keluar / opname
	RefID   uint

	IdempotencyKey string `gorm:"size:64"` // unique partial index dibuat manual di database.Init
	Keterangan     string `gorm:"size:255"`

	CreatedAt time.Time
}
