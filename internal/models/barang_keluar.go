package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatusBarangKeluar string

const (
	BarangKeluarPending   StatusBarangKeluar = "pending"
	BarangKeluarInTransit StatusBarangKeluar = "in_transit"
	BarangKeluarReceived  StatusBarangKeluar = "received"
	BarangKeluarCancelled StatusBarangKeluar = "cancelled"
)

// BarangKeluar: pengiriman dari gudang pusat untuk memenuhi satu
// PermintaanStok yang disetujui. Alur status:
// pending -> in_transit -> received; pending -> cancelled.
// Ledger baru dimutasi saat status menjadi received.
type BarangKeluar struct {
	ID           uint `gorm:"primaryKey"`
	PermintaanID uint `gorm:"index;not null"`
	Permintaan   PermintaanStok `gorm:"foreignKey:PermintaanID"`
	OutletID     uint           `gorm:"index;not null"`
	Outlet       Outlet

	TanggalKeluar time.Time          `gorm:"index;not null"`
	Status        StatusBarangKeluar `gorm:"size:20;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Details []DetailBarangKeluar `gorm:"foreignKey:BarangKeluarID;constraint:OnDelete:CASCADE"`
}

// DetailBarangKeluar: baris bahan dalam satu pengiriman
type DetailBarangKeluar struct {
	ID             uint `gorm:"primaryKey"`
	BarangKeluarID uint `gorm:"index;not null"`
	BahanID        uint `gorm:"index;not null"`
	Bahan          Bahan

	Jumlah decimal.Decimal `gorm:"type:numeric(20,4);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
