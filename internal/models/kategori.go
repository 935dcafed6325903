package models

import "time"

// Kategori: pengelompokan bahan baku (dikelola oleh staf gudang)
type Kategori struct {
	ID        uint   `gorm:"primaryKey"`
	Nama      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
