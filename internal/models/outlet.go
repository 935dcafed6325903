package models

import "time"

type Outlet struct {
	ID        uint   `gorm:"primaryKey"`
	Nama      string `gorm:"size:100;not null;unique"`
	Alamat    string `gorm:"size:255"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
