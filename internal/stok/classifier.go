package stok

import "github.com/shopspring/decimal"

type Status string

const (
	StatusAman    Status = "Aman"
	StatusMenipis Status = "Menipis"
	StatusKritis  Status = "Kritis"
)

// rasio ambang kritis terhadap stok minimum
var rasioKritis = decimal.NewFromFloat(0.3)

// Classify: turunkan status kualitatif dari saldo dan ambang minimum bahan.
// Nilai tepat di batas jatuh ke status yang lebih ketat (perbandingan <=).
// Minimum 0 berarti ambang dinonaktifkan: saldo positif berapa pun Aman.
func Classify(jumlah, minimum decimal.Decimal) Status {
	if jumlah.Sign() <= 0 {
		return StatusKritis
	}
	if minimum.Sign() <= 0 {
		return StatusAman
	}
	if jumlah.Cmp(minimum.Mul(rasioKritis)) <= 0 {
		return StatusKritis
	}
	if jumlah.Cmp(minimum) <= 0 {
		return StatusMenipis
	}
	return StatusAman
}
