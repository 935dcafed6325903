package stok

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		jumlah  string
		minimum string
		want    Status
	}{
		// Skenario "Gula Pasir", minimum 100
		{"tepat di minimum", "100", "100", StatusMenipis},
		{"tepat di 30% minimum", "30", "100", StatusKritis},
		{"sedikit di atas minimum", "101", "100", StatusAman},

		{"saldo nol", "0", "100", StatusKritis},
		{"saldo nol tanpa ambang", "0", "0", StatusKritis},
		{"di bawah 30% minimum", "10", "100", StatusKritis},
		{"sedikit di atas 30% minimum", "30.01", "100", StatusMenipis},
		{"di antara 30% dan minimum", "50", "100", StatusMenipis},
		{"jauh di atas minimum", "1000", "100", StatusAman},

		// minimum 0 menonaktifkan ambang
		{"ambang nonaktif saldo kecil", "0.5", "0", StatusAman},
		{"ambang nonaktif saldo besar", "5000", "0", StatusAman},

		{"pecahan di batas", "7.5", "25", StatusKritis}, // 25 * 0.3 = 7.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(dec(tt.jumlah), dec(tt.minimum))
			if got != tt.want {
				t.Errorf("Classify(%s, %s) = %s, want %s", tt.jumlah, tt.minimum, got, tt.want)
			}
		})
	}
}

// Status tidak boleh memburuk saat saldo naik pada minimum tetap:
// bahan dengan saldo lebih tinggi tidak pernah lebih kritis.
func TestClassify_MonotonicInQuantity(t *testing.T) {
	rank := map[Status]int{StatusKritis: 0, StatusMenipis: 1, StatusAman: 2}
	minimum := dec("100")

	prev := StatusKritis
	for q := 0; q <= 200; q++ {
		got := Classify(decimal.NewFromInt(int64(q)), minimum)
		if rank[got] < rank[prev] {
			t.Fatalf("status memburuk dari %s ke %s pada jumlah %d", prev, got, q)
		}
		prev = got
	}
}
