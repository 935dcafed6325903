package stok

import (
	"testing"

	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
)

func bahanKemasan(satuan, isi, berat string) models.Bahan {
	return models.Bahan{
		Nama:         "Bahan Uji",
		Satuan:       satuan,
		IsiPerSatuan: dec(isi),
		BeratPerIsi:  dec(berat),
	}
}

func TestFormatStok(t *testing.T) {
	tests := []struct {
		name   string
		jumlah string
		bahan  models.Bahan
		want   string
	}{
		{
			name:   "kg dengan sisa",
			jumlah: "3250",
			bahan:  bahanKemasan("kg", "1", "1000"),
			want:   "3 kg + sisa 250 gr",
		},
		{
			name:   "kg tanpa sisa",
			jumlah: "3000",
			bahan:  bahanKemasan("kg", "1", "1000"),
			want:   "3 kg",
		},
		{
			name:   "kurang dari satu kemasan",
			jumlah: "800",
			bahan:  bahanKemasan("kg", "1", "1000"),
			want:   "800 gr",
		},
		{
			name:   "satuan gr langsung",
			jumlah: "3250",
			bahan:  bahanKemasan("gr", "1", "1"),
			want:   "3250 gr",
		},
		{
			name:   "satuan GR huruf besar",
			jumlah: "40",
			bahan:  bahanKemasan("GR", "1", "1"),
			want:   "40 gr",
		},
		{
			name:   "karton isi banyak",
			jumlah: "5200",
			bahan:  bahanKemasan("karton", "24", "100"), // 2400 gr per karton
			want:   "2 karton + sisa 400 gr",
		},
		{
			name:   "isi per satuan kosong dianggap 1",
			jumlah: "2500",
			bahan:  bahanKemasan("kg", "0", "1000"),
			want:   "2 kg + sisa 500 gr",
		},
		{
			name:   "data kemasan tidak lengkap",
			jumlah: "750",
			bahan:  bahanKemasan("karton", "1", "0"),
			want:   "750 gr",
		},
		{
			name:   "saldo nol",
			jumlah: "0",
			bahan:  bahanKemasan("kg", "1", "1000"),
			want:   "0 gr",
		},
		{
			name:   "sisa dibulatkan untuk tampilan",
			jumlah: "1200.4",
			bahan:  bahanKemasan("kg", "1", "1000"),
			want:   "1 kg + sisa 200 gr",
		},
		{
			name:   "nol di belakang koma dibuang",
			jumlah: "3250.0000",
			bahan:  bahanKemasan("gr", "1", "1"),
			want:   "3250 gr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStok(dec(tt.jumlah), tt.bahan)
			if got != tt.want {
				t.Errorf("FormatStok(%s) = %q, want %q", tt.jumlah, got, tt.want)
			}
		})
	}
}

// pack*perSatuan + sisa harus sama persis dengan jumlah untuk setiap
// jumlah >= 0 dan berat kemasan > 0.
func TestFormatStok_RoundTrip(t *testing.T) {
	perSatuan := dec("2400") // karton isi 24 x 100 gr

	for q := 0; q <= 10000; q += 37 {
		jumlah := decimal.NewFromInt(int64(q))
		pack, sisa := jumlah.QuoRem(perSatuan, 0)
		back := pack.Mul(perSatuan).Add(sisa)
		if !back.Equal(jumlah) {
			t.Fatalf("round-trip gagal pada %d: pack=%s sisa=%s", q, pack, sisa)
		}
		if sisa.IsNegative() || sisa.Cmp(perSatuan) >= 0 {
			t.Fatalf("sisa di luar rentang pada %d: %s", q, sisa)
		}
	}
}
