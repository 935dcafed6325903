package stok

import (
	"fmt"
	"strings"

	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
)

// FormatStok: ubah kuantitas satuan dasar (gram) menjadi teks tampilan dalam
// satuan kemasan bahan, mis. "3 kg + sisa 200 gr". Transformasi murni tanpa
// efek samping; tidak pernah menyentuh ledger.
func FormatStok(jumlah decimal.Decimal, bahan models.Bahan) string {
	satuan := strings.TrimSpace(bahan.Satuan)
	if strings.EqualFold(satuan, "gr") {
		return formatAngka(jumlah) + " gr"
	}

	isi := bahan.IsiPerSatuan
	if isi.Sign() <= 0 {
		isi = decimal.NewFromInt(1)
	}
	perSatuan := bahan.BeratPerIsi.Mul(isi)
	if perSatuan.Sign() <= 0 {
		// Data kemasan tidak lengkap: tampilkan gram mentah daripada
		// memberi label satuan yang salah
		return formatAngka(jumlah) + " gr"
	}

	// pack * perSatuan + sisa == jumlah, tepat; pembulatan hanya
	// untuk tampilan sisa
	pack, sisa := jumlah.QuoRem(perSatuan, 0)

	switch {
	case pack.Sign() > 0 && sisa.Sign() > 0:
		return fmt.Sprintf("%s %s + sisa %s gr", formatAngka(pack), satuan, formatAngka(sisa.Round(0)))
	case pack.Sign() > 0:
		return fmt.Sprintf("%s %s", formatAngka(pack), satuan)
	default:
		return formatAngka(sisa.Round(0)) + " gr"
	}
}

// formatAngka: buang nol di belakang koma hasil scan numeric(20,4)
func formatAngka(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
