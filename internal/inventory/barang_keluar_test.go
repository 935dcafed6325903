package inventory

import (
	"errors"
	"testing"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedGudang(t *testing.T, mem *ledger.Memory, bahanID uint, jumlah string) {
	t.Helper()
	_, err := mem.Adjust(models.LokasiGudang, bahanID, dec(jumlah), ledger.Ref{
		Jenis: models.MutasiMasuk, RefType: "seed",
	})
	if err != nil {
		t.Fatalf("seed bahan %d: %v", bahanID, err)
	}
}

func TestPergerakanTerima_StokCukup(t *testing.T) {
	mem := ledger.NewMemory()
	seedGudang(t, mem, 3, "100")

	details := []models.DetailBarangKeluar{{BahanID: 3, Jumlah: dec("50")}}
	if err := pergerakanTerima(mem.Adjust, 12, 4, details, false); err != nil {
		t.Fatalf("pergerakanTerima: %v", err)
	}

	gudang, _ := mem.GetQuantity(models.LokasiGudang, 3)
	if !gudang.Equal(dec("50")) {
		t.Errorf("saldo gudang = %s, ingin 50", gudang)
	}
	outlet, _ := mem.GetQuantity(4, 3)
	if !outlet.Equal(dec("50")) {
		t.Errorf("saldo outlet = %s, ingin 50", outlet)
	}
}

func TestPergerakanTerima_StokGudangKurang(t *testing.T) {
	mem := ledger.NewMemory()
	seedGudang(t, mem, 3, "40")

	details := []models.DetailBarangKeluar{{BahanID: 3, Jumlah: dec("50")}}
	err := pergerakanTerima(mem.Adjust, 12, 4, details, false)
	if !errors.Is(err, ledger.ErrInsufficientStock) {
		t.Fatalf("err = %v, ingin ErrInsufficientStock", err)
	}

	// kedua ledger tak tersentuh
	gudang, _ := mem.GetQuantity(models.LokasiGudang, 3)
	if !gudang.Equal(dec("40")) {
		t.Errorf("saldo gudang berubah: %s, ingin 40", gudang)
	}
	outlet, _ := mem.GetQuantity(4, 3)
	if !outlet.IsZero() {
		t.Errorf("saldo outlet berubah: %s, ingin 0", outlet)
	}
}

func TestPergerakanTerima_UlangIdempoten(t *testing.T) {
	mem := ledger.NewMemory()
	seedGudang(t, mem, 3, "100")

	details := []models.DetailBarangKeluar{{BahanID: 3, Jumlah: dec("50")}}
	for i := 0; i < 2; i++ {
		if err := pergerakanTerima(mem.Adjust, 12, 4, details, false); err != nil {
			t.Fatalf("pergerakanTerima ke-%d: %v", i+1, err)
		}
	}

	gudang, _ := mem.GetQuantity(models.LokasiGudang, 3)
	if !gudang.Equal(dec("50")) {
		t.Errorf("saldo gudang = %s, ingin 50 (pengulangan tidak boleh mendebit lagi)", gudang)
	}
	outlet, _ := mem.GetQuantity(4, 3)
	if !outlet.Equal(dec("50")) {
		t.Errorf("saldo outlet = %s, ingin 50 (pengulangan tidak boleh mengkredit lagi)", outlet)
	}
}

func TestPergerakanTerima_ReservasiSaatPembuatan(t *testing.T) {
	// dengan reservasi saat pembuatan, gudang sudah didebit; terima hanya
	// mengkredit outlet
	mem := ledger.NewMemory()
	seedGudang(t, mem, 3, "50")

	details := []models.DetailBarangKeluar{{BahanID: 3, Jumlah: dec("50")}}
	if err := pergerakanTerima(mem.Adjust, 12, 4, details, true); err != nil {
		t.Fatalf("pergerakanTerima: %v", err)
	}

	gudang, _ := mem.GetQuantity(models.LokasiGudang, 3)
	if !gudang.Equal(dec("50")) {
		t.Errorf("saldo gudang = %s, ingin 50 (tidak didebit saat terima)", gudang)
	}
	outlet, _ := mem.GetQuantity(4, 3)
	if !outlet.Equal(dec("50")) {
		t.Errorf("saldo outlet = %s, ingin 50", outlet)
	}
}
