package opname

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

// katalogStatis: Katalog dengan daftar ID tetap untuk pengujian.
type katalogStatis []uint

func (k katalogStatis) DaftarBahanID() ([]uint, error) { return k, nil }

func seedMemory(t *testing.T, saldo map[uint]string) *ledger.Memory {
	t.Helper()
	mem := ledger.NewMemory()
	for bahanID, jumlah := range saldo {
		_, err := mem.Adjust(models.LokasiGudang, bahanID, dec(jumlah), ledger.Ref{
			Jenis: models.MutasiMasuk, RefType: "seed",
		})
		if err != nil {
			t.Fatalf("seed bahan %d: %v", bahanID, err)
		}
	}
	return mem
}

func TestOpname_SelisihNegatif(t *testing.T) {
	mem := seedMemory(t, map[uint]string{7: "200"})
	svc := NewService(mem, katalogStatis{7})

	sess, err := svc.StartSession(models.LokasiGudang)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(sess.Items) != 1 || !sess.Items[0].StokSistem.Equal(dec("200")) {
		t.Fatalf("snapshot salah: %+v", sess.Items)
	}
	if sess.Items[0].Status != StatusPending {
		t.Fatalf("status awal = %s, ingin pending", sess.Items[0].Status)
	}

	item, err := svc.RecordCount(sess.ID, 7, dec("180"))
	if err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if !item.Selisih.Equal(dec("-20")) {
		t.Errorf("selisih = %s, ingin -20", item.Selisih)
	}
	if item.Status != StatusSelisih {
		t.Errorf("status = %s, ingin selisih", item.Status)
	}

	// ledger belum berubah sebelum finalize
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 7)
	if !saldo.Equal(dec("200")) {
		t.Fatalf("saldo berubah sebelum finalize: %s", saldo)
	}

	n, err := svc.Finalize(sess.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if n != 1 {
		t.Errorf("jumlah item = %d, ingin 1", n)
	}
	saldo, _ = mem.GetQuantity(models.LokasiGudang, 7)
	if !saldo.Equal(dec("180")) {
		t.Errorf("saldo setelah finalize = %s, ingin 180", saldo)
	}
}

func TestOpname_HitunganSesuai(t *testing.T) {
	mem := seedMemory(t, map[uint]string{3: "50"})
	svc := NewService(mem, katalogStatis{3})

	sess, _ := svc.StartSession(models.LokasiGudang)
	item, err := svc.RecordCount(sess.ID, 3, dec("50"))
	if err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if item.Status != StatusSesuai || !item.Selisih.IsZero() {
		t.Errorf("item = %+v, ingin sesuai dengan selisih nol", item)
	}
}

func TestOpname_RecordCountIdempoten(t *testing.T) {
	mem := seedMemory(t, map[uint]string{5: "100"})
	svc := NewService(mem, katalogStatis{5})

	sess, _ := svc.StartSession(models.LokasiGudang)
	if _, err := svc.RecordCount(sess.ID, 5, dec("90")); err != nil {
		t.Fatalf("catat pertama: %v", err)
	}
	item, err := svc.RecordCount(sess.ID, 5, dec("100"))
	if err != nil {
		t.Fatalf("catat ulang: %v", err)
	}
	if item.Status != StatusSesuai {
		t.Errorf("status setelah catat ulang = %s, ingin sesuai", item.Status)
	}

	if _, err := svc.Finalize(sess.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 5)
	if !saldo.Equal(dec("100")) {
		t.Errorf("saldo = %s, ingin hitungan terakhir (100)", saldo)
	}
}

func TestOpname_RecordCountNegatifDitolak(t *testing.T) {
	mem := seedMemory(t, map[uint]string{1: "10"})
	svc := NewService(mem, katalogStatis{1})

	sess, _ := svc.StartSession(models.LokasiGudang)
	if _, err := svc.RecordCount(sess.ID, 1, dec("-1")); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("err = %v, ingin ErrValidation", err)
	}
}

func TestOpname_FinalizeTanpaHitungan(t *testing.T) {
	mem := seedMemory(t, map[uint]string{1: "10", 2: "20"})
	svc := NewService(mem, katalogStatis{1, 2})

	sess, _ := svc.StartSession(models.LokasiGudang)
	if _, err := svc.Finalize(sess.ID); !errors.Is(err, ledger.ErrNothingToFinalize) {
		t.Errorf("err = %v, ingin ErrNothingToFinalize", err)
	}

	// sesi masih hidup, item pending dilewati saat commit parsial
	if _, err := svc.RecordCount(sess.ID, 1, dec("8")); err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	n, err := svc.Finalize(sess.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if n != 1 {
		t.Errorf("jumlah item = %d, ingin 1 (bahan pending dilewati)", n)
	}
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 2)
	if !saldo.Equal(dec("20")) {
		t.Errorf("bahan pending ikut berubah: %s", saldo)
	}
}

func TestOpname_FinalizeDuaKali(t *testing.T) {
	mem := seedMemory(t, map[uint]string{1: "10"})
	svc := NewService(mem, katalogStatis{1})

	sess, _ := svc.StartSession(models.LokasiGudang)
	if _, err := svc.RecordCount(sess.ID, 1, dec("12")); err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if _, err := svc.Finalize(sess.ID); err != nil {
		t.Fatalf("Finalize pertama: %v", err)
	}
	if _, err := svc.Finalize(sess.ID); !errors.Is(err, ledger.ErrNothingToFinalize) {
		t.Errorf("finalize kedua: err = %v, ingin ErrNothingToFinalize", err)
	}
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 1)
	if !saldo.Equal(dec("12")) {
		t.Errorf("saldo = %s, ingin 12 (tidak berubah oleh finalize kedua)", saldo)
	}
}

func TestOpname_StartSessionMenggantiSesiLama(t *testing.T) {
	mem := seedMemory(t, map[uint]string{1: "10"})
	svc := NewService(mem, katalogStatis{1})

	lama, _ := svc.StartSession(models.LokasiGudang)
	if _, err := svc.RecordCount(lama.ID, 1, dec("5")); err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	baru, _ := svc.StartSession(models.LokasiGudang)
	if baru.ID == lama.ID {
		t.Fatal("sesi baru memakai ID lama")
	}
	if _, err := svc.Finalize(lama.ID); !errors.Is(err, ledger.ErrNothingToFinalize) {
		t.Errorf("finalize sesi lama: err = %v, ingin ErrNothingToFinalize", err)
	}
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 1)
	if !saldo.Equal(dec("10")) {
		t.Errorf("hitungan sesi lama bocor ke ledger: %s", saldo)
	}
}

func TestOpname_BahanTanpaMutasiIkutSesi(t *testing.T) {
	// bahan 42 ada di katalog tapi belum pernah punya mutasi ledger;
	// sesi harus memuatnya dengan stok sistem 0 dan menerima hitungannya
	mem := seedMemory(t, map[uint]string{7: "200"})
	svc := NewService(mem, katalogStatis{7, 42})

	sess, err := svc.StartSession(models.LokasiGudang)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(sess.Items) != 2 {
		t.Fatalf("jumlah item = %d, ingin 2", len(sess.Items))
	}
	var baru *Item
	for i := range sess.Items {
		if sess.Items[i].BahanID == 42 {
			baru = &sess.Items[i]
		}
	}
	if baru == nil {
		t.Fatal("bahan 42 tidak ada dalam sesi")
	}
	if !baru.StokSistem.IsZero() {
		t.Fatalf("stok sistem bahan 42 = %s, ingin 0", baru.StokSistem)
	}

	item, err := svc.RecordCount(sess.ID, 42, dec("50"))
	if err != nil {
		t.Fatalf("RecordCount bahan tanpa mutasi: %v", err)
	}
	if !item.Selisih.Equal(dec("50")) || item.Status != StatusSelisih {
		t.Errorf("item = %+v, ingin selisih 50", item)
	}

	if _, err := svc.Finalize(sess.ID); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	saldo, _ := mem.GetQuantity(models.LokasiGudang, 42)
	if !saldo.Equal(dec("50")) {
		t.Errorf("saldo bahan 42 = %s, ingin 50", saldo)
	}
}
