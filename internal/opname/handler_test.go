package opname

import (
	"testing"
	"time"

	"esteh-backend/internal/models"
)

func TestSessionResponse_NamaBahanDariPeta(t *testing.T) {
	fisik := dec("180")
	view := SessionView{
		ID:        "opname-0-1",
		LokasiID:  models.LokasiGudang,
		MulaiPada: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		Items: []Item{
			{BahanID: 7, StokSistem: dec("200"), StokFisik: &fisik, Selisih: dec("-20"), Status: StatusSelisih},
			{BahanID: 42, StokSistem: dec("0"), Status: StatusPending},
		},
	}
	peta := map[uint]models.Bahan{
		7: {ID: 7, Nama: "Gula Pasir", Satuan: "kg"},
	}

	resp := SessionResponse{
		ID:        view.ID,
		LokasiID:  view.LokasiID,
		MulaiPada: view.MulaiPada.Format("2006-01-02 15:04:05"),
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, itemResponse(item, peta))
	}

	if resp.Items[0].NamaBahan != "Gula Pasir" || resp.Items[0].Satuan != "kg" {
		t.Errorf("item 0 = %+v, ingin nama dan satuan dari peta", resp.Items[0])
	}
	if resp.Items[0].Selisih != -20 || resp.Items[0].StokFisik == nil || *resp.Items[0].StokFisik != 180 {
		t.Errorf("angka item 0 salah: %+v", resp.Items[0])
	}
	// bahan di luar peta tetap dirender tanpa nama
	if resp.Items[1].NamaBahan != "" || resp.Items[1].Status != string(StatusPending) {
		t.Errorf("item 1 = %+v, ingin nama kosong dan status pending", resp.Items[1])
	}
}
