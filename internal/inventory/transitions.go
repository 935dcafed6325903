package inventory

import (
	"fmt"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"
)

// Aturan transisi status dipisah dari service supaya bisa diuji tanpa
// database. Transisi yang tidak terdaftar gagal dengan ErrInvalidTransition.

var transisiPermintaan = map[models.StatusPermintaan][]models.StatusPermintaan{
	models.PermintaanDiajukan:  {models.PermintaanDisetujui, models.PermintaanDitolak},
	models.PermintaanDisetujui: {models.PermintaanFulfilled},
	// ditolak dan fulfilled final
}

var transisiBarangKeluar = map[models.StatusBarangKeluar][]models.StatusBarangKeluar{
	models.BarangKeluarPending:   {models.BarangKeluarInTransit, models.BarangKeluarCancelled},
	models.BarangKeluarInTransit: {models.BarangKeluarReceived},
	// received dan cancelled final
}

func validasiTransisiPermintaan(dari, ke models.StatusPermintaan) error {
	for _, s := range transisiPermintaan[dari] {
		if s == ke {
			return nil
		}
	}
	return fmt.Errorf("%w: permintaan berstatus %s tidak bisa menjadi %s",
		ledger.ErrInvalidTransition, dari, ke)
}

func validasiTransisiBarangKeluar(dari, ke models.StatusBarangKeluar) error {
	for _, s := range transisiBarangKeluar[dari] {
		if s == ke {
			return nil
		}
	}
	return fmt.Errorf("%w: pengiriman berstatus %s tidak bisa menjadi %s",
		ledger.ErrInvalidTransition, dari, ke)
}
