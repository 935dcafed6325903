package inventory

import (
	"errors"
	"testing"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"
)

func TestValidasiTransisiPermintaan(t *testing.T) {
	tests := []struct {
		name string
		dari models.StatusPermintaan
		ke   models.StatusPermintaan
		ok   bool
	}{
		{"diajukan ke disetujui", models.PermintaanDiajukan, models.PermintaanDisetujui, true},
		{"diajukan ke ditolak", models.PermintaanDiajukan, models.PermintaanDitolak, true},
		{"disetujui ke fulfilled", models.PermintaanDisetujui, models.PermintaanFulfilled, true},

		{"diajukan langsung fulfilled", models.PermintaanDiajukan, models.PermintaanFulfilled, false},
		{"disetujui disetujui lagi", models.PermintaanDisetujui, models.PermintaanDisetujui, false},
		{"disetujui ke ditolak", models.PermintaanDisetujui, models.PermintaanDitolak, false},
		{"ditolak final", models.PermintaanDitolak, models.PermintaanDisetujui, false},
		{"fulfilled final", models.PermintaanFulfilled, models.PermintaanDisetujui, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validasiTransisiPermintaan(tt.dari, tt.ke)
			if tt.ok && err != nil {
				t.Errorf("transisi %s -> %s harusnya valid, dapat %v", tt.dari, tt.ke, err)
			}
			if !tt.ok && !errors.Is(err, ledger.ErrInvalidTransition) {
				t.Errorf("transisi %s -> %s harusnya ErrInvalidTransition, dapat %v", tt.dari, tt.ke, err)
			}
		})
	}
}

func TestValidasiTransisiBarangKeluar(t *testing.T) {
	tests := []struct {
		name string
		dari models.StatusBarangKeluar
		ke   models.StatusBarangKeluar
		ok   bool
	}{
		{"pending ke in_transit", models.BarangKeluarPending, models.BarangKeluarInTransit, true},
		{"pending ke cancelled", models.BarangKeluarPending, models.BarangKeluarCancelled, true},
		{"in_transit ke received", models.BarangKeluarInTransit, models.BarangKeluarReceived, true},

		{"pending langsung received", models.BarangKeluarPending, models.BarangKeluarReceived, false},
		{"in_transit ke cancelled", models.BarangKeluarInTransit, models.BarangKeluarCancelled, false},
		{"received final", models.BarangKeluarReceived, models.BarangKeluarInTransit, false},
		{"cancelled final", models.BarangKeluarCancelled, models.BarangKeluarInTransit, false},
		{"received diterima lagi", models.BarangKeluarReceived, models.BarangKeluarReceived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validasiTransisiBarangKeluar(tt.dari, tt.ke)
			if tt.ok && err != nil {
				t.Errorf("transisi %s -> %s harusnya valid, dapat %v", tt.dari, tt.ke, err)
			}
			if !tt.ok && !errors.Is(err, ledger.ErrInvalidTransition) {
				t.Errorf("transisi %s -> %s harusnya ErrInvalidTransition, dapat %v", tt.dari, tt.ke, err)
			}
		})
	}
}
