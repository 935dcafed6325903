package dashboard

import (
	"esteh-backend/internal/database"
	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"
	"esteh-backend/internal/stok"

	"github.com/gofiber/fiber/v2"
)

type StokRingkas struct {
	BahanID     uint    `json:"bahan_id"`
	Nama        string  `json:"nama"`
	Stok        float64 `json:"stok"`
	StokDisplay string  `json:"stok_display"`
	StokMinimum float64 `json:"stok_minimum"`
	Status      string  `json:"status"`
}

type OwnerDashboardResponse struct {
	TotalOutlet          int64         `json:"total_outlet"`
	TotalBahan           int64         `json:"total_bahan"`
	PermintaanDiajukan   int64         `json:"permintaan_diajukan"`
	BarangKeluarDiJalan  int64         `json:"barang_keluar_di_jalan"`
	JumlahStokKritis     int           `json:"jumlah_stok_kritis"`
	JumlahStokMenipis    int           `json:"jumlah_stok_menipis"`
	StokKritisGudang     []StokRingkas `json:"stok_kritis_gudang"`
}

// GET /api/dashboard
// Ringkasan untuk owner: jumlah outlet aktif, antrian permintaan, kiriman
// yang sedang di jalan, dan bahan gudang yang berstatus kritis.
func OwnerDashboardHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp OwnerDashboardResponse

		if err := database.DB.Model(&models.Outlet{}).Where("is_active = ?", true).Count(&resp.TotalOutlet).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard gagal diambil")
		}
		if err := database.DB.Model(&models.Bahan{}).Count(&resp.TotalBahan).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard gagal diambil")
		}
		if err := database.DB.Model(&models.PermintaanStok{}).
			Where("status = ?", models.PermintaanDiajukan).
			Count(&resp.PermintaanDiajukan).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard gagal diambil")
		}
		if err := database.DB.Model(&models.BarangKeluar{}).
			Where("status = ?", models.BarangKeluarInTransit).
			Count(&resp.BarangKeluarDiJalan).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard gagal diambil")
		}

		saldo, err := l.Snapshot(models.LokasiGudang)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Saldo gudang gagal diambil")
		}

		var bahans []models.Bahan
		if err := database.DB.Order("nama ASC").Find(&bahans).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data bahan gagal diambil")
		}

		resp.StokKritisGudang = make([]StokRingkas, 0)
		for _, b := range bahans {
			jumlah := saldo[b.ID]
			switch stok.Classify(jumlah, b.StokMinimumGudang) {
			case stok.StatusKritis:
				resp.JumlahStokKritis++
				resp.StokKritisGudang = append(resp.StokKritisGudang, StokRingkas{
					BahanID:     b.ID,
					Nama:        b.Nama,
					Stok:        jumlah.InexactFloat64(),
					StokDisplay: stok.FormatStok(jumlah, b),
					StokMinimum: b.StokMinimumGudang.InexactFloat64(),
					Status:      string(stok.StatusKritis),
				})
			case stok.StatusMenipis:
				resp.JumlahStokMenipis++
			}
		}

		return c.JSON(resp)
	}
}
