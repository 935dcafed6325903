package inventory

import (
	"fmt"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"
	"esteh-backend/internal/stok"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StokResponse struct {
	BahanID     uint    `json:"bahan_id"`
	Nama        string  `json:"nama"`
	Satuan      string  `json:"satuan"`
	Stok        float64 `json:"stok"`         // satuan dasar (gram)
	StokDisplay string  `json:"stok_display"` // mis. "3 kg + sisa 250 gr"
	StokMinimum float64 `json:"stok_minimum"`
	Status      string  `json:"status"` // Aman / Menipis / Kritis
}

type MutasiResponse struct {
	ID         uint    `json:"id"`
	LokasiID   uint    `json:"lokasi_id"`
	BahanID    uint    `json:"bahan_id"`
	BahanNama  string  `json:"bahan_nama"`
	Jenis      string  `json:"jenis"`
	Jumlah     float64 `json:"jumlah"`
	Saldo      float64 `json:"saldo"`
	RefType    string  `json:"ref_type"`
	RefID      uint    `json:"ref_id"`
	Keterangan string  `json:"keterangan"`
	CreatedAt  string  `json:"created_at"`
}

// susun tampilan stok satu lokasi: saldo ledger + status ambang + teks satuan
func stokLokasi(db *gorm.DB, l *ledger.Ledger, lokasiID uint, minimum func(models.Bahan) decimal.Decimal) ([]StokResponse, error) {
	var bahanList []models.Bahan
	if err := db.Order("nama asc").Find(&bahanList).Error; err != nil {
		return nil, fmt.Errorf("gagal membaca daftar bahan: %w", err)
	}

	saldo, err := l.Snapshot(lokasiID)
	if err != nil {
		return nil, err
	}

	res := make([]StokResponse, 0, len(bahanList))
	for _, b := range bahanList {
		jumlah := saldo[b.ID] // bahan tanpa record = 0
		min := minimum(b)
		res = append(res, StokResponse{
			BahanID:     b.ID,
			Nama:        b.Nama,
			Satuan:      b.Satuan,
			Stok:        jumlah.InexactFloat64(),
			StokDisplay: stok.FormatStok(jumlah, b),
			StokMinimum: min.InexactFloat64(),
			Status:      string(stok.Classify(jumlah, min)),
		})
	}
	return res, nil
}

// GET /api/gudang/stok
func ListStokGudangHandler(db *gorm.DB, l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := stokLokasi(db, l, models.LokasiGudang, func(b models.Bahan) decimal.Decimal {
			return b.StokMinimumGudang
		})
		if err != nil {
			return fiberError(err, "Stok gudang tidak dapat dimuat")
		}
		return c.JSON(res)
	}
}

// GET /api/outlet/stok?outlet_id=
func ListStokOutletHandler(db *gorm.DB, l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var outletID uint
		if _, err := fmt.Sscan(c.Query("outlet_id"), &outletID); err != nil || outletID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "outlet_id wajib diisi")
		}

		var outlet models.Outlet
		if err := db.First(&outlet, "id = ?", outletID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Outlet tidak ditemukan")
		}

		res, err := stokLokasi(db, l, outletID, func(b models.Bahan) decimal.Decimal {
			return b.StokMinimumOutlet
		})
		if err != nil {
			return fiberError(err, "Stok outlet tidak dapat dimuat")
		}
		return c.JSON(res)
	}
}

// GET /api/stok/mutasi?lokasi_id=&bahan_id=
// Riwayat jurnal ledger, terbaru dulu
func ListStokMutasiHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Preload("Bahan").Order("created_at DESC").Limit(200)
		if s := c.Query("lokasi_id"); s != "" {
			var lokasiID uint
			if _, err := fmt.Sscan(s, &lokasiID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "lokasi_id tidak valid")
			}
			q = q.Where("lokasi_id = ?", lokasiID)
		}
		if s := c.Query("bahan_id"); s != "" {
			var bahanID uint
			if _, err := fmt.Sscan(s, &bahanID); err != nil || bahanID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "bahan_id tidak valid")
			}
			q = q.Where("bahan_id = ?", bahanID)
		}

		var list []models.StokMutasi
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Riwayat mutasi tidak dapat dimuat")
		}

		res := make([]MutasiResponse, 0, len(list))
		for _, m := range list {
			res = append(res, MutasiResponse{
				ID:         m.ID,
				LokasiID:   m.LokasiID,
				BahanID:    m.BahanID,
				BahanNama:  m.Bahan.Nama,
				Jenis:      string(m.Jenis),
				Jumlah:     m.Jumlah.InexactFloat64(),
				Saldo:      m.Saldo.InexactFloat64(),
				RefType:    m.RefType,
				RefID:      m.RefID,
				Keterangan: m.Keterangan,
				CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
