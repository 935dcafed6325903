package admin

import (
	"strings"

	"esteh-backend/internal/database"
	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type BahanResponse struct {
	ID                uint    `json:"id"`
	Nama              string  `json:"nama"`
	Satuan            string  `json:"satuan"`
	IsiPerSatuan      float64 `json:"isi_per_satuan"`
	BeratPerIsi       float64 `json:"berat_per_isi"`
	StokMinimumGudang float64 `json:"stok_minimum_gudang"`
	StokMinimumOutlet float64 `json:"stok_minimum_outlet"`
	KategoriID        *uint   `json:"kategori_id"`
	NamaKategori      string  `json:"nama_kategori,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type CreateBahanRequest struct {
	Nama              string  `json:"nama"`
	Satuan            string  `json:"satuan"`
	IsiPerSatuan      float64 `json:"isi_per_satuan"` // default 1
	BeratPerIsi       float64 `json:"berat_per_isi"`  // gram per isi
	StokMinimumGudang float64 `json:"stok_minimum_gudang"`
	StokMinimumOutlet float64 `json:"stok_minimum_outlet"`
	KategoriID        *uint   `json:"kategori_id"`
}

type UpdateBahanRequest struct {
	Nama              *string  `json:"nama"`
	Satuan            *string  `json:"satuan"`
	IsiPerSatuan      *float64 `json:"isi_per_satuan"`
	BeratPerIsi       *float64 `json:"berat_per_isi"`
	StokMinimumGudang *float64 `json:"stok_minimum_gudang"`
	StokMinimumOutlet *float64 `json:"stok_minimum_outlet"`
	KategoriID        *uint    `json:"kategori_id"`
}

// ----------------------------------------
// BAHAN BAKU CRUD
// ----------------------------------------

func CreateBahanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBahanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		body.Nama = strings.TrimSpace(body.Nama)
		body.Satuan = strings.TrimSpace(body.Satuan)
		if body.Nama == "" || body.Satuan == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama dan satuan bahan wajib diisi")
		}
		if body.IsiPerSatuan < 0 || body.BeratPerIsi < 0 || body.StokMinimumGudang < 0 || body.StokMinimumOutlet < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nilai bahan tidak boleh negatif")
		}

		if body.KategoriID != nil {
			var kategori models.Kategori
			if err := database.DB.First(&kategori, *body.KategoriID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
			}
		}

		isi := decimal.NewFromFloat(body.IsiPerSatuan)
		if isi.IsZero() {
			isi = decimal.NewFromInt(1)
		}

		bahan := models.Bahan{
			Nama:              body.Nama,
			Satuan:            body.Satuan,
			IsiPerSatuan:      isi,
			BeratPerIsi:       decimal.NewFromFloat(body.BeratPerIsi),
			StokMinimumGudang: decimal.NewFromFloat(body.StokMinimumGudang),
			StokMinimumOutlet: decimal.NewFromFloat(body.StokMinimumOutlet),
			KategoriID:        body.KategoriID,
		}

		if err := database.DB.Create(&bahan).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bahan gagal dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(bahanResponse(bahan))
	}
}

func ListBahanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		q := database.DB.Preload("Kategori").Order("nama ASC")
		if kategoriID := c.QueryInt("kategori_id"); kategoriID > 0 {
			q = q.Where("kategori_id = ?", kategoriID)
		}

		var bahans []models.Bahan
		if err := q.Find(&bahans).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bahan gagal ditampilkan")
		}

		res := make([]BahanResponse, 0, len(bahans))
		for _, b := range bahans {
			res = append(res, bahanResponse(b))
		}

		return c.JSON(res)
	}
}

func GetBahanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var bahan models.Bahan
		if err := database.DB.Preload("Kategori").First(&bahan, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bahan tidak ditemukan")
		}

		return c.JSON(bahanResponse(bahan))
	}
}

func UpdateBahanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var bahan models.Bahan
		if err := database.DB.First(&bahan, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bahan tidak ditemukan")
		}

		var body UpdateBahanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		if body.Nama != nil {
			nama := strings.TrimSpace(*body.Nama)
			if nama == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama bahan tidak boleh kosong")
			}
			bahan.Nama = nama
		}
		if body.Satuan != nil {
			satuan := strings.TrimSpace(*body.Satuan)
			if satuan == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Satuan bahan tidak boleh kosong")
			}
			bahan.Satuan = satuan
		}
		if body.IsiPerSatuan != nil {
			if *body.IsiPerSatuan <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Isi per satuan harus lebih dari nol")
			}
			bahan.IsiPerSatuan = decimal.NewFromFloat(*body.IsiPerSatuan)
		}
		if body.BeratPerIsi != nil {
			if *body.BeratPerIsi < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Berat per isi tidak boleh negatif")
			}
			bahan.BeratPerIsi = decimal.NewFromFloat(*body.BeratPerIsi)
		}
		if body.StokMinimumGudang != nil {
			if *body.StokMinimumGudang < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Stok minimum tidak boleh negatif")
			}
			bahan.StokMinimumGudang = decimal.NewFromFloat(*body.StokMinimumGudang)
		}
		if body.StokMinimumOutlet != nil {
			if *body.StokMinimumOutlet < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Stok minimum tidak boleh negatif")
			}
			bahan.StokMinimumOutlet = decimal.NewFromFloat(*body.StokMinimumOutlet)
		}
		if body.KategoriID != nil {
			var kategori models.Kategori
			if err := database.DB.First(&kategori, *body.KategoriID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
			}
			bahan.KategoriID = body.KategoriID
		}

		if err := database.DB.Save(&bahan).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bahan gagal diperbarui")
		}

		return c.JSON(bahanResponse(bahan))
	}
}

func DeleteBahanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Bahan dengan riwayat mutasi tidak boleh dihapus, jejak ledger harus utuh
		var count int64
		if err := database.DB.Model(&models.StokMutasi{}).Where("bahan_id = ?", id).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bahan gagal dihapus")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bahan masih punya riwayat mutasi stok dan tidak bisa dihapus")
		}

		if err := database.DB.Delete(&models.Bahan{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bahan gagal dihapus")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func bahanResponse(b models.Bahan) BahanResponse {
	res := BahanResponse{
		ID:                b.ID,
		Nama:              b.Nama,
		Satuan:            b.Satuan,
		IsiPerSatuan:      b.IsiPerSatuan.InexactFloat64(),
		BeratPerIsi:       b.BeratPerIsi.InexactFloat64(),
		StokMinimumGudang: b.StokMinimumGudang.InexactFloat64(),
		StokMinimumOutlet: b.StokMinimumOutlet.InexactFloat64(),
		KategoriID:        b.KategoriID,
		CreatedAt:         b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if b.Kategori != nil {
		res.NamaKategori = b.Kategori.Nama
	}
	return res
}
