package inventory

import (
	"time"

	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateBarangMasukRequest struct {
	BahanID  uint    `json:"bahan_id"`
	Supplier string  `json:"supplier"`
	Jumlah   float64 `json:"jumlah"`  // satuan dasar (gram)
	Tanggal  string  `json:"tanggal"` // "2025-12-09"
}

type UpdateBarangMasukRequest struct {
	Supplier *string  `json:"supplier"`
	Jumlah   *float64 `json:"jumlah"`
	Tanggal  *string  `json:"tanggal"`
}

type BarangMasukResponse struct {
	ID        uint    `json:"id"`
	BahanID   uint    `json:"bahan_id"`
	BahanNama string  `json:"bahan_nama"`
	Satuan    string  `json:"satuan"`
	Supplier  string  `json:"supplier"`
	Jumlah    float64 `json:"jumlah"`
	Tanggal   string  `json:"tanggal"`
	CreatedAt string  `json:"created_at"`
}

func barangMasukResponse(bm models.BarangMasuk) BarangMasukResponse {
	return BarangMasukResponse{
		ID:        bm.ID,
		BahanID:   bm.BahanID,
		BahanNama: bm.Bahan.Nama,
		Satuan:    bm.Bahan.Satuan,
		Supplier:  bm.Supplier,
		Jumlah:    bm.Jumlah.InexactFloat64(),
		Tanggal:   bm.Tanggal.Format("2006-01-02"),
		CreatedAt: bm.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/gudang/barang-masuk
// Header Idempotency-Key opsional; retry dengan key sama tidak
// mengkredit ledger dua kali
func CreateBarangMasukHandler(svc *BarangMasukService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBarangMasukRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data barang masuk tidak valid")
		}
		if body.BahanID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "bahan_id wajib diisi")
		}

		tanggal, err := time.Parse("2006-01-02", body.Tanggal)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
		}

		bm, err := svc.Record(body.BahanID, body.Supplier, decimal.NewFromFloat(body.Jumlah), tanggal, c.Get("Idempotency-Key"))
		if err != nil {
			return fiberError(err, "Barang masuk tidak dapat dicatat")
		}
		return c.Status(fiber.StatusCreated).JSON(barangMasukResponse(bm))
	}
}

// GET /api/gudang/barang-masuk
func ListBarangMasukHandler(svc *BarangMasukService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List()
		if err != nil {
			return fiberError(err, "Barang masuk tidak dapat dimuat")
		}

		res := make([]BarangMasukResponse, 0, len(list))
		for _, bm := range list {
			res = append(res, barangMasukResponse(bm))
		}
		return c.JSON(res)
	}
}

// GET /api/gudang/barang-masuk/:id
func GetBarangMasukHandler(svc *BarangMasukService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		bm, err := svc.Get(id)
		if err != nil {
			return fiberError(err, "Barang masuk tidak dapat dimuat")
		}
		return c.JSON(barangMasukResponse(bm))
	}
}

// PUT /api/gudang/barang-masuk/:id
func UpdateBarangMasukHandler(svc *BarangMasukService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateBarangMasukRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data barang masuk tidak valid")
		}

		var jumlah *decimal.Decimal
		if body.Jumlah != nil {
			d := decimal.NewFromFloat(*body.Jumlah)
			jumlah = &d
		}
		var tanggal *time.Time
		if body.Tanggal != nil {
			t, err := time.Parse("2006-01-02", *body.Tanggal)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
			}
			tanggal = &t
		}

		bm, err := svc.Update(id, body.Supplier, jumlah, tanggal)
		if err != nil {
			return fiberError(err, "Barang masuk tidak dapat diperbarui")
		}
		return c.JSON(barangMasukResponse(bm))
	}
}

// DELETE /api/gudang/barang-masuk/:id
func DeleteBarangMasukHandler(svc *BarangMasukService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return fiberError(err, "Barang masuk tidak dapat dihapus")
		}
		return c.JSON(fiber.Map{"message": "Barang masuk dihapus"})
	}
}
