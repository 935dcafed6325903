package inventory

import (
	"fmt"

	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreatePermintaanRequest struct {
	OutletID uint    `json:"outlet_id"`
	BahanID  uint    `json:"bahan_id"`
	Jumlah   float64 `json:"jumlah"` // satuan dasar (gram)
}

type UpdatePermintaanStatusRequest struct {
	Status models.StatusPermintaan `json:"status"` // disetujui / ditolak
}

type PermintaanResponse struct {
	ID         uint    `json:"id"`
	OutletID   uint    `json:"outlet_id"`
	OutletNama string  `json:"outlet_nama"`
	BahanID    uint    `json:"bahan_id"`
	BahanNama  string  `json:"bahan_nama"`
	Satuan     string  `json:"satuan"`
	Jumlah     float64 `json:"jumlah"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

func permintaanResponse(p models.PermintaanStok) PermintaanResponse {
	return PermintaanResponse{
		ID:         p.ID,
		OutletID:   p.OutletID,
		OutletNama: p.Outlet.Nama,
		BahanID:    p.BahanID,
		BahanNama:  p.Bahan.Nama,
		Satuan:     p.Bahan.Satuan,
		Jumlah:     p.Jumlah.InexactFloat64(),
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/permintaan-stok (outlet mengajukan permintaan)
func CreatePermintaanHandler(svc *PermintaanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePermintaanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data permintaan tidak valid")
		}
		if body.OutletID == 0 || body.BahanID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "outlet_id dan bahan_id wajib diisi")
		}

		p, err := svc.Create(body.OutletID, body.BahanID, decimal.NewFromFloat(body.Jumlah))
		if err != nil {
			return fiberError(err, "Permintaan stok tidak dapat dibuat")
		}
		return c.Status(fiber.StatusCreated).JSON(permintaanResponse(p))
	}
}

// GET /api/permintaan-stok?outlet_id= (riwayat permintaan)
func ListPermintaanHandler(svc *PermintaanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var outletID *uint
		if q := c.Query("outlet_id"); q != "" {
			var id uint
			if _, err := fmt.Sscan(q, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "outlet_id tidak valid")
			}
			outletID = &id
		}

		list, err := svc.List(outletID)
		if err != nil {
			return fiberError(err, "Permintaan stok tidak dapat dimuat")
		}

		res := make([]PermintaanResponse, 0, len(list))
		for _, p := range list {
			res = append(res, permintaanResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/gudang/permintaan-stok
// Permintaan terbuka untuk gudang: diajukan dan disetujui
func ListPermintaanGudangHandler(svc *PermintaanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.PendingDemand()
		if err != nil {
			return fiberError(err, "Permintaan terbuka tidak dapat dimuat")
		}

		res := make([]PermintaanResponse, 0, len(list))
		for _, p := range list {
			res = append(res, permintaanResponse(p))
		}
		return c.JSON(res)
	}
}

// PUT /api/gudang/permintaan-stok/:id (persetujuan gudang)
func UpdatePermintaanStatusHandler(svc *PermintaanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdatePermintaanStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data status tidak valid")
		}

		var p models.PermintaanStok
		switch body.Status {
		case models.PermintaanDisetujui:
			p, err = svc.Approve(id)
		case models.PermintaanDitolak:
			p, err = svc.Reject(id)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status hanya bisa disetujui atau ditolak")
		}
		if err != nil {
			return fiberError(err, "Status permintaan tidak dapat diperbarui")
		}
		return c.JSON(permintaanResponse(p))
	}
}
