package inventory

import (
	"fmt"
	"time"

	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBarangKeluarRequest struct {
	PermintaanID  uint   `json:"permintaan_id"`
	TanggalKeluar string `json:"tanggal_keluar"` // "2025-12-09"
}

type BarangKeluarResponse struct {
	ID            uint                       `json:"id"`
	PermintaanID  uint                       `json:"permintaan_id"`
	OutletID      uint                       `json:"outlet_id"`
	OutletNama    string                     `json:"outlet_nama"`
	TanggalKeluar string                     `json:"tanggal_keluar"`
	Status        string                     `json:"status"`
	Details       []DetailBarangKeluarResponse `json:"details"`
	CreatedAt     string                     `json:"created_at"`
}

type DetailBarangKeluarResponse struct {
	ID        uint    `json:"id"`
	BahanID   uint    `json:"bahan_id"`
	BahanNama string  `json:"bahan_nama"`
	Satuan    string  `json:"satuan"`
	Jumlah    float64 `json:"jumlah"`
}

func barangKeluarResponse(bk models.BarangKeluar) BarangKeluarResponse {
	details := make([]DetailBarangKeluarResponse, 0, len(bk.Details))
	for _, d := range bk.Details {
		details = append(details, DetailBarangKeluarResponse{
			ID:        d.ID,
			BahanID:   d.BahanID,
			BahanNama: d.Bahan.Nama,
			Satuan:    d.Bahan.Satuan,
			Jumlah:    d.Jumlah.InexactFloat64(),
		})
	}
	return BarangKeluarResponse{
		ID:            bk.ID,
		PermintaanID:  bk.PermintaanID,
		OutletID:      bk.OutletID,
		OutletNama:    bk.Outlet.Nama,
		TanggalKeluar: bk.TanggalKeluar.Format("2006-01-02"),
		Status:        string(bk.Status),
		Details:       details,
		CreatedAt:     bk.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/gudang/barang-keluar
// Buat pengiriman dari satu permintaan yang sudah disetujui
func CreateBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBarangKeluarRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data barang keluar tidak valid")
		}
		if body.PermintaanID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "permintaan_id wajib diisi")
		}

		tanggal := time.Now()
		if body.TanggalKeluar != "" {
			var err error
			tanggal, err = time.Parse("2006-01-02", body.TanggalKeluar)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal_keluar harus 'YYYY-MM-DD'")
			}
		}

		bk, err := svc.CreateFromPermintaan(body.PermintaanID, tanggal)
		if err != nil {
			return fiberError(err, "Barang keluar tidak dapat dibuat")
		}
		return c.Status(fiber.StatusCreated).JSON(barangKeluarResponse(bk))
	}
}

// GET /api/gudang/barang-keluar?status=&outlet_id=
func ListBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var status *models.StatusBarangKeluar
		if q := c.Query("status"); q != "" {
			st := models.StatusBarangKeluar(q)
			status = &st
		}
		var outletID *uint
		if q := c.Query("outlet_id"); q != "" {
			var id uint
			if _, err := fmt.Sscan(q, &id); err != nil || id == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "outlet_id tidak valid")
			}
			outletID = &id
		}

		list, err := svc.List(status, outletID)
		if err != nil {
			return fiberError(err, "Barang keluar tidak dapat dimuat")
		}

		res := make([]BarangKeluarResponse, 0, len(list))
		for _, bk := range list {
			res = append(res, barangKeluarResponse(bk))
		}
		return c.JSON(res)
	}
}

// GET /api/gudang/barang-keluar/:id
func GetBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		bk, err := svc.Get(id)
		if err != nil {
			return fiberError(err, "Barang keluar tidak dapat dimuat")
		}
		return c.JSON(barangKeluarResponse(bk))
	}
}

// POST /api/gudang/barang-keluar/:id/kirim (pending -> in_transit)
func KirimBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		bk, err := svc.Dispatch(id)
		if err != nil {
			return fiberError(err, "Barang keluar tidak dapat dikirim")
		}
		return c.JSON(barangKeluarResponse(bk))
	}
}

// POST /api/barang-keluar/:id/terima
// Konfirmasi terima oleh outlet: debit gudang + kredit outlet + permintaan
// asal menjadi fulfilled, semuanya dalam satu transaksi
func TerimaBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		bk, err := svc.Receive(id)
		if err != nil {
			return fiberError(err, "Penerimaan barang tidak dapat dikonfirmasi")
		}
		return c.JSON(fiber.Map{
			"message":       "Barang diterima, stok outlet diperbarui",
			"barang_keluar": barangKeluarResponse(bk),
		})
	}
}

// POST /api/gudang/barang-keluar/:id/batal (hanya dari pending)
func BatalBarangKeluarHandler(svc *BarangKeluarService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}
		bk, err := svc.Cancel(id)
		if err != nil {
			return fiberError(err, "Barang keluar tidak dapat dibatalkan")
		}
		return c.JSON(barangKeluarResponse(bk))
	}
}
