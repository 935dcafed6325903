package opname

import (
	"errors"
	"log"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MulaiOpnameRequest struct {
	LokasiID uint `json:"lokasi_id"` // 0 = gudang pusat
}

type CatatOpnameRequest struct {
	BahanID   uint    `json:"bahan_id"`
	StokFisik float64 `json:"stok_fisik"`
}

type ItemResponse struct {
	BahanID    uint     `json:"bahan_id"`
	NamaBahan  string   `json:"nama_bahan"`
	Satuan     string   `json:"satuan"`
	StokSistem float64  `json:"stok_sistem"`
	StokFisik  *float64 `json:"stok_fisik"`
	Selisih    float64  `json:"selisih"`
	Status     string   `json:"status"`
}

type SessionResponse struct {
	ID        string         `json:"id"`
	LokasiID  uint           `json:"lokasi_id"`
	MulaiPada string         `json:"mulai_pada"`
	Items     []ItemResponse `json:"items"`
}

// MulaiOpnameHandler memulai sesi stok opname baru untuk satu lokasi.
func MulaiOpnameHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req MulaiOpnameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format request tidak valid"})
		}

		view, err := svc.StartSession(req.LokasiID)
		if err != nil {
			return fiberError(c, err, "Gagal memulai sesi opname")
		}
		return c.Status(fiber.StatusCreated).JSON(sessionResponse(db, view))
	}
}

// GetOpnameHandler mengembalikan isi sesi opname yang sedang berjalan.
func GetOpnameHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.Session(c.Params("id"))
		if err != nil {
			return fiberError(c, err, "Gagal mengambil sesi opname")
		}
		return c.JSON(sessionResponse(db, view))
	}
}

// CatatOpnameHandler mencatat hasil hitung fisik satu bahan dalam sesi.
func CatatOpnameHandler(db *gorm.DB, svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CatatOpnameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format request tidak valid"})
		}

		item, err := svc.RecordCount(c.Params("id"), req.BahanID, decimal.NewFromFloat(req.StokFisik))
		if err != nil {
			return fiberError(c, err, "Gagal mencatat hasil hitung")
		}
		return c.JSON(itemResponse(item, bahanPeta(db, []Item{item})))
	}
}

// SelesaiOpnameHandler meng-commit seluruh hitungan sesi ke ledger.
func SelesaiOpnameHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jumlah, err := svc.Finalize(c.Params("id"))
		if err != nil {
			return fiberError(c, err, "Gagal menyelesaikan opname")
		}
		return c.JSON(fiber.Map{
			"message":     "Stok opname selesai",
			"jumlah_item": jumlah,
		})
	}
}

func sessionResponse(db *gorm.DB, view SessionView) SessionResponse {
	resp := SessionResponse{
		ID:        view.ID,
		LokasiID:  view.LokasiID,
		MulaiPada: view.MulaiPada.Format("2006-01-02 15:04:05"),
		Items:     make([]ItemResponse, 0, len(view.Items)),
	}
	peta := bahanPeta(db, view.Items)
	for _, item := range view.Items {
		resp.Items = append(resp.Items, itemResponse(item, peta))
	}
	return resp
}

// bahanPeta mengambil seluruh bahan yang dirujuk items dalam satu query
func bahanPeta(db *gorm.DB, items []Item) map[uint]models.Bahan {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BahanID)
	}
	peta := make(map[uint]models.Bahan, len(ids))
	if len(ids) == 0 {
		return peta
	}
	var bahans []models.Bahan
	if err := db.Where("id IN ?", ids).Find(&bahans).Error; err != nil {
		log.Printf("opname: gagal membaca daftar bahan: %v", err)
		return peta
	}
	for _, b := range bahans {
		peta[b.ID] = b
	}
	return peta
}

func itemResponse(item Item, peta map[uint]models.Bahan) ItemResponse {
	resp := ItemResponse{
		BahanID:    item.BahanID,
		StokSistem: item.StokSistem.InexactFloat64(),
		Selisih:    item.Selisih.InexactFloat64(),
		Status:     string(item.Status),
	}
	if item.StokFisik != nil {
		f := item.StokFisik.InexactFloat64()
		resp.StokFisik = &f
	}
	if bahan, ok := peta[item.BahanID]; ok {
		resp.NamaBahan = bahan.Nama
		resp.Satuan = bahan.Satuan
	}
	return resp
}

func fiberError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrNothingToFinalize):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ledger.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("opname: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
