package admin

import (
	"strings"

	"esteh-backend/internal/database"
	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OutletResponse struct {
	ID        uint   `json:"id"`
	Nama      string `json:"nama"`
	Alamat    string `json:"alamat"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type CreateOutletRequest struct {
	Nama   string `json:"nama"`
	Alamat string `json:"alamat"`
}

type UpdateOutletRequest struct {
	Nama     *string `json:"nama"`
	Alamat   *string `json:"alamat"`
	IsActive *bool   `json:"is_active"`
}

// ----------------------------------------
// OUTLET CRUD
// ----------------------------------------

func CreateOutletHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOutletRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		body.Nama = strings.TrimSpace(body.Nama)
		if body.Nama == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama outlet tidak boleh kosong")
		}

		outlet := models.Outlet{
			Nama:     body.Nama,
			Alamat:   strings.TrimSpace(body.Alamat),
			IsActive: true,
		}

		if err := database.DB.Create(&outlet).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Outlet gagal dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(outletResponse(outlet))
	}
}

func ListOutletsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		var outlets []models.Outlet
		if err := database.DB.Order("nama ASC").Find(&outlets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Outlet gagal ditampilkan")
		}

		res := make([]OutletResponse, 0, len(outlets))
		for _, o := range outlets {
			res = append(res, outletResponse(o))
		}

		return c.JSON(res)
	}
}

func GetOutletHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var outlet models.Outlet
		if err := database.DB.First(&outlet, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Outlet tidak ditemukan")
		}

		return c.JSON(outletResponse(outlet))
	}
}

func UpdateOutletHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var outlet models.Outlet
		if err := database.DB.First(&outlet, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Outlet tidak ditemukan")
		}

		var body UpdateOutletRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		if body.Nama != nil {
			nama := strings.TrimSpace(*body.Nama)
			if nama == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama outlet tidak boleh kosong")
			}
			outlet.Nama = nama
		}

		if body.Alamat != nil {
			outlet.Alamat = strings.TrimSpace(*body.Alamat)
		}

		if body.IsActive != nil {
			outlet.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&outlet).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Outlet gagal diperbarui")
		}

		return c.JSON(outletResponse(outlet))
	}
}

func DeleteOutletHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		id := c.Params("id")

		// Outlet dengan riwayat permintaan tidak boleh dihapus
		var count int64
		if err := database.DB.Model(&models.PermintaanStok{}).Where("outlet_id = ?", id).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Outlet gagal dihapus")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Outlet masih punya riwayat permintaan stok, nonaktifkan saja")
		}

		if err := database.DB.Delete(&models.Outlet{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Outlet gagal dihapus")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func outletResponse(o models.Outlet) OutletResponse {
	return OutletResponse{
		ID:        o.ID,
		Nama:      o.Nama,
		Alamat:    o.Alamat,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
