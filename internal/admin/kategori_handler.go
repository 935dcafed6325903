package admin

import (
	"strings"

	"esteh-backend/internal/database"
	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type KategoriResponse struct {
	ID   uint   `json:"id"`
	Nama string `json:"nama"`
}

type KategoriRequest struct {
	Nama string `json:"nama"`
}

func CreateKategoriHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body KategoriRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		body.Nama = strings.TrimSpace(body.Nama)
		if body.Nama == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kategori tidak boleh kosong")
		}

		kategori := models.Kategori{Nama: body.Nama}
		if err := database.DB.Create(&kategori).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(KategoriResponse{ID: kategori.ID, Nama: kategori.Nama})
	}
}

func ListKategoriHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		var kategoris []models.Kategori
		if err := database.DB.Order("nama ASC").Find(&kategoris).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal ditampilkan")
		}

		res := make([]KategoriResponse, 0, len(kategoris))
		for _, k := range kategoris {
			res = append(res, KategoriResponse{ID: k.ID, Nama: k.Nama})
		}

		return c.JSON(res)
	}
}

func UpdateKategoriHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var kategori models.Kategori
		if err := database.DB.First(&kategori, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
		}

		var body KategoriRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data yang dikirim tidak valid")
		}

		body.Nama = strings.TrimSpace(body.Nama)
		if body.Nama == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kategori tidak boleh kosong")
		}
		kategori.Nama = body.Nama

		if err := database.DB.Save(&kategori).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal diperbarui")
		}

		return c.JSON(KategoriResponse{ID: kategori.ID, Nama: kategori.Nama})
	}
}

func DeleteKategoriHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Bahan yang memakai kategori ini dilepas, bukan ikut terhapus
		if err := database.DB.Model(&models.Bahan{}).Where("kategori_id = ?", id).Update("kategori_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal dihapus")
		}

		if err := database.DB.Delete(&models.Kategori{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal dihapus")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
