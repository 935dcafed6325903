package inventory

import (
	"errors"
	"fmt"
	"log"

	"esteh-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// terjemahkan error domain ke *fiber.Error; selain error domain dianggap
// kegagalan penyimpanan (500, boleh di-retry oleh pemanggil)
func fiberError(err error, fallback string) error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	log.Println("inventory error:", err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
	}
	return id, nil
}
