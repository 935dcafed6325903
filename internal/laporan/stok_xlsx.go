package laporan

import (
	"fmt"
	"log"
	"strings"
	"time"

	"esteh-backend/internal/database"
	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"
	"esteh-backend/internal/stok"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/laporan/stok/export?lokasi_id=0
// Export laporan stok satu lokasi ke file XLSX: saldo, tampilan kemasan,
// ambang minimum dan status stok per bahan.
func ExportStokHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lokasiID uint
		if s := c.Query("lokasi_id", "0"); s != "" {
			if _, err := fmt.Sscan(s, &lokasiID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "lokasi_id tidak valid")
			}
		}

		namaLokasi := "Gudang Pusat"
		if lokasiID != models.LokasiGudang {
			var outlet models.Outlet
			if err := database.DB.First(&outlet, lokasiID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Outlet tidak ditemukan")
			}
			namaLokasi = outlet.Nama
		}

		saldo, err := l.Snapshot(lokasiID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Saldo stok gagal diambil")
		}

		var bahans []models.Bahan
		if err := database.DB.Preload("Kategori").Order("nama ASC").Find(&bahans).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data bahan gagal diambil")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Laporan Stok"
		f.SetSheetName("Sheet1", sheet)

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9EAD3"}},
		})
		if err != nil {
			log.Printf("laporan: style gagal dibuat: %v", err)
		}

		headers := []string{"Bahan", "Kategori", "Satuan", "Stok", "Tampilan", "Minimum", "Status"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
			if headerStyle != 0 {
				f.SetCellStyle(sheet, cell, cell, headerStyle)
			}
		}
		f.SetColWidth(sheet, "A", "A", 28)
		f.SetColWidth(sheet, "B", "C", 14)
		f.SetColWidth(sheet, "D", "G", 18)

		for i, b := range bahans {
			jumlah := saldo[b.ID]
			min := b.StokMinimumGudang
			if lokasiID != models.LokasiGudang {
				min = b.StokMinimumOutlet
			}

			row := i + 2
			kategori := ""
			if b.Kategori != nil {
				kategori = b.Kategori.Nama
			}

			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.Nama)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kategori)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.Satuan)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), jumlah.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), stok.FormatStok(jumlah, b))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), min.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(stok.Classify(jumlah, min)))
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			log.Printf("laporan: file gagal ditulis: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
		}

		filename := fmt.Sprintf("laporan-stok-%s-%s.xlsx", slug(namaLokasi), time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}

// slug: nama lokasi jadi bagian nama file yang aman
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
