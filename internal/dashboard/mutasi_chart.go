package dashboard

import (
	"fmt"
	"time"

	"esteh-backend/internal/database"
	"esteh-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MutasiChartPoint struct {
	Label  string  `json:"label"` // tanggal / awal minggu / awal bulan
	Masuk  float64 `json:"masuk"`
	Keluar float64 `json:"keluar"`
	Opname float64 `json:"opname"`
}

type MutasiChartResponse struct {
	LokasiID uint               `json:"lokasi_id"`
	Period   string             `json:"period"` // daily | weekly | monthly
	From     string             `json:"from"`
	To       string             `json:"to"`
	Points   []MutasiChartPoint `json:"points"`
}

// GET /api/dashboard/mutasi-chart?period=daily&count=7&lokasi_id=0
// Grafik pergerakan stok per periode, dipisah per jenis mutasi. Jumlah
// yang diplot adalah nilai absolut delta supaya grafik keluar tidak negatif.
func MutasiChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lokasiID uint
		if s := c.Query("lokasi_id", "0"); s != "" {
			if _, err := fmt.Sscan(s, &lokasiID); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "lokasi_id tidak valid")
			}
		}

		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count tidak valid")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		var start time.Time

		var trunc string
		switch period {
		case "weekly":
			trunc = "week"
			start = end.AddDate(0, 0, -7*count)
		case "monthly":
			trunc = "month"
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			trunc = "day"
			start = end.AddDate(0, 0, -count)
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Jenis  string    `gorm:"column:jenis"`
			Total  float64   `gorm:"column:total"`
		}
		var rows []row

		sql := fmt.Sprintf(`
			SELECT date_trunc('%s', created_at)::date AS bucket,
				   jenis,
				   SUM(ABS(jumlah)) AS total
			FROM stok_mutasis
			WHERE lokasi_id = ? AND created_at >= ? AND created_at < ?
			GROUP BY bucket, jenis
			ORDER BY bucket ASC;
		`, trunc)

		if err := database.DB.Raw(sql, lokasiID, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data mutasi gagal diambil")
		}

		buckets := make(map[time.Time]*MutasiChartPoint)
		order := make([]time.Time, 0)

		for _, r := range rows {
			p, ok := buckets[r.Bucket]
			if !ok {
				p = &MutasiChartPoint{Label: r.Bucket.Format("2006-01-02")}
				buckets[r.Bucket] = p
				order = append(order, r.Bucket)
			}

			switch r.Jenis {
			case string(models.MutasiMasuk):
				p.Masuk += r.Total
			case string(models.MutasiKeluar):
				p.Keluar += r.Total
			case string(models.MutasiOpname):
				p.Opname += r.Total
			}
		}

		points := make([]MutasiChartPoint, 0, len(order))
		for _, b := range order {
			points = append(points, *buckets[b])
		}

		return c.JSON(MutasiChartResponse{
			LokasiID: lokasiID,
			Period:   period,
			From:     start.Format("2006-01-02"),
			To:       end.AddDate(0, 0, -1).Format("2006-01-02"),
			Points:   points,
		})
	}
}
