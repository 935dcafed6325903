package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"esteh-backend/internal/admin"
	"esteh-backend/internal/config"
	"esteh-backend/internal/dashboard"
	"esteh-backend/internal/database"
	"esteh-backend/internal/inventory"
	"esteh-backend/internal/laporan"
	"esteh-backend/internal/ledger"
	"esteh-backend/internal/metrics"
	"esteh-backend/internal/opname"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	buku := ledger.New(database.DB)
	permintaanSvc := inventory.NewPermintaanService(database.DB)
	barangMasukSvc := inventory.NewBarangMasukService(database.DB, buku)
	barangKeluarSvc := inventory.NewBarangKeluarService(database.DB, buku, cfg.ReserveOnCreate)
	opnameSvc := opname.NewService(buku, opname.NewKatalogDB(database.DB))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan pada server",
			})
		},
	})

	// CORS origins dipisah koma lalu dirapikan
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Master data (admin gudang)
	adminRoutes := api.Group("/admin")

	adminRoutes.Post("/outlets", admin.CreateOutletHandler())
	adminRoutes.Get("/outlets", admin.ListOutletsHandler())
	adminRoutes.Get("/outlets/:id", admin.GetOutletHandler())
	adminRoutes.Put("/outlets/:id", admin.UpdateOutletHandler())
	adminRoutes.Delete("/outlets/:id", admin.DeleteOutletHandler())

	adminRoutes.Post("/bahan", admin.CreateBahanHandler())
	adminRoutes.Get("/bahan", admin.ListBahanHandler())
	adminRoutes.Get("/bahan/:id", admin.GetBahanHandler())
	adminRoutes.Put("/bahan/:id", admin.UpdateBahanHandler())
	adminRoutes.Delete("/bahan/:id", admin.DeleteBahanHandler())

	adminRoutes.Post("/kategori", admin.CreateKategoriHandler())
	adminRoutes.Get("/kategori", admin.ListKategoriHandler())
	adminRoutes.Put("/kategori/:id", admin.UpdateKategoriHandler())
	adminRoutes.Delete("/kategori/:id", admin.DeleteKategoriHandler())

	// Stok view
	api.Get("/gudang/stok", inventory.ListStokGudangHandler(database.DB, buku))
	api.Get("/outlet/stok", inventory.ListStokOutletHandler(database.DB, buku))
	api.Get("/stok/mutasi", inventory.ListStokMutasiHandler(database.DB))

	// Permintaan stok (outlet -> gudang)
	api.Post("/permintaan-stok", inventory.CreatePermintaanHandler(permintaanSvc))
	api.Get("/permintaan-stok", inventory.ListPermintaanHandler(permintaanSvc))
	api.Get("/gudang/permintaan-stok", inventory.ListPermintaanGudangHandler(permintaanSvc))
	api.Put("/gudang/permintaan-stok/:id", inventory.UpdatePermintaanStatusHandler(permintaanSvc))

	// Barang masuk (supplier -> gudang)
	api.Post("/gudang/barang-masuk", inventory.CreateBarangMasukHandler(barangMasukSvc))
	api.Get("/gudang/barang-masuk", inventory.ListBarangMasukHandler(barangMasukSvc))
	api.Get("/gudang/barang-masuk/:id", inventory.GetBarangMasukHandler(barangMasukSvc))
	api.Put("/gudang/barang-masuk/:id", inventory.UpdateBarangMasukHandler(barangMasukSvc))
	api.Delete("/gudang/barang-masuk/:id", inventory.DeleteBarangMasukHandler(barangMasukSvc))

	// Barang keluar (gudang -> outlet); konfirmasi terima ada di sisi outlet
	api.Post("/gudang/barang-keluar", inventory.CreateBarangKeluarHandler(barangKeluarSvc))
	api.Get("/gudang/barang-keluar", inventory.ListBarangKeluarHandler(barangKeluarSvc))
	api.Get("/gudang/barang-keluar/:id", inventory.GetBarangKeluarHandler(barangKeluarSvc))
	api.Post("/gudang/barang-keluar/:id/kirim", inventory.KirimBarangKeluarHandler(barangKeluarSvc))
	api.Post("/gudang/barang-keluar/:id/batal", inventory.BatalBarangKeluarHandler(barangKeluarSvc))
	api.Post("/barang-keluar/:id/terima", inventory.TerimaBarangKeluarHandler(barangKeluarSvc))

	// Stok opname
	api.Post("/opname", opname.MulaiOpnameHandler(database.DB, opnameSvc))
	api.Get("/opname/:id", opname.GetOpnameHandler(database.DB, opnameSvc))
	api.Put("/opname/:id/catat", opname.CatatOpnameHandler(database.DB, opnameSvc))
	api.Post("/opname/:id/selesai", opname.SelesaiOpnameHandler(opnameSvc))

	// Dashboard owner
	api.Get("/dashboard", dashboard.OwnerDashboardHandler(buku))
	api.Get("/dashboard/mutasi-chart", dashboard.MutasiChartHandler())

	// Laporan
	api.Get("/laporan/stok/export", laporan.ExportStokHandler(buku))

	// Server sampingan untuk /metrics dan /health
	metricsSrv := metrics.NewServer(cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server metrics berhenti: %v", err)
		}
	}()
	log.Println("Server berjalan di port:", cfg.HTTPPort)
	listenErr := app.Listen(":" + cfg.HTTPPort)

	// log.Fatal melewati defer, jadi server metrics dimatikan eksplisit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Printf("Gagal mematikan server metrics: %v", err)
	}
	if listenErr != nil {
		log.Fatal(listenErr)
	}
}
