package database

import (
	"log"

	"esteh-backend/internal/config"
	"esteh-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa terhubung ke database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Kategori{},
		&models.Bahan{},
		&models.Outlet{},
		&models.StokRecord{},
		&models.StokMutasi{},
		&models.PermintaanStok{},
		&models.BarangMasuk{},
		&models.BarangKeluar{},
		&models.DetailBarangKeluar{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	// Partial unique index untuk idempotency key: baris dengan key kosong
	// tidak boleh saling bentrok, jadi index hanya mencakup key yang terisi.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_mutasi_idem
		ON stok_mutasis (idempotency_key)
		WHERE idempotency_key <> ''
	`).Error; err != nil {
		log.Printf("Index idempotency gagal dibuat (mungkin sudah ada): %v", err)
	}

	log.Println("Koneksi database berhasil. Migration selesai.")
}
