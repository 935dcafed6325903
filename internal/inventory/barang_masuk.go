package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BarangMasukService: pencatatan penerimaan bahan dari supplier.
// Record bersifat atomik: baris barang masuk dan kredit ledger gudang
// terjadi bersama-sama atau tidak sama sekali.
type BarangMasukService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewBarangMasukService(db *gorm.DB, l *ledger.Ledger) *BarangMasukService {
	return &BarangMasukService{db: db, ledger: l}
}

func (s *BarangMasukService) Record(bahanID uint, supplier string, jumlah decimal.Decimal, tanggal time.Time, idemKey string) (models.BarangMasuk, error) {
	var bm models.BarangMasuk

	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		return bm, fmt.Errorf("%w: supplier wajib diisi", ledger.ErrValidation)
	}
	if jumlah.Sign() <= 0 {
		return bm, fmt.Errorf("%w: jumlah harus lebih dari 0", ledger.ErrValidation)
	}

	var bahan models.Bahan
	if err := s.db.First(&bahan, "id = ?", bahanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bm, fmt.Errorf("%w: bahan %d", ledger.ErrNotFound, bahanID)
		}
		return bm, fmt.Errorf("gagal membaca bahan: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		bm = models.BarangMasuk{
			BahanID:  bahanID,
			Supplier: supplier,
			Jumlah:   jumlah,
			Tanggal:  tanggal,
		}
		if err := tx.Create(&bm).Error; err != nil {
			return fmt.Errorf("gagal mencatat barang masuk: %w", err)
		}
		_, err := s.ledger.Adjust(tx, models.LokasiGudang, bahanID, jumlah, ledger.Ref{
			Jenis:          models.MutasiMasuk,
			RefType:        "barang_masuk",
			RefID:          bm.ID,
			IdempotencyKey: idemKey,
			Keterangan:     "Barang masuk dari " + supplier,
		})
		return err
	})
	if err != nil {
		return models.BarangMasuk{}, err
	}
	bm.Bahan = bahan
	return bm, nil
}

// Update: koreksi catatan barang masuk. Selisih jumlah diterapkan ke ledger
// gudang dalam transaksi yang sama; pengurangan gagal dengan
// ErrInsufficientStock bila kredit lama sudah terpakai.
func (s *BarangMasukService) Update(id uint, supplier *string, jumlah *decimal.Decimal, tanggal *time.Time) (models.BarangMasuk, error) {
	var bm models.BarangMasuk
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bm, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: barang masuk %d", ledger.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("gagal membaca barang masuk: %w", err)
		}

		if supplier != nil {
			sp := strings.TrimSpace(*supplier)
			if sp == "" {
				return fmt.Errorf("%w: supplier wajib diisi", ledger.ErrValidation)
			}
			bm.Supplier = sp
		}
		if tanggal != nil {
			bm.Tanggal = *tanggal
		}
		if jumlah != nil {
			if jumlah.Sign() <= 0 {
				return fmt.Errorf("%w: jumlah harus lebih dari 0", ledger.ErrValidation)
			}
			delta := jumlah.Sub(bm.Jumlah)
			if !delta.IsZero() {
				_, err := s.ledger.Adjust(tx, models.LokasiGudang, bm.BahanID, delta, ledger.Ref{
					Jenis:      models.MutasiMasuk,
					RefType:    "barang_masuk",
					RefID:      bm.ID,
					Keterangan: "Koreksi barang masuk",
				})
				if err != nil {
					return err
				}
			}
			bm.Jumlah = *jumlah
		}

		if err := tx.Save(&bm).Error; err != nil {
			return fmt.Errorf("gagal memperbarui barang masuk: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.BarangMasuk{}, err
	}
	if err := s.db.Preload("Bahan").First(&bm, "id = ?", bm.ID).Error; err != nil {
		return bm, nil
	}
	return bm, nil
}

// Delete: hapus catatan dan tarik kembali kreditnya dari ledger gudang.
// Gagal dengan ErrInsufficientStock bila stoknya sudah terpakai.
func (s *BarangMasukService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var bm models.BarangMasuk
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bm, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: barang masuk %d", ledger.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("gagal membaca barang masuk: %w", err)
		}

		_, err = s.ledger.Adjust(tx, models.LokasiGudang, bm.BahanID, bm.Jumlah.Neg(), ledger.Ref{
			Jenis:      models.MutasiKeluar,
			RefType:    "barang_masuk",
			RefID:      bm.ID,
			Keterangan: "Pembatalan barang masuk",
		})
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.BarangMasuk{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("gagal menghapus barang masuk: %w", err)
		}
		return nil
	})
}

func (s *BarangMasukService) List() ([]models.BarangMasuk, error) {
	var list []models.BarangMasuk
	err := s.db.Preload("Bahan").Order("tanggal DESC, created_at DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("gagal membaca barang masuk: %w", err)
	}
	return list, nil
}

func (s *BarangMasukService) Get(id uint) (models.BarangMasuk, error) {
	var bm models.BarangMasuk
	err := s.db.Preload("Bahan").First(&bm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bm, fmt.Errorf("%w: barang masuk %d", ledger.ErrNotFound, id)
	}
	if err != nil {
		return bm, fmt.Errorf("gagal membaca barang masuk: %w", err)
	}
	return bm, nil
}
