package inventory

import (
	"errors"
	"fmt"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermintaanService: alur permintaan stok outlet ke gudang pusat.
// Permintaan dibuat outlet (diajukan), disetujui/ditolak oleh gudang, dan
// menjadi fulfilled hanya lewat penerimaan BarangKeluar (lihat BarangKeluarService).
type PermintaanService struct {
	db *gorm.DB
}

func NewPermintaanService(db *gorm.DB) *PermintaanService {
	return &PermintaanService{db: db}
}

func (s *PermintaanService) Create(outletID, bahanID uint, jumlah decimal.Decimal) (models.PermintaanStok, error) {
	var p models.PermintaanStok

	if jumlah.Sign() <= 0 {
		return p, fmt.Errorf("%w: jumlah permintaan harus lebih dari 0", ledger.ErrValidation)
	}

	var outlet models.Outlet
	if err := s.db.First(&outlet, "id = ?", outletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, fmt.Errorf("%w: outlet %d", ledger.ErrNotFound, outletID)
		}
		return p, fmt.Errorf("gagal membaca outlet: %w", err)
	}
	var bahan models.Bahan
	if err := s.db.First(&bahan, "id = ?", bahanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, fmt.Errorf("%w: bahan %d", ledger.ErrNotFound, bahanID)
		}
		return p, fmt.Errorf("gagal membaca bahan: %w", err)
	}

	p = models.PermintaanStok{
		OutletID: outletID,
		BahanID:  bahanID,
		Jumlah:   jumlah,
		Status:   models.PermintaanDiajukan,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return p, fmt.Errorf("gagal membuat permintaan stok: %w", err)
	}
	p.Outlet = outlet
	p.Bahan = bahan
	return p, nil
}

func (s *PermintaanService) Approve(id uint) (models.PermintaanStok, error) {
	return s.transisi(id, models.PermintaanDisetujui)
}

func (s *PermintaanService) Reject(id uint) (models.PermintaanStok, error) {
	return s.transisi(id, models.PermintaanDitolak)
}

func (s *PermintaanService) transisi(id uint, ke models.StatusPermintaan) (models.PermintaanStok, error) {
	var p models.PermintaanStok
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: permintaan %d", ledger.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("gagal membaca permintaan: %w", err)
		}
		if err := validasiTransisiPermintaan(p.Status, ke); err != nil {
			return err
		}
		p.Status = ke
		if err := tx.Model(&models.PermintaanStok{}).Where("id = ?", id).Update("status", ke).Error; err != nil {
			return fmt.Errorf("gagal memperbarui status permintaan: %w", err)
		}
		return nil
	})
	return p, err
}

// PendingDemand: permintaan terbuka dari sudut pandang gudang. Status
// diajukan dan disetujui sama-sama kebutuhan yang belum dipenuhi;
// ditolak dan fulfilled tidak ikut.
func (s *PermintaanService) PendingDemand() ([]models.PermintaanStok, error) {
	var list []models.PermintaanStok
	err := s.db.
		Preload("Bahan").
		Preload("Outlet").
		Where("status IN ?", []models.StatusPermintaan{models.PermintaanDiajukan, models.PermintaanDisetujui}).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("gagal membaca permintaan terbuka: %w", err)
	}
	return list, nil
}

// List: seluruh permintaan, opsional difilter per outlet
func (s *PermintaanService) List(outletID *uint) ([]models.PermintaanStok, error) {
	q := s.db.Preload("Bahan").Preload("Outlet").Order("created_at DESC")
	if outletID != nil {
		q = q.Where("outlet_id = ?", *outletID)
	}
	var list []models.PermintaanStok
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gagal membaca permintaan stok: %w", err)
	}
	return list, nil
}
