package inventory

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/metrics"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BarangKeluarService: alur pengiriman gudang pusat ke outlet.
// Perilaku baku mengikuti sistem lama: ledger baru dimutasi saat pengiriman
// diterima (debit gudang + kredit outlet dalam satu transaksi). Dengan
// reserveOnCreate aktif, gudang didebit saat pengiriman dibuat dan penerimaan
// hanya mengkredit outlet; pembatalan mengembalikan debitnya.
type BarangKeluarService struct {
	db              *gorm.DB
	ledger          *ledger.Ledger
	reserveOnCreate bool
}

func NewBarangKeluarService(db *gorm.DB, l *ledger.Ledger, reserveOnCreate bool) *BarangKeluarService {
	return &BarangKeluarService{db: db, ledger: l, reserveOnCreate: reserveOnCreate}
}

// CreateFromPermintaan: buat pengiriman dari tepat satu permintaan yang
// sudah disetujui. Baris permintaan disalin menjadi detail pengiriman;
// status awal pending.
func (s *BarangKeluarService) CreateFromPermintaan(permintaanID uint, tanggal time.Time) (models.BarangKeluar, error) {
	var bk models.BarangKeluar

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p models.PermintaanStok
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", permintaanID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: permintaan %d", ledger.ErrNotFound, permintaanID)
		}
		if err != nil {
			return fmt.Errorf("gagal membaca permintaan: %w", err)
		}

		if p.Status != models.PermintaanDisetujui {
			return fmt.Errorf("%w: pengiriman hanya bisa dibuat dari permintaan disetujui (status sekarang %s)",
				ledger.ErrInvalidTransition, p.Status)
		}

		// Satu pengiriman aktif per permintaan; pengiriman yang dibatalkan
		// membebaskan permintaannya kembali
		var aktif int64
		err = tx.Model(&models.BarangKeluar{}).
			Where("permintaan_id = ? AND status <> ?", permintaanID, models.BarangKeluarCancelled).
			Count(&aktif).Error
		if err != nil {
			return fmt.Errorf("gagal cek pengiriman aktif: %w", err)
		}
		if aktif > 0 {
			return fmt.Errorf("%w: permintaan %d sudah punya pengiriman aktif", ledger.ErrInvalidTransition, permintaanID)
		}

		bk = models.BarangKeluar{
			PermintaanID:  permintaanID,
			OutletID:      p.OutletID,
			TanggalKeluar: tanggal,
			Status:        models.BarangKeluarPending,
			Details: []models.DetailBarangKeluar{
				{BahanID: p.BahanID, Jumlah: p.Jumlah},
			},
		}
		if err := tx.Create(&bk).Error; err != nil {
			return fmt.Errorf("gagal membuat barang keluar: %w", err)
		}

		if s.reserveOnCreate {
			for _, d := range bk.Details {
				_, err := s.ledger.Adjust(tx, models.LokasiGudang, d.BahanID, d.Jumlah.Neg(), ledger.Ref{
					Jenis:          models.MutasiKeluar,
					RefType:        "barang_keluar",
					RefID:          bk.ID,
					IdempotencyKey: fmt.Sprintf("bk-%d-reservasi-%d", bk.ID, d.BahanID),
					Keterangan:     "Reservasi stok pengiriman",
				})
				if err != nil {
					if errors.Is(err, ledger.ErrInsufficientStock) {
						metrics.StokTidakCukup.Inc()
					}
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.BarangKeluar{}, err
	}
	return s.Get(bk.ID)
}

// Dispatch: pending -> in_transit. Tanpa efek ledger — barang dianggap masih
// milik gudang sampai outlet mengonfirmasi terima.
func (s *BarangKeluarService) Dispatch(id uint) (models.BarangKeluar, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bk, err := s.lock(tx, id)
		if err != nil {
			return err
		}
		if err := validasiTransisiBarangKeluar(bk.Status, models.BarangKeluarInTransit); err != nil {
			return err
		}
		return s.setStatus(tx, id, models.BarangKeluarInTransit)
	})
	if err != nil {
		return models.BarangKeluar{}, err
	}
	return s.Get(id)
}

// Receive: in_transit -> received. Dalam satu transaksi: debit gudang,
// kredit outlet tujuan, dan tandai permintaan asal fulfilled. Bila stok
// gudang kurang, seluruh transaksi batal dan status tetap in_transit.
func (s *BarangKeluarService) Receive(id uint) (models.BarangKeluar, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bk, err := s.lock(tx, id)
		if err != nil {
			return err
		}
		if err := validasiTransisiBarangKeluar(bk.Status, models.BarangKeluarReceived); err != nil {
			return err
		}

		var details []models.DetailBarangKeluar
		if err := tx.Where("barang_keluar_id = ?", id).Find(&details).Error; err != nil {
			return fmt.Errorf("gagal membaca detail pengiriman: %w", err)
		}

		adjust := func(lokasiID, bahanID uint, delta decimal.Decimal, ref ledger.Ref) (decimal.Decimal, error) {
			return s.ledger.Adjust(tx, lokasiID, bahanID, delta, ref)
		}
		if err := pergerakanTerima(adjust, bk.ID, bk.OutletID, details, s.reserveOnCreate); err != nil {
			return err
		}

		// permintaan asal ikut final dalam transaksi yang sama
		var p models.PermintaanStok
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", bk.PermintaanID).Error; err != nil {
			return fmt.Errorf("gagal membaca permintaan asal: %w", err)
		}
		if err := validasiTransisiPermintaan(p.Status, models.PermintaanFulfilled); err != nil {
			return err
		}
		if err := tx.Model(&models.PermintaanStok{}).Where("id = ?", p.ID).
			Update("status", models.PermintaanFulfilled).Error; err != nil {
			return fmt.Errorf("gagal memperbarui permintaan asal: %w", err)
		}

		return s.setStatus(tx, id, models.BarangKeluarReceived)
	})
	if err != nil {
		return models.BarangKeluar{}, err
	}
	metrics.BarangKeluarDiterima.Inc()
	return s.Get(id)
}

// adjustFunc: satu mutasi ledger. Dipenuhi closure di atas ledger.Ledger
// (lewat transaksi) maupun langsung oleh ledger.Memory.Adjust.
type adjustFunc func(lokasiID, bahanID uint, delta decimal.Decimal, ref ledger.Ref) (decimal.Decimal, error)

// pergerakanTerima: seluruh mutasi ledger saat pengiriman diterima — debit
// gudang (kecuali sudah direservasi saat pembuatan) lalu kredit outlet,
// per bahan. Kunci idempotensi per mutasi membuat pengulangan aman.
func pergerakanTerima(adjust adjustFunc, bkID, outletID uint, details []models.DetailBarangKeluar, reserveOnCreate bool) error {
	// urutan lock deterministik antar pemanggil
	sort.Slice(details, func(i, j int) bool { return details[i].BahanID < details[j].BahanID })

	for _, d := range details {
		if !reserveOnCreate {
			_, err := adjust(models.LokasiGudang, d.BahanID, d.Jumlah.Neg(), ledger.Ref{
				Jenis:          models.MutasiKeluar,
				RefType:        "barang_keluar",
				RefID:          bkID,
				IdempotencyKey: fmt.Sprintf("bk-%d-debit-%d", bkID, d.BahanID),
				Keterangan:     "Pengiriman ke outlet",
			})
			if err != nil {
				if errors.Is(err, ledger.ErrInsufficientStock) {
					metrics.StokTidakCukup.Inc()
				}
				return err
			}
		}
		_, err := adjust(outletID, d.BahanID, d.Jumlah, ledger.Ref{
			Jenis:          models.MutasiMasuk,
			RefType:        "barang_keluar",
			RefID:          bkID,
			IdempotencyKey: fmt.Sprintf("bk-%d-kredit-%d", bkID, d.BahanID),
			Keterangan:     "Penerimaan kiriman gudang",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Cancel: hanya dari pending. Permintaan asal tetap disetujui sehingga bisa
// dibuatkan pengiriman baru.
func (s *BarangKeluarService) Cancel(id uint) (models.BarangKeluar, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bk, err := s.lock(tx, id)
		if err != nil {
			return err
		}
		if err := validasiTransisiBarangKeluar(bk.Status, models.BarangKeluarCancelled); err != nil {
			return err
		}

		if s.reserveOnCreate {
			var details []models.DetailBarangKeluar
			if err := tx.Where("barang_keluar_id = ?", id).Find(&details).Error; err != nil {
				return fmt.Errorf("gagal membaca detail pengiriman: %w", err)
			}
			for _, d := range details {
				_, err := s.ledger.Adjust(tx, models.LokasiGudang, d.BahanID, d.Jumlah, ledger.Ref{
					Jenis:          models.MutasiMasuk,
					RefType:        "barang_keluar",
					RefID:          bk.ID,
					IdempotencyKey: fmt.Sprintf("bk-%d-batal-%d", bk.ID, d.BahanID),
					Keterangan:     "Pembatalan reservasi pengiriman",
				})
				if err != nil {
					return err
				}
			}
		}
		return s.setStatus(tx, id, models.BarangKeluarCancelled)
	})
	if err != nil {
		return models.BarangKeluar{}, err
	}
	return s.Get(id)
}

func (s *BarangKeluarService) Get(id uint) (models.BarangKeluar, error) {
	var bk models.BarangKeluar
	err := s.db.Preload("Details.Bahan").Preload("Outlet").Preload("Permintaan").First(&bk, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bk, fmt.Errorf("%w: barang keluar %d", ledger.ErrNotFound, id)
	}
	if err != nil {
		return bk, fmt.Errorf("gagal membaca barang keluar: %w", err)
	}
	return bk, nil
}

// List: seluruh pengiriman, opsional difilter status dan outlet
func (s *BarangKeluarService) List(status *models.StatusBarangKeluar, outletID *uint) ([]models.BarangKeluar, error) {
	q := s.db.Preload("Details.Bahan").Preload("Outlet").Order("tanggal_keluar DESC, created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if outletID != nil {
		q = q.Where("outlet_id = ?", *outletID)
	}
	var list []models.BarangKeluar
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gagal membaca barang keluar: %w", err)
	}
	return list, nil
}

func (s *BarangKeluarService) lock(tx *gorm.DB, id uint) (models.BarangKeluar, error) {
	var bk models.BarangKeluar
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bk, fmt.Errorf("%w: barang keluar %d", ledger.ErrNotFound, id)
	}
	if err != nil {
		return bk, fmt.Errorf("gagal mengunci barang keluar: %w", err)
	}
	return bk, nil
}

func (s *BarangKeluarService) setStatus(tx *gorm.DB, id uint, status models.StatusBarangKeluar) error {
	if err := tx.Model(&models.BarangKeluar{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return fmt.Errorf("gagal memperbarui status barang keluar: %w", err)
	}
	return nil
}
