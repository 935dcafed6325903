package ledger

import (
	"errors"
	"fmt"
	"sort"

	"esteh-backend/internal/metrics"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger: sumber kebenaran tunggal untuk kuantitas stok per (lokasi, bahan).
// Semua mutasi diserialisasi per baris lewat row lock Postgres (FOR UPDATE);
// operasi lintas lokasi (terima kiriman) berjalan dalam satu transaksi milik
// pemanggil sehingga debit tidak pernah sukses tanpa kreditnya.
type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Ref: metadata jurnal untuk satu mutasi ledger
type Ref struct {
	Jenis          models.JenisMutasi
	RefType        string // barang_masuk / barang_keluar / opname
	RefID          uint
	IdempotencyKey string // opsional; retry dengan key sama tidak diterapkan dua kali
	Keterangan     string
}

// GetQuantity: saldo saat ini. Record yang belum ada berarti 0, bukan error.
// Pembacaan ini snapshot tanpa lock; boleh basi terhadap tulisan yang sedang
// berjalan.
func (l *Ledger) GetQuantity(lokasiID, bahanID uint) (decimal.Decimal, error) {
	var rec models.StokRecord
	err := l.db.Where("lokasi_id = ? AND bahan_id = ?", lokasiID, bahanID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("gagal membaca stok: %w", err)
	}
	return rec.Jumlah, nil
}

// Snapshot: seluruh saldo pada satu lokasi, untuk opname dan dashboard
func (l *Ledger) Snapshot(lokasiID uint) (map[uint]decimal.Decimal, error) {
	var recs []models.StokRecord
	if err := l.db.Where("lokasi_id = ?", lokasiID).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("gagal membaca snapshot stok: %w", err)
	}
	out := make(map[uint]decimal.Decimal, len(recs))
	for _, r := range recs {
		out[r.BahanID] = r.Jumlah
	}
	return out, nil
}

// Adjust: terapkan delta bertanda dalam transaksi milik pemanggil.
// Gagal dengan ErrInsufficientStock bila saldo akhir akan negatif; pada kasus
// itu tidak ada baris yang berubah. Mengembalikan saldo baru.
func (l *Ledger) Adjust(tx *gorm.DB, lokasiID, bahanID uint, delta decimal.Decimal, ref Ref) (decimal.Decimal, error) {
	if ref.IdempotencyKey != "" {
		// Retry terdeteksi: kembalikan hasil yang sudah tercatat,
		// jangan terapkan delta dua kali
		var prev models.StokMutasi
		err := tx.Where("idempotency_key = ?", ref.IdempotencyKey).First(&prev).Error
		if err == nil {
			return prev.Saldo, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("gagal cek idempotency key: %w", err)
		}
	}

	rec, err := l.lockRecord(tx, lokasiID, bahanID)
	if err != nil {
		return decimal.Zero, err
	}

	saldo, err := applyDelta(rec.Jumlah, delta)
	if err != nil {
		return decimal.Zero, err
	}

	if err := tx.Model(&models.StokRecord{}).Where("id = ?", rec.ID).Update("jumlah", saldo).Error; err != nil {
		return decimal.Zero, fmt.Errorf("gagal memperbarui stok: %w", err)
	}
	if err := l.journal(tx, lokasiID, bahanID, delta, saldo, ref); err != nil {
		return decimal.Zero, err
	}
	return saldo, nil
}

// AdjustOne: Adjust dalam transaksi sendiri, untuk mutasi satu key
func (l *Ledger) AdjustOne(lokasiID, bahanID uint, delta decimal.Decimal, ref Ref) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var err error
		saldo, err = l.Adjust(tx, lokasiID, bahanID, delta, ref)
		return err
	})
	return saldo, err
}

// SetAbsolute: tulis saldo absolut (hanya dipakai finalize stok opname).
// Gagal dengan ErrValidation bila jumlah negatif.
func (l *Ledger) SetAbsolute(tx *gorm.DB, lokasiID, bahanID uint, jumlah decimal.Decimal, ref Ref) error {
	if jumlah.IsNegative() {
		return fmt.Errorf("%w: jumlah absolut tidak boleh negatif", ErrValidation)
	}

	rec, err := l.lockRecord(tx, lokasiID, bahanID)
	if err != nil {
		return err
	}

	delta := jumlah.Sub(rec.Jumlah)
	if err := tx.Model(&models.StokRecord{}).Where("id = ?", rec.ID).Update("jumlah", jumlah).Error; err != nil {
		return fmt.Errorf("gagal memperbarui stok: %w", err)
	}
	return l.journal(tx, lokasiID, bahanID, delta, jumlah, ref)
}

// SetAbsoluteBatch: commit serangkaian saldo absolut pada satu lokasi dalam
// satu transaksi (all-or-nothing). Key diproses terurut supaya urutan lock
// deterministik antar pemanggil.
func (l *Ledger) SetAbsoluteBatch(lokasiID uint, items map[uint]decimal.Decimal, ref Ref) error {
	bahanIDs := make([]uint, 0, len(items))
	for id := range items {
		bahanIDs = append(bahanIDs, id)
	}
	sort.Slice(bahanIDs, func(i, j int) bool { return bahanIDs[i] < bahanIDs[j] })

	return l.db.Transaction(func(tx *gorm.DB) error {
		for _, bahanID := range bahanIDs {
			if err := l.SetAbsolute(tx, lokasiID, bahanID, items[bahanID], ref); err != nil {
				return err
			}
		}
		return nil
	})
}

// lockRecord: ambil baris stok dengan FOR UPDATE; buat baris bersaldo 0 bila
// belum ada supaya tetap ada yang dikunci
func (l *Ledger) lockRecord(tx *gorm.DB, lokasiID, bahanID uint) (models.StokRecord, error) {
	var rec models.StokRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lokasi_id = ? AND bahan_id = ?", lokasiID, bahanID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.StokRecord{LokasiID: lokasiID, BahanID: bahanID, Jumlah: decimal.Zero}
		if err := tx.Create(&rec).Error; err != nil {
			return rec, fmt.Errorf("gagal membuat record stok: %w", err)
		}
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("gagal mengunci record stok: %w", err)
	}
	return rec, nil
}

func (l *Ledger) journal(tx *gorm.DB, lokasiID, bahanID uint, delta, saldo decimal.Decimal, ref Ref) error {
	mut := models.StokMutasi{
		LokasiID:       lokasiID,
		BahanID:        bahanID,
		Jenis:          ref.Jenis,
		Jumlah:         delta,
		Saldo:          saldo,
		RefType:        ref.RefType,
		RefID:          ref.RefID,
		IdempotencyKey: ref.IdempotencyKey,
		Keterangan:     ref.Keterangan,
	}
	if err := tx.Create(&mut).Error; err != nil {
		return fmt.Errorf("gagal menulis jurnal mutasi: %w", err)
	}
	metrics.MutasiLedger.WithLabelValues(string(ref.Jenis)).Inc()
	return nil
}

// applyDelta: aturan inti ledger — saldo tidak boleh turun di bawah nol.
// Operasi yang akan membuatnya negatif harus gagal, bukan dipotong ke nol.
func applyDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: saldo %s, diminta %s",
			ErrInsufficientStock, current.String(), delta.Neg().String())
	}
	return next, nil
}
