package opname

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"esteh-backend/internal/ledger"
	"esteh-backend/internal/metrics"
	"esteh-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSesuai  Status = "sesuai"
	StatusSelisih Status = "selisih"
)

// Item: satu baris sesi stok opname. StokSistem adalah snapshot ledger saat
// sesi dimulai; Selisih = StokFisik - StokSistem.
type Item struct {
	BahanID    uint
	StokSistem decimal.Decimal
	StokFisik  *decimal.Decimal
	Selisih    decimal.Decimal
	Status     Status
}

type SessionView struct {
	ID        string
	LokasiID  uint
	MulaiPada time.Time
	Items     []Item
}

type session struct {
	id        string
	lokasiID  uint
	mulaiPada time.Time
	items     map[uint]*Item
}

// LedgerStore: bagian ledger yang dibutuhkan rekonsiliasi opname.
// Dipenuhi oleh ledger.Ledger (Postgres) dan ledger.Memory (pengujian/demo).
type LedgerStore interface {
	Snapshot(lokasiID uint) (map[uint]decimal.Decimal, error)
	SetAbsoluteBatch(lokasiID uint, items map[uint]decimal.Decimal, ref ledger.Ref) error
}

// Katalog: daftar bahan yang ikut dihitung dalam satu sesi. Bahan yang belum
// pernah punya mutasi ledger tetap masuk sesi dengan stok sistem 0 — barang
// fisik yang belum pernah tercatat justru yang paling perlu direkonsiliasi.
type Katalog interface {
	DaftarBahanID() ([]uint, error)
}

// KatalogDB: Katalog dari tabel bahan
type KatalogDB struct {
	db *gorm.DB
}

func NewKatalogDB(db *gorm.DB) *KatalogDB {
	return &KatalogDB{db: db}
}

func (k *KatalogDB) DaftarBahanID() ([]uint, error) {
	var ids []uint
	if err := k.db.Model(&models.Bahan{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gagal membaca daftar bahan: %w", err)
	}
	return ids, nil
}

// Service: rekonsiliasi stok fisik terhadap stok sistem. Sesi hidup di
// memori dan tidak menyentuh ledger sampai Finalize; finalize meng-commit
// seluruh item non-pending sekaligus (all-or-nothing) lalu menghapus sesi.
type Service struct {
	mu       sync.Mutex
	ledger   LedgerStore
	katalog  Katalog
	sessions map[string]*session
	seq      uint64
}

func NewService(l LedgerStore, katalog Katalog) *Service {
	return &Service{ledger: l, katalog: katalog, sessions: make(map[string]*session)}
}

// StartSession: mulai sesi baru untuk satu lokasi. Sesi memuat seluruh bahan
// katalog dengan snapshot saldo ledger saat ini (bahan tanpa record = 0).
// Sesi lama untuk lokasi yang sama dibuang — hitungan yang belum di-finalize
// tidak pernah dipersist.
func (s *Service) StartSession(lokasiID uint) (SessionView, error) {
	bahanIDs, err := s.katalog.DaftarBahanID()
	if err != nil {
		return SessionView{}, err
	}
	saldo, err := s.ledger.Snapshot(lokasiID)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.lokasiID == lokasiID {
			delete(s.sessions, id)
		}
	}

	s.seq++
	sess := &session{
		id:        fmt.Sprintf("opname-%d-%d", lokasiID, s.seq),
		lokasiID:  lokasiID,
		mulaiPada: time.Now(),
		items:     make(map[uint]*Item, len(bahanIDs)),
	}
	for _, bahanID := range bahanIDs {
		sess.items[bahanID] = &Item{
			BahanID:    bahanID,
			StokSistem: saldo[bahanID], // tanpa record = 0
			Status:     StatusPending,
		}
	}
	// baris ledger yang bahannya sudah hilang dari katalog tetap ikut
	for bahanID, jumlah := range saldo {
		if _, ok := sess.items[bahanID]; !ok {
			sess.items[bahanID] = &Item{
				BahanID:    bahanID,
				StokSistem: jumlah,
				Status:     StatusPending,
			}
		}
	}
	s.sessions[sess.id] = sess
	return sess.view(), nil
}

func (s *Service) Session(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return SessionView{}, fmt.Errorf("%w: sesi opname %s", ledger.ErrNotFound, id)
	}
	return sess.view(), nil
}

// RecordCount: catat hasil hitung fisik satu bahan. Idempoten — pencatatan
// ulang menimpa hitungan sebelumnya.
func (s *Service) RecordCount(sessionID string, bahanID uint, fisik decimal.Decimal) (Item, error) {
	if fisik.IsNegative() {
		return Item{}, fmt.Errorf("%w: stok fisik tidak boleh negatif", ledger.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Item{}, fmt.Errorf("%w: sesi opname %s", ledger.ErrNotFound, sessionID)
	}
	item, ok := sess.items[bahanID]
	if !ok {
		return Item{}, fmt.Errorf("%w: bahan %d tidak ada dalam sesi", ledger.ErrNotFound, bahanID)
	}

	f := fisik
	item.StokFisik = &f
	item.Selisih = fisik.Sub(item.StokSistem)
	if item.Selisih.IsZero() {
		item.Status = StatusSesuai
	} else {
		item.Status = StatusSelisih
	}
	return *item, nil
}

// Finalize: commit seluruh item yang sudah dihitung ke ledger dalam satu
// batch transaksional, lalu hapus sesi. Mengembalikan jumlah item yang
// di-commit. Sesi tanpa hitungan (atau sesi yang sudah dibersihkan) gagal
// dengan ErrNothingToFinalize tanpa memutasi ledger.
func (s *Service) Finalize(sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, fmt.Errorf("%w: sesi opname %s", ledger.ErrNothingToFinalize, sessionID)
	}

	commit := make(map[uint]decimal.Decimal)
	for bahanID, item := range sess.items {
		if item.Status != StatusPending {
			commit[bahanID] = *item.StokFisik
		}
	}
	if len(commit) == 0 {
		return 0, fmt.Errorf("%w: sesi %s", ledger.ErrNothingToFinalize, sessionID)
	}

	err := s.ledger.SetAbsoluteBatch(sess.lokasiID, commit, ledger.Ref{
		Jenis:      models.MutasiOpname,
		RefType:    "opname",
		Keterangan: "Stok opname " + sessionID,
	})
	if err != nil {
		// batch gagal: sesi dipertahankan supaya bisa di-retry
		return 0, err
	}

	delete(s.sessions, sessionID)
	metrics.OpnameSelesai.Inc()
	return len(commit), nil
}

func (sess *session) view() SessionView {
	items := make([]Item, 0, len(sess.items))
	for _, it := range sess.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].BahanID < items[j].BahanID })
	return SessionView{
		ID:        sess.id,
		LokasiID:  sess.lokasiID,
		MulaiPada: sess.mulaiPada,
		Items:     items,
	}
}
