package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type memKey struct {
	lokasiID uint
	bahanID  uint
}

// Memory: ledger dalam memori dengan mutex tunggal sebagai serialisasi
// per-key. Dipakai oleh pengujian dan mode demo tanpa Postgres; semantik
// domainnya identik dengan Ledger (saldo tak pernah negatif, retry dengan
// idempotency key tidak diterapkan dua kali).
type Memory struct {
	mu   sync.Mutex
	stok map[memKey]decimal.Decimal
	idem map[string]decimal.Decimal
}

func NewMemory() *Memory {
	return &Memory{
		stok: make(map[memKey]decimal.Decimal),
		idem: make(map[string]decimal.Decimal),
	}
}

func (m *Memory) GetQuantity(lokasiID, bahanID uint) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stok[memKey{lokasiID, bahanID}], nil
}

func (m *Memory) Snapshot(lokasiID uint) (map[uint]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint]decimal.Decimal)
	for k, v := range m.stok {
		if k.lokasiID == lokasiID {
			out[k.bahanID] = v
		}
	}
	return out, nil
}

func (m *Memory) Adjust(lokasiID, bahanID uint, delta decimal.Decimal, ref Ref) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ref.IdempotencyKey != "" {
		if saldo, ok := m.idem[ref.IdempotencyKey]; ok {
			return saldo, nil
		}
	}

	key := memKey{lokasiID, bahanID}
	saldo, err := applyDelta(m.stok[key], delta)
	if err != nil {
		return decimal.Decimal{}, err
	}
	m.stok[key] = saldo
	if ref.IdempotencyKey != "" {
		m.idem[ref.IdempotencyKey] = saldo
	}
	return saldo, nil
}

func (m *Memory) SetAbsolute(lokasiID, bahanID uint, jumlah decimal.Decimal, ref Ref) error {
	if jumlah.IsNegative() {
		return fmt.Errorf("%w: jumlah absolut tidak boleh negatif", ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stok[memKey{lokasiID, bahanID}] = jumlah
	return nil
}

// SetAbsoluteBatch: all-or-nothing — semua item divalidasi dulu, baru
// seluruhnya diterapkan di bawah satu lock
func (m *Memory) SetAbsoluteBatch(lokasiID uint, items map[uint]decimal.Decimal, ref Ref) error {
	for bahanID, jumlah := range items {
		if jumlah.IsNegative() {
			return fmt.Errorf("%w: jumlah absolut bahan %d tidak boleh negatif", ErrValidation, bahanID)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for bahanID, jumlah := range items {
		m.stok[memKey{lokasiID, bahanID}] = jumlah
	}
	return nil
}
