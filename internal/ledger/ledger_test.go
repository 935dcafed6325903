package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		current string
		delta   string
		want    string
		wantErr bool
	}{
		{"kredit normal", "100", "50", "150", false},
		{"debit normal", "100", "-40", "60", false},
		{"debit sampai nol", "100", "-100", "0", false},
		{"debit melebihi saldo", "40", "-50", "", true},
		{"debit dari saldo nol", "0", "-1", "", true},
		{"delta nol", "25.5", "0", "25.5", false},
		{"pecahan", "10.25", "-0.25", "10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyDelta(dec(tt.current), dec(tt.delta))
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientStock) {
					t.Fatalf("expected ErrInsufficientStock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("saldo = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMemory_GetQuantityMissingIsZero(t *testing.T) {
	m := NewMemory()
	got, err := m.GetQuantity(0, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("saldo = %s, want 0", got)
	}
}

func TestMemory_AdjustRejectsNegativeResult(t *testing.T) {
	m := NewMemory()
	if _, err := m.Adjust(0, 1, dec("40"), Ref{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := m.Adjust(0, 1, dec("-50"), Ref{})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// saldo tidak boleh berubah setelah operasi yang gagal
	saldo, _ := m.GetQuantity(0, 1)
	if !saldo.Equal(dec("40")) {
		t.Errorf("saldo = %s, want 40", saldo)
	}
}

// Adjust bersamaan pada key yang sama tidak boleh kehilangan update:
// saldo akhir harus sama dengan jumlah seluruh delta.
func TestMemory_ConcurrentAdjustNoLostUpdates(t *testing.T) {
	m := NewMemory()

	const workers = 20
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, err := m.Adjust(0, 7, dec("3"), Ref{}); err != nil {
					t.Errorf("adjust failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	want := dec("3").Mul(decimal.NewFromInt(workers * perWorker))
	saldo, _ := m.GetQuantity(0, 7)
	if !saldo.Equal(want) {
		t.Errorf("saldo = %s, want %s", saldo, want)
	}
}

func TestMemory_IdempotencyKeyAppliedOnce(t *testing.T) {
	m := NewMemory()

	ref := Ref{IdempotencyKey: "masuk-123"}
	first, err := m.Adjust(0, 1, dec("100"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// retry dengan key sama: hasil tercatat dikembalikan, delta tidak dobel
	second, err := m.Adjust(0, 1, dec("100"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Equal(first) {
		t.Errorf("retry saldo = %s, want %s", second, first)
	}

	saldo, _ := m.GetQuantity(0, 1)
	if !saldo.Equal(dec("100")) {
		t.Errorf("saldo = %s, want 100", saldo)
	}
}

func TestMemory_SetAbsoluteBatchAllOrNothing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Adjust(0, 1, dec("200"), Ref{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err := m.SetAbsoluteBatch(0, map[uint]decimal.Decimal{
		1: dec("180"),
		2: dec("-5"), // tidak valid, seluruh batch harus dibatalkan
	}, Ref{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	saldo, _ := m.GetQuantity(0, 1)
	if !saldo.Equal(dec("200")) {
		t.Errorf("saldo bahan 1 = %s, want 200 (batch gagal tidak boleh menerapkan sebagian)", saldo)
	}
}

func TestMemory_SetAbsoluteBatchCommits(t *testing.T) {
	m := NewMemory()
	if _, err := m.Adjust(5, 1, dec("200"), Ref{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err := m.SetAbsoluteBatch(5, map[uint]decimal.Decimal{
		1: dec("180"),
		2: dec("30"),
	}, Ref{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saldo, _ := m.GetQuantity(5, 1); !saldo.Equal(dec("180")) {
		t.Errorf("saldo bahan 1 = %s, want 180", saldo)
	}
	if saldo, _ := m.GetQuantity(5, 2); !saldo.Equal(dec("30")) {
		t.Errorf("saldo bahan 2 = %s, want 30", saldo)
	}
}
