package ledger

import "errors"

// Jenis error domain mesin stok. Handler HTTP memetakan error ini ke kode
// status; selain ini dianggap kegagalan penyimpanan (500, boleh di-retry).
var (
	ErrValidation        = errors.New("validasi gagal")
	ErrInvalidTransition = errors.New("transisi status tidak valid")
	ErrInsufficientStock = errors.New("stok tidak mencukupi")
	ErrNothingToFinalize = errors.New("belum ada hasil opname untuk disimpan")
	ErrNotFound          = errors.New("data tidak ditemukan")
)
