package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MutasiLedger = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esteh_stok_mutasi_total",
		Help: "Jumlah mutasi ledger stok per jenis.",
	}, []string{"jenis"})

	StokTidakCukup = promauto.NewCounter(prometheus.CounterOpts{
		Name: "esteh_stok_tidak_cukup_total",
		Help: "Operasi debit yang ditolak karena stok tidak mencukupi.",
	})

	BarangKeluarDiterima = promauto.NewCounter(prometheus.CounterOpts{
		Name: "esteh_barang_keluar_diterima_total",
		Help: "Pengiriman yang dikonfirmasi diterima outlet.",
	})

	OpnameSelesai = promauto.NewCounter(prometheus.CounterOpts{
		Name: "esteh_opname_selesai_total",
		Help: "Sesi stok opname yang berhasil di-finalize.",
	})
)

// Server: listener terpisah untuk /metrics dan /health, di luar API Fiber
type Server struct {
	srv *http.Server
}

func NewServer(addr string) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
