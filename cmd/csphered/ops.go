package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/netutil"

	"connectsphere/core"
	"connectsphere/native/common"
)

// maxOpsConnections bounds concurrent scrapes and probes.
const maxOpsConnections = 32

type statusResponse struct {
	GenesisApplied bool            `json:"genesisApplied"`
	TotalSupply    string          `json:"totalSupply"`
	MaxSupply      string          `json:"maxSupply"`
	PlatformFeeBps uint32          `json:"platformFeeBps"`
	Paused         map[string]bool `json:"paused"`
}

// newOpsRouter serves the operator endpoints: Prometheus metrics, a liveness
// probe backed by the state store and a read-only status summary.
func newOpsRouter(node *core.Node) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := node.GenesisApplied(); err != nil {
			http.Error(w, "state unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		resp, err := collectStatus(node)
		if err != nil {
			http.Error(w, "state unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return otelhttp.NewHandler(r, "csphered-ops")
}

func collectStatus(node *core.Node) (*statusResponse, error) {
	applied, err := node.GenesisApplied()
	if err != nil {
		return nil, err
	}
	total, err := node.TotalSupply()
	if err != nil {
		return nil, err
	}
	fee, err := node.PlatformFee()
	if err != nil {
		return nil, err
	}
	return &statusResponse{
		GenesisApplied: applied,
		TotalSupply:    total.String(),
		MaxSupply:      node.MaxSupply().String(),
		PlatformFeeBps: fee,
		Paused: map[string]bool{
			common.ModuleToken:   node.IsPaused(common.ModuleToken),
			common.ModuleContent: node.IsPaused(common.ModuleContent),
		},
	}, nil
}

// serveOps blocks until ctx is cancelled. An empty address disables the
// listener.
func serveOps(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		<-ctx.Done()
		return nil
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	listener = netutil.LimitListener(listener, maxOpsConnections)
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving ops endpoints", slog.String("address", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
