// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ippan/dlc/api/health"
)

// NewServer builds an *http.Server exposing a health endpoint backed by
// checker and a Prometheus metrics endpoint backed by reg. It does not
// start listening; the caller controls that via Server.ListenAndServe.
func NewServer(addr string, checker health.Checker, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler(checker))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func healthHandler(checker health.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := checker.HealthCheck(r.Context())
		if err != nil {
			WriteError(w, http.StatusServiceUnavailable, err)
			return
		}
		WriteSuccess(w, report)
	}
}

// FinalizerHealth adapts a round finalizer's last-known state into a
// health.Checker, reporting the most recently observed finalized round,
// state root, verifier-selection seed, and pinned model digest -- the
// selection.last_seed_hex and model.digest_hex observability views.
type FinalizerHealth struct {
	LastRound func() uint64
	LastRoot  func() string
	LastSeed  func() string
	ModelHash func() string
}

// HealthCheck implements health.Checker.
func (h FinalizerHealth) HealthCheck(_ context.Context) (interface{}, error) {
	details := map[string]interface{}{
		"last_finalized_round": h.LastRound(),
		"last_state_root":      h.LastRoot(),
	}
	if h.LastSeed != nil {
		details["selection_last_seed_hex"] = h.LastSeed()
	}
	if h.ModelHash != nil {
		details["model_digest_hex"] = h.ModelHash()
	}
	return health.Report{
		Healthy: true,
		Details: details,
	}, nil
}
