// Copyright (c) 2025, restic-exporter authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	s := New(nil, prometheus.NewRegistry())

	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	id := w.Header().Get("X-Request-Id")
	if id == "" {
		t.Fatal("expected generated request ID")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected valid UUID, got %q", id)
	}
}

func TestRequestIDMiddleware_PreservesValidID(t *testing.T) {
	s := New(nil, prometheus.NewRegistry())

	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	want := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("X-Request-Id", want)
	w := httptest.NewRecorder()
	handler(w, req)

	if got := w.Header().Get("X-Request-Id"); got != want {
		t.Errorf("expected request ID %q to be preserved, got %q", want, got)
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s := New(cfg, prometheus.NewRegistry())

	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// First request passes, second exceeds the burst.
	for i, wantStatus := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != wantStatus {
			t.Errorf("request %d: expected status %d, got %d", i, wantStatus, w.Code)
		}
	}

	if got := testutil.ToFloat64(s.metrics.rateLimitRejects); got != 1 {
		t.Errorf("expected 1 rate limit reject, got %v", got)
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := New(nil, prometheus.NewRegistry())

	handler := s.panicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	if got := testutil.ToFloat64(s.metrics.panicRecoveries); got != 1 {
		t.Errorf("expected 1 recovered panic, got %v", got)
	}
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	s := New(nil, prometheus.NewRegistry())

	handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	got := testutil.ToFloat64(s.metrics.requestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200"))
	if got != 1 {
		t.Errorf("expected 1 counted request, got %v", got)
	}
}
