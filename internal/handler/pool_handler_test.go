package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sprmobility/pool-backend/internal/repository/memory"
	"github.com/sprmobility/pool-backend/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter() chi.Router {
	repo := memory.NewPoolRepository()
	svc := service.NewPoolService(repo, 4, 50)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		NewPoolHandler(svc).RegisterRoutes(r)
		NewDriverHandler(svc).RegisterRoutes(r)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func createPoolViaAPI(t *testing.T, router chi.Router) string {
	t.Helper()

	rec, env := doJSON(t, router, http.MethodPost, "/v1/pools", map[string]interface{}{
		"destination":     "Central Station",
		"pickup_location": "Tech Park Gate 2",
		"departure_time":  time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pool status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var pool struct {
		ID string `json:"pool_id"`
	}
	if err := json.Unmarshal(env.Data, &pool); err != nil {
		t.Fatalf("decode pool: %v", err)
	}
	if pool.ID == "" {
		t.Fatal("created pool has empty id")
	}
	return pool.ID
}

func TestCreatePoolEndpoint(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/v1/pools", map[string]interface{}{
		"destination":     "Central Station",
		"pickup_location": "Tech Park Gate 2",
		"departure_time":  time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Errorf("success = false, want true")
	}

	var pool struct {
		Status    string `json:"status"`
		Capacity  int    `json:"capacity"`
		SeatsLeft int    `json:"seats_left"`
	}
	if err := json.Unmarshal(env.Data, &pool); err != nil {
		t.Fatalf("decode pool: %v", err)
	}
	if pool.Status != "pending" || pool.Capacity != 4 || pool.SeatsLeft != 4 {
		t.Errorf("pool = %+v, want pending with 4 of 4 seats", pool)
	}
}

func TestCreatePoolValidation(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/v1/pools", map[string]interface{}{
		"pickup_location": "Tech Park Gate 2",
		"departure_time":  time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Success {
		t.Errorf("success = true for invalid request")
	}
}

func TestJoinPoolConflicts(t *testing.T) {
	router := newTestRouter()
	poolID := createPoolViaAPI(t, router)
	joinPath := fmt.Sprintf("/v1/pools/%s/join", poolID)

	rec, _ := doJSON(t, router, http.MethodPost, joinPath, map[string]string{
		"rider_id": "rider-a", "name": "Asha",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("first join status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec, env := doJSON(t, router, http.MethodPost, joinPath, map[string]string{
		"rider_id": "rider-a", "name": "Asha",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate join status = %d, want 409", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "already_joined" {
		t.Errorf("duplicate join error = %+v, want already_joined", env.Error)
	}

	for i := 1; i < 4; i++ {
		rec, _ := doJSON(t, router, http.MethodPost, joinPath, map[string]string{
			"rider_id": fmt.Sprintf("rider-%d", i), "name": fmt.Sprintf("Rider %d", i),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("join %d status = %d", i, rec.Code)
		}
	}

	rec, env = doJSON(t, router, http.MethodPost, joinPath, map[string]string{
		"rider_id": "rider-late", "name": "Late Rider",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("join full pool status = %d, want 409", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "pool_full" {
		t.Errorf("join full pool error = %+v, want pool_full", env.Error)
	}
}

func TestAssignDriverEndpoint(t *testing.T) {
	router := newTestRouter()
	poolID := createPoolViaAPI(t, router)
	path := fmt.Sprintf("/v1/pools/%s/driver", poolID)

	rec, env := doJSON(t, router, http.MethodPost, path, map[string]string{
		"driver_id": "driver-1", "driver_name": "Dana Driver",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("assign status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var pool struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &pool); err != nil {
		t.Fatalf("decode pool: %v", err)
	}
	if pool.Status != "accepted" {
		t.Errorf("status after assign = %q, want accepted", pool.Status)
	}

	rec, env = doJSON(t, router, http.MethodPost, path, map[string]string{
		"driver_id": "driver-2", "driver_name": "Devi Driver",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second assign status = %d, want 409", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "driver_already_assigned" {
		t.Errorf("second assign error = %+v, want driver_already_assigned", env.Error)
	}
}

func TestExitPoolRemovesEmptyPool(t *testing.T) {
	router := newTestRouter()
	poolID := createPoolViaAPI(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, fmt.Sprintf("/v1/pools/%s/join", poolID), map[string]string{
		"rider_id": "rider-a", "name": "Asha",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/v1/pools/%s/exit", poolID), map[string]string{
		"rider_id": "rider-a",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("exit status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/pools/"+poolID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	if getRec.Code != http.StatusNotFound {
		t.Fatalf("get deleted pool status = %d, want 404", getRec.Code)
	}
}

func TestJoinPoolUnknownID(t *testing.T) {
	router := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/v1/pools/pool-missing/join", map[string]string{
		"rider_id": "rider-a", "name": "Asha",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "pool_not_found" {
		t.Errorf("error = %+v, want pool_not_found", env.Error)
	}
}
