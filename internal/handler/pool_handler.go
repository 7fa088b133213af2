package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/sprmobility/pool-backend/internal/errors"
	"github.com/sprmobility/pool-backend/internal/middleware"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/service"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

type PoolHandler struct {
	poolService service.PoolService
	validate    *validator.Validate
}

func NewPoolHandler(poolService service.PoolService) *PoolHandler {
	return &PoolHandler{
		poolService: poolService,
		validate:    validator.New(),
	}
}

func (h *PoolHandler) RegisterRoutes(r chi.Router) {
	r.Post("/pools", h.CreatePool)
	r.Get("/pools", h.ListOpenPools)
	r.Get("/pools/joined", h.FindJoinedPool)
	r.Get("/pools/{id}", h.GetPool)
	r.Post("/pools/{id}/join", h.JoinPool)
	r.Post("/pools/{id}/exit", h.ExitPool)
}

// POST /v1/pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	pool, err := h.poolService.CreatePool(r.Context(), &req)
	middleware.TrackPoolMutation("create", err)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, pool.ToResponse())
}

// GET /v1/pools
func (h *PoolHandler) ListOpenPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.poolService.ListOpenPools(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, toResponses(pools))
}

// GET /v1/pools/joined?rider_id=...
func (h *PoolHandler) FindJoinedPool(w http.ResponseWriter, r *http.Request) {
	riderID := r.URL.Query().Get("rider_id")
	if riderID == "" {
		utils.BadRequest(w, "rider_id is required")
		return
	}

	pool, err := h.poolService.FindJoinedPool(r.Context(), riderID)
	if err != nil {
		handleError(w, err)
		return
	}
	if pool == nil {
		utils.NotFound(w, "joined pool")
		return
	}

	utils.Success(w, http.StatusOK, pool.ToResponse())
}

// GET /v1/pools/{id}
func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "pool id is required")
		return
	}

	pool, err := h.poolService.GetPool(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, pool.ToResponse())
}

// POST /v1/pools/{id}/join
func (h *PoolHandler) JoinPool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "pool id is required")
		return
	}

	var req models.JoinPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	pool, err := h.poolService.JoinPool(r.Context(), id, req.RiderID, req.Name)
	middleware.TrackPoolMutation("join", err)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, pool.ToResponse())
}

// POST /v1/pools/{id}/exit
func (h *PoolHandler) ExitPool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "pool id is required")
		return
	}

	var req models.ExitPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	err := h.poolService.ExitPool(r.Context(), id, req.RiderID)
	middleware.TrackPoolMutation("exit", err)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{
		"status":  "exited",
		"message": "you have left the pool",
	})
}

func toResponses(pools []models.Pool) []*models.PoolResponse {
	out := make([]*models.PoolResponse, 0, len(pools))
	for i := range pools {
		out = append(out, pools[i].ToResponse())
	}
	return out
}

func handleError(w http.ResponseWriter, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		utils.Error(w, apiErr)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrPoolNotFound):
		utils.Error(w, apperrors.PoolNotFound())
	case errors.Is(err, apperrors.ErrPoolFull):
		utils.Error(w, apperrors.PoolFull())
	case errors.Is(err, apperrors.ErrAlreadyJoined):
		utils.Error(w, apperrors.AlreadyJoined())
	case errors.Is(err, apperrors.ErrNotAMember):
		utils.Error(w, apperrors.NotAMember())
	case errors.Is(err, apperrors.ErrDriverAlreadyAssigned):
		utils.Error(w, apperrors.DriverAlreadyAssigned())
	case errors.Is(err, apperrors.ErrBookingNotFound):
		utils.Error(w, apperrors.NotFound("booking"))
	case errors.Is(err, apperrors.ErrStorageWrite):
		utils.Error(w, apperrors.StorageWriteFailed())
	default:
		utils.InternalError(w, "internal server error")
	}
}
