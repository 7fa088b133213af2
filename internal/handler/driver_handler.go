package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sprmobility/pool-backend/internal/middleware"
	"github.com/sprmobility/pool-backend/internal/models"
	"github.com/sprmobility/pool-backend/internal/service"
	"github.com/sprmobility/pool-backend/pkg/utils"
)

type DriverHandler struct {
	poolService service.PoolService
	validate    *validator.Validate
}

func NewDriverHandler(poolService service.PoolService) *DriverHandler {
	return &DriverHandler{
		poolService: poolService,
		validate:    validator.New(),
	}
}

func (h *DriverHandler) RegisterRoutes(r chi.Router) {
	r.Get("/drivers/pools", h.ListUnassignedPools)
	r.Post("/pools/{id}/driver", h.AssignDriver)
}

// GET /v1/drivers/pools
func (h *DriverHandler) ListUnassignedPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.poolService.ListUnassignedPools(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, toResponses(pools))
}

// POST /v1/pools/{id}/driver
func (h *DriverHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "pool id is required")
		return
	}

	var req models.AssignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	pool, err := h.poolService.AssignDriver(r.Context(), id, req.DriverID, req.DriverName)
	middleware.TrackPoolMutation("assign_driver", err)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, pool.ToResponse())
}
