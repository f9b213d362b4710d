package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finbooks/backend/internal/domain/org"
	"github.com/finbooks/backend/internal/interfaces/http/dto"
)

// UnitHandler handles business unit API endpoints
type UnitHandler struct {
	BaseHandler
	unitRepo org.UnitRepository
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitRepo org.UnitRepository) *UnitHandler {
	return &UnitHandler{
		unitRepo: unitRepo,
	}
}

// RegisterRoutes registers all unit routes
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUnitResponse(u *org.Unit) UnitResponse {
	return UnitResponse{
		ID:        u.ID,
		Code:      u.Code,
		Name:      u.Name,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// List returns all units
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.unitRepo.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = toUnitResponse(&units[i])
	}

	h.Success(c, responses)
}

// GetByID returns a single unit by its ID
func (h *UnitHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "id: Invalid UUID format")
		return
	}

	unitID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "id: Invalid UUID format")
		return
	}

	unit, err := h.unitRepo.FindByID(c.Request.Context(), unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(unit))
}
