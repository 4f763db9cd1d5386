package api

import (
	"errors"
	"net/http"

	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/infra"
	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityQueries: availabilityQueries}
}

// @Summary Check availability
// @Description Per-night availability, rates and minimum stay for a date window; served from a short-lived cache
// @Tags availability
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /properties/{id}/availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid property ID format",
		})
		return
	}

	checkIn, err := dates.Parse(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "check_in must use the YYYY-MM-DD format",
		})
		return
	}

	checkOut, err := dates.Parse(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "check_out must use the YYYY-MM-DD format",
		})
		return
	}

	view, err := h.availabilityQueries.Check(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDateRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "check_out must be after check_in",
			})
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
