package api

import (
	"errors"
	"net/http"

	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/handler/middleware"
	"staybook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CalendarHandler struct {
	calendarCommands commands.CalendarCommands
}

func NewCalendarHandler(calendarCommands commands.CalendarCommands) *CalendarHandler {
	return &CalendarHandler{calendarCommands: calendarCommands}
}

// @Summary Apply calendar overrides
// @Description Upsert per-day availability, rate adjustments and minimum-stay overrides for a property
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.ApplyOverridesRequest true "Day overrides"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /properties/{id}/calendar [put]
func (h *CalendarHandler) ApplyOverrides(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid property ID format",
		})
		return
	}

	var req reqdto.ApplyOverridesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	inputs, err := req.ToInputs()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use the YYYY-MM-DD format",
		})
		return
	}

	if err := h.calendarCommands.ApplyOverrides(c.Request.Context(), principal, propertyID, inputs); err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Property not found",
			})
		case errors.Is(err, commands.ErrNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the property host may edit its calendar",
			})
		case errors.Is(err, commands.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Calendar override validation failed",
			})
		case errors.Is(err, commands.ErrTransientStore):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Temporary storage conflict, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
