//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"staybook/internal/domain/auth"
	"staybook/internal/handler/api"
	"staybook/internal/usecase/commands"
	"staybook/tests/common/httptest"
	"staybook/tests/common/testutil"
	commandsmock "staybook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CalendarHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCalendarCommands
	handler      *api.CalendarHandler
	principal    auth.Principal
}

func (s *CalendarHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCalendarCommands(s.mockCtrl)
	s.handler = api.NewCalendarHandler(s.mockCommands)
	s.principal = auth.Principal{UserID: uuid.New(), Role: auth.RoleHost}

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("principal", s.principal)
		c.Next()
	}

	s.router.PUT("/properties/:id/calendar", authMiddleware, s.handler.ApplyOverrides)
}

func (s *CalendarHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCalendarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CalendarHandlerTestSuite))
}

func (s *CalendarHandlerTestSuite) TestApplyOverrides() {
	propertyID := uuid.New()
	url := "/properties/" + propertyID.String() + "/calendar"

	reqBody := map[string]any{
		"overrides": []map[string]any{
			{"date": "2025-03-10", "available": false},
			{"date": "2025-03-11", "available": true, "adjustment_cents": 2500, "min_stay_nights": 2},
		},
	}

	s.Run("success: returns 204 and forwards the parsed overrides", func() {
		s.mockCommands.EXPECT().ApplyOverrides(gomock.Any(), s.principal, propertyID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, _ uuid.UUID, inputs []commands.OverrideInput) error {
				s.Require().Len(inputs, 2)
				s.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), inputs[0].Date)
				s.False(inputs[0].Available)
				s.Equal(int64(2500), inputs[1].AdjustmentCents)
				s.Equal(2, inputs[1].MinStayNights)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on an empty override list", func() {
		payload := testutil.DtoMap(s.T(), reqBody, testutil.Field("overrides", []map[string]any{}))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, payload, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 on a malformed date", func() {
		payload := map[string]any{
			"overrides": []map[string]any{{"date": "March 10th", "available": false}},
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, payload, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	commandErrors := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "property not found", err: commands.ErrPropertyNotFound, expectCode: http.StatusNotFound},
		{name: "not the property host", err: commands.ErrNotAllowed, expectCode: http.StatusForbidden},
		{name: "invalid override", err: commands.ErrValidation, expectCode: http.StatusUnprocessableEntity},
		{name: "serialization retries exhausted", err: commands.ErrTransientStore, expectCode: http.StatusServiceUnavailable},
	}

	for _, tc := range commandErrors {
		s.Run("error mapping: "+tc.name, func() {
			s.mockCommands.EXPECT().ApplyOverrides(gomock.Any(), s.principal, propertyID, gomock.Any()).
				Return(tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}
