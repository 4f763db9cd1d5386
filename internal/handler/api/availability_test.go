//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"staybook/internal/handler/api"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/infra"
	"staybook/internal/usecase/queries"
	"staybook/tests/common/httptest"
	queriesmock "staybook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	// public endpoint, no auth middleware
	s.router.GET("/properties/:id/availability", s.handler.CheckAvailability)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestCheckAvailability() {
	propertyID := uuid.New()
	url := "/properties/" + propertyID.String() + "/availability"
	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	s.Run("success: returns the availability window", func() {
		view := &queries.AvailabilityView{
			PropertyID:      propertyID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			AvailableNights: []string{"2025-03-10", "2025-03-12"},
			BlockedNights:   []string{"2025-03-11"},
			NightlyRates:    map[string]int64{"2025-03-10": 15000, "2025-03-11": 15000, "2025-03-12": 17500},
			MinStayNights:   2,
		}
		s.mockQueries.EXPECT().Check(gomock.Any(), propertyID, checkIn, checkOut).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?check_in=2025-03-10&check_out=2025-03-13", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"2025-03-11"}, body.BlockedNights)
		s.Equal(int64(17500), body.NightlyRates["2025-03-12"])
		s.Equal(2, body.MinStayNights)
	})

	s.Run("error: 400 on a malformed property id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/properties/not-a-uuid/availability?check_in=2025-03-10&check_out=2025-03-13", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 on missing or malformed dates", func() {
		for _, qs := range []string{
			"",
			"?check_in=2025-03-10",
			"?check_in=10-03-2025&check_out=2025-03-13",
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+qs, nil, "")
			s.Equal(http.StatusBadRequest, rec.Code)
		}
	})

	s.Run("error: 422 on a reversed range", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), propertyID, checkOut, checkIn).
			Return(nil, queries.ErrInvalidDateRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?check_in=2025-03-13&check_out=2025-03-10", nil, "")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("error: 404 when the property does not exist", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), propertyID, checkIn, checkOut).
			Return(nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?check_in=2025-03-10&check_out=2025-03-13", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Property not found")
	})
}
