package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMock "studiodesk/infras/otel/mocks"
	"studiodesk/internal/domains/booking/model/dto"
	"studiodesk/internal/domains/booking/service/mocks"
	"studiodesk/internal/handlers/booking"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBooking(ctrl)

	handler := booking.New(svc, otelMock.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *mocks.MockBooking)
		wantCode int
		wantBody string
	}{
		{
			name: "created",
			body: `{"first_name":"Ada","last_name":"Lovelace","categories":[{"value":"aerial","label":"Aerial"}],"turnstile_token":"tok"}`,
			setup: func(svc *mocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), "8.8.8.8").
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest, _ string) (string, error) {
						assert.Equal(t, "tok", req.TurnstileToken)
						assert.Equal(t, "aerial", req.Categories[0].Value)

						return "BK0001", nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: "Booking request received",
		},
		{
			name:     "missing name",
			body:     `{"last_name":"Lovelace"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "bot rejected",
			body: `{"first_name":"Ada","last_name":"Lovelace","turnstile_token":"bad"}`,
			setup: func(svc *mocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", failure.Unauthorized("bot verification failed", "invalid-input-response"))
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid-input-response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/booking/create", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyClientIP, "8.8.8.8"))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestFindBookings_PassesQuery(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Find(gomock.Any(), dto.FindBookingQuery{LastName: "Love", Year: "2025", Month: "3"}).
		Return([]dto.FoundBooking{{BookingNumber: 7, BookingID: "BK0001"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking/find?last_name=Love&year=2025&month=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"booking_number":7,"booking_id":"BK0001"}]`, rec.Body.String())
}

func TestFindBookings_Paging(t *testing.T) {
	router, svc := newRouter(t)

	want := dto.FindBookingQuery{
		Email:  "ada@",
		Paging: gDto.QueryParams{Page: 2, Limit: 5, SortBy: "created_at", SortDir: gDto.SortDirDesc},
	}
	svc.EXPECT().Find(gomock.Any(), want).Return([]dto.FoundBooking{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking/find?email=ada@&page=2&limit=5&sort_by=created_at&sort_dir=desc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestViewBooking_NotFound(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().View(gomock.Any(), "NOPE01").Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking/view/NOPE01", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"booking not found"}`, rec.Body.String())
}

func TestChangeCompletion(t *testing.T) {
	t.Run("requires the flag", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/booking/change_completion/BK0001", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sets false explicitly", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().ChangeCompletion(gomock.Any(), "BK0001", false).Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/booking/change_completion/BK0001", strings.NewReader(`{"completed":false}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetPending_BothMethods(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			router, svc := newRouter(t)

			svc.EXPECT().ListPending(gomock.Any()).Return([]dto.BookingResponse{}, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, "/booking/get_pending", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())
		})
	}
}
