package gallery_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMock "studiodesk/infras/otel/mocks"
	"studiodesk/internal/domains/gallery/model/dto"
	"studiodesk/internal/domains/gallery/service/mocks"
	"studiodesk/internal/handlers/gallery"
	"studiodesk/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockGallery) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGallery(ctrl)

	handler := gallery.New(svc, otelMock.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestGetCategories(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Categories(gomock.Any()).Return([]string{"aerial", "living_rooms"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getPhotoCategories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["aerial","living_rooms"]`, rec.Body.String())
}

func TestGetCategoryPhotos(t *testing.T) {
	t.Run("file names", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().PhotoNames(gomock.Any(), "aerial").Return([]string{"a.jpg", "b.jpg"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/aerial", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["a.jpg","b.jpg"]`, rec.Body.String())
	})

	t.Run("unknown category", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().PhotoNames(gomock.Any(), "nope").Return(nil, failure.NotFound("category not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGalleryRoutes(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().LabeledCategories(gomock.Any()).Return([]dto.Category{{Value: "living_rooms", Label: "Living Rooms"}}, nil)
	svc.EXPECT().Photos(gomock.Any(), "aerial").Return([]dto.Photo{{Name: "a.jpg", URL: "https://cdn.example.com/hdr_images/aerial/high/a.jpg"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"value":"living_rooms","label":"Living Rooms"}]`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery/aerial", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"a.jpg","url":"https://cdn.example.com/hdr_images/aerial/high/a.jpg"}]`, rec.Body.String())
}
