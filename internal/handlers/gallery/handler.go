package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studiodesk/infras/otel"
	"studiodesk/internal/domains/gallery/model/dto"
	"studiodesk/internal/domains/gallery/service"
	"studiodesk/shared/constant"
	"studiodesk/transport/http/response"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/getPhotoCategories", handler.GetCategories)
	router.Get("/category/{category}", handler.GetCategoryPhotos)

	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/categories", handler.GetLabeledCategories)
		routerGroup.Get("/{category}", handler.GetPhotos)
	})
}

// GetCategories lists category names
// @Summary List photo categories
// @Tags Gallery
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} response.Error
// @Router /getPhotoCategories [get]
func (handler *Handler) GetCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	categories, err := handler.service.Categories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list photo categories")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, categories)
}

// GetCategoryPhotos lists the file names of a category in random order
// @Summary List photos of a category
// @Tags Gallery
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} string
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /category/{category} [get]
func (handler *Handler) GetCategoryPhotos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryPhotos")
	defer scope.End()

	category := chi.URLParam(request, constant.RequestParamCategory)

	names, err := handler.service.PhotoNames(ctx, category)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("category", category).Msg("failed to list category photos")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, names)
}

// GetLabeledCategories lists categories with display labels
// @Summary List photo categories with labels
// @Tags Gallery
// @Produce json
// @Success 200 {array} dto.Category
// @Failure 500 {object} response.Error
// @Router /gallery/categories [get]
func (handler *Handler) GetLabeledCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabeledCategories")
	defer scope.End()

	var (
		categories []dto.Category
		err        error
	)

	categories, err = handler.service.LabeledCategories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list photo categories")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, categories)
}

// GetPhotos lists the public URLs of a category in random order
// @Summary List photo URLs of a category
// @Tags Gallery
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} dto.Photo
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /gallery/{category} [get]
func (handler *Handler) GetPhotos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotos")
	defer scope.End()

	category := chi.URLParam(request, constant.RequestParamCategory)

	var (
		photos []dto.Photo
		err    error
	)

	photos, err = handler.service.Photos(ctx, category)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("category", category).Msg("failed to list category photos")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, photos)
}
