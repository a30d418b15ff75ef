package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studiodesk/infras/otel"
	"studiodesk/internal/domains/booking/model/dto"
	"studiodesk/internal/domains/booking/service"
	"studiodesk/shared/constant"
	"studiodesk/shared/validator"
	"studiodesk/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking", func(routerGroup chi.Router) {
		routerGroup.Post("/create", handler.CreateBooking)
		routerGroup.Get("/find", handler.FindBookings)
		routerGroup.Get("/view/{id}", handler.ViewBooking)
		routerGroup.Post("/change_completion/{id}", handler.ChangeCompletion)
		routerGroup.Get("/get_pending", handler.GetPending)
		routerGroup.Post("/get_pending", handler.GetPending)
	})
}

// CreateBooking handles the public booking form
// @Summary Submit a booking request
// @Description Verify the bot token and store a new booking request.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Message "Booking request received"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /booking/create [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	remoteIP, _ := ctx.Value(constant.ContextKeyClientIP).(string)

	bookingID, err := handler.service.Create(ctx, req, remoteIP)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking request created " + bookingID)

	response.WithMessage(writer, http.StatusCreated, "Booking request received")
}

// FindBookings searches booking requests
// @Summary Find booking requests
// @Description Search by name, contact, number, id and creation period. No filters returns an empty list.
// @Tags Booking
// @Produce json
// @Param first_name query string false "First name contains"
// @Param last_name query string false "Last name contains"
// @Param email query string false "Email contains"
// @Param phone query string false "Phone ends with"
// @Param booking_number query int false "Booking number"
// @Param booking_id query string false "Booking ID"
// @Param year query int false "Creation year"
// @Param month query int false "Creation month, needs year"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Column to order by"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {array} dto.FoundBooking
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /booking/find [get]
func (handler *Handler) FindBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindBookings")
	defer scope.End()

	query := dto.FindBookingQuery{}
	query.FromRequest(request)

	bookings, err := handler.service.Find(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// ViewBooking returns one booking request
// @Summary View a booking request
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /booking/view/{id} [get]
func (handler *Handler) ViewBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ViewBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.View(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to view booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// ChangeCompletion sets the completed flag
// @Summary Mark a booking request completed or pending
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ChangeCompletionRequest true "Completion"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /booking/change_completion/{id} [post]
func (handler *Handler) ChangeCompletion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeCompletion")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.ChangeCompletionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.ChangeCompletion(ctx, id, *req.Completed); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to change booking completion")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking Successfully Updated")
}

// GetPending lists open booking requests
// @Summary List pending booking requests
// @Tags Booking
// @Produce json
// @Success 200 {array} dto.BookingResponse
// @Failure 500 {object} response.Error
// @Router /booking/get_pending [get]
func (handler *Handler) GetPending(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPending")
	defer scope.End()

	bookings, err := handler.service.ListPending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list pending bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}
