package clientele

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studiodesk/infras/otel"
	"studiodesk/internal/domains/client/model/dto"
	"studiodesk/internal/domains/client/service"
	"studiodesk/shared/constant"
	"studiodesk/shared/validator"
	"studiodesk/transport/http/response"
)

type Handler struct {
	service service.Client
	otel    otel.Otel
}

func New(service service.Client, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/clientele", func(routerGroup chi.Router) {
		routerGroup.Post("/create", handler.CreateClient)
		routerGroup.Post("/edit/{id}", handler.EditClient)
		routerGroup.Get("/find", handler.FindClients)
		routerGroup.Get("/view/{id}", handler.ViewClient)
		routerGroup.Post("/resolve", handler.ResolveClient)
	})
}

// CreateClient registers a client
// @Summary Create a client
// @Tags Clientele
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Create Client Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /clientele/create [post]
func (handler *Handler) CreateClient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClient")
	defer scope.End()

	req := dto.CreateClientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	clientID, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create client")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "New Client Successfully Created with Client_ID: "+clientID)
}

// EditClient replaces a client's profile and address
// @Summary Edit a client
// @Tags Clientele
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body dto.EditClientRequest true "Edit Client Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /clientele/edit/{id} [post]
func (handler *Handler) EditClient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditClient")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.EditClientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Edit(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("client_id", id).Msg("failed to edit client")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Client Successfully Updated")
}

// FindClients searches clients
// @Summary Find clients
// @Description Partial match on id, names and email; suffix match on phone. No filters returns an empty list.
// @Tags Clientele
// @Produce json
// @Param client_id query string false "Client ID contains"
// @Param first_name query string false "First name contains"
// @Param last_name query string false "Last name contains"
// @Param email query string false "Email contains"
// @Param phone query string false "Phone ends with"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Column to order by"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {array} dto.FoundClient
// @Failure 500 {object} response.Error
// @Router /clientele/find [get]
func (handler *Handler) FindClients(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindClients")
	defer scope.End()

	query := dto.FindClientQuery{}
	query.FromRequest(request)

	clients, err := handler.service.Find(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find clients")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, clients)
}

// ViewClient returns one client
// @Summary View a client
// @Tags Clientele
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /clientele/view/{id} [get]
func (handler *Handler) ViewClient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ViewClient")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	client, err := handler.service.View(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("client_id", id).Msg("failed to view client")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, client)
}

// ResolveClient finds a client by exact name or creates one
// @Summary Find or create a client by name
// @Tags Clientele
// @Accept json
// @Produce json
// @Param request body dto.ResolveClientRequest true "Resolve Client Request"
// @Success 200 {object} dto.ResolveClientResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /clientele/resolve [post]
func (handler *Handler) ResolveClient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveClient")
	defer scope.End()

	req := dto.ResolveClientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	clientID, err := handler.service.FindOrCreate(ctx, req.FirstName, req.LastName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve client")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.ResolveClientResponse{ClientID: clientID})
}
