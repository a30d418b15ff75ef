package invoicing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studiodesk/infras/otel"
	"studiodesk/internal/domains/invoice/model/dto"
	"studiodesk/internal/domains/invoice/service"
	"studiodesk/shared/constant"
	"studiodesk/shared/validator"
	"studiodesk/transport/http/response"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoicing", func(routerGroup chi.Router) {
		routerGroup.Post("/create", handler.CreateInvoice)
		routerGroup.Post("/edit/{id}", handler.EditInvoice)
		routerGroup.Get("/find", handler.FindInvoices)
		routerGroup.Get("/view/{id}", handler.ViewInvoice)
		routerGroup.Post("/delete/{id}", handler.DeleteInvoice)
		routerGroup.Get("/print/{id}", handler.PrintInvoice)
		routerGroup.Get("/export", handler.ExportInvoices)
	})
}

// CreateInvoice handles invoice creation
// @Summary Create an invoice
// @Description Exactly one of client_id or booking_id is required. A booking derives its client.
// @Tags Invoicing
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Create Invoice Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/create [post]
func (handler *Handler) CreateInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.CreateInvoiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	invoiceID, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Invoice " + invoiceID + " created by " + user)

	response.WithMessage(writer, http.StatusCreated, "New Invoice Successfully Created")
}

// EditInvoice replaces an invoice and its line items
// @Summary Edit an invoice
// @Tags Invoicing
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.EditInvoiceRequest true "Edit Invoice Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/edit/{id} [post]
func (handler *Handler) EditInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.EditInvoiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Edit(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to edit invoice")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Invoice Successfully Updated")
}

// FindInvoices searches invoices
// @Summary Find invoices
// @Description Client identity filters resolve a client first. No filters returns an empty list.
// @Tags Invoicing
// @Produce json
// @Param client_id query string false "Client ID"
// @Param client_first_name query string false "Client first name contains"
// @Param client_last_name query string false "Client last name contains"
// @Param email query string false "Client email contains"
// @Param phone query string false "Client phone ends with"
// @Param invoice_number query int false "Invoice number"
// @Param invoice_id query string false "Invoice ID"
// @Param year query int false "Creation year"
// @Param month query int false "Creation month, needs year"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size"
// @Param sort_by query string false "Column to order by"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {array} dto.FoundInvoice
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/find [get]
func (handler *Handler) FindInvoices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FindInvoices")
	defer scope.End()

	query := dto.FindInvoiceQuery{}
	query.FromRequest(request)

	invoices, err := handler.service.Find(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find invoices")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, invoices)
}

// ViewInvoice returns an invoice with its items and client
// @Summary View an invoice
// @Tags Invoicing
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceAggregate
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/view/{id} [get]
func (handler *Handler) ViewInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ViewInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	invoice, err := handler.service.View(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to view invoice")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, invoice)
}

// DeleteInvoice removes an invoice and its items
// @Summary Delete an invoice
// @Tags Invoicing
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/delete/{id} [post]
func (handler *Handler) DeleteInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to delete invoice")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Invoice Successfully Deleted")
}

// PrintInvoice renders an invoice as PDF
// @Summary Print an invoice
// @Tags Invoicing
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/print/{id} [get]
func (handler *Handler) PrintInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PrintInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	doc, err := handler.service.Print(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to print invoice")

		response.WithError(writer, err)

		return
	}

	response.WithFile(writer, doc.FileName, doc.ContentType, doc.Content)
}

// ExportInvoices builds a spreadsheet ledger
// @Summary Export invoices
// @Tags Invoicing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Creation year"
// @Param month query int false "Creation month, needs year"
// @Success 200 {file} file
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /invoicing/export [get]
func (handler *Handler) ExportInvoices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportInvoices")
	defer scope.End()

	period := dto.PeriodQuery{
		Year:  request.URL.Query().Get("year"),
		Month: request.URL.Query().Get("month"),
	}

	doc, err := handler.service.Export(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export invoices")

		response.WithError(writer, err)

		return
	}

	response.WithFile(writer, doc.FileName, doc.ContentType, doc.Content)
}
