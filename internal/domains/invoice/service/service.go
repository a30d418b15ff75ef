package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/infras/postgres"
	"studiodesk/infras/s3"
	clientService "studiodesk/internal/domains/client/service"
	idModel "studiodesk/internal/domains/identifier/model"
	idService "studiodesk/internal/domains/identifier/service"
	"studiodesk/internal/domains/invoice/document"
	"studiodesk/internal/domains/invoice/model"
	"studiodesk/internal/domains/invoice/model/dto"
	"studiodesk/internal/domains/invoice/repository"
	"studiodesk/internal/events"
	"studiodesk/shared"
	"studiodesk/shared/cache"
	"studiodesk/shared/constant"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
	"studiodesk/shared/metrics"
	gRepo "studiodesk/shared/repository"
	"studiodesk/shared/timezone"
)

const (
	cacheViewInvoice = "invoice:view"

	errClientOrBooking   = "must provide either client_id or booking_id!"
	errClientAndBooking  = "provide only one of client_id or booking_id"
	errClientNotFound    = "ERROR: Client_ID could not be found"
	errBookingNotFound   = "ERROR: Booking_ID could not be found"
	errInvoiceNotFound   = "invoice not found"
	errInvoiceClientGone = "invoice client not found"
)

type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (string, error)
	Edit(ctx context.Context, id string, req dto.EditInvoiceRequest) error
	View(ctx context.Context, id string) (dto.InvoiceAggregate, error)
	Find(ctx context.Context, query dto.FindInvoiceQuery) ([]dto.FoundInvoice, error)
	Delete(ctx context.Context, id string) error
	Print(ctx context.Context, id string) (dto.Document, error)
	Export(ctx context.Context, period dto.PeriodQuery) (dto.Document, error)
}

type serviceImpl struct {
	repo       repository.Invoice
	itemRepo   repository.Item
	transactor postgres.Transactor
	client     clientService.Client
	allocator  idService.Allocator
	events     events.Publisher
	storage    s3.S3
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Invoice,
	itemRepo repository.Item,
	transactor postgres.Transactor,
	client clientService.Client,
	allocator idService.Allocator,
	events events.Publisher,
	storage s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:       repo,
		itemRepo:   itemRepo,
		transactor: transactor,
		client:     client,
		allocator:  allocator,
		events:     events,
		storage:    storage,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create resolves the client, applies a complete billing address, then writes
// the header and every item in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	switch {
	case req.ClientID == "" && req.BookingID == "":
		return constant.Empty, failure.BadRequestFromString(errClientOrBooking) // nolint:wrapcheck
	case req.ClientID != "" && req.BookingID != "":
		return constant.Empty, failure.BadRequestFromString(errClientAndBooking) // nolint:wrapcheck
	}

	if req.ClientID != "" {
		exist, err := s.client.Exists(ctx, req.ClientID)
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to check if client exists: %w", err)
		}

		if !exist {
			return constant.Empty, failure.BadRequestFromString(errClientNotFound) // nolint:wrapcheck
		}
	}

	totals := dto.ComputeTotals(req.Items, req.AmountTax)
	address := req.ToAddress()

	var clientID string

	err = s.retryOnCollision(func() error {
		return s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			clientID = req.ClientID

			if req.BookingID != "" {
				derived, err := s.client.CreateFromBookingTx(ctx, tx, req.BookingID)
				if failure.Is(err, http.StatusNotFound) {
					return failure.BadRequestFromString(errBookingNotFound) // nolint:wrapcheck
				}

				if err != nil {
					return err
				}

				clientID = derived
			}

			if address.IsComplete() {
				if err := s.client.UpdateAddressTx(ctx, tx, clientID, address); err != nil {
					return err
				}
			}

			invoiceID, err := s.allocator.Generate(ctx)
			if err != nil {
				return err
			}

			if err := s.repo.InsertTx(ctx, tx, req.ToModel(invoiceID, clientID, totals)); err != nil {
				return err
			}

			id = invoiceID

			return s.insertItems(ctx, tx, invoiceID, req.Items)
		})
	})
	if err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return constant.Empty, err
		}

		log.Error().Err(err).Msg("failed to create invoice")

		return constant.Empty, fmt.Errorf("failed to create invoice: %w", err)
	}

	if address.IsComplete() {
		s.client.Forget(ctx, clientID)
	}

	metrics.IncInvoiceWrite(metrics.InvoiceOpCreate)
	s.events.Invoice(ctx, events.TypeInvoiceCreated, id, map[string]any{
		"client_id":    clientID,
		"amount_total": totals.Total,
	})

	return id, nil
}

// Edit rewrites the header and replaces all items. Nothing is kept from the
// previous item set.
func (s *serviceImpl) Edit(ctx context.Context, id string, req dto.EditInvoiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Edit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldClientID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if current.InvoiceID == "" {
		return failure.NotFound(errInvoiceNotFound) // nolint:wrapcheck
	}

	totals := dto.ComputeTotals(req.Items, req.AmountTax)
	address := req.ToAddress()
	itemsFilter := itemsOf(id)

	err = s.retryOnCollision(func() error {
		return s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			if address.IsComplete() {
				if err := s.client.UpdateAddressTx(ctx, tx, current.ClientID, address); err != nil {
					return err
				}
			}

			if err := s.repo.UpdateTx(ctx, tx, req.ToFields(totals), filter); err != nil {
				return err
			}

			if err := s.itemRepo.DeleteTx(ctx, tx, itemsFilter); err != nil {
				return err
			}

			return s.insertItems(ctx, tx, id, req.Items)
		})
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to edit invoice")

		return fmt.Errorf("failed to edit invoice: %w", err)
	}

	if address.IsComplete() {
		s.client.Forget(ctx, current.ClientID)
	}

	metrics.IncInvoiceWrite(metrics.InvoiceOpEdit)
	s.events.Invoice(ctx, events.TypeInvoiceUpdated, id, map[string]any{
		"amount_total":      totals.Total,
		"payment_completed": req.PaymentCompleted,
	})
	s.invalidate(ctx, id)

	return nil
}

// View reads the header and items through the cache. The client is always
// read through the client service, whose cache client edits clear.
func (s *serviceImpl) View(ctx context.Context, id string) (res dto.InvoiceAggregate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view, err := s.readInvoice(ctx, id)
	if err != nil {
		return res, err
	}

	client, err := s.client.View(ctx, view.Invoice.ClientID)
	if failure.Is(err, http.StatusNotFound) {
		return res, failure.NotFound(errInvoiceClientGone) // nolint:wrapcheck
	}

	if err != nil {
		return res, fmt.Errorf("failed to get invoice client: %w", err)
	}

	return dto.InvoiceAggregate{
		Invoice:      view.Invoice,
		InvoiceItems: view.InvoiceItems,
		Client:       client,
	}, nil
}

// cachedInvoice is the cached part of an invoice aggregate.
type cachedInvoice struct {
	Invoice      dto.InvoiceResponse `json:"invoice"`
	InvoiceItems []dto.ItemResponse  `json:"invoice_items"`
}

func (s *serviceImpl) readInvoice(ctx context.Context, id string) (res cachedInvoice, err error) {
	cacheKey := shared.BuildCacheKey(cacheViewInvoice, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for invoice")

		return res, nil
	}

	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.InvoiceID == "" {
		return res, failure.NotFound(errInvoiceNotFound) // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}, itemsOf(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice items")

		return res, fmt.Errorf("failed to get invoice items: %w", err)
	}

	res.Invoice.FromModel(invoice)
	res.InvoiceItems = dto.ItemsFromModels(items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice to cache")
		}
	}()

	return res, nil
}

// Find resolves a client by identity first when no client id is given. When
// identity filters match no client the result is empty.
func (s *serviceImpl) Find(ctx context.Context, query dto.FindInvoiceQuery) (res []dto.FoundInvoice, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Find")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clientID := query.ClientID

	if query.NeedsClientLookup() {
		clientID, err = s.client.FindFirstID(ctx, query.ClientQuery())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve invoice client: %w", err)
		}

		if clientID == "" {
			return []dto.FoundInvoice{}, nil
		}
	}

	filter, err := query.ToFilter(clientID)
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() {
		return []dto.FoundInvoice{}, nil
	}

	invoices, err := s.repo.GetAll(ctx, query.Paging.Or(gDto.QueryParams{SortBy: model.FieldInvoiceNumber, SortDir: gDto.SortDirAsc}), filter, model.FieldInvoiceNumber, model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find invoices")

		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}

	return dto.FoundInvoicesFromModels(invoices), nil
}

// Delete removes the items and then the header in one transaction.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if invoice exists")

		return fmt.Errorf("failed to check if invoice exists: %w", err)
	}

	if !exist {
		return failure.NotFound(errInvoiceNotFound) // nolint:wrapcheck
	}

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.itemRepo.DeleteTx(ctx, tx, itemsOf(id)); err != nil {
			return err
		}

		return s.repo.DeleteTx(ctx, tx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete invoice")

		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	metrics.IncInvoiceWrite(metrics.InvoiceOpDelete)
	s.events.Invoice(ctx, events.TypeInvoiceDeleted, id, nil)
	s.invalidate(ctx, id)

	return nil
}

// Print renders the invoice as a PDF in the client's timezone. When archiving
// is enabled the file is also uploaded; an upload failure does not fail the
// print.
func (s *serviceImpl) Print(ctx context.Context, id string) (res dto.Document, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Print")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	aggregate, err := s.View(ctx, id)
	if err != nil {
		return res, err
	}

	var tz string
	if aggregate.Client.Timezone != nil {
		tz = *aggregate.Client.Timezone
	}

	content, err := document.InvoicePDF(aggregate, timezone.ClientLocation(tz))
	if err != nil {
		log.Error().Err(err).Msg("failed to render invoice")

		return res, fmt.Errorf("failed to render invoice: %w", err)
	}

	res = dto.Document{
		FileName:    fmt.Sprintf("invoice-%d.pdf", aggregate.Invoice.InvoiceNumber),
		ContentType: constant.ContentTypePDF,
		Content:     content,
	}

	if s.cfg.External.S3.ArchiveInvoices {
		url, err := s.storage.UploadFileBytes(ctx, constant.Empty, s.cfg.External.S3.InvoiceDirectory, id+".pdf", res.ContentType, content)
		if err != nil {
			log.Error().Err(err).Str("invoice", id).Msg("failed to archive invoice pdf")
		}

		res.ArchiveURL = url
	}

	return res, nil
}

func (s *serviceImpl) Export(ctx context.Context, period dto.PeriodQuery) (res dto.Document, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := period.Filters()
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.FieldInvoiceNumber, SortDir: gDto.SortDirAsc}

	invoices, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list invoices for export")

		return res, fmt.Errorf("failed to list invoices for export: %w", err)
	}

	content, err := document.Ledger(invoices)
	if err != nil {
		log.Error().Err(err).Msg("failed to build invoice ledger")

		return res, fmt.Errorf("failed to build invoice ledger: %w", err)
	}

	name := "invoices"
	if period.Year != "" {
		name += "-" + period.Year
		if period.Month != "" {
			name += "-" + period.Month
		}
	}

	return dto.Document{
		FileName:    name + ".xlsx",
		ContentType: constant.ContentTypeXLSX,
		Content:     content,
	}, nil
}

// insertItems gives every item its own identifier. Ids already handed out in
// this call are skipped since the allocator cannot see uncommitted rows.
func (s *serviceImpl) insertItems(ctx context.Context, tx *sqlx.Tx, invoiceID string, items []dto.ItemRequest) error {
	used := map[string]struct{}{invoiceID: {}}

	for _, item := range items {
		itemID, err := s.distinctID(ctx, used)
		if err != nil {
			return err
		}

		if err := s.itemRepo.InsertTx(ctx, tx, dto.ItemToModel(item, invoiceID, itemID)); err != nil {
			return err
		}
	}

	return nil
}

func (s *serviceImpl) distinctID(ctx context.Context, used map[string]struct{}) (string, error) {
	for range idModel.MaxSamples {
		id, err := s.allocator.Generate(ctx)
		if err != nil {
			return constant.Empty, err
		}

		if _, taken := used[id]; !taken {
			used[id] = struct{}{}

			return id, nil
		}
	}

	return constant.Empty, idService.ErrExhausted
}

// retryOnCollision reruns a whole transaction when an allocated identifier
// lost the race to a concurrent insert. A failed statement aborts a postgres
// transaction, so the retry cannot happen inside it.
func (s *serviceImpl) retryOnCollision(run func() error) error {
	var err error

	for attempt := 1; attempt <= idModel.MaxInsertAttempts; attempt++ {
		err = run()
		if err == nil || !gRepo.IsPrimaryKeyViolation(err) {
			return err
		}

		log.Warn().Int("attempt", attempt).Msg("identifier collided inside invoice transaction, retrying")
	}

	return err
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheViewInvoice, id))
}

func itemsOf(invoiceID string) gDto.FilterGroup {
	return shared.FilterByID(invoiceID, model.ItemFieldInvoiceID, model.ItemTableName)
}
