package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studiodesk/config"
	"studiodesk/infras/otel/mocks"
	pgMocks "studiodesk/infras/postgres/mocks"
	s3Mocks "studiodesk/infras/s3/mocks"
	clientDto "studiodesk/internal/domains/client/model/dto"
	clientMocks "studiodesk/internal/domains/client/service/mocks"
	idMocks "studiodesk/internal/domains/identifier/service/mocks"
	invoiceMocks "studiodesk/internal/domains/invoice/mocks"
	"studiodesk/internal/domains/invoice/model"
	"studiodesk/internal/domains/invoice/model/dto"
	"studiodesk/internal/domains/invoice/service"
	eventMocks "studiodesk/internal/events/mocks"
	"studiodesk/shared/cache"
	cacheMocks "studiodesk/shared/cache/mocks"
	gDto "studiodesk/shared/dto"
	"studiodesk/shared/failure"
)

// itemStore is an in-memory item table keyed by invoice id.
type itemStore struct {
	rows map[string][]model.Item
}

func (s *itemStore) InsertTx(_ context.Context, _ *sqlx.Tx, item model.Item) error {
	s.rows[item.InvoiceID] = append(s.rows[item.InvoiceID], item)

	return nil
}

func (s *itemStore) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Item, error) {
	return s.rows[invoiceIDOf(filter)], nil
}

func (s *itemStore) DeleteTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
	delete(s.rows, invoiceIDOf(filter))

	return nil
}

func invoiceIDOf(filter gDto.FilterGroup) string {
	f, _ := filter.Filters[0].(gDto.Filter)
	id, _ := f.Value.(string)

	return id
}

type fixture struct {
	repo       *invoiceMocks.MockInvoice
	items      *itemStore
	transactor *pgMocks.MockTransactor
	client     *clientMocks.MockClient
	allocator  *idMocks.MockAllocator
	events     *eventMocks.MockPublisher
	storage    *s3Mocks.MockS3
	cache      *cacheMocks.MockRedisCache
	cfg        *config.Config
	recorder   *mocks.Recorder
	svc        service.Invoice
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:       invoiceMocks.NewMockInvoice(ctrl),
		items:      &itemStore{rows: map[string][]model.Item{}},
		transactor: pgMocks.NewMockTransactor(ctrl),
		client:     clientMocks.NewMockClient(ctrl),
		allocator:  idMocks.NewMockAllocator(ctrl),
		events:     eventMocks.NewMockPublisher(ctrl),
		storage:    s3Mocks.NewMockS3(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		cfg:        &config.Config{},
		recorder:   mocks.NewOtel(),
	}
	f.cfg.Cache.TTL = 300
	f.cfg.External.S3.InvoiceDirectory = "invoices"

	f.svc = service.New(f.repo, f.items, f.transactor, f.client, f.allocator, f.events, f.storage, f.cfg, f.cache, f.recorder)

	f.transactor.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.events.EXPECT().Invoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return f
}

// sequentialIDs makes the allocator hand out ID001, ID002, ...
func (f *fixture) sequentialIDs() {
	next := 0

	f.allocator.EXPECT().Generate(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
		next++

		return fmt.Sprintf("ID%03d", next), nil
	}).AnyTimes()
}

func items(pairs ...any) []dto.ItemRequest {
	res := []dto.ItemRequest{}
	for i := 0; i < len(pairs); i += 3 {
		res = append(res, dto.ItemRequest{
			Description: pairs[i].(string),
			Quantity:    pairs[i+1].(int),
			UnitPrice:   decimal.RequireFromString(pairs[i+2].(string)),
		})
	}

	return res
}

func str(value string) *string {
	return &value
}

func TestInvoiceService_Create(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("requires a client or a booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{DueDate: due})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
		assert.EqualError(t, err, "must provide either client_id or booking_id!")
		assert.Equal(t, []error{err}, f.recorder.Traced())
	})

	t.Run("rejects both a client and a booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{ClientID: "CLI001", BookingID: "BKG001", DueDate: due})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("unknown client", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().Exists(gomock.Any(), "CLI404").Return(false, nil)

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{ClientID: "CLI404", DueDate: due})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
		assert.EqualError(t, err, "ERROR: Client_ID could not be found")
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().CreateFromBookingTx(gomock.Any(), gomock.Any(), "BKG404").Return("", failure.NotFound("booking not found"))

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{BookingID: "BKG404", DueDate: due})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
		assert.EqualError(t, err, "ERROR: Booking_ID could not be found")
	})

	t.Run("from booking with full address", func(t *testing.T) {
		f := newFixture(t)
		f.sequentialIDs()

		gomock.InOrder(
			f.client.EXPECT().CreateFromBookingTx(gomock.Any(), gomock.Any(), "BKG001").Return("CLI001", nil),
			f.client.EXPECT().UpdateAddressTx(gomock.Any(), gomock.Any(), "CLI001", clientDto.Address{
				Street: "1 Main St", City: "Reno", State: "NV", Zip: "89501", Country: "US",
			}).Return(nil),
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ *sqlx.Tx, inv model.Invoice) error {
					assert.Equal(t, "ID001", inv.InvoiceID)
					assert.Equal(t, "CLI001", inv.ClientID)
					assert.Equal(t, "BKG001", *inv.BookingID)
					assert.Equal(t, "23.01", inv.AmountSubtotal.String())
					assert.True(t, inv.AmountTax.IsZero())

					return nil
				}),
			f.client.EXPECT().Forget(gomock.Any(), "CLI001"),
		)

		id, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{
			BookingID: "BKG001",
			Items:     items("shoot", 2, "10.005", "drone", 1, "3"),
			DueDate:   due,
			BillingAddress: dto.BillingAddress{
				AddressStreet:  str("1 Main St"),
				AddressCity:    str("Reno"),
				AddressState:   &dto.SelectOption{Value: "NV", Label: "Nevada"},
				AddressZip:     str("89501"),
				AddressCountry: dto.SelectOption{Value: "US", Label: "United States"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "ID001", id)
		require.Len(t, f.items.rows["ID001"], 2)
		assert.Equal(t, "ID002", f.items.rows["ID001"][0].InvoiceItemID)
		assert.Equal(t, "ID003", f.items.rows["ID001"][1].InvoiceItemID)
	})

	t.Run("partial address is not applied", func(t *testing.T) {
		f := newFixture(t)
		f.sequentialIDs()
		f.client.EXPECT().Exists(gomock.Any(), "CLI001").Return(true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{
			ClientID:       "CLI001",
			DueDate:        due,
			BillingAddress: dto.BillingAddress{AddressStreet: str("1 Main St"), AddressCountry: dto.SelectOption{Value: "US"}},
		})

		require.NoError(t, err)
	})

	t.Run("identifier collision reruns the transaction", func(t *testing.T) {
		f := newFixture(t)
		f.sequentialIDs()
		f.client.EXPECT().Exists(gomock.Any(), "CLI001").Return(true, nil)

		gomock.InOrder(
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(fmt.Errorf("failed to insert data (invoice): %w", &pq.Error{Code: "23505", Constraint: "invoices_pkey"})),
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		id, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{ClientID: "CLI001", DueDate: due})

		require.NoError(t, err)
		assert.Equal(t, "ID002", id)
	})

	t.Run("item failure fails the whole invoice", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().Exists(gomock.Any(), "CLI001").Return(true, nil)
		f.allocator.EXPECT().Generate(gomock.Any()).Return("", errors.New("database down")).Times(1)

		_, err := f.svc.Create(context.Background(), dto.CreateInvoiceRequest{ClientID: "CLI001", DueDate: due})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestInvoiceService_Edit(t *testing.T) {
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldClientID).Return(model.Invoice{}, nil)

		err := f.svc.Edit(context.Background(), "INV404", dto.EditInvoiceRequest{DueDate: due})

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})

	t.Run("replaces every item and clears paid_at when unpaid", func(t *testing.T) {
		f := newFixture(t)
		f.sequentialIDs()
		f.items.rows["INV001"] = []model.Item{
			{InvoiceItemID: "OLD00A", InvoiceID: "INV001", Description: "A"},
			{InvoiceItemID: "OLD00B", InvoiceID: "INV001", Description: "B"},
		}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldClientID).
			Return(model.Invoice{InvoiceID: "INV001", ClientID: "CLI001"}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Nil(t, fields[model.FieldPaidAt])
				assert.Equal(t, false, fields[model.FieldPaymentCompleted])
				assert.Equal(t, "35", fields[model.FieldAmountSubtotal].(decimal.Decimal).String())

				return nil
			})

		err := f.svc.Edit(context.Background(), "INV001", dto.EditInvoiceRequest{
			Items:            items("C", 1, "20", "D", 3, "5"),
			DueDate:          due,
			PaymentCompleted: false,
			PaidAt:           &paidAt,
		})

		require.NoError(t, err)

		descriptions := []string{}
		for _, item := range f.items.rows["INV001"] {
			descriptions = append(descriptions, item.Description)
		}

		assert.Equal(t, []string{"C", "D"}, descriptions)
	})

	t.Run("keeps paid_at when paid and updates the invoice client address", func(t *testing.T) {
		f := newFixture(t)
		f.sequentialIDs()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Invoice{InvoiceID: "INV001", ClientID: "CLI001"}, nil)
		f.client.EXPECT().UpdateAddressTx(gomock.Any(), gomock.Any(), "CLI001", gomock.Any()).Return(nil)
		f.client.EXPECT().Forget(gomock.Any(), "CLI001")
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &paidAt, fields[model.FieldPaidAt])

				return nil
			})

		err := f.svc.Edit(context.Background(), "INV001", dto.EditInvoiceRequest{
			DueDate:          due,
			PaymentCompleted: true,
			PaidAt:           &paidAt,
			BillingAddress: dto.BillingAddress{
				AddressStreet:  str("1 Main St"),
				AddressCity:    str("Reno"),
				AddressState:   &dto.SelectOption{Value: "NV"},
				AddressZip:     str("89501"),
				AddressCountry: dto.SelectOption{Value: "US"},
			},
		})

		require.NoError(t, err)
	})
}

func TestInvoiceService_View(t *testing.T) {
	t.Run("aggregates header items and client", func(t *testing.T) {
		f := newFixture(t)
		f.items.rows["INV001"] = []model.Item{{InvoiceItemID: "ITM001", InvoiceID: "INV001", Description: "shoot", Quantity: 1}}

		f.cache.EXPECT().Get(gomock.Any(), "invoice:view:INV001", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{InvoiceID: "INV001", ClientID: "CLI001", InvoiceNumber: 7}, nil)
		f.client.EXPECT().View(gomock.Any(), "CLI001").Return(clientDto.ClientResponse{ClientID: "CLI001", FirstName: "Ada"}, nil)

		res, err := f.svc.View(context.Background(), "INV001")

		require.NoError(t, err)
		assert.Equal(t, int64(7), res.Invoice.InvoiceNumber)
		assert.Len(t, res.InvoiceItems, 1)
		assert.Equal(t, "Ada", res.Client.FirstName)
	})

	t.Run("missing invoice", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		_, err := f.svc.View(context.Background(), "INV404")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})

	t.Run("missing client", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{InvoiceID: "INV001", ClientID: "CLI404"}, nil)
		f.client.EXPECT().View(gomock.Any(), "CLI404").Return(clientDto.ClientResponse{}, failure.NotFound("client not found"))

		_, err := f.svc.View(context.Background(), "INV001")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}

func TestInvoiceService_ViewAfterClientEdit(t *testing.T) {
	ctrl := gomock.NewController(t)

	server := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	repo := invoiceMocks.NewMockInvoice(ctrl)
	client := clientMocks.NewMockClient(ctrl)
	store := &itemStore{rows: map[string][]model.Item{
		"INV001": {{InvoiceItemID: "ITM001", InvoiceID: "INV001", Description: "shoot", Quantity: 1}},
	}}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	svc := service.New(repo, store, pgMocks.NewMockTransactor(ctrl), client, idMocks.NewMockAllocator(ctrl),
		eventMocks.NewMockPublisher(ctrl), s3Mocks.NewMockS3(ctrl), cfg, cache.NewRedisCache(redisClient, mocks.NewOtel()), mocks.NewOtel())

	// the header is read once; the second view is served from the cache
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{InvoiceID: "INV001", ClientID: "CLI001", InvoiceNumber: 7}, nil)

	gomock.InOrder(
		client.EXPECT().View(gomock.Any(), "CLI001").Return(clientDto.ClientResponse{ClientID: "CLI001", AddressCity: str("Reno")}, nil),
		client.EXPECT().View(gomock.Any(), "CLI001").Return(clientDto.ClientResponse{ClientID: "CLI001", AddressCity: str("Boise")}, nil),
	)

	first, err := svc.View(context.Background(), "INV001")
	require.NoError(t, err)
	assert.Equal(t, "Reno", *first.Client.AddressCity)

	require.Eventually(t, func() bool { return server.Exists("invoice:view:INV001") }, time.Second, 10*time.Millisecond)

	second, err := svc.View(context.Background(), "INV001")
	require.NoError(t, err)
	assert.Equal(t, "Boise", *second.Client.AddressCity)
	assert.Equal(t, int64(7), second.Invoice.InvoiceNumber)
	assert.Len(t, second.InvoiceItems, 1)
}

func TestInvoiceService_Find(t *testing.T) {
	t.Run("no filters issues no query", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Find(context.Background(), dto.FindInvoiceQuery{})

		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("identity without a matching client", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().FindFirstID(gomock.Any(), clientDto.FindClientQuery{LastName: "Nobody"}).Return("", nil)

		res, err := f.svc.Find(context.Background(), dto.FindInvoiceQuery{ClientLastName: "Nobody", Year: "2025"})

		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("resolves client then searches", func(t *testing.T) {
		f := newFixture(t)
		f.client.EXPECT().FindFirstID(gomock.Any(), gomock.Any()).Return("CLI001", nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldInvoiceNumber, model.FieldID).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Invoice, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "main.invoices.client_id = :client_id")
				assert.Equal(t, "CLI001", args["client_id"])

				return []model.Invoice{{InvoiceID: "INV001", InvoiceNumber: 3}}, nil
			})

		res, err := f.svc.Find(context.Background(), dto.FindInvoiceQuery{Phone: "5551234"})

		require.NoError(t, err)
		assert.Equal(t, []dto.FoundInvoice{{InvoiceNumber: 3, InvoiceID: "INV001"}}, res)
	})

	t.Run("malformed invoice number", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Find(context.Background(), dto.FindInvoiceQuery{InvoiceNumber: "abc"})

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "INV404")

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})

	t.Run("cascades items then header", func(t *testing.T) {
		f := newFixture(t)
		f.items.rows["INV001"] = []model.Item{{InvoiceItemID: "ITM001", InvoiceID: "INV001"}}

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *sqlx.Tx, gDto.FilterGroup) error {
				assert.Empty(t, f.items.rows["INV001"])

				return nil
			})

		require.NoError(t, f.svc.Delete(context.Background(), "INV001"))
	})
}

func TestInvoiceService_Print(t *testing.T) {
	f := newFixture(t)
	f.cfg.External.S3.ArchiveInvoices = true

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{
		InvoiceID:     "INV001",
		ClientID:      "CLI001",
		InvoiceNumber: 12,
		DueDate:       time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC),
	}, nil)
	f.client.EXPECT().View(gomock.Any(), "CLI001").Return(clientDto.ClientResponse{ClientID: "CLI001", Timezone: str("America/Denver")}, nil)
	f.storage.EXPECT().
		UploadFileBytes(gomock.Any(), "", "invoices", "INV001.pdf", "application/pdf", gomock.Any()).
		Return("https://cdn.example.com/invoices/INV001.pdf", nil)

	doc, err := f.svc.Print(context.Background(), "INV001")

	require.NoError(t, err)
	assert.Equal(t, "invoice-12.pdf", doc.FileName)
	assert.Equal(t, "https://cdn.example.com/invoices/INV001.pdf", doc.ArchiveURL)
	assert.NotEmpty(t, doc.Content)
}

func TestInvoiceService_Export(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldInvoiceNumber, SortDir: gDto.SortDirAsc}, gomock.Any()).
		Return([]model.Invoice{{InvoiceID: "INV001"}}, nil)

	doc, err := f.svc.Export(context.Background(), dto.PeriodQuery{Year: "2025", Month: "3"})

	require.NoError(t, err)
	assert.Equal(t, "invoices-2025-3.xlsx", doc.FileName)
	assert.NotEmpty(t, doc.Content)

	_, err = f.svc.Export(context.Background(), dto.PeriodQuery{Year: "2025", Month: "13"})
	assert.True(t, failure.Is(err, http.StatusBadRequest))
}
