package clientele_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMock "studiodesk/infras/otel/mocks"
	"studiodesk/internal/domains/client/model/dto"
	"studiodesk/internal/domains/client/service/mocks"
	"studiodesk/internal/handlers/clientele"
	"studiodesk/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockClient(ctrl)

	handler := clientele.New(svc, otelMock.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestCreateClient(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *mocks.MockClient)
		wantCode int
		wantBody string
	}{
		{
			name: "created",
			body: `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`,
			setup: func(svc *mocks.MockClient) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return("CL0001", nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `{"message":"New Client Successfully Created with Client_ID: CL0001"}`,
		},
		{
			name:     "invalid email",
			body:     `{"first_name":"Ada","last_name":"Lovelace","email":"ada"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"message":"email must be a valid email address"}`,
		},
		{
			name: "email taken",
			body: `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`,
			setup: func(svc *mocks.MockClient) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.Conflict("email already registered"))
			},
			wantCode: http.StatusConflict,
			wantBody: `{"message":"email already registered"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clientele/create", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestEditClient(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Edit(gomock.Any(), "CL0001", gomock.Any()).Return(nil)

	body := `{"first_name":"Ada","last_name":"King","email":"ada@example.com","address_state":""}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clientele/edit/CL0001", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Client Successfully Updated"}`, rec.Body.String())
}

func TestFindClients(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Find(gomock.Any(), dto.FindClientQuery{FirstName: "Ad", Phone: "1234"}).
		Return([]dto.FoundClient{{ClientID: "CL0001", FirstName: "Ada", LastName: "Lovelace"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientele/find?first_name=Ad&phone=1234", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"client_id":"CL0001","first_name":"Ada","last_name":"Lovelace"}]`, rec.Body.String())
}

func TestViewClient_NotFound(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().View(gomock.Any(), "CL0404").Return(dto.ClientResponse{}, failure.NotFound("client not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clientele/view/CL0404", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveClient(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().FindOrCreate(gomock.Any(), "Ada", "Lovelace").Return("CL0001", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clientele/resolve", strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"client_id":"CL0001"}`, rec.Body.String())
}
