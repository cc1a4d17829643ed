package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"delivery-platform/internal/domain"
	clientsvc "delivery-platform/internal/service/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClientService struct {
	client  *domain.Client
	clients []domain.Client
	err     error

	gotRegister clientsvc.RegisterInput
	gotUpdate   clientsvc.UpdateInput
	gotID       int64
	gotEmail    string
}

func (s *stubClientService) Register(_ context.Context, in clientsvc.RegisterInput) (*domain.Client, error) {
	s.gotRegister = in
	return s.client, s.err
}

func (s *stubClientService) Authenticate(_ context.Context, email, _ string) (*domain.Client, error) {
	s.gotEmail = email
	return s.client, s.err
}

func (s *stubClientService) Get(_ context.Context, id int64) (*domain.Client, error) {
	s.gotID = id
	return s.client, s.err
}

func (s *stubClientService) List(context.Context) ([]domain.Client, error) {
	return s.clients, s.err
}

func (s *stubClientService) Update(_ context.Context, id int64, in clientsvc.UpdateInput) (*domain.Client, error) {
	s.gotID = id
	s.gotUpdate = in
	return s.client, s.err
}

func (s *stubClientService) Delete(_ context.Context, id int64) error {
	s.gotID = id
	return s.err
}

func sampleClient() *domain.Client {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Client{
		ID:           7,
		Name:         "Ann",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$shouldneverleak",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRegister_Created(t *testing.T) {
	svc := &stubClientService{client: sampleClient()}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	rec := serve(router, http.MethodPost, "/api/clients/register",
		`{"name":"Ann","email":"a@x.com","password":"pw1","phone":"+100"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "a@x.com", svc.gotRegister.Email)
	assert.Equal(t, "pw1", svc.gotRegister.Password)
	assert.Equal(t, "+100", svc.gotRegister.Phone)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["id"])
	assert.Equal(t, "a@x.com", body["email"])
}

func TestClientResponses_NeverExposeCredential(t *testing.T) {
	c := sampleClient()
	svc := &stubClientService{client: c, clients: []domain.Client{*c}}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	responses := []string{
		serve(router, http.MethodPost, "/api/clients/register", `{"name":"Ann","email":"a@x.com","password":"pw1"}`).Body.String(),
		serve(router, http.MethodPost, "/api/clients/login", `{"email":"a@x.com","password":"pw1"}`).Body.String(),
		serve(router, http.MethodGet, "/api/clients/7", "").Body.String(),
		serve(router, http.MethodGet, "/api/clients", "").Body.String(),
		serve(router, http.MethodPut, "/api/clients/7", `{"name":"B"}`).Body.String(),
	}
	for _, body := range responses {
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, c.PasswordHash)
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	router := newTestRouter(t, nil, Deps{ClientSvc: &stubClientService{client: sampleClient()}})

	cases := map[string]string{
		"missing name":     `{"email":"a@x.com","password":"pw1"}`,
		"blank name":       `{"name":"   ","email":"a@x.com","password":"pw1"}`,
		"missing email":    `{"name":"Ann","password":"pw1"}`,
		"blank email":      `{"name":"Ann","email":"   ","password":"pw1"}`,
		"bad email":        `{"name":"Ann","email":"nope","password":"pw1"}`,
		"missing password": `{"name":"Ann","email":"a@x.com"}`,
		"blank password":   `{"name":"Ann","email":"a@x.com","password":"  "}`,
		"long password":    `{"name":"Ann","email":"a@x.com","password":"` + strings.Repeat("p", 73) + `"}`,
		"malformed json":   `{"email":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/api/clients/register", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestClientErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		{"duplicate", domain.ErrDuplicateEmail, http.MethodPost, "/api/clients/register", `{"name":"Ann","email":"a@x.com","password":"pw"}`, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.MethodPost, "/api/clients/login", `{"email":"a@x.com","password":"bad"}`, http.StatusUnauthorized},
		{"get missing", domain.ErrClientNotFound, http.MethodGet, "/api/clients/99", "", http.StatusNotFound},
		{"update missing", domain.ErrClientNotFound, http.MethodPut, "/api/clients/99", `{"name":"x"}`, http.StatusNotFound},
		{"update duplicate", domain.ErrDuplicateEmail, http.MethodPut, "/api/clients/1", `{"email":"b@x.com"}`, http.StatusConflict},
		{"delete missing", domain.ErrClientNotFound, http.MethodDelete, "/api/clients/99", "", http.StatusNotFound},
		{"service validation", domain.ErrValidation, http.MethodPut, "/api/clients/1", `{"email":""}`, http.StatusBadRequest},
		{"store down", domain.NewStoreError("list", context.DeadlineExceeded), http.MethodGet, "/api/clients", "", http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.MethodGet, "/api/clients/1", "", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, nil, Deps{ClientSvc: &stubClientService{err: tc.err}})
			rec := serve(router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestLogin_SameBodyForEveryCredentialFailure(t *testing.T) {
	router := newTestRouter(t, nil, Deps{ClientSvc: &stubClientService{err: domain.ErrInvalidCredentials}})

	unknown := serve(router, http.MethodPost, "/api/clients/login", `{"email":"ghost@x.com","password":"pw"}`)
	wrong := serve(router, http.MethodPost, "/api/clients/login", `{"email":"a@x.com","password":"bad"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestStoreFailure_HidesCause(t *testing.T) {
	svc := &stubClientService{err: domain.NewStoreError("get by id", assert.AnError)}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	rec := serve(router, http.MethodGet, "/api/clients/1", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, domain.ErrStoreUnavailable.Error(), decodeError(t, rec))
}

func TestUpdate_PassesOnlyPresentFields(t *testing.T) {
	svc := &stubClientService{client: sampleClient()}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	rec := serve(router, http.MethodPut, "/api/clients/7", `{"name":"Bea"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(7), svc.gotID)
	require.NotNil(t, svc.gotUpdate.Name)
	assert.Equal(t, "Bea", *svc.gotUpdate.Name)
	assert.Nil(t, svc.gotUpdate.Email)
	assert.Nil(t, svc.gotUpdate.Password)
	assert.Nil(t, svc.gotUpdate.Phone)
	assert.Nil(t, svc.gotUpdate.Address)
}

func TestDeleteClient_NoContent(t *testing.T) {
	svc := &stubClientService{}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	rec := serve(router, http.MethodDelete, "/api/clients/3", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), svc.gotID)
	assert.Empty(t, rec.Body.String())
}

func TestClientRoutes_BadID(t *testing.T) {
	router := newTestRouter(t, nil, Deps{ClientSvc: &stubClientService{client: sampleClient()}})

	for _, path := range []string{"/api/clients/abc", "/api/clients/0", "/api/clients/-4"} {
		rec := serve(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, errBadID.Error(), decodeError(t, rec))
	}
}

func TestListClients_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, nil, Deps{ClientSvc: &stubClientService{}})

	rec := serve(router, http.MethodGet, "/api/clients", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestLogin_OverlongPasswordRejected(t *testing.T) {
	svc := &stubClientService{client: sampleClient()}
	router := newTestRouter(t, nil, Deps{ClientSvc: svc})

	rec := serve(router, http.MethodPost, "/api/clients/login",
		`{"email":"a@x.com","password":"`+strings.Repeat("a", 72)+`X"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Empty(t, svc.gotEmail)
}
