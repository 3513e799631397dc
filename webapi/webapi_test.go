package webapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/internal/fixtures/mocks"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	transfersvc "github.com/jbaptiste/paybuddy/pkg/service/transfer"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
	"github.com/jbaptiste/paybuddy/pkg/utils"
	"github.com/jbaptiste/paybuddy/webapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *fiber.App
	store   *mocks.Store
	authSvc *authsvc.Service
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := mocks.NewStore()
	cfg := &config.App{
		Jwt: config.Jwt{Secret: "test-secret", Expiry: time.Hour},
	}
	auth := authsvc.New(store, cfg.Jwt, logger)
	app := webapi.NewApp(
		usersvc.New(store, logger),
		transfersvc.New(store, logger),
		auth,
		cfg,
	)
	return &testEnv{app: app, store: store, authSvc: auth}
}

func (e *testEnv) seedUser(username, email string, cents int64) (dto.UserRead, string) {
	u := dto.UserRead{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Provider: "LOCAL",
		Balance:  money.FromCents(cents),
	}
	e.store.SeedUser(u)
	token, err := e.authSvc.GenerateToken(&u)
	if err != nil {
		panic(err)
	}
	return u, token
}

func (e *testEnv) request(t *testing.T, method, target, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv()

	resp := env.request(t, fiber.MethodPost, "/user", "",
		`{"username":"alice","email":"alice@example.com","password":"s3cret"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "0.00", data["balance"])
	assert.NotContains(t, data, "password")
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	env := newTestEnv()
	env.seedUser("alice", "alice@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/user", "",
		`{"username":"alice","email":"other@example.com","password":"s3cret"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "UserName déjà utilisé", body["detail"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	env.store.SeedUser(dto.UserRead{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: hash,
		Provider: "LOCAL",
	})

	resp := env.request(t, fiber.MethodPost, "/auth/login", "",
		`{"identity":"alice@example.com","password":"s3cret"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	resp = env.request(t, fiber.MethodPost, "/auth/login", "",
		`{"identity":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDepositAndBalance(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser("alice", "alice@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/account/deposit", token, `{"amount":"49.99"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "49.99", body["data"].(map[string]any)["balance"])

	resp = env.request(t, fiber.MethodGet, "/account/balance", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "49.99", body["data"].(map[string]any)["balance"])
}

func TestDeposit_RejectsThreeDecimals(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser("alice", "alice@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/account/deposit", token, `{"amount":"10.123"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Le montant ne peut pas avoir plus de 2 décimales", body["detail"])
}

func TestTransfer(t *testing.T) {
	env := newTestEnv()
	sender, token := env.seedUser("alice", "alice@example.com", 10000)
	receiver, _ := env.seedUser("bob", "bob@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/transfer", token,
		`{"receiver_id":"`+receiver.ID.String()+`","amount":"20.00","description":"cinema"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "bob", data["receiver_username"])
	assert.Equal(t, "20.00", data["amount"])
	assert.Equal(t, "cinema", data["description"])

	assert.Equal(t, int64(8000), env.store.BalanceOf(sender.ID).Cents())
	assert.Equal(t, int64(2000), env.store.BalanceOf(receiver.ID).Cents())
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser("alice", "alice@example.com", 1000)
	receiver, _ := env.seedUser("bob", "bob@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/transfer", token,
		`{"receiver_id":"`+receiver.ID.String()+`","amount":"100.00"}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t,
		"Solde insuffisant : 10.00 € disponible, mais 100.00 € demandé.",
		body["detail"],
	)
}

func TestTransfer_UnknownReceiver(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser("alice", "alice@example.com", 10000)

	resp := env.request(t, fiber.MethodPost, "/transfer", token,
		`{"receiver_id":"`+uuid.NewString()+`","amount":"10.00"}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Le destinataire n'existe pas", body["detail"])
}

func TestConnections(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser("alice", "alice@example.com", 0)
	env.seedUser("bob", "bob@example.com", 0)

	resp := env.request(t, fiber.MethodPost, "/connections", token, `{"email":"bob@example.com"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close() //nolint: errcheck

	resp = env.request(t, fiber.MethodGet, "/connections", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	contacts := body["data"].([]any)
	require.Len(t, contacts, 1)
	assert.Equal(t, "bob", contacts[0].(map[string]any)["username"])

	resp = env.request(t, fiber.MethodPost, "/connections", token, `{"email":"bob@example.com"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t,
		"Cette personne fait déjà partie de vos contacts : bob@example.com (bob)",
		body["detail"],
	)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv()

	resp := env.request(t, fiber.MethodGet, "/account/balance", "", "")
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
