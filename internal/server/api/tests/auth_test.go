package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/models"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/credkeeper/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/credkeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/logger"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

var fastHasher = crypto.NewBcryptHasher(bcrypt.MinCost)

type testDeps struct {
	users  *svcmocks.MockUsersRepo
	health *svcmocks.MockHealthRepo
}

// NewTestHandler создаёт Handler с моками репозиториев и настоящим AuthService
func NewTestHandler(t *testing.T, maxBody int64) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	deps := testDeps{
		users:  svcmocks.NewMockUsersRepo(ctrl),
		health: svcmocks.NewMockHealthRepo(ctrl),
	}

	authSvc, err := service.NewAuthService(deps.users, fastHasher)
	require.NoError(t, err)
	svc := &service.Services{Auth: authSvc, Health: deps.health}

	return api.NewHandler(svc, logger.NewNop(), metrics.New(), maxBody), deps
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, api.JsonContentType, rec.Header().Get(api.ContentType))

	var resp smodels.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func registerBody(t *testing.T, req smodels.RegisterRequest) string {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

func alice() smodels.RegisterRequest {
	return smodels.RegisterRequest{
		Username:  "alice",
		Password:  "hunter2",
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "L",
		Phone:     "555-0100",
	}
}

func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	rec := do(h.Register, http.MethodPost, "/api/auth/register", "{bad json")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "bad json", decodeError(t, rec))
}

// число вместо строки тоже считается битым JSON
func TestHandler_Register_WrongFieldType(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	rec := do(h.Register, http.MethodPost, "/api/auth/register", `{"username":42}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "bad json", decodeError(t, rec))
}

func TestHandler_Register_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 64)

	req := alice()
	req.FirstName = strings.Repeat("A", 200)
	rec := do(h.Register, http.MethodPost, "/api/auth/register", registerBody(t, req))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, serr.ErrBodyTooLarge.Error(), decodeError(t, rec))
}

func TestHandler_Register_Success(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	deps.users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (int64, error) {
			require.Equal(t, "alice", u.Username)
			require.NotEqual(t, "hunter2", u.PasswordHash)
			return 1, nil
		})

	rec := do(h.Register, http.MethodPost, "/api/auth/register", registerBody(t, alice()))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"status":"ok","username":"alice"}`, rec.Body.String())
}

func TestHandler_Register_MissingFields(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	rec := do(h.Register, http.MethodPost, "/api/auth/register",
		`{"username":"bob","password":"x","email":"b@x.com","firstName":"B"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Missing field(s): lastName, phone", decodeError(t, rec))
}

// пустая строка = поле отсутствует
func TestHandler_Register_EmptyStringIsMissing(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	req := alice()
	req.Password = ""
	rec := do(h.Register, http.MethodPost, "/api/auth/register", registerBody(t, req))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Missing field(s): password", decodeError(t, rec))
}

func TestHandler_Register_Conflict(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	deps.users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(int64(0), serr.ErrAlreadyExists)

	rec := do(h.Register, http.MethodPost, "/api/auth/register", registerBody(t, alice()))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Username or email already exists", decodeError(t, rec))
}

// причина 500 не утекает клиенту
func TestHandler_Register_InternalError(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	deps.users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("pq: connection refused to 10.0.0.5"))

	rec := do(h.Register, http.MethodPost, "/api/auth/register", registerBody(t, alice()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decodeError(t, rec))
}

func TestHandler_Login_Success(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	hash, err := fastHasher.Hash("hunter2")
	require.NoError(t, err)

	deps.users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(models.User{
			ID:           1,
			Username:     "alice",
			Email:        "a@x.com",
			PasswordHash: hash,
			FirstName:    "A",
			LastName:     "L",
			Phone:        "555-0100",
		}, nil)

	rec := do(h.Login, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"hunter2"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"status":"ok","user":{"userId":1,"username":"alice","email":"a@x.com","firstName":"A","lastName":"L","phone":"555-0100"}}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), hash)
}

// неизвестный пользователь и неверный пароль дают байт-в-байт одинаковый ответ
func TestHandler_Login_IdenticalUnauthorized(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	hash, err := fastHasher.Hash("hunter2")
	require.NoError(t, err)

	deps.users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(models.User{}, serr.ErrNotFound)
	deps.users.EXPECT().GetByUsername(gomock.Any(), "alice").Return(models.User{Username: "alice", PasswordHash: hash}, nil)

	unknown := do(h.Login, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"hunter2"}`)
	wrong := do(h.Login, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"WRONG"}`)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, unknown.Body.String(), wrong.Body.String())
	require.Equal(t, "Invalid username or password", decodeError(t, unknown))
}

func TestHandler_Login_MissingFields(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	rec := do(h.Login, http.MethodPost, "/api/auth/login", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Missing field(s): username, password", decodeError(t, rec))
}

func TestHandler_Login_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "bad json", decodeError(t, rec))
}

func TestHandler_Login_StoreError(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	deps.users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(models.User{}, errors.Join(serr.ErrInternal, errors.New("timeout")))

	rec := do(h.Login, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"hunter2"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", decodeError(t, rec))
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t, 0)

	deps.health.EXPECT().Ping(gomock.Any()).Return(nil)
	ok := do(h.Health, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, ok.Code)
	require.JSONEq(t, `{"status":"ok"}`, ok.Body.String())

	deps.health.EXPECT().Ping(gomock.Any()).Return(serr.ErrUnavailable)
	down := do(h.Health, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusServiceUnavailable, down.Code)
	require.Equal(t, "store unavailable", decodeError(t, down))
}
