package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskboard/internal/auth"
	"github.com/monocle-dev/taskboard/internal/handlers"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/router"
	"github.com/monocle-dev/taskboard/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type harness struct {
	t      *testing.T
	conn   *gorm.DB
	router *gin.Engine
	user   models.User
	token  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := testutil.NewDB(t)
	require.NoError(t, auth.InitJWTSecret("test-secret"))
	handlers.PasswordCost = bcrypt.MinCost

	user := testutil.CreateUser(t, conn, "Ada Lovelace", "ada@example.com")
	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &harness{
		t:      t,
		conn:   conn,
		router: router.NewRouter([]string{"http://localhost:3000"}, logger),
		user:   user,
		token:  token,
	}
}

// tokenFor signs a session for another fixture user.
func (h *harness) tokenFor(user models.User) string {
	h.t.Helper()
	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(h.t, err)
	return token
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.doAs(h.token, method, path, body)
}

func (h *harness) doAs(token, method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type messageBody struct {
	Message string `json:"message"`
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
}

func assertOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	requireStatus(t, rr, http.StatusOK)
}
