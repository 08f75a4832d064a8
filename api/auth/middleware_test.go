package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/database"
)

// countingDB counts role lookups so tests can assert that rejected
// requests never reach the store.
type countingDB struct {
	database.DB
	lookups int
}

func (c *countingDB) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	c.lookups++
	return c.DB.GetUserByEmail(ctx, email)
}

// failingDB simulates a store fault during the role lookup.
type failingDB struct {
	database.DB
}

func (failingDB) GetUserByEmail(context.Context, string) (*database.User, error) {
	return nil, errors.New("connection reset")
}

func newTestGate(t *testing.T, db database.DB) (*Gate, *TokenManager) {
	t.Helper()
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewGate(tm, db), tm
}

func newAdminRouter(gate *Gate, handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", gate.RequireAuth(), gate.RequireAdmin(), func(c *gin.Context) {
		*handlerCalled = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	store := &countingDB{DB: database.NewMemory()}
	gate, _ := newTestGate(t, store)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerCalled)
	assert.Zero(t, store.lookups, "store must not be hit when the request is rejected upfront")
}

func TestRequireAuthHeaderWithoutToken(t *testing.T) {
	gate, _ := newTestGate(t, database.NewMemory())

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "justatoken")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerCalled)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	gate, _ := newTestGate(t, database.NewMemory())

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerCalled)
}

func TestRequireAuthIgnoresPrefixLiteral(t *testing.T) {
	db := database.NewMemory()
	_, err := db.CreateUser(context.Background(), database.User{Email: "a@x.com", Role: database.RoleAdmin})
	require.NoError(t, err)

	gate, tm := newTestGate(t, db)
	token, err := tm.Issue("a@x.com", "")
	require.NoError(t, err)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	// Only the split on space matters, not the Bearer literal.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Token "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerCalled)
}

func TestRequireAdminNoRecord(t *testing.T) {
	gate, tm := newTestGate(t, database.NewMemory())
	token, err := tm.Issue("ghost@x.com", "")
	require.NoError(t, err)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerCalled)
}

func TestRequireAdminNonAdminRole(t *testing.T) {
	db := database.NewMemory()
	_, err := db.CreateUser(context.Background(), database.User{Email: "a@x.com"})
	require.NoError(t, err)

	gate, tm := newTestGate(t, db)
	token, err := tm.Issue("a@x.com", "")
	require.NoError(t, err)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerCalled)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	db := database.NewMemory()
	_, err := db.CreateUser(context.Background(), database.User{Email: "a@x.com", Role: database.RoleAdmin})
	require.NoError(t, err)

	gate, tm := newTestGate(t, db)
	token, err := tm.Issue("a@x.com", "")
	require.NoError(t, err)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerCalled)
}

func TestRequireAdminStoreFault(t *testing.T) {
	gate, tm := newTestGate(t, failingDB{})
	token, err := tm.Issue("a@x.com", "")
	require.NoError(t, err)

	var handlerCalled bool
	router := newAdminRouter(gate, &handlerCalled)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, handlerCalled)
}
