package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestUserIDContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := GetUserIDFromContext(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = GetUserIDFromContext(WithUserID(context.Background(), 0))
	assert.False(t, ok)
}

func TestGenerateToken_Unique(t *testing.T) {
	a, b := GenerateToken(), GenerateToken()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSessionData_Expired(t *testing.T) {
	now := time.Now()
	assert.True(t, SessionData{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	assert.False(t, SessionData{ExpiresAt: now.Add(time.Hour)}.Expired(now))
}

func TestIDParam(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	var ok bool
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, ok = IDParam(r)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/17", nil))
	assert.True(t, ok)
	assert.Equal(t, uint(17), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	assert.False(t, ok)
}
