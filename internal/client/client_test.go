package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/schema"
	"github.com/Zachkp/portfolio/internal/seed"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/storage"
)

// newAPI starts a seeded server over a fresh memory store.
func newAPI(t *testing.T) (*Client, storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := storage.NewMemStore()
	seeder := seed.New(store, logger)
	require.NoError(t, seeder.Ensure(context.Background()))

	ready := server.NewReadiness()
	ready.MarkReady()
	srv := server.New(server.Options{
		Store:        store,
		Seeder:       seeder,
		Readiness:    ready,
		ReadyTimeout: time.Second,
		Logger:       logger,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", ts.Client()), store
}

func TestClient_Lists(t *testing.T) {
	c, _ := newAPI(t)
	ctx := context.Background()

	skills, err := c.Skills(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, skills)

	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, projects)

	edu, err := c.Education(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, edu)

	certs, err := c.Certifications(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, certs)

	pubs, err := c.Publications(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, pubs)
}

func TestClient_SubmitContact(t *testing.T) {
	c, store := newAPI(t)
	ctx := context.Background()

	msg, err := c.SubmitContact(ctx, schema.InsertMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "Ada", msg.Name)

	stored, err := store.ListMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestClient_SubmitContactValidatesLocally(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer ts.Close()

	_, err := New(ts.URL, nil).SubmitContact(context.Background(), schema.InsertMessage{Name: "A", Email: "nope", Message: "hi"})
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Zero(t, hits)
}

func TestClient_SubmitContactServerRejects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid email address","field":"email"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).SubmitContact(context.Background(), schema.InsertMessage{Name: "A", Email: "a@b.com", Message: "hi"})
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, "Invalid email address", ve.Message)
}

func TestClient_SubmitContactServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Internal Server Error"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).SubmitContact(context.Background(), schema.InsertMessage{Name: "A", Email: "a@b.com", Message: "hi"})
	assert.True(t, errors.Is(err, ErrSubmit))
}

func TestClient_RejectsMalformedRecords(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"","category":"Languages","proficiency":90}]`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Skills(context.Background())
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestClient_ListStatusError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := New(ts.URL, nil).Publications(context.Background())
	assert.ErrorContains(t, err, "failed to fetch publications")
}
