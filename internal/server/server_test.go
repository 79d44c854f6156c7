package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/auth"
	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/colonyops/feedboard/internal/gateway/httpgw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *board.Service {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	jwt, err := auth.NewManager("server-secret", time.Hour)
	require.NoError(t, err)

	svc := board.New(database, jwt, comment.DefaultLimits())
	require.NoError(t, svc.EnsureUsers(context.Background(), []board.SeedUser{
		{Email: "admin@example.com", Name: "Admin", Password: "password1", Role: comment.RoleAdmin},
	}))

	return svc
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(newTestService(t), Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) (*httpgw.Client, *identity.Session) {
	t.Helper()
	session := identity.NewSession("")
	return httpgw.New(srv.URL, 5*time.Second, session), session
}

func signUp(t *testing.T, c *httpgw.Client, name, email string) identity.Credentials {
	t.Helper()
	creds, err := c.Register(context.Background(), identity.Registration{
		Name: name, Email: email, Password: "password1", PasswordConfirmation: "password1",
	})
	require.NoError(t, err)
	return creds
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	c, _ := newClient(t, srv)
	require.NoError(t, c.Ping(context.Background()))

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Profiling(t *testing.T) {
	svc := newTestService(t)

	for _, tc := range []struct {
		enabled bool
		status  int
	}{
		{enabled: false, status: http.StatusNotFound},
		{enabled: true, status: http.StatusOK},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
		New(svc, Options{Profiling: tc.enabled}).Handler().ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "profiling=%v", tc.enabled)
	}
}

func TestServer_CommentFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	alice, _ := newClient(t, srv)
	aliceCreds := signUp(t, alice, "Alice", "alice@example.com")

	f, err := alice.CreateFeedback(ctx, feedback.Draft{
		Title: "Dark mode", Description: "Please add a dark theme.", Category: feedback.CategoryFeature,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", f.AuthorName)

	c1, err := alice.Create(ctx, f.ID, "**first**")
	require.NoError(t, err)
	assert.Equal(t, aliceCreds.User.ID, c1.AuthorID)

	bob, _ := newClient(t, srv)
	signUp(t, bob, "Bob", "bob@example.com")
	c2, err := bob.Create(ctx, f.ID, "second")
	require.NoError(t, err)

	th, err := bob.Load(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, th.Comments, 2)
	assert.Equal(t, []string{c1.ID, c2.ID}, []string{th.Comments[0].ID, th.Comments[1].ID})
	assert.Equal(t, "Alice", th.Names[c1.AuthorID])
	assert.Equal(t, "Bob", th.Names[c2.AuthorID])
	assert.Equal(t, 2, th.Feedback.Comments)

	t.Run("non-author edit is rejected", func(t *testing.T) {
		_, err := bob.Update(ctx, c1.ID, "hijack")
		require.ErrorIs(t, err, comment.ErrServer)
		assert.Equal(t, "This action is unauthorized.", comment.UserMessage(err, ""))
	})

	t.Run("validation message comes back", func(t *testing.T) {
		_, err := alice.Update(ctx, c1.ID, strings.Repeat("x", 501))
		require.ErrorIs(t, err, comment.ErrValidation)
		assert.Equal(t, "Comment must not exceed 500 characters", comment.UserMessage(err, ""))
	})

	t.Run("author edits", func(t *testing.T) {
		updated, err := alice.Update(ctx, c1.ID, "  *revised*  ")
		require.NoError(t, err)
		assert.Equal(t, "*revised*", updated.Content)
		assert.Equal(t, c1.ID, updated.ID)
	})

	t.Run("admin deletes", func(t *testing.T) {
		admin, _ := newClient(t, srv)
		_, err := admin.Login(ctx, "admin@example.com", "password1")
		require.NoError(t, err)

		require.NoError(t, admin.Delete(ctx, c2.ID))

		err = admin.Delete(ctx, c2.ID)
		require.ErrorIs(t, err, comment.ErrNotFound)
	})

	t.Run("unknown feedback", func(t *testing.T) {
		_, err := alice.Create(ctx, "missing", "hello")
		require.ErrorIs(t, err, comment.ErrNotFound)
	})
}

func TestServer_Auth(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	t.Run("anonymous writes are rejected", func(t *testing.T) {
		anon, _ := newClient(t, srv)
		_, err := anon.Create(ctx, "f1", "hello")
		assert.True(t, gateway.IsUnauthenticated(err))

		_, err = anon.CurrentUser(ctx)
		assert.True(t, gateway.IsUnauthenticated(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		c, session := newClient(t, srv)
		_, err := c.Login(ctx, "admin@example.com", "nope")
		assert.Equal(t, "The provided credentials are incorrect.", comment.UserMessage(err, ""))
		assert.Empty(t, session.Token())
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		c, session := newClient(t, srv)
		creds, err := c.Login(ctx, "admin@example.com", "password1")
		require.NoError(t, err)

		u, err := c.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, comment.RoleAdmin, u.Role)

		require.NoError(t, c.Logout(ctx))
		assert.Empty(t, session.Token())

		require.NoError(t, session.Set(creds))
		_, err = c.CurrentUser(ctx)
		assert.True(t, gateway.IsUnauthenticated(err))
	})

	t.Run("registration errors", func(t *testing.T) {
		req := `{"name":"","email":"bad","password":"short","password_confirmation":"short"}`
		resp, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(req))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body api.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, api.MsgInvalid, body.Message)
		assert.Contains(t, body.Errors, "name")
		assert.Contains(t, body.Errors, "email")
		assert.Contains(t, body.Errors, "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/login", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_ListFeedback(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t)

	c, _ := newClient(t, srv)
	signUp(t, c, "Alice", "alice@example.com")

	drafts := []feedback.Draft{
		{Title: "Crash on start", Description: "The app crashes immediately.", Category: feedback.CategoryBug},
		{Title: "Dark mode", Description: "Please add a dark theme.", Category: feedback.CategoryFeature},
		{Title: "Faster search", Description: "Search takes a few seconds.", Category: feedback.CategoryImprovement},
	}
	for _, d := range drafts {
		_, err := c.CreateFeedback(ctx, d)
		require.NoError(t, err)
	}

	page, err := c.ListFeedback(ctx, feedback.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.LastPage)

	page, err = c.ListFeedback(ctx, feedback.Filter{Category: feedback.CategoryBug})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Crash on start", page.Items[0].Title)

	page, err = c.ListFeedback(ctx, feedback.Filter{Search: "dark"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Dark mode", page.Items[0].Title)

	resp, err := http.Get(srv.URL + "/feedback?category=question&page=0")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Errors, "category")
	assert.Contains(t, body.Errors, "page")
}
