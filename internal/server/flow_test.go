package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"echo/internal/config"
	"echo/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestEnv boots the full API against an in-memory sqlite database with no
// Redis. Call it once per test binary: the Prometheus middleware registers
// collectors in the default registry and cannot be created twice.
func newTestEnv(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file:apiflow?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "integration-test-secret-integration-test-secret",
		Port:      "0",
		DBDriver:  "sqlite",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	// Same app construction the production entry point uses.
	return srv.newApp(), srv
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, cookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func userID(t *testing.T, body map[string]any) uint {
	t.Helper()
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "missing user in body: %v", body)
	id, ok := user["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestAPIFlow(t *testing.T) {
	app, _ := newTestEnv(t)

	var (
		aliceCookie, bobCookie *http.Cookie
		aliceID, bobID         uint
		tweetID                uint
	)

	t.Run("register alice", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/user/register", fiber.Map{
			"name": "Alice", "username": "alice", "email": "alice@example.com", "password": "supersecret",
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		aliceCookie = sessionCookie(t, resp)
		aliceID = userID(t, body)

		user := body["user"].(map[string]any)
		assert.Equal(t, "alice", user["username"])
		_, hasPassword := user["password"]
		assert.False(t, hasPassword, "password hash must never be serialized")
	})

	t.Run("register duplicate email conflicts", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/user/register", fiber.Map{
			"name": "Alice Again", "username": "alice2", "email": "alice@example.com", "password": "supersecret",
		}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	t.Run("register bob", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/user/register", fiber.Map{
			"name": "Bob", "username": "bob", "email": "bob@example.com", "password": "supersecret",
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		bobCookie = sessionCookie(t, resp)
		bobID = userID(t, body)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/user/login", fiber.Map{
			"email": "alice@example.com", "password": "wrongpassword",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("login alice", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/user/login", fiber.Map{
			"email": "alice@example.com", "password": "supersecret",
		}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Welcome back! Alice", body["message"])
		aliceCookie = sessionCookie(t, resp)
	})

	t.Run("protected route without token", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/user/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("alice follows bob", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/user/follow/%d", bobID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice has followed Bob", body["message"])
	})

	t.Run("double follow rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/user/follow/%d", bobID), nil, aliceCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/user/follow/%d", aliceID), nil, aliceCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("follow is visible on both profiles", func(t *testing.T) {
		_, body := doJSON(t, app, http.MethodGet, "/api/v1/user/me", nil, aliceCookie)
		user := body["user"].(map[string]any)
		assert.Contains(t, user["following"], float64(bobID))

		_, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/user/profile/%d", bobID), nil, aliceCookie)
		user = body["user"].(map[string]any)
		assert.Contains(t, user["followers"], float64(aliceID))
	})

	t.Run("bob tweets", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/tweet/create", fiber.Map{"body": "hi"}, bobCookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		tweet := body["tweet"].(map[string]any)
		tweetID = uint(tweet["id"].(float64))
		assert.Equal(t, "hi", tweet["body"])

		author := tweet["user"].(map[string]any)
		assert.Equal(t, "bob", author["username"])
	})

	t.Run("empty tweet rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tweet/create", fiber.Map{"body": "   "}, bobCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("alice sees bob in her following feed", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/tweet/followingtweets/%d", aliceID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		tweets := body["tweets"].([]any)
		require.Len(t, tweets, 1)
		assert.Equal(t, "hi", tweets[0].(map[string]any)["body"])
	})

	t.Run("global feed returns every tweet without paging", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tweet/create", fiber.Map{"body": fmt.Sprintf("note %d", i)}, aliceCookie)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/tweet/alltweets", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, body["tweets"].([]any), 4)

		resp, body = doJSON(t, app, http.MethodGet, "/api/v1/tweet/alltweets?limit=2", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["tweets"].([]any), 2)
	})

	t.Run("like toggle is an involution", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/tweet/like/%d", tweetID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User liked your tweet.", body["message"])

		_, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/tweet/tweet/%d", tweetID), nil, aliceCookie)
		tweet := body["tweet"].(map[string]any)
		assert.Equal(t, float64(1), tweet["likes_count"])
		assert.Equal(t, true, tweet["liked"])

		resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/tweet/like/%d", tweetID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User disliked your tweet.", body["message"])

		_, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/tweet/tweet/%d", tweetID), nil, aliceCookie)
		tweet = body["tweet"].(map[string]any)
		assert.Equal(t, float64(0), tweet["likes_count"])
	})

	t.Run("bookmark toggle is an involution", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/bookmark/%d", tweetID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Bookmark added successfully.", body["message"])

		_, body = doJSON(t, app, http.MethodGet, "/api/v1/user/me", nil, aliceCookie)
		user := body["user"].(map[string]any)
		assert.Contains(t, user["bookmarks"], float64(tweetID))

		resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/bookmark/%d", tweetID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Bookmark removed successfully.", body["message"])
	})

	t.Run("comments are append only", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/tweet/comment/%d", tweetID), fiber.Map{"body": "nice"}, aliceCookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		tweet := body["tweet"].(map[string]any)
		comments := tweet["comments"].([]any)
		require.Len(t, comments, 1)
		assert.Equal(t, "nice", comments[0].(map[string]any)["body"])
	})

	t.Run("only the author may delete a tweet", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/tweet/delete/%d", tweetID), nil, aliceCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/tweet/delete/%d", tweetID), nil, bobCookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/tweet/tweet/%d", tweetID), nil, bobCookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unfollow restores the graph", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/user/unfollow/%d", bobID), nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice has unfollowed Bob", body["message"])

		resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/user/unfollow/%d", bobID), nil, aliceCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("other users excludes self", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/user/otherusers", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		others := body["otherUsers"].([]any)
		require.NotEmpty(t, others)
		for _, o := range others {
			assert.NotEqual(t, float64(aliceID), o.(map[string]any)["id"])
		}
	})

	t.Run("profile edits are restricted to the owner", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/update/%d", bobID), fiber.Map{"bio": "hijacked"}, aliceCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/update/%d", aliceID), fiber.Map{
			"name": "Alice", "username": "alice", "bio": "hello world",
		}, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := body["user"].(map[string]any)
		assert.Equal(t, "hello world", user["bio"])

		resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/update/%d", aliceID), fiber.Map{
			"name": "Alice", "username": "bob",
		}, aliceCookie)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("profile edit without a name is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/user/update/%d", aliceID), fiber.Map{
			"bio": "just the bio",
		}, aliceCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		// Nothing was changed by the rejected edit.
		_, body := doJSON(t, app, http.MethodGet, "/api/v1/user/me", nil, aliceCookie)
		user := body["user"].(map[string]any)
		assert.Equal(t, "hello world", user["bio"])
	})

	t.Run("logout clears the session cookie", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/user/logout", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User logged out successfully.", body["message"])

		for _, c := range resp.Cookies() {
			if c.Name == sessionCookieName {
				assert.Empty(t, c.Value)
			}
		}
	})

	t.Run("health endpoints respond", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/health/live", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, app, http.MethodGet, "/health/ready", nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "healthy", checks["database"])
		assert.Equal(t, "unavailable", checks["redis"])
	})
}
