package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthSignUp(t *testing.T) {
	t.Run("session-shaped response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))
			assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice@example.com", body["email"])

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"at","user":{"id":"user-1","email":"alice@example.com"}}`)
		}))
		defer srv.Close()

		client := New(srv.URL, "anon-key")
		user, err := client.SignUp(context.Background(), "alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("bare user response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"id":"user-2","email":"bob@example.com"}`)
		}))
		defer srv.Close()

		user, err := New(srv.URL, "anon-key").SignUp(context.Background(), "bob@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "user-2", user.ID)
	})

	t.Run("provider error carries message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"msg":"User already registered"}`)
		}))
		defer srv.Close()

		user, err := New(srv.URL, "anon-key").SignUp(context.Background(), "taken@example.com", "secret123")

		assert.Nil(t, user)
		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "User already registered", apiErr.Message)
	})
}

func TestAuthSignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		io.WriteString(w, `{"access_token":"at","refresh_token":"rt","user":{"id":"user-1","email":"alice@example.com"}}`)
	}))
	defer srv.Close()

	session, err := New(srv.URL, "anon-key").SignInWithPassword(context.Background(), "alice@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "rt", session.RefreshToken)
	assert.Equal(t, "alice@example.com", session.User.Email)
}

func TestAuthGetUser(t *testing.T) {
	t.Run("user token overrides the api key bearer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "service-key", r.Header.Get("apikey"))
			assert.Equal(t, "Bearer the-user-token", r.Header.Get("Authorization"))
			io.WriteString(w, `{"id":"user-1","email":"alice@example.com"}`)
		}))
		defer srv.Close()

		user, err := New(srv.URL, "service-key").GetUser(context.Background(), "the-user-token")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("expired token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"msg":"JWT expired"}`)
		}))
		defer srv.Close()

		user, err := New(srv.URL, "service-key").GetUser(context.Background(), "stale")

		assert.Nil(t, user)
		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}

func TestAdminListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		io.WriteString(w, `{"users":[{"id":"u1","email":"a@example.com"},{"id":"u2","email":"b@example.com"}]}`)
	}))
	defer srv.Close()

	users, err := New(srv.URL, "service-key").AdminListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestPostgrest(t *testing.T) {
	t.Run("select builds filters and limit", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/rest/v1/tasks", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "*", q.Get("select"))
			assert.Equal(t, "eq.worker-1", q.Get("assigned_to"))
			assert.Equal(t, "1", q.Get("limit"))
			io.WriteString(w, `[{"id":"task-1"}]`)
		}))
		defer srv.Close()

		data, err := New(srv.URL, "service-key").Select(context.Background(), "tasks", "*", map[string]string{
			"assigned_to": Eq("worker-1"),
		}, 1)

		assert.NoError(t, err)
		assert.JSONEq(t, `[{"id":"task-1"}]`, string(data))
	})

	t.Run("insert asks for representation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/rest/v1/screenshots", r.URL.Path)
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `[{"id":"shot-1","user_id":"user-1"}]`)
		}))
		defer srv.Close()

		data, err := New(srv.URL, "service-key").Insert(context.Background(), "screenshots", map[string]string{
			"user_id": "user-1",
		})

		assert.NoError(t, err)
		assert.Contains(t, string(data), "shot-1")
	})

	t.Run("update patches matching rows", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "eq.task-1", r.URL.Query().Get("id"))
			io.WriteString(w, `[{"id":"task-1","status":"completed"}]`)
		}))
		defer srv.Close()

		data, err := New(srv.URL, "service-key").Update(context.Background(), "tasks", map[string]string{
			"status": "completed",
		}, map[string]string{"id": Eq("task-1")})

		assert.NoError(t, err)
		assert.Contains(t, string(data), "completed")
	})
}

func TestStorage(t *testing.T) {
	t.Run("upload never upserts", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/storage/v1/object/screenshots/user-1/2026/03/14/abc.png", r.URL.Path)
			assert.Equal(t, "false", r.Header.Get("x-upsert"))
			assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, []byte{1, 2, 3}, body)
			io.WriteString(w, `{"Key":"screenshots/user-1/2026/03/14/abc.png"}`)
		}))
		defer srv.Close()

		err := New(srv.URL, "service-key").UploadObject(context.Background(),
			"screenshots", "user-1/2026/03/14/abc.png", []byte{1, 2, 3}, "image/png")

		assert.NoError(t, err)
	})

	t.Run("upload failure surfaces the platform message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, `{"message":"The resource already exists"}`)
		}))
		defer srv.Close()

		err := New(srv.URL, "service-key").UploadObject(context.Background(),
			"screenshots", "p", []byte{1}, "image/png")

		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "The resource already exists", apiErr.Message)
	})

	t.Run("remove", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/storage/v1/object/screenshots/user-1/a.png", r.URL.Path)
			io.WriteString(w, `{"message":"Successfully deleted"}`)
		}))
		defer srv.Close()

		err := New(srv.URL, "service-key").RemoveObject(context.Background(), "screenshots", "user-1/a.png")

		assert.NoError(t, err)
	})

	t.Run("public url is derived locally", func(t *testing.T) {
		client := New("https://proj.supabase.co", "service-key")
		url := client.PublicObjectURL("screenshots", "user-1/a.png")
		assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/screenshots/user-1/a.png", url)
	})

	t.Run("signed url resolves against storage base", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storage/v1/object/sign/screenshots/user-1/a.png", r.URL.Path)
			var body map[string]int
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 3600, body["expiresIn"])
			io.WriteString(w, `{"signedURL":"/object/sign/screenshots/user-1/a.png?token=abc"}`)
		}))
		defer srv.Close()

		url, err := New(srv.URL, "service-key").SignObjectURL(context.Background(), "screenshots", "user-1/a.png", 0)

		assert.NoError(t, err)
		assert.Equal(t, srv.URL+"/storage/v1/object/sign/screenshots/user-1/a.png?token=abc", url)
	})
}
