package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgauth/internal/database"
)

func TestAuthController_Register(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john5@example.com",
		"password":  "securepassword",
		"phone":     "1234567890",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Registration successful", body["message"])

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["accessToken"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "John", user["firstName"])
	assert.Equal(t, "Doe", user["lastName"])
	assert.Equal(t, "john5@example.com", user["email"])
	assert.Equal(t, "1234567890", user["phone"])
	assert.NotEmpty(t, user["userId"])
	assert.NotContains(t, w.Body.String(), "securepassword")
	assert.NotContains(t, w.Body.String(), "password")

	token := data["accessToken"].(string)
	w = s.do(t, http.MethodGet, "/api/organisations", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John's Organisation")
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "Alice", "a@x.com")

	w := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Mallory",
		"lastName":  "M",
		"email":     "a@x.com",
		"password":  "otherpassword",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"Bad request","message":"Registration unsuccessful","statusCode":400}`, w.Body.String())

	counts, err := s.db.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, database.Counts{Users: 1, Organisations: 1, Memberships: 1}, counts)

	w = s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "securepassword"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_Register_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name          string
		body          map[string]string
		expectedField string
	}{
		{
			name:          "missing first name",
			body:          map[string]string{"lastName": "Doe", "email": "j@x.com", "password": "pw"},
			expectedField: "firstName",
		},
		{
			name:          "missing last name",
			body:          map[string]string{"firstName": "John", "email": "j@x.com", "password": "pw"},
			expectedField: "lastName",
		},
		{
			name:          "invalid email",
			body:          map[string]string{"firstName": "John", "lastName": "Doe", "email": "not-an-email", "password": "pw"},
			expectedField: "email",
		},
		{
			name:          "email too long",
			body:          map[string]string{"firstName": "John", "lastName": "Doe", "email": strings.Repeat("a", 95) + "@x.com", "password": "pw"},
			expectedField: "email",
		},
		{
			name:          "missing password",
			body:          map[string]string{"firstName": "John", "lastName": "Doe", "email": "j@x.com"},
			expectedField: "password",
		},
		{
			name:          "password over 72 bytes",
			body:          map[string]string{"firstName": "John", "lastName": "Doe", "email": "j@x.com", "password": strings.Repeat("p", 73)},
			expectedField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/auth/register", tt.body, "")

			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			body := decodeBody(t, w)
			errs := body["errors"].([]any)
			require.NotEmpty(t, errs)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.(map[string]any)["field"].(string))
			}
			assert.Contains(t, fields, tt.expectedField)
		})
	}

	counts, err := s.db.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Users)
}

func TestAuthController_Register_MalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"firstName":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"body"`)
}

func TestAuthController_Login(t *testing.T) {
	s := newTestServer(t)
	_, userID, _ := s.registerUser(t, "John", "john@example.com")

	t.Run("success", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "securepassword",
		}, "")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Login successful", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, userID, data["user"].(map[string]any)["userId"])

		token := data["accessToken"].(string)
		w = s.do(t, http.MethodGet, "/api/user", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	failure := `{"status":"Bad request","message":"Authentication failed","statusCode":401}`

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, failure, w.Body.String())
	})

	t.Run("unknown email gives identical answer", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "securepassword",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, failure, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]string{}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func postForm(s *testServer, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Token(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "John", "john@example.com")

	t.Run("password grant", func(t *testing.T) {
		w := postForm(s, url.Values{"username": {"john@example.com"}, "password": {"securepassword"}})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "bearer", body["token_type"])
		token := body["access_token"].(string)
		assert.NotEmpty(t, token)

		w = s.do(t, http.MethodGet, "/api/user", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := postForm(s, url.Values{"username": {"john@example.com"}, "password": {"nope"}})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Incorrect email or password"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postForm(s, url.Values{"username": {"john@example.com"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"password"`)
	})
}
