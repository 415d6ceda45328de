package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/webcalc/internal/config"
	"github.com/davidbz/webcalc/internal/domain"
	apphttp "github.com/davidbz/webcalc/internal/http"
	"github.com/davidbz/webcalc/internal/http/middleware"
	"github.com/davidbz/webcalc/internal/http/web"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	page, err := web.NewRenderer()
	require.NoError(t, err)

	calculator := domain.NewCalculatorService(domain.NewOperationRegistry(), domain.NoopCache{}, nil, 0)
	handler := apphttp.NewHandler(calculator, page)
	server := apphttp.NewServer(&config.ServerConfig{Port: 0}, handler, middleware.Trace())

	return server.Routes()
}

func postCalculate(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))

	return w, decoded
}

func TestHandleCalculate_Success(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "addition", body: `{"a": 2, "b": 3, "op": "+"}`, expected: "5"},
		{name: "square root ignores b", body: `{"a": 9, "op": "sqrt"}`, expected: "3"},
		{name: "power", body: `{"a": 4, "b": 2, "op": "pow"}`, expected: "16"},
		{name: "caret alias", body: `{"a": 2, "b": 3, "op": "^"}`, expected: "8"},
		{name: "percent", body: `{"a": 10, "b": 200, "op": "percent"}`, expected: "20"},
		{name: "modulus alias", body: `{"a": 10, "b": 4, "op": "%"}`, expected: "2"},
		{name: "fractional division", body: `{"a": 7, "b": 2, "op": "/"}`, expected: "3.5"},
		{name: "string operands", body: `{"a": "1.5", "b": "2", "op": "*"}`, expected: "3"},
		{name: "defaults", body: `{}`, expected: "0"},
		{name: "default operator", body: `{"a": 1, "b": 2}`, expected: "3"},
		{name: "empty body", body: ``, expected: "0"},
		{name: "trailing whitespace", body: "{\"a\": 1, \"b\": 2}\n  ", expected: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := postCalculate(t, h, tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var resp apphttp.CalculateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.True(t, resp.OK)
			require.Equal(t, tt.expected, resp.Result.String())
			require.Empty(t, resp.Error)
		})
	}
}

func TestHandleCalculate_ExactBody(t *testing.T) {
	h := newTestServer(t)

	w, _ := postCalculate(t, h, `{"a": 2, "b": 3, "op": "+"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok": true, "result": 5}`, w.Body.String())

	w, _ = postCalculate(t, h, `{"a": 5, "b": 0, "op": "/"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"ok": false, "error": "division by zero"}`, w.Body.String())
}

func TestHandleCalculate_Failures(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "division by zero", body: `{"a": 5, "b": 0, "op": "/"}`, message: "division by zero"},
		{name: "modulus by zero", body: `{"a": 5, "b": 0, "op": "mod"}`, message: "division by zero"},
		{name: "negative square root", body: `{"a": -1, "op": "sqrt"}`, message: "sqrt of negative"},
		{name: "unsupported operator", body: `{"a": 1, "b": 2, "op": "foo"}`, message: "unsupported operation: foo"},
		{name: "negate is not exposed", body: `{"a": 1, "op": "negate"}`, message: "unsupported operation: negate"},
		{name: "malformed operand", body: `{"a": "abc", "b": 2}`, message: `could not convert "abc" to a number`},
		{name: "null operand", body: `{"a": null}`, message: "operand must be a number, not null"},
		{name: "non-string operator", body: `{"a": 1, "op": 5}`, message: "op must be a string"},
		{name: "null operator", body: `{"a": 1, "op": null}`, message: "unsupported operation: null"},
		{name: "overflowing power", body: `{"a": 10, "b": 400, "op": "pow"}`, message: "result is not a finite number"},
		{name: "nan power", body: `{"a": -8, "b": 0.5, "op": "pow"}`, message: "result is not a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, decoded := postCalculate(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, false, decoded["ok"])
			require.Equal(t, tt.message, decoded["error"])
			require.NotContains(t, decoded, "result")
		})
	}

	for _, body := range []string{
		`{"a": `,
		`{"a": 1, "b": 2} garbage`,
		`{"a": 1}{"b": 2}`,
	} {
		t.Run("invalid body "+body, func(t *testing.T) {
			w, decoded := postCalculate(t, h, body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, false, decoded["ok"])
			require.Contains(t, decoded["error"], "invalid request body")
			require.NotContains(t, decoded, "result")
		})
	}
}

func TestHandleCalculate_Idempotent(t *testing.T) {
	h := newTestServer(t)
	body := `{"a": 3, "b": 0.5, "op": "pow"}`

	_, first := postCalculate(t, h, body)
	for range 3 {
		_, again := postCalculate(t, h, body)
		require.Equal(t, first, again)
	}
}

func TestHandleCalculate_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/calculate", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleIndex(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), `<option value="percent">`)
	require.NotContains(t, w.Body.String(), "negate")

	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleOperations(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/operations", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, domain.NewOperationRegistry().Tokens(), body["operations"])
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
	require.Len(t, w.Header().Get("X-Trace-Id"), 32)
}
