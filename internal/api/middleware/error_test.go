package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"retirecast/internal/api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recoverResponse(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, models.ErrorResponse) {
	t.Helper()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w, resp
}

func TestErrorHandler_RecoversStringPanic(t *testing.T) {
	w, resp := recoverResponse(t, func(c *gin.Context) {
		panic("ledger table missing")
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", resp.Error.Code)
	}
	if resp.Error.Message != "ledger table missing" {
		t.Errorf("message = %q, want the panic value", resp.Error.Message)
	}
}

func TestErrorHandler_NonStringPanicGetsGenericMessage(t *testing.T) {
	_, resp := recoverResponse(t, func(c *gin.Context) {
		panic(42)
	})
	if resp.Error.Message != "An unexpected error occurred" {
		t.Errorf("message = %q, want the generic message", resp.Error.Message)
	}
}
