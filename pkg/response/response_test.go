package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sellerboost-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
)

func TestErrorUsesKindStatus(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, fmt.Errorf("gate: %w", apierror.Unauthorized("No authorization header")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"No authorization header","code":"UNAUTHORIZED"}`, rec.Body.String())
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()

	OK(rec, map[string]bool{"success": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
