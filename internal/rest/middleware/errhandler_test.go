package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, ierr.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		if err != nil {
			c.Error(err)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp ierr.ErrorResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantDisplay string
		wantDetails map[string]any
	}{
		{
			name: "validation with details",
			err: ierr.NewError("invoice number has the wrong prefix").
				WithHint("Invoice number must start with INV2025").
				WithReportableDetails(map[string]any{"prefix": "INV2025"}).
				Mark(ierr.ErrValidation),
			wantStatus:  http.StatusBadRequest,
			wantDisplay: "Invoice number must start with INV2025",
			wantDetails: map[string]any{"prefix": "INV2025"},
		},
		{
			name:        "missing template",
			err:         ierr.NewError("open template").WithHint("Invoice template not found").Mark(ierr.ErrMissingTemplate),
			wantStatus:  http.StatusInternalServerError,
			wantDisplay: "Invoice template not found",
		},
		{
			name:        "not found",
			err:         ierr.NewError("no object").Mark(ierr.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantDisplay: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := serveError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantDisplay, resp.Error.Display)
			for k, v := range tt.wantDetails {
				assert.Equal(t, v, resp.Error.Details[k])
			}
		})
	}
}

func TestErrorHandlerPassesThroughSuccess(t *testing.T) {
	w, _ := serveError(t, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}
