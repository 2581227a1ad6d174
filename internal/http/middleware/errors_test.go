package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/wishlist-backend/internal/http/response"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
)

func serveWithError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorResponder(nil, nil))
	r.GET("/x", func(c *gin.Context) {
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var env response.ErrorEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestErrorResponder(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"not found", apierr.NotFound("wishlist"), 404, apierr.CodeNotFound, "wishlist not found"},
		{"ownership", apierr.Ownership(), 401, apierr.CodeOwnership, "the requested resource is not owned by you"},
		{"wrapped", errors.Join(errors.New("ctx"), apierr.Validation(errors.New("name required"))), 422, apierr.CodeValidation, "name required"},
		{"record not found", gorm.ErrRecordNotFound, 404, apierr.CodeNotFound, ""},
		{"internal hidden", errors.New("dial tcp: secret host"), 500, apierr.CodeInternal, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serveWithError(t, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, env.Error.Code)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, env.Error.Message)
			}
		})
	}
}

func TestErrorResponderNoError(t *testing.T) {
	rec, _ := serveWithError(t, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
