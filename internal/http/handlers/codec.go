package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/platform/ctxutil"
)

// text is a string field that also accepts JSON numbers and booleans, which are
// kept in their literal form. Objects and arrays are rejected.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	case '{', '[':
		return errors.New("expected a string")
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil && string(b) != "true" && string(b) != "false" {
			return fmt.Errorf("expected a string, got %s", b)
		}
		*t = text(b)
	}
	return nil
}

// optText distinguishes an absent field (nil) from a present one.
type optText = *text

func strOf(t optText) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// envelope reads {"<key>": {...}} and returns the inner object.
func envelope(c *gin.Context, key string) (json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeBadParams, fmt.Errorf("invalid JSON body: %w", err))
	}
	raw, ok := body[key]
	if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, apierr.BadParams(fmt.Errorf("missing %q object", key))
	}
	return raw, nil
}

func decodeInto(raw json.RawMessage, key string, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return apierr.BadParams(fmt.Errorf("invalid %s: %w", key, err))
	}
	return nil
}

// requesterID is the authenticated caller, set by AuthMiddleware.
func requesterID(c *gin.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(nil)
	}
	return rd.UserID, nil
}

// pathID parses :id. Malformed ids cannot name a record, so they are not-found.
func pathID(c *gin.Context, kind string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.NotFound(kind)
	}
	return id, nil
}
