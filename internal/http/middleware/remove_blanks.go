package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// RemoveBlanks drops every field whose value is exactly "" from the objects
// nested one level inside a JSON body, so {"wishlist":{"item":""}} reaches the
// handler as {"wishlist":{}}. Bodies that are not JSON objects pass through.
func RemoveBlanks() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(nil))
			c.Next()
			return
		}
		out := stripBlankFields(raw)
		c.Request.Body = io.NopCloser(bytes.NewReader(out))
		c.Request.ContentLength = int64(len(out))
		c.Next()
	}
}

func stripBlankFields(raw []byte) []byte {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return raw
	}
	changed := false
	for key, val := range top {
		var inner map[string]any
		dec := json.NewDecoder(bytes.NewReader(val))
		dec.UseNumber()
		if err := dec.Decode(&inner); err != nil || inner == nil {
			continue
		}
		removed := false
		for k, v := range inner {
			if s, ok := v.(string); ok && s == "" {
				delete(inner, k)
				removed = true
			}
		}
		if !removed {
			continue
		}
		b, err := json.Marshal(inner)
		if err != nil {
			return raw
		}
		top[key] = b
		changed = true
	}
	if !changed {
		return raw
	}
	b, err := json.Marshal(top)
	if err != nil {
		return raw
	}
	return b
}
