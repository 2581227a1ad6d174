package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/wishlist-backend/internal/domain/resources"
	"github.com/yungbote/wishlist-backend/internal/http/response"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/services"
)

// resourceCodec maps one resource kind to and from its wire form.
type resourceCodec[T any] struct {
	singular     string
	plural       string
	decodeCreate func(raw json.RawMessage) (*T, error)
	decodePatch  func(raw json.RawMessage) (resources.Patch[T], error)
	view         func(rec *T) any
}

// ResourceHandler serves list/show/create/update/delete for one owned kind.
type ResourceHandler[T any, PT resources.Owned[T]] struct {
	svc     services.ResourceService[T, PT]
	codec   resourceCodec[T]
	metrics *observability.Metrics
}

func (h *ResourceHandler[T, PT]) views(rows []*T) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, h.codec.view(r))
	}
	return out
}

func (h *ResourceHandler[T, PT]) fail(c *gin.Context, op string, err error) {
	h.metrics.IncResourceOp(h.codec.singular, op, err)
	_ = c.Error(err)
}

// GET /<plural>
func (h *ResourceHandler[T, PT]) List(c *gin.Context) {
	uid, err := requesterID(c)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	rows, err := h.svc.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	h.metrics.IncResourceOp(h.codec.singular, "list", nil)
	response.RespondOK(c, gin.H{h.codec.plural: h.views(rows)})
}

// GET /<plural>/:id
func (h *ResourceHandler[T, PT]) Show(c *gin.Context) {
	uid, err := requesterID(c)
	if err != nil {
		h.fail(c, "show", err)
		return
	}
	id, err := pathID(c, h.codec.singular)
	if err != nil {
		h.fail(c, "show", err)
		return
	}
	rec, err := h.svc.Show(c.Request.Context(), uid, id)
	if err != nil {
		h.fail(c, "show", err)
		return
	}
	h.metrics.IncResourceOp(h.codec.singular, "show", nil)
	response.RespondOK(c, gin.H{h.codec.singular: h.codec.view(rec)})
}

// POST /<plural>
// body: { "<singular>": { ...fields } }
// A record with the same name and owner is overwritten; either way the reply is 201.
func (h *ResourceHandler[T, PT]) Create(c *gin.Context) {
	uid, err := requesterID(c)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	raw, err := envelope(c, h.codec.singular)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	in, err := h.codec.decodeCreate(raw)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), uid, in)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.metrics.IncResourceOp(h.codec.singular, "create", nil)
	response.RespondCreated(c, gin.H{h.codec.singular: h.codec.view(rec)})
}

// PATCH /<plural>/:id
// body: { "<singular>": { ...changed fields } }, owner is ignored
func (h *ResourceHandler[T, PT]) Update(c *gin.Context) {
	uid, err := requesterID(c)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	id, err := pathID(c, h.codec.singular)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	raw, err := envelope(c, h.codec.singular)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	patch, err := h.codec.decodePatch(raw)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), uid, id, patch); err != nil {
		h.fail(c, "update", err)
		return
	}
	h.metrics.IncResourceOp(h.codec.singular, "update", nil)
	response.RespondNoContent(c)
}

// DELETE /<plural>/:id
func (h *ResourceHandler[T, PT]) Delete(c *gin.Context) {
	uid, err := requesterID(c)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	id, err := pathID(c, h.codec.singular)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uid, id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.metrics.IncResourceOp(h.codec.singular, "delete", nil)
	response.RespondNoContent(c)
}
