package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suryaansh001/shayari-backend/internal/apperrors"
	"github.com/suryaansh001/shayari-backend/internal/shayari"
	"github.com/suryaansh001/shayari-backend/internal/shayari/service"
	"github.com/suryaansh001/shayari-backend/pkg/middleware"
)

// record is the wire form. It repeats the id as "id" for clients that do
// not read "_id".
type record struct {
	*shayari.Shayari
	PlainID string `json:"id"`
}

func toRecord(s *shayari.Shayari) record { return record{Shayari: s, PlainID: s.ID} }

func toRecords(list []*shayari.Shayari) []record {
	out := make([]record, 0, len(list))
	for _, s := range list {
		out = append(out, toRecord(s))
	}
	return out
}

type reactionRequest struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
}

// RegisterRoutes mounts the poem endpoints on r. Identity must already be
// resolved by middleware.Authenticate.
func RegisterRoutes(r gin.IRouter, svc service.Service) {
	h := &handler{svc: svc}
	r.GET("/public", h.listPublic)
	r.GET("/all", h.listAll)
	r.POST("/all", h.create)
	r.POST("", h.create)
	r.POST("/reaction", h.reactByBody)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
	r.POST("/:id/reaction", h.react)
}

type handler struct {
	svc service.Service
}

func (h *handler) listPublic(c *gin.Context) {
	list, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecords(list))
}

func (h *handler) listAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecords(list))
}

func (h *handler) create(c *gin.Context) {
	var in shayari.CreateInput
	if !bindOptional(c, &in) {
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), middleware.IdentityFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecord(rec))
}

func (h *handler) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecord(rec))
}

func (h *handler) update(c *gin.Context) {
	var in shayari.UpdateInput
	if !bindOptional(c, &in) {
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecord(rec))
}

func (h *handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shayari deleted successfully"})
}

func (h *handler) react(c *gin.Context) {
	var req reactionRequest
	if !bindOptional(c, &req) {
		return
	}
	h.doReact(c, c.Param("id"), req.Emoji)
}

// reactByBody serves the older form that carries the id in the body.
func (h *handler) reactByBody(c *gin.Context) {
	var req reactionRequest
	if !bindOptional(c, &req) {
		return
	}
	if req.ID == "" {
		respondError(c, apperrors.Validation("Shayari id required"))
		return
	}
	h.doReact(c, req.ID, req.Emoji)
}

func (h *handler) doReact(c *gin.Context, id, emoji string) {
	rec, err := h.svc.React(c.Request.Context(), middleware.IdentityFrom(c), id, emoji)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecord(rec))
}

// bindOptional decodes a JSON body into v. An empty body leaves v zeroed so
// the service reports which fields are missing.
func bindOptional(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperrors.Validation("Invalid JSON body").WithDetail(err.Error()))
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	ae := apperrors.From(err)
	body := gin.H{"message": ae.Message}
	if ae.Detail != "" {
		body["error"] = ae.Detail
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ae.HTTPStatus(), body)
}
