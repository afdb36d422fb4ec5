package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/salon-booking-backend/internal/staff"
)

type Handler struct {
	service staff.Service
}

func NewHandler(service staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListStaffRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	members, total, err := h.service.List(c.Request.Context(), staff.Filter{
		Name:        req.Name,
		LocationID:  req.LocationID,
		Status:      staff.Status(req.Status),
		HomeService: req.HomeService,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortOrder:   strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(response.MapItems(members, NewStaffResponse), req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), staff.CreateRequest{
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		LocationIDs: body.LocationIDs,
		Status:      staff.Status(body.Status),
		HomeService: body.HomeService,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewStaffResponse(m))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid staff id", err)
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(m))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid staff id", err)
		return
	}
	var body UpdateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := staff.UpdateRequest{
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		LocationIDs: body.LocationIDs,
		HomeService: body.HomeService,
	}
	if body.Status != nil {
		st := staff.Status(*body.Status)
		req.Status = &st
	}

	m, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(m))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid staff id", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAvatar accepts a multipart "file" field holding a JPEG or PNG.
func (h *Handler) UploadAvatar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid staff id", err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, staff.MaxAvatarBytes+1<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required", err)
		return
	}
	if fileHeader.Size > staff.MaxAvatarBytes {
		response.Error(c, staff.ErrAvatarTooLarge)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable upload", err)
		return
	}
	defer src.Close()

	m, err := h.service.UploadAvatar(c.Request.Context(), uri.ID, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(m))
}

// ServeAvatar streams the stored avatar (or its thumbnail with ?size=thumbnail).
func (h *Handler) ServeAvatar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid staff id", err)
		return
	}
	var query AvatarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	stream, err := h.service.OpenAvatar(c.Request.Context(), uri.ID, query.Size == "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	// Headers are already sent; a copy error means the client went away.
	_, _ = io.Copy(c.Writer, stream)
}
