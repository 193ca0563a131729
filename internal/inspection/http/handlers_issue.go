package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/auth"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
)

// AddIssue appends a blank issue
func (h *Handler) AddIssue(c *gin.Context) {
	d, err := h.wizard.AddIssue(c.Request.Context(), auth.InspectorID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "issue.add", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"draft": viewOf(d)})
}

// UpdateIssue replaces one field of an issue
func (h *Handler) UpdateIssue(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var body updateIssueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, "invalid request body", httpapi.BindingDetails(err)...)
		return
	}

	d, err := h.wizard.UpdateIssue(c.Request.Context(), auth.InspectorID(c), c.Param("id"), index, body.Field, body.Value)
	if err != nil {
		h.fail(c, "issue.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

// RemoveIssue deletes an issue. Removing the last remaining issue is a no-op.
func (h *Handler) RemoveIssue(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	d, err := h.wizard.RemoveIssue(c.Request.Context(), auth.InspectorID(c), c.Param("id"), index)
	if err != nil {
		h.fail(c, "issue.remove", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

// AttachImages reads the multipart "files" field and attaches every file to
// the issue.
func (h *Handler) AttachImages(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpapi.Fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		httpapi.Fail(c, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		httpapi.Fail(c, http.StatusBadRequest, "no files uploaded", httpapi.FieldDetail{Field: "files", Message: "is required"})
		return
	}

	uploads := make([]media.Upload, 0, len(files))
	for _, fh := range files {
		u, err := readUpload(fh)
		if err != nil {
			httpapi.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		uploads = append(uploads, u)
	}

	d, err := h.wizard.AttachImages(c.Request.Context(), auth.InspectorID(c), c.Param("id"), index, uploads)
	if err != nil {
		h.fail(c, "issue.attach_images", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"draft": viewOf(d)})
}

// DetachImage removes one image from an issue
func (h *Handler) DetachImage(c *gin.Context) {
	index, ok := indexParam(c, "index")
	if !ok {
		return
	}
	image, ok := indexParam(c, "image")
	if !ok {
		return
	}
	d, err := h.wizard.DetachImage(c.Request.Context(), auth.InspectorID(c), c.Param("id"), index, image)
	if err != nil {
		h.fail(c, "issue.detach_image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

func indexParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		httpapi.Fail(c, http.StatusBadRequest, fmt.Sprintf("%s must be a non-negative integer", name))
		return 0, false
	}
	return v, true
}

func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Upload{}, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Upload{}, fmt.Errorf("read %q: %w", fh.Filename, err)
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return media.Upload{FileName: fh.Filename, ContentType: contentType, Data: data}, nil
}
