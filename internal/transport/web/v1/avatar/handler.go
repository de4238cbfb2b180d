package avatar

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	Storage domain.AvatarStorage
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary     Upload avatar
// @Description multipart-поле file; аватар хранится по фиксированному ключу,
// @Description повторная загрузка перезаписывает старый.
// @Tags        avatar
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "image"
// @Success     200 {object} domain.APIEnvelope{response=uploadResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/avatar [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "avatar.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.Storage.PutAvatar(r.Context(), me.ID, file, header.Size, contentType)
	if err != nil {
		logx.Error(h.Log, reqID, op, "put failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "size", header.Size)
	v1.WriteOKResponse(w, r, uploadResponse{URL: url})
}

// Get godoc
// @Summary     Download own avatar
// @Tags        avatar
// @Produce     image/jpeg
// @Success     200
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/avatar [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "avatar.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	rc, size, contentType, err := h.Storage.GetAvatar(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// Delete godoc
// @Summary     Delete own avatar
// @Tags        avatar
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/avatar [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "avatar.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := h.Storage.DeleteAvatar(r.Context(), me.ID); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKResponse(w, r, map[string]bool{"deleted": true})
}
