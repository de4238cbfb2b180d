package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/logx"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
	v1 "github.com/rozennrd/dave-backend/internal/transport/web/v1"
)

// HandlerRegister обрабатывает POST /api/register
type HandlerRegister struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
}

type registerRequest struct {
	Email string `json:"email"`
	Pswd  string `json:"pswd"`
}

type registerResponse struct {
	Login string `json:"login"`
}

// Register godoc
// @Summary     Register new user
// @Description Самостоятельная регистрация по email и паролю.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "email, pswd"
// @Success     200 {object} domain.APIEnvelope{response=registerResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "path", r.URL.Path)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if !domain.ValidEmail(req.Email) || !domain.ValidPassword(req.Pswd) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Pswd)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	u, err := h.Users.CreateUser(r.Context(), req.Email, []byte(hashStr))
	if err != nil {
		// возможен уникальный конфликт по login — маппим как bad params
		logx.Error(h.Log, reqID, op, "create user failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "login", u.Login)
	v1.WriteOKResponse(w, r, registerResponse{Login: u.Login})
}
