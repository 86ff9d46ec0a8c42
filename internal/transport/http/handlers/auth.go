package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/baechuer/eventhub/internal/application/auth"
	"github.com/baechuer/eventhub/internal/domain"
	"github.com/baechuer/eventhub/internal/transport/http/dto"
	"github.com/baechuer/eventhub/internal/transport/http/middleware"
	"github.com/baechuer/eventhub/internal/transport/http/response"
	"github.com/baechuer/eventhub/internal/transport/http/validate"
)

type AuthHandler struct {
	svc      *auth.Service
	avatars  auth.AvatarStore
	mediaURL dto.URLResolver
}

func NewAuthHandler(svc *auth.Service, avatars auth.AvatarStore, mediaURL dto.URLResolver) *AuthHandler {
	return &AuthHandler{svc: svc, avatars: avatars, mediaURL: mediaURL}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterCmd
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.AuthResp{
		User:   dto.ToUserResp(res.User, h.mediaURL),
		Tokens: dto.ToTokensResp(res.Tokens),
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.AuthResp{
		User:   dto.ToUserResp(res.User, h.mediaURL),
		Tokens: dto.ToTokensResp(res.Tokens),
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	toks, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToTokensResp(toks))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Err(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResp(u, h.mediaURL))
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req auth.UpdateProfileCmd
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResp(u, h.mediaURL))
}

func (h *AuthHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	file, header, err := formImage(r, "avatar")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	u, err := h.svc.SetAvatar(r.Context(), h.avatars, middleware.UserID(r), ext, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResp(u, h.mediaURL))
}
