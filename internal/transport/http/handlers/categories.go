package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/eventhub/internal/application/category"
	"github.com/baechuer/eventhub/internal/domain"
	"github.com/baechuer/eventhub/internal/transport/http/dto"
	"github.com/baechuer/eventhub/internal/transport/http/middleware"
	"github.com/baechuer/eventhub/internal/transport/http/response"
	"github.com/baechuer/eventhub/internal/transport/http/validate"
)

type CategoriesHandler struct {
	svc *category.Service
}

func NewCategoriesHandler(svc *category.Service) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.CategoryResp, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.ToCategoryResp(c))
	}
	response.Data(w, http.StatusOK, out)
}

type createCategoryReq struct {
	Name string `json:"name"`
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	c, err := h.svc.Create(r.Context(), req.Name, middleware.IsStaff(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToCategoryResp(c))
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "category_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"category_id": "must be uuid",
		}))
		return
	}
	if err := h.svc.Delete(r.Context(), id, middleware.IsStaff(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
