package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/eventhub/internal/application/ticket"
	"github.com/baechuer/eventhub/internal/domain"
	"github.com/baechuer/eventhub/internal/transport/http/dto"
	"github.com/baechuer/eventhub/internal/transport/http/middleware"
	"github.com/baechuer/eventhub/internal/transport/http/response"
	"github.com/baechuer/eventhub/internal/transport/http/validate"
)

type TicketsHandler struct {
	svc      *ticket.Service
	mediaURL dto.URLResolver
}

func NewTicketsHandler(svc *ticket.Service, mediaURL dto.URLResolver) *TicketsHandler {
	return &TicketsHandler{svc: svc, mediaURL: mediaURL}
}

func (h *TicketsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ticket_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"ticket_id": "must be uuid",
		}))
		return
	}
	t, err := h.svc.GetByID(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToTicketResp(t, h.mediaURL))
}

type verifyReq struct {
	TicketID string `json:"ticket_id"`
}

// Verify marks a ticket used. Organizer only; one-shot.
func (h *TicketsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if !validate.IsUUID(req.TicketID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid field", map[string]string{
			"ticket_id": "must be uuid",
		}))
		return
	}
	t, err := h.svc.Verify(r.Context(), req.TicketID, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.VerifyResp{Valid: true, Ticket: dto.ToTicketResp(t, h.mediaURL)})
}

func (h *TicketsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListMine(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.TicketResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, dto.ToTicketResp(t, h.mediaURL))
	}
	response.Data(w, http.StatusOK, out)
}
