package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/eventhub/internal/application/event"
	"github.com/baechuer/eventhub/internal/domain"
	"github.com/baechuer/eventhub/internal/transport/http/dto"
	"github.com/baechuer/eventhub/internal/transport/http/middleware"
	"github.com/baechuer/eventhub/internal/transport/http/response"
	"github.com/baechuer/eventhub/internal/transport/http/validate"
)

const maxPosterBytes = 5 << 20

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) mediaURL(key string) string { return h.svc.MediaURL(key) }

// Public

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	var afterPtr, beforePtr *time.Time
	if v := q.Get("start_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"start_after": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		afterPtr = &tt
	}
	if v := q.Get("start_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"start_before": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		beforePtr = &tt
	}

	filter := event.ListFilter{
		StartAfter:  afterPtr,
		StartBefore: beforePtr,
		Location:    q.Get("location"),
		Category:    q.Get("category"),
		Search:      q.Get("search"),
		Featured:    q.Get("featured") == "true",
		Page:        page,
		PageSize:    pageSize,
	}

	items, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	out := make([]dto.EventResp, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToEventResp(it, h.mediaURL))
	}
	response.Data(w, http.StatusOK, dto.PageResp[dto.EventResp]{
		Items:    out,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	e, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(e, h.mediaURL))
}

// Organizer

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	e, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:     middleware.UserID(r),
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		Capacity:    req.Capacity,
		Featured:    req.Featured,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventResp(e, h.mediaURL))
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	var req dto.UpdateEventReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	e, err := h.svc.Update(r.Context(), event.UpdateCmd{
		ActorID:     middleware.UserID(r),
		EventID:     id,
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		Capacity:    req.Capacity,
		Featured:    req.Featured,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(e, h.mediaURL))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	if err := h.svc.Delete(r.Context(), id, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventsHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	file, header, err := formImage(r, "poster")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	e, err := h.svc.SetPoster(r.Context(), id, middleware.UserID(r), ext, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventResp(e, h.mediaURL))
}

func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	items, total, err := h.svc.ListMine(r.Context(), middleware.UserID(r), page, pageSize)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.EventResp, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToEventResp(it, h.mediaURL))
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	response.Data(w, http.StatusOK, dto.PageResp[dto.EventResp]{
		Items:    out,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *EventsHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}
	attendees, err := h.svc.ListAttendees(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, attendees)
}

// Attendee

func (h *EventsHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	t, created, err := h.svc.RSVP(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Data(w, status, dto.ToTicketResp(t, h.mediaURL))
}

func (h *EventsHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		}))
		return
	}

	liked, err := h.svc.ToggleLike(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	status := http.StatusOK
	if liked {
		status = http.StatusCreated
	}
	response.Data(w, status, map[string]bool{"liked": liked})
}

func (h *EventsHandler) ListMyLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.ListMyLikes(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.LikeResp, 0, len(likes))
	for _, l := range likes {
		out = append(out, dto.ToLikeResp(l, h.mediaURL))
	}
	response.Data(w, http.StatusOK, out)
}

func (h *EventsHandler) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.ListMyRegistrations(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	out := make([]dto.RegistrationResp, 0, len(regs))
	for _, reg := range regs {
		out = append(out, dto.ToRegistrationResp(reg, h.mediaURL))
	}
	response.Data(w, http.StatusOK, out)
}

// formImage pulls a single image upload out of a multipart form.
func formImage(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxPosterBytes); err != nil {
		return nil, nil, domain.ErrValidationMeta("invalid form", map[string]string{
			field: "multipart form required, max 5MB",
		})
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, domain.ErrValidationMeta("invalid form", map[string]string{
			field: "file is required",
		})
	}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		file.Close()
		return nil, nil, domain.ErrValidationMeta("invalid form", map[string]string{
			field: "unsupported image type",
		})
	}
	return file, header, nil
}
