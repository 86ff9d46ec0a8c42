package dto

import (
	"github.com/baechuer/eventhub/internal/application/auth"
	"github.com/baechuer/eventhub/internal/domain"
)

// URLResolver turns a stored blob key into a serveable URL.
type URLResolver func(key string) string

func ToEventResp(e *domain.Event, mediaURL URLResolver) EventResp {
	out := EventResp{
		ID:          e.ID,
		OrganizerID: e.OrganizerID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		Location:    e.Location,
		Tags:        e.Tags,
		Capacity:    e.Capacity,
		SeatsLeft:   e.SeatsLeft,
		Featured:    e.Featured,
		CreatedAt:   e.CreatedAt,
	}
	if e.Category != nil {
		out.Category = &CategoryResp{ID: e.Category.ID, Name: e.Category.Name}
	}
	if e.PosterKey != "" && mediaURL != nil {
		out.PosterURL = mediaURL(e.PosterKey)
	}
	return out
}

func ToTicketResp(t *domain.Ticket, mediaURL URLResolver) TicketResp {
	out := TicketResp{
		ID:         t.ID,
		EventID:    t.EventID,
		AttendeeID: t.AttendeeID,
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
		ScannedAt:  t.ScannedAt,
	}
	if t.QRKey != "" && mediaURL != nil {
		out.QRURL = mediaURL(t.QRKey)
	}
	if t.Event != nil {
		ev := ToEventResp(t.Event, mediaURL)
		out.Event = &ev
	}
	return out
}

func ToRegistrationResp(reg *domain.Registration, mediaURL URLResolver) RegistrationResp {
	out := RegistrationResp{
		ID:        reg.ID,
		EventID:   reg.EventID,
		CreatedAt: reg.CreatedAt,
	}
	if reg.Event != nil {
		ev := ToEventResp(reg.Event, mediaURL)
		out.Event = &ev
	}
	return out
}

func ToLikeResp(l *domain.Like, mediaURL URLResolver) LikeResp {
	out := LikeResp{
		ID:        l.ID,
		EventID:   l.EventID,
		CreatedAt: l.CreatedAt,
	}
	if l.Event != nil {
		ev := ToEventResp(l.Event, mediaURL)
		out.Event = &ev
	}
	return out
}

func ToCategoryResp(c *domain.Category) CategoryResp {
	return CategoryResp{ID: c.ID, Name: c.Name}
}

func ToUserResp(u *domain.User, mediaURL URLResolver) UserResp {
	out := UserResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
	if u.AvatarKey != "" && mediaURL != nil {
		out.AvatarURL = mediaURL(u.AvatarKey)
	}
	return out
}

func ToTokensResp(t auth.Tokens) TokensResp {
	return TokensResp{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresIn:    t.ExpiresIn,
	}
}
