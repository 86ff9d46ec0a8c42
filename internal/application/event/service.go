package event

import (
	"strings"
	"time"
)

// QREncode renders a ticket identifier as a PNG payload.
type QREncode func(ticketID string) ([]byte, error)

type Service struct {
	repo          EventRepo
	tickets       TicketReserver
	likes         LikesRepo
	registrations RegistrationsRepo
	categories    CategoryGetter
	media         MediaStore
	encodeQR      QREncode
	cache         Cache
	clock         Clock

	ttlDetails time.Duration
	ttlList    time.Duration
}

func New(
	repo EventRepo,
	tickets TicketReserver,
	likes LikesRepo,
	registrations RegistrationsRepo,
	categories CategoryGetter,
	media MediaStore,
	encodeQR QREncode,
	cache Cache,
	clock Clock,
	ttlDetails, ttlList time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	if ttlList == 0 {
		ttlList = 15 * time.Second
	}
	return &Service{
		repo:          repo,
		tickets:       tickets,
		likes:         likes,
		registrations: registrations,
		categories:    categories,
		media:         media,
		encodeQR:      encodeQR,
		cache:         cache,
		clock:         clock,
		ttlDetails:    ttlDetails,
		ttlList:       ttlList,
	}
}

func isOrganizerOf(actorID, organizerID string) bool {
	return strings.TrimSpace(actorID) != "" && actorID == organizerID
}
