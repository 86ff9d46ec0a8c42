package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/eventhub/internal/domain"
)

type Repo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

// Create is staff only. Names are unique; duplicates surface as a conflict.
func (s *Service) Create(ctx context.Context, name string, isStaff bool) (*domain.Category, error) {
	if !isStaff {
		return nil, domain.ErrForbidden("staff only")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, domain.ErrValidationMeta("invalid field", map[string]string{"name": "required, <= 100 chars"})
	}
	c := &domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string, isStaff bool) error {
	if !isStaff {
		return domain.ErrForbidden("staff only")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
