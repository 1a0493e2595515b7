package service

import (
	"context"
	"errors"
	"strings"

	hallserrors "utsav/internal/halls/errors"
	"utsav/internal/halls/repository"
	"utsav/pkg/config"
	apperrors "utsav/pkg/errors"
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"
)

const (
	MsgNotFound   = "Hall not found."
	MsgListFailed = "Failed to load halls."
)

type HallService interface {
	List(ctx context.Context, city string) ([]*model.Hall, error)
	GetByID(ctx context.Context, id string) (*model.Hall, error)
}

type hallService struct {
	repo repository.HallRepository
	cfg  *config.Config
}

func NewHallService(repo repository.HallRepository, cfg *config.Config) HallService {
	return &hallService{
		repo: repo,
		cfg:  cfg,
	}
}

// List returns the halls in city, matched on sanitizer.CityKey so case,
// spacing and punctuation do not matter. A blank city lists everything.
func (s *hallService) List(ctx context.Context, city string) ([]*model.Hall, error) {
	cityKey := sanitizer.CityKey(city)

	halls, err := s.repo.List(ctx, cityKey)
	if err != nil {
		s.cfg.Log.Error("failed to list halls", "city", city, "error", err)
		return nil, apperrors.Internal(MsgListFailed, err)
	}

	s.cfg.Log.Debug("halls listed", "city", city, "count", len(halls))
	return halls, nil
}

func (s *hallService) GetByID(ctx context.Context, id string) (*model.Hall, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound(MsgNotFound)
	}

	hall, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hallserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID(MsgNotFound, "hall", id)
		}
		s.cfg.Log.Error("failed to get hall", "hall_id", id, "error", err)
		return nil, apperrors.Internal(MsgListFailed, err)
	}
	return hall, nil
}
