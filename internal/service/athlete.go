package service

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
)

// AthleteRepository is the storage contract of AthleteService.
type AthleteRepository interface {
	CreateAthlete(ctx context.Context, payload *model.CreateAthleteRequest) (*model.Athlete, error)
	GetAthlete(ctx context.Context, id int64) (*model.Athlete, error)
	ListAthletes(ctx context.Context, page model.Pagination) ([]model.Athlete, error)
	UpdateAthlete(ctx context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error)
	DeleteAthlete(ctx context.Context, id int64) (*model.Athlete, error)
	SearchAthletes(ctx context.Context, criteria model.AthleteSearch, page model.Pagination) ([]model.Athlete, error)
}

type AthleteService struct {
	repo AthleteRepository
}

func NewAthleteService(repo AthleteRepository) *AthleteService {
	return &AthleteService{repo: repo}
}

func (s *AthleteService) CreateAthlete(ctx context.Context, payload *model.CreateAthleteRequest) (*model.Athlete, error) {
	athlete, err := s.repo.CreateAthlete(ctx, payload)
	if err != nil {
		return nil, err
	}

	logFor(ctx).Info().
		Str("event", "athlete_created").
		Int64("athlete_id", athlete.ID).
		Msg("athlete created")

	return athlete, nil
}

func (s *AthleteService) GetAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	return s.repo.GetAthlete(ctx, id)
}

func (s *AthleteService) ListAthletes(ctx context.Context, page model.Pagination) ([]model.Athlete, error) {
	return s.repo.ListAthletes(ctx, page)
}

// UpdateAthlete applies a partial update; only fields present in the
// payload are written.
func (s *AthleteService) UpdateAthlete(ctx context.Context, payload *model.UpdateAthleteRequest) (*model.Athlete, error) {
	return s.repo.UpdateAthlete(ctx, payload.ID, payload.AthletePatch)
}

// DeleteAthlete soft-deletes the athlete and returns it as it was marked.
func (s *AthleteService) DeleteAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	athlete, err := s.repo.DeleteAthlete(ctx, id)
	if err != nil {
		return nil, err
	}

	logFor(ctx).Info().
		Str("event", "athlete_deleted").
		Int64("athlete_id", id).
		Msg("athlete deleted")

	return athlete, nil
}

func (s *AthleteService) SearchAthletes(ctx context.Context, payload *model.SearchAthletesRequest) ([]model.Athlete, error) {
	return s.repo.SearchAthletes(ctx, payload.AthleteSearch, payload.Pagination)
}
