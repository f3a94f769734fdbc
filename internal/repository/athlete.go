package repository

import (
	"context"

	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/search"
)

const athleteColumns = "id, name, height, weight, description, sport_event, age, hometown, remarks, " +
	"created_at, updated_at, deleted_at, is_deleted"

type AthleteRepository struct {
	table            table[model.Athlete]
	zeroBoundsAbsent bool
}

func NewAthleteRepository(db DBTX, zeroBoundsAbsent bool) *AthleteRepository {
	return &AthleteRepository{
		table:            table[model.Athlete]{db: db, name: "athletes", columns: athleteColumns},
		zeroBoundsAbsent: zeroBoundsAbsent,
	}
}

func (r *AthleteRepository) CreateAthlete(ctx context.Context, payload *model.CreateAthleteRequest) (*model.Athlete, error) {
	return r.table.insert(ctx, payload.Assignments())
}

func (r *AthleteRepository) GetAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	return r.table.get(ctx, id)
}

func (r *AthleteRepository) ListAthletes(ctx context.Context, page model.Pagination) ([]model.Athlete, error) {
	return r.table.list(ctx, page.Offset(), page.Size())
}

// UpdateAthlete writes the fields present in the patch. An empty patch still
// bumps updated_at so the caller gets the current row back.
func (r *AthleteRepository) UpdateAthlete(ctx context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error) {
	return r.table.update(ctx, id, patch.Assignments())
}

func (r *AthleteRepository) DeleteAthlete(ctx context.Context, id int64) (*model.Athlete, error) {
	return r.table.softDelete(ctx, id)
}

func (r *AthleteRepository) SearchAthletes(ctx context.Context, criteria model.AthleteSearch, page model.Pagination) ([]model.Athlete, error) {
	return r.table.search(ctx, athletePredicate(criteria, r.zeroBoundsAbsent), page.Offset(), page.Size())
}

func athletePredicate(c model.AthleteSearch, zeroBoundsAbsent bool) *search.Builder {
	b := search.New(search.WithZeroBoundsAbsent(zeroBoundsAbsent)).
		Contains("name", c.Name).
		Contains("sport_event", c.SportEvent).
		Contains("hometown", c.Hometown).
		Contains("description", c.Description).
		Contains("remarks", c.Remarks)

	search.Range(b, "age", c.MinAge, c.MaxAge)
	search.Range(b, "height", c.MinHeight, c.MaxHeight)
	search.Range(b, "weight", c.MinWeight, c.MaxWeight)
	return b
}
