package search

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr[T any](v T) *T { return &v }

func TestNew_OnlyNotDeleted(t *testing.T) {
	where, args := New().Where()

	assert.Equal(t, "is_deleted = false", where)
	assert.Empty(t, args)
}

func TestContains(t *testing.T) {
	b := New().
		Contains("name", ptr("li")).
		Contains("hometown", nil).
		Contains("remarks", ptr(""))

	where, args := b.Where()
	assert.Equal(t, `is_deleted = false AND name ILIKE @p1 ESCAPE '\'`, where)
	assert.Equal(t, pgx.NamedArgs{"p1": "%li%"}, args)
}

func TestContains_EscapesWildcards(t *testing.T) {
	_, args := New().Contains("code", ptr(`50%_off\`)).Where()
	assert.Equal(t, `%50\%\_off\\%`, args["p1"])
}

func TestRange_IndependentHalves(t *testing.T) {
	b := New()
	Range(b, "age", ptr[int32](18), nil)
	Range(b, "height", nil, ptr(1.9))

	where, args := b.Where()
	assert.Equal(t, "is_deleted = false AND age >= @p1 AND height <= @p2", where)
	assert.Equal(t, pgx.NamedArgs{"p1": int32(18), "p2": 1.9}, args)
}

func TestZeroBounds(t *testing.T) {
	t.Run("absent when enabled", func(t *testing.T) {
		b := New(WithZeroBoundsAbsent(true))
		Min(b, "age", ptr[int32](0))
		Max(b, "weight", ptr(0.0))
		Max(b, "age", ptr[int32](30))

		where, _ := b.Where()
		assert.Equal(t, "is_deleted = false AND age <= @p1", where)
	})

	t.Run("applied when disabled", func(t *testing.T) {
		b := New(WithZeroBoundsAbsent(false))
		Min(b, "stock_quantity", ptr[int32](0))

		where, args := b.Where()
		assert.Equal(t, "is_deleted = false AND stock_quantity >= @p1", where)
		assert.Equal(t, int32(0), args["p1"])
	})
}

func TestRange_Dates(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	b := New()
	Range(b, "expiry_date", &from, nil)
	assert.Equal(t, 2, b.Len())
}

func TestQuery(t *testing.T) {
	b := New().Contains("sport_event", ptr("swim"))
	Min(b, "age", ptr[int32](20))

	sql, args := b.Query("athletes", "id, name", 10, 5)

	assert.Equal(t,
		`SELECT id, name FROM athletes WHERE is_deleted = false AND sport_event ILIKE @p1 ESCAPE '\' AND age >= @p2 ORDER BY id OFFSET @skip LIMIT @limit`,
		sql,
	)
	assert.Equal(t, 10, args["skip"])
	assert.Equal(t, 5, args["limit"])
	assert.Len(t, args, 4)
}

func TestMalformedRangeIsNotRejected(t *testing.T) {
	b := New()
	Range(b, "age", ptr[int32](40), ptr[int32](20))

	where, _ := b.Where()
	assert.Equal(t, "is_deleted = false AND age >= @p1 AND age <= @p2", where)
}
