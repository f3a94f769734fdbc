package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/registry/internal/metrics"
	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/service"
	"github.com/deppfellow/registry/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAthletes is a map-backed athlete store. Deletion is soft: deleted
// rows stay in the map and are skipped by every read.
type memoryAthletes struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]*model.Athlete
	lastPg  model.Pagination
	lastHit model.AthleteSearch
}

func newMemoryAthletes() *memoryAthletes {
	return &memoryAthletes{rows: map[int64]*model.Athlete{}}
}

func (m *memoryAthletes) CreateAthlete(_ context.Context, p *model.CreateAthleteRequest) (*model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	a := &model.Athlete{Name: *p.Name, Age: p.Age, Hometown: p.Hometown, SportEvent: p.SportEvent}
	a.ID = m.nextID
	m.rows[a.ID] = a
	return a, nil
}

func (m *memoryAthletes) live(id int64) (*model.Athlete, error) {
	a, ok := m.rows[id]
	if !ok || a.IsDeleted {
		return nil, sqlerr.WrapNoRows("athletes", pgx.ErrNoRows)
	}
	return a, nil
}

func (m *memoryAthletes) liveIDs() []int64 {
	ids := make([]int64, 0, len(m.rows))
	for id, a := range m.rows {
		if !a.IsDeleted {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memoryAthletes) GetAthlete(_ context.Context, id int64) (*model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.live(id)
}

func (m *memoryAthletes) ListAthletes(_ context.Context, page model.Pagination) ([]model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastPg = page
	out := []model.Athlete{}
	for i, id := range m.liveIDs() {
		if i < page.Offset() || len(out) >= page.Size() {
			continue
		}
		out = append(out, *m.rows[id])
	}
	return out, nil
}

func (m *memoryAthletes) UpdateAthlete(_ context.Context, id int64, patch model.AthletePatch) (*model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.live(id)
	if err != nil {
		return nil, err
	}
	if patch.Name.Set {
		a.Name = patch.Name.Value
	}
	if patch.Hometown.Set {
		a.Hometown = nil
		if !patch.Hometown.Null {
			v := patch.Hometown.Value
			a.Hometown = &v
		}
	}
	return a, nil
}

func (m *memoryAthletes) DeleteAthlete(_ context.Context, id int64) (*model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.live(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	a.IsDeleted = true
	a.DeletedAt = &now
	return a, nil
}

func (m *memoryAthletes) SearchAthletes(_ context.Context, c model.AthleteSearch, page model.Pagination) ([]model.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastHit = c
	m.lastPg = page

	// Only the hometown filter is applied.
	out := []model.Athlete{}
	for _, id := range m.liveIDs() {
		a := m.rows[id]
		if c.Hometown != nil && (a.Hometown == nil ||
			!strings.Contains(strings.ToLower(*a.Hometown), strings.ToLower(*c.Hometown))) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

// duplicateSupplies rejects every insert with a unique violation on code.
type duplicateSupplies struct {
	service.MedicalSupplyRepository
}

func (duplicateSupplies) CreateMedicalSupply(context.Context, *model.CreateMedicalSupplyRequest) (*model.MedicalSupply, error) {
	return nil, fmt.Errorf("insert: %w", &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		TableName:      "medical_supplies",
		ConstraintName: "medical_supplies_code_key",
	})
}

type fixture struct {
	client   *client.Client
	athletes *memoryAthletes
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	athletes := newMemoryAthletes()
	m := metrics.New()
	services := &service.Services{
		Athlete:       service.NewAthleteService(athletes),
		MedicalSupply: service.NewMedicalSupplyService(duplicateSupplies{}, nil),
	}

	c, err := client.NewInProcessClient(New(services, m).MCPServer())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "toolserver-test", Version: "1.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	return &fixture{client: c, athletes: athletes, metrics: m}
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := f.client.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	f := newFixture(t)

	res, err := f.client.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, len(res.Tools))
	for i, tool := range res.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{
		"create_athlete", "list_athletes", "get_athlete",
		"update_athlete", "delete_athlete", "search_athletes",
		"create_medical_supply", "list_medical_supplies", "get_medical_supply",
		"update_medical_supply", "delete_medical_supply", "search_medical_supplies",
	}, names)

	for _, tool := range res.Tools {
		if strings.HasPrefix(tool.Name, "delete_") {
			assert.Contains(t, tool.Description, "Returns the deleted record.")
		}
		if tool.Name == "create_medical_supply" {
			assert.ElementsMatch(t, []string{"name", "code"}, tool.InputSchema.Required)
			assert.Contains(t, tool.InputSchema.Properties, "expiry_date")
		}
	}
}

func TestAthleteTools_Lifecycle(t *testing.T) {
	f := newFixture(t)

	text, isErr := f.call(t, "create_athlete", map[string]any{"name": "Li Ming", "age": 24, "hometown": "Beijing"})
	require.False(t, isErr, text)

	var created model.Athlete
	require.NoError(t, json.Unmarshal([]byte(text), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Li Ming", created.Name)
	require.NotNil(t, created.Age)
	assert.Equal(t, int32(24), *created.Age)

	text, isErr = f.call(t, "update_athlete", map[string]any{"id": 1, "hometown": nil})
	require.False(t, isErr, text)
	assert.JSONEq(t, `null`, mustField(t, text, "hometown"))
	assert.JSONEq(t, `"Li Ming"`, mustField(t, text, "name"))

	text, isErr = f.call(t, "list_athletes", map[string]any{"skip": 0, "limit": 5})
	require.False(t, isErr, text)
	var listed []model.Athlete
	require.NoError(t, json.Unmarshal([]byte(text), &listed))
	assert.Len(t, listed, 1)
	assert.Equal(t, 5, f.athletes.lastPg.Size())

	text, isErr = f.call(t, "delete_athlete", map[string]any{"id": 1})
	require.False(t, isErr, text)
	assert.JSONEq(t, `true`, mustField(t, text, "is_deleted"))
	assert.NotEqual(t, `null`, mustField(t, text, "deleted_at"))

	text, isErr = f.call(t, "get_athlete", map[string]any{"id": 1})
	assert.True(t, isErr)
	assert.Equal(t, "Athlete not found", text)

	text, isErr = f.call(t, "delete_athlete", map[string]any{"id": 1})
	assert.True(t, isErr)
	assert.Equal(t, "Athlete not found", text)

	text, isErr = f.call(t, "list_athletes", map[string]any{})
	require.False(t, isErr, text)
	assert.Equal(t, "[]", text)
}

func mustField(t *testing.T, body, key string) string {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &fields))
	raw, ok := fields[key]
	require.True(t, ok, key)
	return string(raw)
}

func TestAthleteTools_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"missing name", "create_athlete", map[string]any{"age": 20}, "Validation failed"},
		{"wrong type", "create_athlete", map[string]any{"name": "A", "age": "old"}, "Invalid arguments"},
		{"missing id", "get_athlete", map[string]any{}, "id: is required"},
		{"fractional id", "delete_athlete", map[string]any{"id": 1.5}, "id: must be an integer"},
		{"negative skip", "list_athletes", map[string]any{"skip": -1}, "Validation failed"},
		{"limit too large", "search_athletes", map[string]any{"limit": 5000}, "Validation failed"},
		{"null name", "update_athlete", map[string]any{"id": 1, "name": nil}, "name: must not be null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := f.call(t, tt.tool, tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestSearchAthletes_DecodesFilters(t *testing.T) {
	f := newFixture(t)

	text, isErr := f.call(t, "search_athletes", map[string]any{
		"sport_event": "swim",
		"min_age":     18,
		"max_height":  1.9,
		"limit":       3,
	})
	require.False(t, isErr, text)
	assert.Equal(t, "[]", text)

	got := f.athletes.lastHit
	require.NotNil(t, got.SportEvent)
	assert.Equal(t, "swim", *got.SportEvent)
	require.NotNil(t, got.MinAge)
	assert.Equal(t, int32(18), *got.MinAge)
	require.NotNil(t, got.MaxHeight)
	assert.Equal(t, 1.9, *got.MaxHeight)
	assert.Nil(t, got.MaxAge)
	assert.Equal(t, 3, f.athletes.lastPg.Size())
	assert.Equal(t, 0, f.athletes.lastPg.Offset())
}

func TestSearchAthletes_SkipsDeleted(t *testing.T) {
	f := newFixture(t)

	for _, args := range []map[string]any{
		{"name": "Li Ming", "hometown": "Beijing"},
		{"name": "Wang Lei", "hometown": "Beijing"},
	} {
		text, isErr := f.call(t, "create_athlete", args)
		require.False(t, isErr, text)
	}
	text, isErr := f.call(t, "delete_athlete", map[string]any{"id": 1})
	require.False(t, isErr, text)

	text, isErr = f.call(t, "search_athletes", map[string]any{"hometown": "beijing"})
	require.False(t, isErr, text)

	var found []model.Athlete
	require.NoError(t, json.Unmarshal([]byte(text), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Wang Lei", found[0].Name)
}

func TestCreateMedicalSupply_Duplicate(t *testing.T) {
	f := newFixture(t)

	text, isErr := f.call(t, "create_medical_supply", map[string]any{"name": "Gauze", "code": "G-1"})
	assert.True(t, isErr)
	assert.Equal(t, "A Medical Supply with this Code already exists", text)
}

func TestToolCallsAreCounted(t *testing.T) {
	f := newFixture(t)

	f.call(t, "create_athlete", map[string]any{"name": "A"})
	f.call(t, "get_athlete", map[string]any{"id": 99})

	count, err := testutil.GatherAndCount(f.metrics.Registry(), "registry_tool_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
