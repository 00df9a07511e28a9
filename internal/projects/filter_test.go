package projects

import (
	"testing"
	"time"

	"myfuture/internal/seed"
	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestApplyResetIsIdentity(t *testing.T) {
	list := seed.SampleProjectList()

	got := Apply(list, NewFilter())

	require.Len(t, got, len(list))
	for i := range list {
		assert.Equal(t, list[i].ID, got[i].ID, "order must be preserved")
	}
}

func TestApplySearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	list := seed.SampleProjectList()

	byName := Apply(list, Filter{Search: "solar", Status: StatusBoth})
	require.Len(t, byName, 1)
	assert.Equal(t, "Solar Panel Installation", byName[0].Name)

	byDescription := Apply(list, Filter{Search: "MURAL", Status: StatusBoth})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Art Mural", byDescription[0].Name)

	byCategory := Apply(list, Filter{Search: "sustain", Status: StatusBoth})
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Solar Panel Installation", byCategory[0].Name)
}

func TestApplySearchGarden(t *testing.T) {
	got := Apply(seed.SampleProjectList(), Filter{Search: "garden", Status: StatusBoth})

	require.Len(t, got, 1)
	assert.Equal(t, "Community Garden", got[0].Name)
}

func TestApplyEmptyCategorySelectionMeansUnrestricted(t *testing.T) {
	list := seed.SampleProjectList()

	all := []string{"Environment", "Art", "Education", "Community Service", "Sustainability"}

	none := Apply(list, Filter{Status: StatusBoth})
	everything := Apply(list, Filter{Categories: all, Status: StatusBoth})

	assert.Equal(t, everything, none)
}

func TestApplyCategorySubset(t *testing.T) {
	got := Apply(seed.SampleProjectList(), Filter{
		Categories: []string{"Art", "Education"},
		Status:     StatusBoth,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Art Mural", got[0].Name)
	assert.Equal(t, "Tech Workshop", got[1].Name)
}

func TestApplyDateBoundsAreInclusive(t *testing.T) {
	list := seed.SampleProjectList()

	// proj-001 started exactly 2024-03-01.
	after := date(t, "2024-03-01")
	got := Apply(list, Filter{After: &after, Status: StatusBoth})

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "proj-001", "a project starting on the bound passes")
	assert.NotContains(t, ids, "proj-005", "started 2024-02-19, before the bound")

	before := date(t, "2024-03-01")
	got = Apply(list, Filter{Before: &before, Status: StatusBoth})
	ids = ids[:0]
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"proj-001", "proj-005"}, ids)
}

func TestApplyStatusPartitions(t *testing.T) {
	completedAt := date(t, "2024-08-05")
	list := []types.Project{
		{ID: "done", Name: "Done", DateCompleted: &completedAt, Progress: 100, Goal: 100},
		{ID: "open", Name: "Open", Progress: 100, Goal: 100},
	}

	completed := Apply(list, Filter{Status: StatusCompleted})
	require.Len(t, completed, 1)
	assert.Equal(t, "done", completed[0].ID)

	notCompleted := Apply(list, Filter{Status: StatusNotCompleted})
	require.Len(t, notCompleted, 1)
	assert.Equal(t, "open", notCompleted[0].ID, "full funding alone does not complete a project")

	both := Apply(list, Filter{Status: StatusBoth})
	assert.Len(t, both, 2)
}

func TestApplySinglePredicateConjunction(t *testing.T) {
	started := date(t, "2024-03-01")
	p := types.Project{
		ID:          "p1",
		Name:        "Solar Panel",
		Description: "Panels for the library",
		Category:    "Sustainability",
		DateStarted: started,
	}

	after := date(t, "2024-01-01")
	passing := Filter{
		Search:     "solar",
		After:      &after,
		Categories: []string{"Sustainability"},
		Status:     StatusNotCompleted,
	}
	assert.Equal(t, []types.Project{p}, Apply([]types.Project{p}, passing))

	failing := passing
	failing.Categories = []string{"Art"}
	assert.Empty(t, Apply([]types.Project{p}, failing), "one failing predicate rejects the project")
}

func TestApplyDoesNotReorder(t *testing.T) {
	list := seed.SampleProjectList()

	got := Apply(list, Filter{Status: StatusNotCompleted})

	// proj-004 is completed; everything else survives in order.
	want := []string{"proj-001", "proj-002", "proj-003", "proj-005"}
	require.Len(t, got, len(want))
	for i, id := range want {
		assert.Equal(t, id, got[i].ID)
	}
}

func TestPercentComplete(t *testing.T) {
	assert.Equal(t, 0.3, PercentComplete(types.Project{Progress: 30, Goal: 100}))
	assert.Equal(t, 1.0, PercentComplete(types.Project{Progress: 150, Goal: 100}), "clamped above")
	assert.Equal(t, 0.0, PercentComplete(types.Project{Progress: -5, Goal: 100}), "clamped below")
	assert.Equal(t, 0.0, PercentComplete(types.Project{Progress: 30, Goal: 0}), "zero goal never yields NaN or Inf")
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"completed", "notCompleted", "both"} {
		_, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
	}

	_, ok := ParseStatus("finished")
	assert.False(t, ok)
}

func TestCompletedPolicyIgnoresProgress(t *testing.T) {
	funded := types.Project{Progress: 100, Goal: 100}
	assert.False(t, funded.Completed())

	marked := types.Project{Progress: 10, Goal: 100, DateCompleted: utils.TimePtr(time.Now())}
	assert.True(t, marked.Completed())
}
