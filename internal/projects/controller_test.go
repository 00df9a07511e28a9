package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"myfuture/internal/api"
	"myfuture/internal/seed"
	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClient(t *testing.T, baseURL string, withToken bool) *api.Client {
	t.Helper()

	config := &types.Config{
		APIBaseURL:        baseURL,
		RequestTimeoutSec: 5,
		TokenPath:         filepath.Join(t.TempDir(), "session"),
	}

	tokens, err := api.NewTokenStore(config)
	require.NoError(t, err)

	if withToken {
		require.NoError(t, tokens.Save(api.Session{Token: "test-token"}))
	}

	return api.New(config, tokens, testLogger())
}

func projectsResponse(list []types.Project) string {
	body, err := json.Marshal(map[string]any{"projects": list})
	if err != nil {
		panic(err)
	}
	return string(body)
}

func TestLoadReplacesListAndDerivesCategories(t *testing.T) {
	fixtures := seed.SampleProjectList()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, projectsResponse(fixtures))
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, false), testLogger())
	require.NoError(t, controller.Load(context.Background()))

	got := controller.Projects()
	require.Len(t, got, 5)
	assert.Equal(t, "proj-001", got[0].ID)
	assert.Equal(t, "proj-005", got[4].ID)

	var labels []string
	for _, opt := range controller.Categories() {
		labels = append(labels, opt.Label)
		assert.False(t, opt.Selected, "fresh options start deselected")
	}
	assert.Equal(t, []string{"Environment", "Art", "Education", "Community Service", "Sustainability"}, labels)
}

func TestLoadFailureLeavesListEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, false), testLogger())

	err := controller.Load(context.Background())
	require.Error(t, err)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Empty(t, controller.Projects())
}

func TestLoadLastResponseWins(t *testing.T) {
	first := []types.Project{{ID: "stale", Name: "Stale", Category: "Old"}}
	second := []types.Project{{ID: "fresh", Name: "Fresh", Category: "New"}}

	var requests atomic.Int64
	entered := make(chan int64, 2)
	release := []chan struct{}{make(chan struct{}), make(chan struct{})}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		entered <- n
		<-release[n-1]
		if n == 1 {
			fmt.Fprint(w, projectsResponse(first))
			return
		}
		fmt.Fprint(w, projectsResponse(second))
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, false), testLogger())

	firstDone := make(chan error, 1)
	go func() { firstDone <- controller.Load(context.Background()) }()
	<-entered

	secondDone := make(chan error, 1)
	go func() { secondDone <- controller.Load(context.Background()) }()
	<-entered

	// The newer load completes first and wins.
	close(release[1])
	require.NoError(t, <-secondDone)

	// The superseded response arrives afterwards and must be discarded.
	close(release[0])
	require.NoError(t, <-firstDone)

	got := controller.Projects()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestLoadCancelledContextAppliesNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, false), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- controller.Load(ctx) }()
	cancel()

	require.Error(t, <-done)
	assert.Empty(t, controller.Projects())
}

func TestAddOfflineSynthesizesProvisionalID(t *testing.T) {
	controller := NewController(nil, testLogger())
	controller.SetProjects(seed.SampleProjectList())

	created, err := controller.Add(context.Background(), ProjectInput{
		Name:     "River Walk",
		Category: "Environment",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "local-"), "offline IDs are provisional")
	assert.Equal(t, 100, created.Goal, "goal defaults to 100")

	list := controller.Projects()
	require.Len(t, list, 6)
	assert.Equal(t, created.ID, list[5].ID, "new entries are appended")
	assert.Equal(t, "proj-001", list[0].ID, "existing entries untouched")
}

func TestAddRemoteUsesServerAssignedID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "token=test-token", r.Header.Get("Cookie"))

		var p types.Project
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = "srv-42"

		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"project": p}))
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, true), testLogger())

	created, err := controller.Add(context.Background(), ProjectInput{Name: "Bike Lanes", Category: "Environment"})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", created.ID)

	list := controller.Projects()
	require.Len(t, list, 1)
	assert.Equal(t, "srv-42", list[0].ID)
}

func TestEditPreservesLengthAndOrder(t *testing.T) {
	controller := NewController(nil, testLogger())
	controller.SetProjects(seed.SampleProjectList())

	edited, err := controller.Edit(context.Background(), "proj-003", ProjectInput{
		Description: "Teach programming basics to everyone.",
		Progress:    utils.IntPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, "Teach programming basics to everyone.", edited.Description)
	assert.Equal(t, 60, edited.Progress)
	assert.Equal(t, "Tech Workshop", edited.Name, "unset fields are kept")

	list := controller.Projects()
	require.Len(t, list, 5)
	for i, id := range []string{"proj-001", "proj-002", "proj-003", "proj-004", "proj-005"} {
		assert.Equal(t, id, list[i].ID)
	}
	assert.Equal(t, 60, list[2].Progress)
}

func TestEditUnknownIDSignalsNotFound(t *testing.T) {
	controller := NewController(nil, testLogger())
	controller.SetProjects(seed.SampleProjectList())

	before := controller.Projects()

	_, err := controller.Edit(context.Background(), "proj-999", ProjectInput{Name: "Nope"})
	require.ErrorIs(t, err, types.ErrProjectNotFound)

	assert.Equal(t, before, controller.Projects(), "list unchanged on not-found")
}

func TestCategoriesStayInSyncWithList(t *testing.T) {
	controller := NewController(nil, testLogger())
	controller.SetProjects(seed.SampleProjectList())

	require.NoError(t, controller.SetCategorySelected("Art", true))
	assert.Equal(t, []string{"Art"}, controller.SelectedCategories())

	// Recategorize the only Art project; the stale label must vanish
	// while surviving selections carry over.
	require.NoError(t, controller.SetCategorySelected("Education", true))
	_, err := controller.Edit(context.Background(), "proj-002", ProjectInput{Category: "Culture"})
	require.NoError(t, err)

	var labels []string
	for _, opt := range controller.Categories() {
		labels = append(labels, opt.Label)
	}
	assert.NotContains(t, labels, "Art")
	assert.Contains(t, labels, "Culture")
	assert.Equal(t, []string{"Education"}, controller.SelectedCategories())

	err = controller.SetCategorySelected("Art", true)
	require.Error(t, err, "stale labels are not selectable")
}

func TestFetchMapsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/projects/proj-001" {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"project": types.Project{ID: "proj-001", Name: "Community Garden"},
			}))
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	controller := NewController(testClient(t, ts.URL, false), testLogger())

	p, err := controller.Fetch(context.Background(), "proj-001")
	require.NoError(t, err)
	assert.Equal(t, "Community Garden", p.Name)

	_, err = controller.Fetch(context.Background(), "missing")
	require.ErrorIs(t, err, types.ErrProjectNotFound)
}

func TestProjectByID(t *testing.T) {
	controller := NewController(nil, testLogger())
	controller.SetProjects(seed.SampleProjectList())

	p, err := controller.Project("proj-004")
	require.NoError(t, err)
	assert.Equal(t, "Street Clean-Up", p.Name)

	_, err = controller.Project("missing")
	require.ErrorIs(t, err, types.ErrProjectNotFound)
}
