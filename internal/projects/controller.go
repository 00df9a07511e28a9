package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"myfuture/internal/api"
	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/sirupsen/logrus"
)

const defaultGoal = 100

// provisionalIDPrefix marks locally synthesized identifiers so they can
// be recognized and reconciled once the server acknowledges the record.
const provisionalIDPrefix = "local-"

// CategoryOption pairs a category label with its filter selection flag.
// The option set always mirrors the distinct categories of the current
// list; stale labels never survive a list change.
type CategoryOption struct {
	Label    string
	Selected bool
}

// ProjectInput carries the create/edit form fields. Nil pointers mean
// "leave unchanged" on edit and "use the default" on create.
type ProjectInput struct {
	Name        string
	Description string
	Category    string
	DateStarted *time.Time
	Thumbnail   string
	Progress    *int
	Goal        *int
	Contact     string
}

// Controller owns the authoritative in-memory project list for a view
// session. The list is fetched once and locally patched on add/edit.
// With a nil client the controller runs in offline mode: adds synthesize
// provisional IDs and nothing touches the network.
type Controller struct {
	client *api.Client
	logger logrus.FieldLogger

	mu         sync.Mutex
	list       []types.Project
	categories []CategoryOption
	loadGen    uint64
}

func NewController(client *api.Client, logger logrus.FieldLogger) *Controller {
	return &Controller{client: client, logger: logger}
}

// Load fetches the project collection and replaces the list. When loads
// overlap, the last one started wins: a response belonging to a
// superseded load is discarded, never merged.
func (c *Controller) Load(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("load projects: no api client configured")
	}

	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.mu.Unlock()

	resp, err := c.client.Public(ctx, http.MethodGet, "/projects", nil)
	if err != nil {
		return err
	}

	var envelope struct {
		Projects []types.Project `json:"projects"`
	}
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	if err := ctx.Err(); err != nil {
		// The owning view was torn down while the response was in
		// flight; the result must not be applied.
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		c.logger.WithField("generation", gen).Debug("discarding superseded project list response")
		return nil
	}

	c.list = envelope.Projects
	c.rebuildCategories()

	return nil
}

// SetProjects replaces the list without a network round trip. Offline
// mode and fixtures load through here.
func (c *Controller) SetProjects(list []types.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list = append([]types.Project(nil), list...)
	c.rebuildCategories()
}

// Projects returns a copy of the current list in original order.
func (c *Controller) Projects() []types.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Project(nil), c.list...)
}

// Project returns the entry with the given id.
func (c *Controller) Project(id string) (types.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.list {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Project{}, types.ErrProjectNotFound
}

// Fetch retrieves a single project from the API without touching the
// owned list; a 404 maps to types.ErrProjectNotFound. Offline mode
// falls back to the local list.
func (c *Controller) Fetch(ctx context.Context, id string) (types.Project, error) {
	if c.client == nil {
		return c.Project(id)
	}

	resp, err := c.client.Public(ctx, http.MethodGet, "/projects/"+id, nil)
	if err != nil {
		return types.Project{}, err
	}

	var envelope struct {
		Project types.Project `json:"project"`
	}
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return types.Project{}, types.ErrProjectNotFound
		}
		return types.Project{}, fmt.Errorf("fetch project %s: %w", id, err)
	}

	return envelope.Project, nil
}

// Categories returns a copy of the derived category options.
func (c *Controller) Categories() []CategoryOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CategoryOption(nil), c.categories...)
}

// SetCategorySelected toggles a category option's selection flag.
func (c *Controller) SetCategorySelected(label string, selected bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.categories {
		if c.categories[i].Label == label {
			c.categories[i].Selected = selected
			return nil
		}
	}
	return fmt.Errorf("category %q not in current list", label)
}

// SelectedCategories returns the labels currently marked selected, in
// option order, ready to hand to a Filter.
func (c *Controller) SelectedCategories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var selected []string
	for _, opt := range c.categories {
		if opt.Selected {
			selected = append(selected, opt.Label)
		}
	}
	return selected
}

// Add creates a project from the form input and appends it to the list.
// With a backend the server-assigned identifier is authoritative; in
// offline mode a provisional nanoid identifier is synthesized. Existing
// entries are never mutated.
func (c *Controller) Add(ctx context.Context, input ProjectInput) (types.Project, error) {
	project := newProject(input)

	if c.client == nil {
		project.ID = provisionalIDPrefix + utils.NanoIDSize(12)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.list = append(c.list, project)
		c.rebuildCategories()

		return project, nil
	}

	body, err := json.Marshal(project)
	if err != nil {
		return types.Project{}, fmt.Errorf("marshal project: %w", err)
	}

	resp, err := c.client.Authenticated(ctx, http.MethodPost, "/projects", bytes.NewReader(body))
	if err != nil {
		return types.Project{}, err
	}

	var envelope struct {
		Project types.Project `json:"project"`
	}
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return types.Project{}, fmt.Errorf("create project: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return types.Project{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, envelope.Project)
	c.rebuildCategories()

	return envelope.Project, nil
}

// Edit merges the supplied changes into the entry with the given id and
// replaces it at the same position; list length and order are
// preserved. An unknown id reports types.ErrProjectNotFound, distinct
// from any network failure.
func (c *Controller) Edit(ctx context.Context, id string, input ProjectInput) (types.Project, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return types.Project{}, types.ErrProjectNotFound
	}
	merged := mergeProject(c.list[idx], input)
	c.mu.Unlock()

	if c.client != nil {
		body, err := json.Marshal(merged)
		if err != nil {
			return types.Project{}, fmt.Errorf("marshal project: %w", err)
		}

		resp, err := c.client.Authenticated(ctx, http.MethodPut, "/projects/"+id, bytes.NewReader(body))
		if err != nil {
			return types.Project{}, err
		}

		var envelope struct {
			Project types.Project `json:"project"`
		}
		if err := api.DecodeJSON(resp, &envelope); err != nil {
			return types.Project{}, fmt.Errorf("update project: %w", err)
		}
		merged = envelope.Project
	}

	if err := ctx.Err(); err != nil {
		return types.Project{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The list may have been reloaded while the round trip was in
	// flight; locate the entry again before replacing it.
	idx = c.indexOf(id)
	if idx < 0 {
		return types.Project{}, types.ErrProjectNotFound
	}

	c.list[idx] = merged
	c.rebuildCategories()

	return merged, nil
}

func (c *Controller) indexOf(id string) int {
	for i, p := range c.list {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// rebuildCategories recomputes the option set from the distinct
// categories of the current list, in first-seen order. Selection flags
// carry over for labels that survive; new labels start deselected.
// Callers hold c.mu.
func (c *Controller) rebuildCategories() {
	previous := make(map[string]bool, len(c.categories))
	for _, opt := range c.categories {
		previous[opt.Label] = opt.Selected
	}

	seen := make(map[string]struct{}, len(c.list))
	options := make([]CategoryOption, 0, len(c.list))
	for _, p := range c.list {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		options = append(options, CategoryOption{
			Label:    p.Category,
			Selected: previous[p.Category],
		})
	}

	c.categories = options
}

func newProject(input ProjectInput) types.Project {
	started := time.Now()
	if input.DateStarted != nil {
		started = *input.DateStarted
	}

	goal := defaultGoal
	if input.Goal != nil {
		goal = *input.Goal
	}

	return types.Project{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		DateStarted: started,
		Thumbnail:   input.Thumbnail,
		Progress:    utils.PtrInt(input.Progress),
		Goal:        goal,
		Contact:     input.Contact,
	}
}

func mergeProject(existing types.Project, input ProjectInput) types.Project {
	merged := existing

	if input.Name != "" {
		merged.Name = input.Name
	}
	if input.Description != "" {
		merged.Description = input.Description
	}
	if input.Category != "" {
		merged.Category = input.Category
	}
	if input.DateStarted != nil {
		merged.DateStarted = *input.DateStarted
	}
	if input.Thumbnail != "" {
		merged.Thumbnail = input.Thumbnail
	}
	if input.Progress != nil {
		merged.Progress = *input.Progress
	}
	if input.Goal != nil {
		merged.Goal = *input.Goal
	}
	if input.Contact != "" {
		merged.Contact = input.Contact
	}

	return merged
}
