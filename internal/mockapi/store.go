package mockapi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"myfuture/internal/seed"
	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errEmailTaken = errors.New("email already registered")

type userRecord struct {
	user         types.User
	passwordHash []byte
}

// Store is the mock backend's in-memory state. The real backend and its
// persistence are out of scope; everything here lives for the process.
// Projects are kept as an ordered slice so list responses are stable.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*userRecord
	usersByEmail map[string]string
	projects     []*types.ProjectWithContributions
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*userRecord),
		usersByEmail: make(map[string]string),
	}
}

// SeedDefaults loads the fixture campaigns and demo accounts, plus
// extra fake records for demo volume.
func (s *Store) SeedDefaults(extraProjects, extraUsers int) error {
	for _, u := range append(seed.SampleUsers(), seed.FakeUsers(extraUsers)...) {
		if _, err := s.CreateUser(u.User, u.Password); err != nil {
			return fmt.Errorf("seed user %s: %w", u.User.Email, err)
		}
	}

	for _, p := range append(seed.SampleProjects(), seed.FakeProjects(extraProjects)...) {
		if _, err := s.CreateProject(p); err != nil {
			return fmt.Errorf("seed project %s: %w", p.Name, err)
		}
	}

	return nil
}

func (s *Store) CreateUser(user types.User, password string) (types.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	if user.UUID == "" {
		user.UUID = uuid.NewString()
	}

	email := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByEmail[email]; taken {
		return types.User{}, errEmailTaken
	}

	s.users[user.UUID] = &userRecord{user: user, passwordHash: hash}
	s.usersByEmail[email] = user.UUID

	return user, nil
}

func (s *Store) Authenticate(email, password string) (types.User, error) {
	s.mu.RLock()
	id, ok := s.usersByEmail[strings.ToLower(email)]
	var record *userRecord
	if ok {
		record = s.users[id]
	}
	s.mu.RUnlock()

	if record == nil {
		return types.User{}, types.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword(record.passwordHash, []byte(password)); err != nil {
		return types.User{}, types.ErrUserNotFound
	}

	return record.user, nil
}

func (s *Store) UserByID(id string) (types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.users[id]
	if !ok {
		return types.User{}, types.ErrUserNotFound
	}
	return record.user, nil
}

// PublicProjects returns the public view of every campaign: the
// contribution ledger is stripped, order preserved.
func (s *Store) PublicProjects() []types.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Project)
	}
	return out
}

func (s *Store) Project(id string) (types.ProjectWithContributions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return *p, nil
		}
	}
	return types.ProjectWithContributions{}, types.ErrProjectNotFound
}

func (s *Store) CreateProject(project types.ProjectWithContributions) (types.ProjectWithContributions, error) {
	if err := project.ValidateContributions(); err != nil {
		return types.ProjectWithContributions{}, err
	}

	if project.ID == "" {
		project.ID = utils.NanoIDSize(12)
	}
	if project.Goal == 0 {
		project.Goal = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = append(s.projects, &project)

	return project, nil
}

// UpdateProject replaces the campaign with the given id in place,
// preserving its position in the list. A payload without a ledger
// (clients edit the public view) keeps the existing contributions.
func (s *Store) UpdateProject(id string, project types.ProjectWithContributions) (types.ProjectWithContributions, error) {
	if err := project.ValidateContributions(); err != nil {
		return types.ProjectWithContributions{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.projects {
		if existing.ID == id {
			project.ID = id
			if project.CitizenContributions == nil {
				project.CitizenContributions = existing.CitizenContributions
			}
			s.projects[i] = &project
			return project, nil
		}
	}
	return types.ProjectWithContributions{}, types.ErrProjectNotFound
}
