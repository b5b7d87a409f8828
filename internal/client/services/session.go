// Package services contains the PetCheck session store: the single owner of
// the profile, the pet roster, the active selection and the state of the last
// product lookup.
//
// The durable part (profile name, roster, selection) is written through a
// state.Repository on every change and read back once by NewSessionService.
// Persistence failures are logged and never surface to the caller; the
// in-memory change is kept.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/petcheck/internal/client/client"
	"github.com/dmitrijs2005/petcheck/internal/client/models"
	"github.com/dmitrijs2005/petcheck/internal/client/repositories/state"
	"github.com/dmitrijs2005/petcheck/internal/common"
	"github.com/dmitrijs2005/petcheck/internal/logging"
)

// Persistence keys.
const (
	KeyProfileName = "profileName"
	KeyPets        = "pets"
	KeySelectedPet = "selectedPet"
)

const DefaultProfileName = "Sylvie"

var ErrPetNotFound = errors.New("pet not found")

// State is a point-in-time copy of everything the presentation layer shows.
type State struct {
	ProfileName string
	Draft       string
	Editing     bool
	Pets        []models.Pet
	Selected    *models.Pet
	Code        string
	Outcome     models.Outcome
}

// SessionService is the client-side session store.
//
// Contract:
//   - Profile: BeginEdit/CommitEdit/CancelEdit around the display name.
//     Only CommitEdit persists; any text, including empty, is accepted.
//   - Roster: AddPet/DeletePet keep an ordered list of pets with unique ids.
//     Deleting the selected pet clears the selection.
//   - Selection: at most one active pet, always present in the roster.
//   - Scan: SubmitCodeQuery/SubmitImageQuery drive the outcome through
//     Idle, Pending and then Succeeded or Failed. Concurrent submissions are
//     not deduplicated; the last one to finish wins.
//
// All methods are safe for concurrent use.
type SessionService interface {
	BeginEdit(ctx context.Context)
	CommitEdit(ctx context.Context, draft string)
	CancelEdit(ctx context.Context)
	ProfileName() string
	Draft() string
	IsEditing() bool

	AddPet(ctx context.Context, name string, species models.Species) (models.Pet, bool)
	DeletePet(ctx context.Context, id string)
	Pets() []models.Pet

	Select(ctx context.Context, id string) error
	ClearSelection(ctx context.Context)
	RestoreSelection(ctx context.Context)
	Selected() (models.Pet, bool)

	SubmitCodeQuery(ctx context.Context, code string)
	SubmitImageQuery(ctx context.Context, image []byte)
	Outcome() models.Outcome
	Code() string
	SetCode(code string)

	Snapshot() State
	Reset(ctx context.Context)
	Stored(ctx context.Context) (map[string][]byte, error)
}

type Option func(*sessionService)

// WithOnChange registers fn to be called with a fresh snapshot after every
// state change. fn runs outside the store lock and may call back into it.
func WithOnChange(fn func(State)) Option {
	return func(s *sessionService) { s.onChange = fn }
}

// WithDefaultProfileName overrides the name used when none is persisted.
func WithDefaultProfileName(name string) Option {
	return func(s *sessionService) { s.defaultProfileName = name }
}

func WithLogger(l logging.Logger) Option {
	return func(s *sessionService) { s.log = l }
}

// sessionService guards its fields with mu. The lock is held across
// repository writes so stored values follow the in-memory order, and is
// always released before calling the lookup client.
type sessionService struct {
	repo   state.Repository
	lookup client.Client
	log    logging.Logger

	onChange           func(State)
	defaultProfileName string

	mu          sync.RWMutex
	profileName string
	draft       string
	editing     bool
	pets        []models.Pet
	selectedID  string
	code        string
	outcome     models.Outcome
}

// NewSessionService loads the persisted profile and roster (falling back to
// defaults), restores the selection and returns a ready store.
func NewSessionService(ctx context.Context, repo state.Repository, lookup client.Client, opts ...Option) SessionService {
	s := &sessionService{
		repo:               repo,
		lookup:             lookup,
		log:                logging.Nop(),
		defaultProfileName: DefaultProfileName,
		outcome:            models.Idle(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("module", "session")

	s.load(ctx)
	s.RestoreSelection(ctx)
	return s
}

func (s *sessionService) load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profileName = s.defaultProfileName
	if v, ok := s.read(ctx, KeyProfileName); ok {
		s.profileName = string(v)
	}
	s.draft = s.profileName

	s.pets = models.DefaultRoster()
	if v, ok := s.read(ctx, KeyPets); ok {
		var pets []models.Pet
		if err := json.Unmarshal(v, &pets); err != nil {
			s.log.Warn(ctx, "stored roster is unreadable, using defaults", "error", err)
		} else {
			s.pets = dedupe(pets)
		}
	}

	s.log.Debug(ctx, "session loaded", "profile", s.profileName, "pets", len(s.pets))
}

// read fetches key, reporting false when it is absent or unreadable.
func (s *sessionService) read(ctx context.Context, key string) ([]byte, bool) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Error(ctx, "failed to read state", "key", key, "error", err)
		return nil, false
	}
	return v, true
}

func (s *sessionService) write(ctx context.Context, key string, value []byte) {
	if err := s.repo.Set(ctx, key, value); err != nil {
		s.log.Error(ctx, "failed to persist state", "key", key, "error", err)
	}
}

func (s *sessionService) writeJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "failed to encode state", "key", key, "error", err)
		return
	}
	s.write(ctx, key, b)
}

func (s *sessionService) remove(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "failed to remove state", "key", key, "error", err)
	}
}

// Reset wipes every stored key and returns the store to its first-run state:
// default profile name, default roster, no selection and no lookup.
func (s *sessionService) Reset(ctx context.Context) {
	s.mu.Lock()
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear state", "error", err)
	}
	s.profileName = s.defaultProfileName
	s.draft = s.profileName
	s.editing = false
	s.pets = models.DefaultRoster()
	s.selectedID = ""
	s.code = ""
	s.outcome = models.Idle()
	s.mu.Unlock()

	s.log.Info(ctx, "session reset")
	s.notify()
}

// Stored returns the raw persisted values by key.
func (s *sessionService) Stored(ctx context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}
	return m, nil
}

func (s *sessionService) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *sessionService) snapshotLocked() State {
	st := State{
		ProfileName: s.profileName,
		Draft:       s.draft,
		Editing:     s.editing,
		Pets:        append([]models.Pet(nil), s.pets...),
		Code:        s.code,
		Outcome:     s.outcome,
	}
	if p, ok := s.selectedLocked(); ok {
		st.Selected = &p
	}
	return st
}

// notify must be called without holding mu.
func (s *sessionService) notify() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}

// dedupe drops pets whose id was already seen, keeping the first.
func dedupe(pets []models.Pet) []models.Pet {
	seen := make(map[string]struct{}, len(pets))
	out := make([]models.Pet, 0, len(pets))
	for _, p := range pets {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
