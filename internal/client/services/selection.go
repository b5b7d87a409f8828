package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

func (s *sessionService) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPetNotFound, id)
	}
	s.selectedID = id
	s.writeJSON(ctx, KeySelectedPet, s.pets[i])
	s.mu.Unlock()

	s.notify()
	return nil
}

// ClearSelection empties the selection and removes the stored record.
func (s *sessionService) ClearSelection(ctx context.Context) {
	s.mu.Lock()
	s.selectedID = ""
	s.remove(ctx, KeySelectedPet)
	s.mu.Unlock()

	s.notify()
}

// RestoreSelection adopts the stored selection if its id is still in the
// roster. A stale or unreadable record leaves the selection empty and is kept
// in storage as is.
func (s *sessionService) RestoreSelection(ctx context.Context) {
	s.mu.Lock()
	s.selectedID = ""
	if v, ok := s.read(ctx, KeySelectedPet); ok {
		var saved models.Pet
		switch err := json.Unmarshal(v, &saved); {
		case err != nil:
			s.log.Warn(ctx, "stored selection is unreadable", "error", err)
		case s.indexLocked(saved.ID) < 0:
			s.log.Debug(ctx, "stored selection no longer in roster", "id", saved.ID)
		default:
			s.selectedID = saved.ID
		}
	}
	s.mu.Unlock()

	s.notify()
}

// Selected resolves the selection against the current roster.
func (s *sessionService) Selected() (models.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLocked()
}

func (s *sessionService) selectedLocked() (models.Pet, bool) {
	if s.selectedID == "" {
		return models.Pet{}, false
	}
	i := s.indexLocked(s.selectedID)
	if i < 0 {
		return models.Pet{}, false
	}
	return s.pets[i], true
}
