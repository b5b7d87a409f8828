package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
	"github.com/google/uuid"
)

// seam for tests
var newPetID = uuid.NewString

// AddPet appends a pet and persists the roster. A blank name or an invalid
// species is ignored and reported as ok=false.
func (s *sessionService) AddPet(ctx context.Context, name string, species models.Species) (models.Pet, bool) {
	name = strings.TrimSpace(name)
	if name == "" || !species.Valid() {
		return models.Pet{}, false
	}

	s.mu.Lock()
	id := newPetID()
	for s.indexLocked(id) >= 0 {
		id = newPetID()
	}
	pet := models.Pet{ID: id, Name: name, Species: species}
	s.pets = append(s.pets, pet)
	s.writeJSON(ctx, KeyPets, s.pets)
	s.mu.Unlock()

	s.log.Info(ctx, "pet added", "id", pet.ID, "species", pet.Species)
	s.notify()
	return pet, true
}

// DeletePet removes the pet with id, clearing the selection if it pointed
// at it. Unknown ids are ignored.
func (s *sessionService) DeletePet(ctx context.Context, id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	s.pets = append(s.pets[:i:i], s.pets[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
		s.remove(ctx, KeySelectedPet)
	}
	s.writeJSON(ctx, KeyPets, s.pets)
	s.mu.Unlock()

	s.log.Info(ctx, "pet deleted", "id", id)
	s.notify()
}

func (s *sessionService) Pets() []models.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Pet(nil), s.pets...)
}

func (s *sessionService) indexLocked(id string) int {
	for i, p := range s.pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}
