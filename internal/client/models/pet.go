// Package models defines client-side data models used by the PetCheck CLI.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/common"
)

// Species classifies a pet. The set is closed.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// AllSpecies lists the supported species in display order.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesOther}

// legacy French names written by earlier versions of the app
var speciesAliases = map[string]Species{
	"chien": SpeciesDog,
	"chat":  SpeciesCat,
	"lapin": SpeciesRabbit,
}

// ParseSpecies converts user or stored text into a Species. Matching is
// case-insensitive and accepts the legacy aliases chien, chat and lapin.
func ParseSpecies(s string) (Species, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, sp := range AllSpecies {
		if v == string(sp) {
			return sp, nil
		}
	}
	if sp, ok := speciesAliases[v]; ok {
		return sp, nil
	}
	return "", fmt.Errorf("%w: unknown species %q", common.ErrorInvalidInput, s)
}

// Valid reports whether s is one of AllSpecies.
func (s Species) Valid() bool {
	for _, sp := range AllSpecies {
		if s == sp {
			return true
		}
	}
	return false
}

// WireName is the species key understood by the lookup service, which
// predates the English names. SpeciesOther has no key there and is sent as is.
func (s Species) WireName() string {
	for alias, sp := range speciesAliases {
		if sp == s {
			return alias
		}
	}
	return string(s)
}

// Emoji returns the icon shown next to a pet of this species.
func (s Species) Emoji() string {
	switch s {
	case SpeciesDog:
		return "🐕"
	case SpeciesCat:
		return "🐱"
	case SpeciesRabbit:
		return "🐰"
	default:
		return "🐾"
	}
}

// Pet is a roster member. Pets are immutable once created; ID is never reused.
type Pet struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Species Species `json:"species"`
}

// UnmarshalJSON also reads rosters written by earlier versions of the app,
// which used numeric ids and French species names. Unknown species decode as
// SpeciesOther.
func (p *Pet) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID      json.RawMessage `json:"id"`
		Name    string          `json:"name"`
		Species string          `json:"species"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var id string
	switch {
	case len(raw.ID) == 0 || bytes.Equal(raw.ID, []byte("null")):
		return fmt.Errorf("%w: pet without id", common.ErrorInvalidInput)
	case raw.ID[0] == '"':
		if err := json.Unmarshal(raw.ID, &id); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw.ID, &n); err != nil {
			return fmt.Errorf("%w: pet id %s", common.ErrorInvalidInput, raw.ID)
		}
		id = n.String()
	}

	sp, err := ParseSpecies(raw.Species)
	if err != nil {
		sp = SpeciesOther
	}

	*p = Pet{ID: id, Name: raw.Name, Species: sp}
	return nil
}

func (p Pet) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Species.Emoji(), p.Name, p.ID)
}

// DefaultRoster is the roster used when nothing has been persisted yet.
func DefaultRoster() []Pet {
	return []Pet{
		{ID: "1", Name: "Fripouille", Species: SpeciesDog},
		{ID: "2", Name: "Pu-Yi", Species: SpeciesCat},
	}
}
