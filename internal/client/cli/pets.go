package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
	"github.com/dmitrijs2005/petcheck/internal/client/services"
)

func (a *App) ListPets(ctx context.Context) error {
	st := a.session.Snapshot()
	if len(st.Pets) == 0 {
		printlnFn("No pets yet, use 'add'")
		return nil
	}
	for _, p := range st.Pets {
		marker := " "
		if st.Selected != nil && st.Selected.ID == p.ID {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %s", marker, p))
	}
	return nil
}

func (a *App) AddPet(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Pet name", a.promptOut())
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	species, err := GetSpecies(a.reader, a.promptOut())
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	pet, ok := a.session.AddPet(ctx, name, species)
	if !ok {
		printlnFn("A pet needs a name and a species")
		return nil
	}
	printlnFn("Added", pet.String())
	return nil
}

func (a *App) DeletePet(ctx context.Context, id string) error {
	if !slices.ContainsFunc(a.session.Pets(), func(p models.Pet) bool { return p.ID == id }) {
		printlnFn("No pet with id", id)
		return services.ErrPetNotFound
	}
	a.session.DeletePet(ctx, id)
	printlnFn("Deleted", id)
	return nil
}

func (a *App) SelectPet(ctx context.Context, id string) error {
	err := a.session.Select(ctx, id)
	if errors.Is(err, services.ErrPetNotFound) {
		printlnFn("No pet with id", id)
		return err
	}
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	pet, _ := a.session.Selected()
	printlnFn("Active pet:", pet.String())
	return nil
}

func (a *App) Unselect(ctx context.Context) error {
	a.session.ClearSelection(ctx)
	printlnFn("No active pet")
	return nil
}
