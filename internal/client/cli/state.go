package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// Reset wipes the stored session after a y/N confirmation.
func (a *App) Reset(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Erase profile, pets and selection? (y/N)", a.promptOut())
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if answer != "y" && answer != "Y" {
		printlnFn("Reset cancelled")
		return nil
	}

	a.session.Reset(ctx)
	printlnFn("Session reset")
	return nil
}

// Dump prints the raw stored values, one key per line.
func (a *App) Dump(ctx context.Context) error {
	all, err := a.session.Stored(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if len(all) == 0 {
		printlnFn("Nothing stored")
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(all)) {
		printlnFn(fmt.Sprintf("%s = %s", k, all[k]))
	}
	return nil
}
