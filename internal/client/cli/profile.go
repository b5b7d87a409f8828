package cli

import (
	"context"
	"fmt"
)

const cancelToken = ":cancel"

func (a *App) ShowProfile(ctx context.Context) error {
	printlnFn(fmt.Sprintf("Profile: %s", a.session.ProfileName()))
	return nil
}

// Rename edits the profile name. Typing :cancel keeps the current one; any
// other answer, including an empty line, becomes the new name.
func (a *App) Rename(ctx context.Context) error {
	a.session.BeginEdit(ctx)

	name, err := GetSimpleText(a.reader, fmt.Sprintf("New profile name (%s to keep %q)", cancelToken, a.session.Draft()), a.promptOut())
	if err != nil {
		a.session.CancelEdit(ctx)
		printlnFn("Error:", err)
		return err
	}

	if name == cancelToken {
		a.session.CancelEdit(ctx)
		printlnFn("Rename cancelled")
		return nil
	}

	a.session.CommitEdit(ctx, name)
	printlnFn(fmt.Sprintf("Profile renamed to %q", name))
	return nil
}
