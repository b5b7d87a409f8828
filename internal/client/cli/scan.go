package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

var errLookupInFlight = errors.New("a lookup is already in progress")

func (a *App) Scan(ctx context.Context, code string) error {
	if a.session.Outcome().IsPending() {
		printlnFn(errLookupInFlight.Error())
		return errLookupInFlight
	}
	a.session.SubmitCodeQuery(ctx, code)
	return a.Status(ctx)
}

func (a *App) Photo(ctx context.Context, path string) error {
	if a.session.Outcome().IsPending() {
		printlnFn(errLookupInFlight.Error())
		return errLookupInFlight
	}

	image, err := readFile(path)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	a.session.SubmitImageQuery(ctx, image)
	if _, selected := a.session.Selected(); selected && len(image) == 0 {
		printlnFn("Image is empty, nothing sent")
		return nil
	}
	return a.Status(ctx)
}

func (a *App) Status(ctx context.Context) error {
	printlnFn(formatOutcome(a.session.Outcome(), a.session.Code()))
	return nil
}

func formatOutcome(o models.Outcome, code string) string {
	switch o.State {
	case models.OutcomePending:
		return fmt.Sprintf("Checking %s...", code)
	case models.OutcomeSucceeded:
		label := "RESULT"
		switch o.Verdict {
		case models.VerdictSafe:
			label = "SAFE"
		case models.VerdictUnsafe:
			label = "UNSAFE"
		}
		return fmt.Sprintf("[%s] %s: %s", label, code, o.Message)
	case models.OutcomeFailed:
		return "Error: " + o.Message
	default:
		return "No lookup yet"
	}
}
