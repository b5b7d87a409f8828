package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/client/client"
	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

// Messages recorded in a Failed outcome when no server text is available.
const (
	MsgNoPetSelected = "no pet selected"
	MsgNoCode        = "no code entered"
	MsgUnreachable   = "could not reach the lookup service"
)

// SubmitCodeQuery records code as the current query text and looks it up for
// the selected pet's species.
func (s *sessionService) SubmitCodeQuery(ctx context.Context, code string) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	s.code = code
	pet, ok := s.selectedLocked()
	switch {
	case !ok:
		s.outcome = models.Failed(MsgNoPetSelected)
	case code == "":
		s.outcome = models.Failed(MsgNoCode)
	default:
		s.outcome = models.Pending()
	}
	pending := s.outcome.IsPending()
	s.mu.Unlock()

	s.notify()
	if !pending {
		return
	}

	res, err := s.lookup.CheckCode(ctx, client.CodeQuery{Code: code, Species: pet.Species})
	if err != nil {
		s.finish(s.failure(ctx, err), nil)
		return
	}
	s.log.Debug(ctx, "code checked", "code", code, "verdict", res.Verdict)
	s.finish(models.Succeeded(res.Message, res.Verdict), nil)
}

// SubmitImageQuery sends a photographed barcode. An empty image means the
// capture was cancelled and leaves the outcome untouched.
func (s *sessionService) SubmitImageQuery(ctx context.Context, image []byte) {
	s.mu.Lock()
	pet, ok := s.selectedLocked()
	if !ok {
		s.outcome = models.Failed(MsgNoPetSelected)
		s.mu.Unlock()
		s.notify()
		return
	}
	if len(image) == 0 {
		s.mu.Unlock()
		return
	}
	s.outcome = models.Pending()
	s.mu.Unlock()
	s.notify()

	res, err := s.lookup.CheckImage(ctx, client.ImageQuery{Image: image, Species: pet.Species})
	if err != nil {
		s.finish(s.failure(ctx, err), nil)
		return
	}
	s.log.Debug(ctx, "image checked", "code", res.Code, "verdict", res.Verdict)
	s.finish(models.Succeeded(res.Message, res.Verdict), &res.Code)
}

// finish records a terminal outcome and, when code is non-nil, the decoded
// query text.
func (s *sessionService) finish(o models.Outcome, code *string) {
	s.mu.Lock()
	s.outcome = o
	if code != nil {
		s.code = *code
	}
	s.mu.Unlock()

	s.notify()
}

func (s *sessionService) failure(ctx context.Context, err error) models.Outcome {
	var se *client.ServiceError
	if errors.As(err, &se) {
		s.log.Info(ctx, "lookup rejected", "message", se.Message)
		return models.Failed(se.Message)
	}
	s.log.Warn(ctx, "lookup failed", "error", err)
	return models.Failed(MsgUnreachable)
}

func (s *sessionService) Outcome() models.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

func (s *sessionService) Code() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.code
}

// SetCode replaces the current query text without submitting it.
func (s *sessionService) SetCode(code string) {
	s.mu.Lock()
	s.code = code
	s.mu.Unlock()

	s.notify()
}
