package services

import "context"

func (s *sessionService) BeginEdit(ctx context.Context) {
	s.mu.Lock()
	s.draft = s.profileName
	s.editing = true
	s.mu.Unlock()

	s.notify()
}

// CommitEdit stores draft as the profile name. Empty text is a valid name.
func (s *sessionService) CommitEdit(ctx context.Context, draft string) {
	s.mu.Lock()
	s.profileName = draft
	s.draft = draft
	s.editing = false
	s.write(ctx, KeyProfileName, []byte(draft))
	s.mu.Unlock()

	s.log.Info(ctx, "profile renamed", "name", draft)
	s.notify()
}

func (s *sessionService) CancelEdit(ctx context.Context) {
	s.mu.Lock()
	s.draft = s.profileName
	s.editing = false
	s.mu.Unlock()

	s.notify()
}

func (s *sessionService) ProfileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileName
}

func (s *sessionService) Draft() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *sessionService) IsEditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}
