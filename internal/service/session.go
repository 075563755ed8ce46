package service

import "log/slog"

// resetter wipes persisted feed state (consumer-defined interface)
type resetter interface {
	Reset() error
}

// SessionService manages persisted session state
type SessionService struct {
	store  resetter
	logger *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(store resetter, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{store: store, logger: logger}
}

// Reset forgets the last seen clip and every like
func (s *SessionService) Reset() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	s.logger.Info("cleared feed state")
	return nil
}
