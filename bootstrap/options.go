package bootstrap

import (
	"github.com/kbukum/seqshare/logger"
)

// Option customizes NewApp.
type Option func(*settings)

type settings struct {
	log *logger.Logger
}

// WithLogger makes the App log through l. Without it NewApp initializes the
// global logger from the config's logging section, which tests avoid by
// passing logger.Nop().
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}
