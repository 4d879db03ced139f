package pagestore

import "log/slog"

// DefaultChannel is the notification channel writes are broadcast on.
const DefaultChannel = "reek_pages"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithChannel sets the notification channel.
func WithChannel(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.channel = name
		}
	}
}
