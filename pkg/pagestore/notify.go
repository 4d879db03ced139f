package pagestore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/reek/pkg/db"
	"github.com/dmitrymomot/reek/pkg/pages"
)

type notification struct {
	Origin  string `json:"origin"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	OldPath string `json:"old_path,omitempty"`
}

// emit publishes e locally and broadcasts it to other processes. A failed
// broadcast is logged; the write itself has already been committed.
func (s *Store) emit(ctx context.Context, e pages.Event) {
	s.Publish(e)

	payload, err := json.Marshal(notification{
		Origin:  s.origin,
		Kind:    e.Kind.String(),
		Path:    e.Page.Path,
		OldPath: e.OldPath,
	})
	if err != nil {
		return
	}
	if err := db.Notify(ctx, s.conn, s.channel, string(payload)); err != nil {
		s.logger.WarnContext(ctx, "page change broadcast failed",
			slog.String("channel", s.channel),
			slog.String("path", e.Page.Path),
			slog.Any("error", err),
		)
	}
}

// Listen relays writes made by other processes to subscribers as
// pages.EventInvalidated until ctx is done. Without a postgres pool it
// returns nil at once.
func (s *Store) Listen(ctx context.Context) error {
	if s.conn.Pool == nil {
		return nil
	}

	s.logger.InfoContext(ctx, "listening for page changes", slog.String("channel", s.channel))
	return db.Listen(ctx, s.conn.Pool, s.channel, func(payload string) {
		if err := s.relay(payload); err != nil {
			s.logger.WarnContext(ctx, "ignoring page change notification",
				slog.String("payload", payload),
				slog.Any("error", err),
			)
		}
	})
}

func (s *Store) relay(payload string) error {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return errors.Join(ErrPayload, err)
	}
	if n.Origin == s.origin {
		return nil
	}
	s.Publish(pages.Event{
		Kind:    pages.EventInvalidated,
		Page:    pages.Page{Path: n.Path},
		OldPath: n.OldPath,
	})
	return nil
}
