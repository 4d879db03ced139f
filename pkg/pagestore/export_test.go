package pagestore

// Relay exposes relay to tests.
func (s *Store) Relay(payload string) error { return s.relay(payload) }
