package fontswap

import "context"

// Reapply applies req again when the documents no longer target req.Family
// or have lost their read-only flag, which is what happens when the game
// replaces them with its stock copies. It reports whether it applied.
func (m *Manager) Reapply(ctx context.Context, req ApplyRequest) (bool, error) {
	s, err := m.Status(ctx)
	if err != nil {
		return false, err
	}
	if s.InstalledFamily == req.Family && s.DocumentsLocked {
		return false, nil
	}

	m.log.Info().
		Str("installed", s.InstalledFamily).
		Bool("locked", s.DocumentsLocked).
		Msg("font configuration was replaced; applying again")
	if _, err := m.Apply(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}
