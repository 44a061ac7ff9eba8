// Package theme owns the dark/light mode of a session and resolves typed,
// immutable style bundles for it.
//
// Integration example:
//
//	state := theme.NewState(ctx, store, bus, logger)
//	bundle, err := theme.Resolve(state.Mode(), pty.Term)
//	if err != nil {
//		return err
//	}
//	header := bundle.Header.Lipgloss(renderer)
//	prompt := bundle.Prompt.Lipgloss(renderer)
package theme
