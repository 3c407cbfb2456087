package tui

import (
	"io"
	"os"
	"path/filepath"

	"quotemark-cli/internal/logger"
	"quotemark-cli/internal/selsync"
	"quotemark-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store store.Store
	// Posting opens straight into the label view when set.
	Posting string
	Mode    selsync.WriteMode
	Actor   string
	Config  *store.TUIConfig
}

func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyConfigColors(opts.Config)

	closeLog := redirectLogs(opts.Store)
	defer closeLog()

	m := newAppModel(opts)
	if opts.Posting != "" {
		if err := m.openPosting(opts.Posting); err != nil {
			return err
		}
	} else {
		m.restoreState()
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// redirectLogs keeps verbose logs off the alt screen by appending them to
// <workspace>/.quotemark/tui.log.
func redirectLogs(s store.Store) func() {
	restore := func() { logger.SetOutput(os.Stderr) }
	if !logger.IsVerbose() {
		logger.SetOutput(io.Discard)
		return restore
	}
	if err := s.Ensure(); err != nil {
		logger.SetOutput(io.Discard)
		return restore
	}
	f, err := os.OpenFile(filepath.Join(s.Dir, ".quotemark", "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return restore
	}
	logger.SetOutput(f)
	return func() {
		restore()
		_ = f.Close()
	}
}
