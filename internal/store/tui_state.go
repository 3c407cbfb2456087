package store

import (
        "encoding/json"
        "errors"
        "os"
        "path/filepath"
        "strings"

        "quotemark-cli/internal/model"
)

const tuiStateFileName = "tui_state.json"

// TUIState is where the TUI was when it last exited. It lives in the
// workspace's local dir and is best effort: callers tolerate missing or
// invalid data.
type TUIState struct {
        Version int `json:"version"`

        // View is "postings" or "label".
        View    string          `json:"view,omitempty"`
        Posting string          `json:"posting,omitempty"`
        Field   model.FieldName `json:"field,omitempty"`
}

func (s Store) tuiStatePath() string {
        return filepath.Join(s.localDir(), tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
        if strings.TrimSpace(s.Dir) == "" {
                return &TUIState{Version: 1}, nil
        }
        b, err := os.ReadFile(s.tuiStatePath())
        if err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return &TUIState{Version: 1}, nil
                }
                return nil, err
        }
        var st TUIState
        if err := json.Unmarshal(b, &st); err != nil {
                // Corrupt state is treated as missing.
                return &TUIState{Version: 1}, nil
        }
        if st.Version == 0 {
                st.Version = 1
        }
        if _, err := model.ParseField(string(st.Field)); err != nil {
                st.Field = ""
        }
        return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
        if st == nil || strings.TrimSpace(s.Dir) == "" {
                return nil
        }
        if err := s.Ensure(); err != nil {
                return err
        }
        if st.Version == 0 {
                st.Version = 1
        }
        b, err := json.MarshalIndent(st, "", "  ")
        if err != nil {
                return err
        }
        return atomicWriteFile(s.localDir(), tuiStateFileName+".*.tmp", s.tuiStatePath(), append(b, '\n'), 0o644)
}
