package tui

import (
        "fmt"
        "os"
        "os/exec"
        "strings"

        tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
        err error
}

func externalEditorName() string {
        if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
                return v
        }
        if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
                return v
        }
        return "vi"
}

// openExternalEditor hands the active quote to $VISUAL/$EDITOR. The result
// comes back as an externalEditorDoneMsg once the editor exits.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
        s := m.label
        ed := m.activeEditor()
        if s == nil || ed == nil {
                return nil, nil
        }
        args := splitShellWords(externalEditorName())
        if len(args) == 0 {
                args = []string{"vi"}
        }

        f, err := os.CreateTemp("", "quotemark-"+string(ed.name)+"-*.txt")
        if err != nil {
                return nil, err
        }
        path := f.Name()
        if _, err := f.WriteString(ed.Value()); err != nil {
                _ = f.Close()
                _ = os.Remove(path)
                return nil, err
        }
        _ = f.Close()

        s.editorPath = path
        s.editorField = s.active

        cmd := exec.Command(args[0], append(args[1:], path)...)
        return tea.ExecProcess(cmd, func(err error) tea.Msg {
                return externalEditorDoneMsg{err: err}
        }), nil
}

// applyExternalEditorResult writes the edited text back into the field it
// came from and re-highlights when that field is still active.
func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
        s := m.label
        if s == nil || strings.TrimSpace(s.editorPath) == "" {
                return
        }
        path := s.editorPath
        idx := s.editorField
        s.editorPath = ""
        defer func() { _ = os.Remove(path) }()

        if msg.err != nil {
                m.showMinibuffer("Editor failed: " + msg.err.Error())
                return
        }
        b, err := os.ReadFile(path)
        if err != nil {
                m.showMinibuffer("Editor read failed: " + err.Error())
                return
        }
        if idx < 0 || idx >= len(s.editors) {
                return
        }

        ed := s.editors[idx]
        before := ed.Value()
        after := strings.TrimRight(string(b), "\n")
        if after == before {
                m.showMinibuffer(fmt.Sprintf("No changes from %s", externalEditorName()))
                return
        }
        ed.SetValue(after)
        if idx == s.active {
                s.sync.OnFieldEdit(after)
        }
        m.showMinibuffer(fmt.Sprintf("Updated %s from %s (ctrl+s to save)", ed.name.Label(), externalEditorName()))
}
