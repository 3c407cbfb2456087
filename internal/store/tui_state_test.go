package store

import (
        "os"
        "reflect"
        "testing"

        "quotemark-cli/internal/model"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
        t.Parallel()

        s := Store{Dir: t.TempDir()}

        // Missing file => default state.
        st0, err := s.LoadTUIState()
        if err != nil {
                t.Fatalf("LoadTUIState: %v", err)
        }
        if st0 == nil || st0.Version != 1 || st0.Posting != "" {
                t.Fatalf("expected default state; got %#v", st0)
        }

        want := &TUIState{Version: 1, View: "label", Posting: "go-engineer", Field: model.FieldSalary}
        if err := s.SaveTUIState(want); err != nil {
                t.Fatalf("SaveTUIState: %v", err)
        }
        got, err := s.LoadTUIState()
        if err != nil {
                t.Fatalf("LoadTUIState (after save): %v", err)
        }
        if !reflect.DeepEqual(want, got) {
                t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
        }
}

func TestTUIState_CorruptOrUnknownFieldIsIgnored(t *testing.T) {
        t.Parallel()

        s := Store{Dir: t.TempDir()}
        if err := s.Ensure(); err != nil {
                t.Fatalf("ensure: %v", err)
        }
        if err := os.WriteFile(s.tuiStatePath(), []byte("{not json"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        st, err := s.LoadTUIState()
        if err != nil || st.Version != 1 || st.View != "" {
                t.Fatalf("expected default state for corrupt file; got %#v, %v", st, err)
        }

        if err := os.WriteFile(s.tuiStatePath(), []byte(`{"view":"label","posting":"x","field":"benefits"}`), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        st, err = s.LoadTUIState()
        if err != nil || st.Posting != "x" || st.Field != "" {
                t.Fatalf("expected unknown field to be dropped; got %#v, %v", st, err)
        }
}
