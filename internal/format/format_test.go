package format

import (
        "bytes"
        "strings"
        "testing"
)

type fact struct {
        Fact           string `json:"fact"`
        SubstringQuote string `json:"substring_quote"`
}

func TestWriteEDN_KeywordsAndNesting(t *testing.T) {
        var buf bytes.Buffer
        v := map[string]any{
                "data": map[string]any{
                        "job_title": fact{Fact: "Engineer", SubstringQuote: "Senior Engineer"},
                        "count":     3,
                        "tags":      []string{"a", "b"},
                        "missing":   nil,
                        "ok":        true,
                },
        }
        if err := Write(&buf, v, "edn", false); err != nil {
                t.Fatalf("write: %v", err)
        }
        got := strings.TrimSpace(buf.String())
        want := `{:data {:count 3 :job-title {:fact "Engineer" :substring-quote "Senior Engineer"} :missing nil :ok true :tags ["a" "b"]}}`
        if got != want {
                t.Fatalf("edn:\n got %s\nwant %s", got, want)
        }
}

func TestWriteEDN_Pretty(t *testing.T) {
        var buf bytes.Buffer
        if err := WriteEDN(&buf, map[string]any{"a": []any{1, 2}, "b": map[string]any{}}, true); err != nil {
                t.Fatalf("write: %v", err)
        }
        want := "{\n  :a [\n    1\n    2\n  ]\n  :b {}\n}\n"
        if buf.String() != want {
                t.Fatalf("pretty edn:\n got %q\nwant %q", buf.String(), want)
        }
}

func TestWrite_UnknownFormat(t *testing.T) {
        if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
                t.Fatalf("expected error for unknown format")
        }
}

func TestWriteJSON(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": "x"}, "", false); err != nil {
                t.Fatalf("write: %v", err)
        }
        if buf.String() != "{\"data\":\"x\"}\n" {
                t.Fatalf("json = %q", buf.String())
        }
}

func TestWriteJSON_KeepsQuoteCharacters(t *testing.T) {
        var buf bytes.Buffer
        if err := WriteJSON(&buf, map[string]string{"quote": "<100k> & equity"}, false); err != nil {
                t.Fatalf("write: %v", err)
        }
        if buf.String() != "{\"quote\":\"<100k> & equity\"}\n" {
                t.Fatalf("json = %q", buf.String())
        }
}
