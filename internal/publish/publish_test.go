package publish

import (
        "bufio"
        "encoding/json"
        "os"
        "path/filepath"
        "strings"
        "testing"

        "quotemark-cli/internal/model"
        "quotemark-cli/internal/store"
)

const posting = "Senior Go Engineer\nAcme Corp is hiring in Oslo."

func newStore(t *testing.T) store.Store {
        t.Helper()
        s := store.Store{Dir: t.TempDir()}
        if err := s.Ensure(); err != nil {
                t.Fatalf("ensure: %v", err)
        }
        for _, name := range []string{"job", "blank"} {
                if err := os.WriteFile(s.PostingPath(name), []byte(posting), 0o644); err != nil {
                        t.Fatalf("write posting: %v", err)
                }
        }
        if _, err := s.SaveFact("job", model.FieldCompany, model.Fact{Fact: "Acme", SubstringQuote: "Acme Corp"}); err != nil {
                t.Fatalf("save: %v", err)
        }
        if _, err := s.SaveFact("job", model.FieldSalary, model.Fact{Fact: "100k", SubstringQuote: "$100,000"}); err != nil {
                t.Fatalf("save: %v", err)
        }
        return s
}

func TestRenderPostingMarkdown_ListsFactsQuotesAndPosting(t *testing.T) {
        t.Parallel()
        s := newStore(t)

        md, err := RenderPostingMarkdown(s, "job")
        if err != nil {
                t.Fatalf("RenderPostingMarkdown: %v", err)
        }
        for _, want := range []string{
                "# job",
                "Labeled: 2/5",
                "### Company\n\n- Fact: Acme\n- Found at: bytes 19-28\n\n> Acme Corp",
                "### Salary\n\n- Fact: 100k\n- Found at: not in posting",
                "### Location\n\n_Not labeled._",
                "## Posting\n\n```text\nSenior Go Engineer",
        } {
                if !strings.Contains(md, want) {
                        t.Fatalf("expected %q in:\n%s", want, md)
                }
        }
}

func TestWriteWorkspace_WritesIndexPostingsAndDataset(t *testing.T) {
        t.Parallel()
        s := newStore(t)
        to := t.TempDir()

        res, err := WriteWorkspace(s, to, WriteOptions{})
        if err != nil {
                t.Fatalf("WriteWorkspace: %v", err)
        }
        if res.Postings != 1 || len(res.Written) != 3 {
                t.Fatalf("unexpected result: %+v", res)
        }
        if _, err := os.Stat(filepath.Join(to, "postings", "job.md")); err != nil {
                t.Fatalf("stat job.md: %v", err)
        }
        if _, err := os.Stat(filepath.Join(to, "postings", "blank.md")); !os.IsNotExist(err) {
                t.Fatalf("unlabeled posting should be skipped, stat err=%v", err)
        }

        f, err := os.Open(filepath.Join(to, "labels.jsonl"))
        if err != nil {
                t.Fatalf("open dataset: %v", err)
        }
        defer f.Close()
        sc := bufio.NewScanner(f)
        var recs []map[string]any
        for sc.Scan() {
                var rec map[string]any
                if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
                        t.Fatalf("unmarshal line: %v", err)
                }
                recs = append(recs, rec)
        }
        if len(recs) != 1 || recs[0]["posting"] != "job" {
                t.Fatalf("unexpected records: %v", recs)
        }
        spans, _ := recs[0]["spans"].(map[string]any)
        company, _ := spans["company"].(map[string]any)
        if company["start"] != float64(19) || company["end"] != float64(28) {
                t.Fatalf("unexpected company span: %v", spans)
        }
        if spans["salary"] != nil {
                t.Fatalf("salary quote is not in the posting; expected null span, got %v", spans["salary"])
        }

        if _, err := WriteWorkspace(s, to, WriteOptions{}); err == nil {
                t.Fatalf("expected second export without --overwrite to fail")
        }
        res, err = WriteWorkspace(s, to, WriteOptions{Overwrite: true, IncludeUnlabeled: true})
        if err != nil || res.Postings != 2 {
                t.Fatalf("overwrite export: %+v, %v", res, err)
        }
}
