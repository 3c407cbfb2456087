package publish

import (
        "bytes"
        "encoding/json"
        "errors"
        "os"
        "path/filepath"
        "strings"

        "quotemark-cli/internal/highlight"
        "quotemark-cli/internal/model"
        "quotemark-cli/internal/store"
)

type WriteOptions struct {
        // IncludeUnlabeled also exports postings with no labels yet.
        IncludeUnlabeled bool
        Overwrite        bool
}

type WriteResult struct {
        Written  []string `json:"written"`
        Postings int      `json:"postings"`
}

// Record is one line of labels.jsonl.
type Record struct {
        Posting string                              `json:"posting"`
        Labels  *model.Extraction                   `json:"labels"`
        Spans   map[model.FieldName]*highlight.Span `json:"spans"`
}

func NewRecord(s store.Store, name string) (Record, error) {
        text, err := s.ReadPosting(name)
        if err != nil {
                return Record{}, err
        }
        ex, err := s.LoadLabels(name)
        if err != nil {
                return Record{}, err
        }
        rec := Record{Posting: name, Labels: ex, Spans: map[model.FieldName]*highlight.Span{}}
        for _, spec := range model.Fields() {
                if sp, ok := quoteSpan(text, ex.Get(spec.Name).SubstringQuote); ok {
                        rec.Spans[spec.Name] = &sp
                } else {
                        rec.Spans[spec.Name] = nil
                }
        }
        return rec, nil
}

// WritePosting writes postings/<name>.md under toDir.
func WritePosting(s store.Store, name string, toDir string, opt WriteOptions) (WriteResult, error) {
        name = strings.TrimSpace(name)
        if name == "" {
                return WriteResult{}, errors.New("missing posting")
        }
        toDir = strings.TrimSpace(toDir)
        if toDir == "" {
                return WriteResult{}, errors.New("missing --to")
        }
        toDir = filepath.Clean(toDir)

        md, err := RenderPostingMarkdown(s, name)
        if err != nil {
                return WriteResult{}, err
        }
        outDir := filepath.Join(toDir, "postings")
        if err := os.MkdirAll(outDir, 0o755); err != nil {
                return WriteResult{}, err
        }
        outPath := filepath.Join(outDir, name+".md")
        if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
                return WriteResult{}, err
        }
        return WriteResult{Written: []string{outPath}, Postings: 1}, nil
}

// WriteWorkspace exports every labeled posting: one markdown file each, an
// index.md and a labels.jsonl dataset with the quote spans.
func WriteWorkspace(s store.Store, toDir string, opt WriteOptions) (WriteResult, error) {
        toDir = strings.TrimSpace(toDir)
        if toDir == "" {
                return WriteResult{}, errors.New("missing --to")
        }
        toDir = filepath.Clean(toDir)

        infos, err := s.ListPostings()
        if err != nil {
                return WriteResult{}, err
        }
        var selected []store.PostingInfo
        for _, info := range infos {
                if info.HasLabels || opt.IncludeUnlabeled {
                        selected = append(selected, info)
                }
        }

        var (
                written []string
                lines   bytes.Buffer
        )
        enc := json.NewEncoder(&lines)
        enc.SetEscapeHTML(false)
        for _, info := range selected {
                res, err := WritePosting(s, info.Name, toDir, opt)
                if err != nil {
                        return WriteResult{}, err
                }
                written = append(written, res.Written...)

                rec, err := NewRecord(s, info.Name)
                if err != nil {
                        return WriteResult{}, err
                }
                if err := enc.Encode(rec); err != nil {
                        return WriteResult{}, err
                }
        }

        if err := os.MkdirAll(toDir, 0o755); err != nil {
                return WriteResult{}, err
        }
        index, err := RenderIndexMarkdown(s, selected)
        if err != nil {
                return WriteResult{}, err
        }
        indexPath := filepath.Join(toDir, "index.md")
        if err := writeFile(indexPath, []byte(index), opt.Overwrite); err != nil {
                return WriteResult{}, err
        }
        written = append(written, indexPath)

        dataPath := filepath.Join(toDir, "labels.jsonl")
        if err := writeFile(dataPath, lines.Bytes(), opt.Overwrite); err != nil {
                return WriteResult{}, err
        }
        written = append(written, dataPath)

        return WriteResult{Written: written, Postings: len(selected)}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
        if !overwrite {
                if _, err := os.Stat(path); err == nil {
                        return errors.New("file exists (use --overwrite): " + path)
                }
        }
        return os.WriteFile(path, b, 0o644)
}
