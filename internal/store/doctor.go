package store

import (
        "encoding/json"
        "errors"
        "fmt"
        "os"
        "path/filepath"
        "sort"
        "strings"

        "quotemark-cli/internal/model"
)

type DoctorIssueLevel string

const (
        DoctorIssueLevelError DoctorIssueLevel = "error"
        DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssue struct {
        Level   DoctorIssueLevel `json:"level"`
        Code    string           `json:"code"`
        Message string           `json:"message"`
        Path    string           `json:"path,omitempty"`
        Posting string           `json:"posting,omitempty"`
        Field   model.FieldName  `json:"field,omitempty"`
}

type DoctorReport struct {
        Postings int           `json:"postings"`
        Labeled  int           `json:"labeled"`
        Issues   []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
        for _, it := range r.Issues {
                if it.Level == DoctorIssueLevelError {
                        return true
                }
        }
        return false
}

// Doctor checks every labels file in the workspace: it must parse, belong to
// a posting, use only schema fields, and quote text that occurs verbatim in
// the posting.
func (s Store) Doctor() DoctorReport {
        var r DoctorReport

        postings, err := s.ListPostings()
        if err != nil {
                r.Issues = append(r.Issues, DoctorIssue{
                        Level: DoctorIssueLevelError, Code: "postings_unreadable",
                        Message: err.Error(), Path: s.postingsDir(),
                })
                return r
        }
        r.Postings = len(postings)
        known := map[string]bool{}
        for _, p := range postings {
                known[p.Name] = true
        }

        ents, err := os.ReadDir(s.labelsDir())
        if err != nil && !errors.Is(err, os.ErrNotExist) {
                r.Issues = append(r.Issues, DoctorIssue{
                        Level: DoctorIssueLevelError, Code: "labels_unreadable",
                        Message: err.Error(), Path: s.labelsDir(),
                })
        }
        names := make([]string, 0, len(ents))
        for _, e := range ents {
                if e.IsDir() || !strings.HasSuffix(e.Name(), labelsExt) {
                        continue
                }
                names = append(names, strings.TrimSuffix(e.Name(), labelsExt))
        }
        sort.Strings(names)

        for _, name := range names {
                issues, labeled := s.checkLabels(name, known[name])
                r.Issues = append(r.Issues, issues...)
                if labeled {
                        r.Labeled++
                }
        }
        if r.Issues == nil {
                r.Issues = []DoctorIssue{}
        }
        return r
}

func (s Store) checkLabels(name string, hasPosting bool) ([]DoctorIssue, bool) {
        path := filepath.Join(s.labelsDir(), name+labelsExt)
        issue := func(level DoctorIssueLevel, code string, field model.FieldName, msg string) DoctorIssue {
                return DoctorIssue{Level: level, Code: code, Message: msg, Path: path, Posting: name, Field: field}
        }

        b, err := os.ReadFile(path)
        if err != nil {
                return []DoctorIssue{issue(DoctorIssueLevelError, "labels_unreadable", "", err.Error())}, false
        }
        var raw map[string]json.RawMessage
        if err := json.Unmarshal(b, &raw); err != nil {
                return []DoctorIssue{issue(DoctorIssueLevelError, "labels_invalid_json", "", err.Error())}, false
        }
        var ex model.Extraction
        if err := json.Unmarshal(b, &ex); err != nil {
                return []DoctorIssue{issue(DoctorIssueLevelError, "labels_invalid_json", "", err.Error())}, false
        }

        var out []DoctorIssue
        keys := make([]string, 0, len(raw))
        for k := range raw {
                keys = append(keys, k)
        }
        sort.Strings(keys)
        for _, k := range keys {
                if _, err := model.ParseField(k); err != nil {
                        out = append(out, issue(DoctorIssueLevelWarn, "unknown_field", model.FieldName(k),
                                fmt.Sprintf("field %q is not part of the schema and will be dropped on save", k)))
                }
        }

        if !hasPosting {
                out = append(out, issue(DoctorIssueLevelWarn, "orphan_labels", "", "no posting named "+name))
                return out, ex.Labeled() > 0
        }
        text, err := s.ReadPosting(name)
        if err != nil {
                out = append(out, issue(DoctorIssueLevelError, "posting_unreadable", "", err.Error()))
                return out, ex.Labeled() > 0
        }
        for _, spec := range model.Fields() {
                f := ex.Get(spec.Name)
                if line, ok := quoteInPosting(text, f.SubstringQuote); !ok {
                        out = append(out, issue(DoctorIssueLevelWarn, "quote_not_in_posting", spec.Name,
                                fmt.Sprintf("quote %q does not occur in the posting", line)))
                }
                if strings.TrimSpace(f.Fact) != "" && strings.TrimSpace(f.SubstringQuote) == "" {
                        out = append(out, issue(DoctorIssueLevelWarn, "fact_without_quote", spec.Name,
                                "fact has no supporting quote"))
                }
        }
        return out, ex.Labeled() > 0
}

// quoteInPosting reports whether each non-blank line of quote occurs in text.
// Quotes built in append mode hold one selection per line. On failure the
// first missing line is returned.
func quoteInPosting(text, quote string) (string, bool) {
        for _, line := range strings.Split(quote, "\n") {
                line = strings.TrimSpace(line)
                if line == "" {
                        continue
                }
                if !strings.Contains(text, line) {
                        return line, false
                }
        }
        return "", true
}
