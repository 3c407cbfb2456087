package store

import (
        "encoding/json"
        "errors"
        "fmt"
        "os"
        "path/filepath"
        "sort"
        "strings"
        "time"

        "quotemark-cli/internal/logger"
        "quotemark-cli/internal/model"
)

const (
        postingsDirName = "postings"
        labelsDirName   = "extracted_labels"
        localDirName    = ".quotemark"
        postingExt      = ".txt"
        labelsExt       = ".json"
)

var ErrPostingNotFound = errors.New("posting not found")

// Store is a labeling workspace rooted at Dir:
//
//      <Dir>/postings/<name>.txt
//      <Dir>/extracted_labels/<name>.json
//      <Dir>/.quotemark/history.sqlite
type Store struct {
        Dir string
}

type PostingInfo struct {
        Name      string    `json:"name"`
        Path      string    `json:"path"`
        Size      int64     `json:"size"`
        ModTime   time.Time `json:"modTime"`
        HasLabels bool      `json:"hasLabels"`
}

func (s Store) postingsDir() string { return filepath.Join(s.Dir, postingsDirName) }
func (s Store) labelsDir() string   { return filepath.Join(s.Dir, labelsDirName) }
func (s Store) localDir() string    { return filepath.Join(s.Dir, localDirName) }

func (s Store) PostingPath(name string) string {
        return filepath.Join(s.postingsDir(), name+postingExt)
}

func (s Store) LabelsPath(name string) string {
        return filepath.Join(s.labelsDir(), name+labelsExt)
}

func (s Store) Ensure() error {
        if strings.TrimSpace(s.Dir) == "" {
                return errors.New("store: dir is empty")
        }
        for _, d := range []string{s.postingsDir(), s.labelsDir(), s.localDir()} {
                if err := os.MkdirAll(d, 0o755); err != nil {
                        return err
                }
        }
        return nil
}

// ValidatePostingName rejects names that could escape the postings dir.
func ValidatePostingName(name string) error {
        name = strings.TrimSpace(name)
        switch {
        case name == "":
                return errors.New("posting name is empty")
        case name == "." || name == ".." || strings.Contains(name, ".."):
                return fmt.Errorf("invalid posting name: %q", name)
        case strings.ContainsAny(name, `/\`):
                return fmt.Errorf("invalid posting name (no path separators): %q", name)
        }
        return nil
}

// NormalizePostingName accepts "foo", "foo.txt" or "postings/foo.txt".
func NormalizePostingName(name string) (string, error) {
        name = strings.TrimSpace(name)
        name = strings.TrimPrefix(name, postingsDirName+"/")
        name = strings.TrimSuffix(name, postingExt)
        if err := ValidatePostingName(name); err != nil {
                return "", err
        }
        return name, nil
}

func (s Store) ListPostings() ([]PostingInfo, error) {
        ents, err := os.ReadDir(s.postingsDir())
        if err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return []PostingInfo{}, nil
                }
                return nil, err
        }
        out := make([]PostingInfo, 0, len(ents))
        for _, e := range ents {
                if e.IsDir() || !strings.HasSuffix(e.Name(), postingExt) {
                        continue
                }
                name := strings.TrimSuffix(e.Name(), postingExt)
                if ValidatePostingName(name) != nil {
                        continue
                }
                info, err := e.Info()
                if err != nil {
                        continue
                }
                _, statErr := os.Stat(s.LabelsPath(name))
                out = append(out, PostingInfo{
                        Name:      name,
                        Path:      s.PostingPath(name),
                        Size:      info.Size(),
                        ModTime:   info.ModTime().UTC(),
                        HasLabels: statErr == nil,
                })
        }
        sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
        return out, nil
}

func (s Store) ReadPosting(name string) (string, error) {
        if err := ValidatePostingName(name); err != nil {
                return "", err
        }
        b, err := os.ReadFile(s.PostingPath(name))
        if err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return "", fmt.Errorf("%w: %s", ErrPostingNotFound, name)
                }
                return "", err
        }
        return strings.ReplaceAll(string(b), "\r\n", "\n"), nil
}

// ImportPosting copies src into the postings dir. An empty name derives one
// from the source file name.
func (s Store) ImportPosting(src, name string) (string, error) {
        if strings.TrimSpace(name) == "" {
                name = filepath.Base(src)
        }
        name, err := NormalizePostingName(name)
        if err != nil {
                return "", err
        }
        if err := s.Ensure(); err != nil {
                return "", err
        }
        if err := CopyFile(src, s.PostingPath(name)); err != nil {
                return "", err
        }
        logger.Info("imported posting %s from %s", name, src)
        return name, nil
}

// LoadLabels returns the saved extraction for a posting. A posting without a
// labels file yields an empty extraction.
func (s Store) LoadLabels(name string) (*model.Extraction, error) {
        if err := ValidatePostingName(name); err != nil {
                return nil, err
        }
        b, err := os.ReadFile(s.LabelsPath(name))
        if err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return &model.Extraction{}, nil
                }
                return nil, err
        }
        var ex model.Extraction
        if err := json.Unmarshal(b, &ex); err != nil {
                return nil, fmt.Errorf("labels %s: %w", name, err)
        }
        return &ex, nil
}

func (s Store) SaveLabels(name string, ex *model.Extraction) error {
        if err := ValidatePostingName(name); err != nil {
                return err
        }
        if ex == nil {
                return errors.New("store: nil extraction")
        }
        if err := os.MkdirAll(s.labelsDir(), 0o755); err != nil {
                return err
        }
        b, err := json.MarshalIndent(ex, "", "    ")
        if err != nil {
                return err
        }
        b = append(b, '\n')
        return atomicWriteFile(s.labelsDir(), name+labelsExt+".*.tmp", s.LabelsPath(name), b, 0o644)
}

// SaveFact updates a single field of a posting's labels, requiring the
// posting to exist.
func (s Store) SaveFact(name string, field model.FieldName, fact model.Fact) (*model.Extraction, error) {
        if _, err := os.Stat(s.PostingPath(name)); err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return nil, fmt.Errorf("%w: %s", ErrPostingNotFound, name)
                }
                return nil, err
        }
        ex, err := s.LoadLabels(name)
        if err != nil {
                return nil, err
        }
        if err := ex.Set(field, fact); err != nil {
                return nil, err
        }
        if err := s.SaveLabels(name, ex); err != nil {
                return nil, err
        }
        logger.Debug("saved %s/%s fact=%q quote=%q", name, field, fact.Fact, fact.SubstringQuote)
        return ex, nil
}

// LabelsModTime reports the labels file modification time (zero if missing).
func (s Store) LabelsModTime(name string) time.Time {
        st, err := os.Stat(s.LabelsPath(name))
        if err != nil {
                return time.Time{}
        }
        return st.ModTime()
}
