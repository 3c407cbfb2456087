package model

import (
        "errors"
        "fmt"
        "strings"
        "time"
)

var ErrUnknownField = errors.New("unknown field")

type FieldName string

const (
        FieldJobTitle         FieldName = "job_title"
        FieldCompany          FieldName = "company"
        FieldLocation         FieldName = "location"
        FieldSalary           FieldName = "salary"
        FieldMinimumEducation FieldName = "minimum_education"
)

type FieldSpec struct {
        Name  FieldName `json:"name"`
        Label string    `json:"label"`
}

// Schema order is the labeling order.
var fields = []FieldSpec{
        {Name: FieldJobTitle, Label: "Job Title"},
        {Name: FieldCompany, Label: "Company"},
        {Name: FieldLocation, Label: "Location"},
        {Name: FieldSalary, Label: "Salary"},
        {Name: FieldMinimumEducation, Label: "Minimum Education"},
}

func Fields() []FieldSpec {
        out := make([]FieldSpec, len(fields))
        copy(out, fields)
        return out
}

func FirstField() FieldName { return fields[0].Name }

func ParseField(s string) (FieldName, error) {
        s = strings.ToLower(strings.TrimSpace(s))
        s = strings.ReplaceAll(s, "-", "_")
        for _, f := range fields {
                if string(f.Name) == s {
                        return f.Name, nil
                }
        }
        return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func (f FieldName) Label() string {
        for _, spec := range fields {
                if spec.Name == f {
                        return spec.Label
                }
        }
        return string(f)
}

func (f FieldName) index() int {
        for i, spec := range fields {
                if spec.Name == f {
                        return i
                }
        }
        return -1
}

// NextField returns the field after f in schema order. ok is false after the
// last field or for unknown fields.
func NextField(f FieldName) (FieldName, bool) {
        i := f.index()
        if i < 0 || i+1 >= len(fields) {
                return "", false
        }
        return fields[i+1].Name, true
}

// PrevField is NextField in reverse; it wraps to the last field.
func PrevField(f FieldName) FieldName {
        i := f.index()
        if i <= 0 {
                return fields[len(fields)-1].Name
        }
        return fields[i-1].Name
}

type Fact struct {
        Fact           string `json:"fact"`
        SubstringQuote string `json:"substring_quote"`
}

type Extraction struct {
        JobTitle         Fact `json:"job_title"`
        Company          Fact `json:"company"`
        Location         Fact `json:"location"`
        Salary           Fact `json:"salary"`
        MinimumEducation Fact `json:"minimum_education"`
}

func (e *Extraction) factPtr(f FieldName) *Fact {
        switch f {
        case FieldJobTitle:
                return &e.JobTitle
        case FieldCompany:
                return &e.Company
        case FieldLocation:
                return &e.Location
        case FieldSalary:
                return &e.Salary
        case FieldMinimumEducation:
                return &e.MinimumEducation
        default:
                return nil
        }
}

func (e *Extraction) Get(f FieldName) Fact {
        if p := e.factPtr(f); p != nil {
                return *p
        }
        return Fact{}
}

func (e *Extraction) Set(f FieldName, fact Fact) error {
        p := e.factPtr(f)
        if p == nil {
                return fmt.Errorf("%w: %q", ErrUnknownField, f)
        }
        *p = fact
        return nil
}

// Labeled counts fields with a non-empty fact or quote.
func (e *Extraction) Labeled() int {
        n := 0
        for _, spec := range fields {
                fact := e.Get(spec.Name)
                if strings.TrimSpace(fact.Fact) != "" || strings.TrimSpace(fact.SubstringQuote) != "" {
                        n++
                }
        }
        return n
}

type LabelSource string

const (
        SourceCLI LabelSource = "cli"
        SourceTUI LabelSource = "tui"
        SourceWeb LabelSource = "web"
)

// LabelEvent is one saved fact in the label history.
type LabelEvent struct {
        ID        int64       `json:"id"`
        Posting   string      `json:"posting"`
        Field     FieldName   `json:"field"`
        Fact      string      `json:"fact"`
        Quote     string      `json:"quote"`
        Source    LabelSource `json:"source"`
        Actor     string      `json:"actor,omitempty"`
        CreatedAt time.Time   `json:"createdAt"`
}
