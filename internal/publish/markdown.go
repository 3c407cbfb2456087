package publish

import (
        "bytes"
        "fmt"
        "strings"

        "quotemark-cli/internal/highlight"
        "quotemark-cli/internal/model"
        "quotemark-cli/internal/store"
)

// RenderPostingMarkdown renders one posting's labels as a review document:
// each field's fact and quote, where the quote was found, then the posting.
func RenderPostingMarkdown(s store.Store, name string) (string, error) {
        text, err := s.ReadPosting(name)
        if err != nil {
                return "", err
        }
        ex, err := s.LoadLabels(name)
        if err != nil {
                return "", err
        }

        var buf bytes.Buffer
        writeLn := func(s string) {
                buf.WriteString(s)
                buf.WriteString("\n")
        }

        writeLn("# " + name)
        writeLn("")
        writeLn(fmt.Sprintf("Labeled: %d/%d", ex.Labeled(), len(model.Fields())))
        writeLn("")

        writeLn("## Labels")
        for _, spec := range model.Fields() {
                f := ex.Get(spec.Name)
                writeLn("")
                writeLn("### " + spec.Label)
                writeLn("")
                if strings.TrimSpace(f.Fact) == "" && strings.TrimSpace(f.SubstringQuote) == "" {
                        writeLn("_Not labeled._")
                        continue
                }
                if fact := strings.TrimSpace(f.Fact); fact != "" {
                        writeLn("- Fact: " + fact)
                }
                if sp, ok := quoteSpan(text, f.SubstringQuote); ok {
                        writeLn(fmt.Sprintf("- Found at: bytes %d-%d", sp.Start, sp.End))
                } else if strings.TrimSpace(f.SubstringQuote) != "" {
                        writeLn("- Found at: not in posting")
                }
                if q := strings.TrimSpace(f.SubstringQuote); q != "" {
                        writeLn("")
                        for _, line := range strings.Split(q, "\n") {
                                writeLn(strings.TrimRight("> "+line, " "))
                        }
                }
        }

        writeLn("")
        writeLn("## Posting")
        writeLn("")
        fence := "```"
        for strings.Contains(text, fence) {
                fence += "`"
        }
        writeLn(fence + "text")
        writeLn(strings.TrimRight(text, "\n"))
        writeLn(fence)
        return buf.String(), nil
}

// RenderIndexMarkdown lists every posting with its progress.
func RenderIndexMarkdown(s store.Store, infos []store.PostingInfo) (string, error) {
        var buf bytes.Buffer
        buf.WriteString("# Labeled postings\n\n")
        buf.WriteString("| Posting | Labeled |\n|---|---|\n")
        for _, info := range infos {
                ex, err := s.LoadLabels(info.Name)
                if err != nil {
                        return "", err
                }
                fmt.Fprintf(&buf, "| [%s](postings/%s.md) | %d/%d |\n",
                        info.Name, info.Name, ex.Labeled(), len(model.Fields()))
        }
        return buf.String(), nil
}

// quoteSpan locates the quote the way the highlighter does: the first literal
// occurrence of the trimmed text.
func quoteSpan(text, quote string) (highlight.Span, bool) {
        return highlight.NewDocument(text).WithMark(strings.TrimSpace(quote)).Mark()
}
