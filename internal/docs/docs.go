// Package docs embeds the user guides shown by `quotemark docs`.
package docs

import (
        "embed"
        "io/fs"
        "path"
        "sort"
        "strings"
)

//go:embed content/*.md
var contentFS embed.FS

type Topic struct {
        Name  string `json:"name"`
        Title string `json:"title"`
}

func Topics() []Topic {
        entries, err := fs.Glob(contentFS, "content/*.md")
        if err != nil {
                return []Topic{}
        }
        out := make([]Topic, 0, len(entries))
        for _, p := range entries {
                name := strings.TrimSuffix(path.Base(p), ".md")
                if name == "" {
                        continue
                }
                body, _ := Get(name)
                out = append(out, Topic{Name: name, Title: title(body, name)})
        }
        sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
        return out
}

func Get(topic string) (string, bool) {
        topic = strings.ToLower(strings.TrimSpace(topic))
        if topic == "" || strings.ContainsAny(topic, `/\`) {
                return "", false
        }
        b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
        if err != nil {
                return "", false
        }
        return string(b), true
}

// title returns the first markdown heading, or fallback.
func title(body, fallback string) string {
        for _, ln := range strings.Split(body, "\n") {
                ln = strings.TrimSpace(ln)
                if strings.HasPrefix(ln, "#") {
                        return strings.TrimSpace(strings.TrimLeft(ln, "#"))
                }
        }
        return fallback
}
