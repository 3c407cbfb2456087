package docs

import "testing"

func TestTopics_ListsEmbeddedGuidesWithTitles(t *testing.T) {
        topics := Topics()
        byName := map[string]string{}
        for _, tp := range topics {
                byName[tp.Name] = tp.Title
        }
        if byName["labeling"] != "Labeling a posting" {
                t.Fatalf("unexpected topics: %+v", topics)
        }
        if _, ok := byName["workspace"]; !ok {
                t.Fatalf("expected workspace topic: %+v", topics)
        }
}

func TestGet_RejectsUnknownAndPaths(t *testing.T) {
        if _, ok := Get("LABELING"); !ok {
                t.Fatalf("expected case-insensitive lookup")
        }
        for _, topic := range []string{"", "nope", "../docs", "content/keys"} {
                if _, ok := Get(topic); ok {
                        t.Fatalf("expected %q to be rejected", topic)
                }
        }
}
