package main

import (
        "reflect"
        "testing"
)

func TestRewriteDirectPostingArgs(t *testing.T) {
        t.Parallel()

        tests := []struct {
                name string
                in   []string
                want []string
        }{
                {
                        name: "no args",
                        in:   []string{"quotemark"},
                        want: []string{"quotemark"},
                },
                {
                        name: "posting file first token",
                        in:   []string{"quotemark", "postings/backend.txt"},
                        want: []string{"quotemark", "tui", "postings/backend.txt"},
                },
                {
                        name: "posting file after value flag",
                        in:   []string{"quotemark", "--dir", "./ws", "backend.txt"},
                        want: []string{"quotemark", "--dir", "./ws", "tui", "backend.txt"},
                },
                {
                        name: "posting file after equals and bool flags",
                        in:   []string{"quotemark", "--mode=append", "-v", "backend.txt"},
                        want: []string{"quotemark", "--mode=append", "-v", "tui", "backend.txt"},
                },
                {
                        name: "posting file after double dash",
                        in:   []string{"quotemark", "--", "backend.txt"},
                        want: []string{"quotemark", "--", "tui", "backend.txt"},
                },
                {
                        name: "subcommand not rewritten",
                        in:   []string{"quotemark", "postings", "import", "backend.txt"},
                        want: []string{"quotemark", "postings", "import", "backend.txt"},
                },
                {
                        name: "bare name not rewritten",
                        in:   []string{"quotemark", "backend"},
                        want: []string{"quotemark", "backend"},
                },
        }

        for _, tt := range tests {
                tt := tt
                t.Run(tt.name, func(t *testing.T) {
                        t.Parallel()
                        got := rewriteDirectPostingArgs(tt.in)
                        if !reflect.DeepEqual(got, tt.want) {
                                t.Fatalf("rewriteDirectPostingArgs:\n got: %#v\nwant: %#v", got, tt.want)
                        }
                })
        }
}
