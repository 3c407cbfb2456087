package format

import (
        "bytes"
        "encoding/json"
        "fmt"
        "io"
        "sort"
        "strconv"
        "strings"
)

// WriteEDN writes an EDN rendering of v.
//
// Values go through encoding/json first so struct tags decide the key names;
// keys become keywords with '_' and ' ' turned into '-' (":substring-quote").
func WriteEDN(w io.Writer, v any, pretty bool) error {
        b, err := json.Marshal(v)
        if err != nil {
                return err
        }
        dec := json.NewDecoder(bytes.NewReader(b))
        dec.UseNumber()
        var x any
        if err := dec.Decode(&x); err != nil {
                return err
        }

        var buf bytes.Buffer
        e := ednEncoder{pretty: pretty, buf: &buf}
        e.value(x, 0)
        buf.WriteByte('\n')
        _, err = w.Write(buf.Bytes())
        return err
}

type ednEncoder struct {
        pretty bool
        buf    *bytes.Buffer
}

func (e ednEncoder) value(v any, level int) {
        switch t := v.(type) {
        case nil:
                e.buf.WriteString("nil")
        case bool:
                e.buf.WriteString(strconv.FormatBool(t))
        case string:
                e.buf.WriteString(strconv.Quote(t))
        case json.Number:
                e.buf.WriteString(t.String())
        case []any:
                e.coll('[', ']', len(t), level, func(i int) { e.value(t[i], level+1) })
        case map[string]any:
                keys := make([]string, 0, len(t))
                for k := range t {
                        keys = append(keys, k)
                }
                sort.Strings(keys)
                e.coll('{', '}', len(keys), level, func(i int) {
                        e.buf.WriteString(Keyword(keys[i]))
                        e.buf.WriteByte(' ')
                        e.value(t[keys[i]], level+1)
                })
        default:
                e.buf.WriteString(strconv.Quote(fmt.Sprint(v)))
        }
}

func (e ednEncoder) coll(open, close byte, n, level int, item func(i int)) {
        e.buf.WriteByte(open)
        for i := 0; i < n; i++ {
                switch {
                case e.pretty:
                        e.buf.WriteByte('\n')
                        e.buf.WriteString(strings.Repeat("  ", level+1))
                case i > 0:
                        e.buf.WriteByte(' ')
                }
                item(i)
        }
        if e.pretty && n > 0 {
                e.buf.WriteByte('\n')
                e.buf.WriteString(strings.Repeat("  ", level))
        }
        e.buf.WriteByte(close)
}

func Keyword(k string) string {
        k = strings.TrimSpace(k)
        k = strings.NewReplacer("_", "-", " ", "-").Replace(k)
        return ":" + k
}
