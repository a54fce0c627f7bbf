package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent renders ev; anything but FormatNDJSON is text.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonCounts struct {
	Files   int `json:"files,omitempty"`
	Failed  int `json:"failed,omitempty"`
	Bytes   int `json:"bytes,omitempty"`
	Tokens  int `json:"tokens,omitempty"`
	Invalid int `json:"invalid,omitempty"`
}

type jsonLexeme struct {
	Channel string `json:"channel"`
	Kind    string `json:"kind"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Text    string `json:"text"`
}

type jsonEvent struct {
	Time     string      `json:"time"`
	Seq      uint64      `json:"seq"`
	Kind     string      `json:"kind"`
	Scope    string      `json:"scope"`
	SpanID   uint64      `json:"span_id,omitempty"`
	ParentID uint64      `json:"parent_id,omitempty"`
	File     string      `json:"file,omitempty"`
	Name     string      `json:"name"`
	Detail   string      `json:"detail,omitempty"`
	Lexeme   *jsonLexeme `json:"lexeme,omitempty"`
	Counts   *jsonCounts `json:"counts,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		File:     ev.File,
		Name:     ev.Name,
		Detail:   ev.Detail,
	}
	if lx := ev.Lexeme; lx != nil {
		j.Lexeme = &jsonLexeme{
			Channel: lx.Channel.String(),
			Kind:    lx.Kind,
			Start:   lx.Range.Start.String(),
			End:     lx.Range.End.String(),
			Text:    lx.Text,
		}
	}
	if !ev.Counts.IsZero() {
		c := jsonCounts(ev.Counts)
		j.Counts = &c
	}

	data, _ := json.Marshal(j)
	return append(data, '\n')
}

// formatText: [seq time] [indent]→/←/• name [file] (detail) lexeme {counts}
func formatText(ev *Event) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%6d %s] ", ev.Seq, ev.Time.Format("15:04:05.000"))
	if ev.Scope > ScopeDriver {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	case KindPoint:
		sb.WriteString("• ")
	}
	sb.WriteString(ev.Name)

	if ev.File != "" {
		sb.WriteString(" [")
		sb.WriteString(ev.File)
		sb.WriteString("]")
	}
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}
	if lx := ev.Lexeme; lx != nil {
		fmt.Fprintf(&sb, " %s %s %s %s", lx.Channel, lx.Kind, lx.Range, strconv.Quote(lx.Text))
	}
	if !ev.Counts.IsZero() {
		sb.WriteString(" {")
		writeCounts(&sb, ev.Counts)
		sb.WriteString("}")
	}

	sb.WriteString("\n")
	return []byte(sb.String())
}

// writeCounts prints the non-zero tallies in a fixed order.
func writeCounts(sb *strings.Builder, c Counts) {
	fields := [...]struct {
		name string
		n    int
	}{
		{"files", c.Files},
		{"failed", c.Failed},
		{"bytes", c.Bytes},
		{"tokens", c.Tokens},
		{"invalid", c.Invalid},
	}
	first := true
	for _, f := range fields {
		if f.n == 0 {
			continue
		}
		if !first {
			sb.WriteString(" ")
		}
		sb.WriteString(f.name)
		sb.WriteString("=")
		sb.WriteString(strconv.Itoa(f.n))
		first = false
	}
}
