package main

import (
	"bytes"
	"strings"
	"testing"

	"lexkit/internal/diag"
	"lexkit/internal/source"
)

func TestPrintDiagnosticsReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.pl0", []byte("@@@"))
	bag := diag.NewBag(1)
	for col := range uint32(3) {
		p := source.Position{Column: col}
		bag.Add(diag.NewError(diag.LexUnknownChar, id, source.NewRange(p, source.Position{Column: col + 1}), "unknown character \"@\""))
	}

	cmd := newTestCommand(t, "--color", "off")
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	if err := printDiagnostics(cmd, bag, fs, bag.Cap()); err != nil {
		t.Fatal(err)
	}

	out := stderr.String()
	if strings.Count(out, "LEX1001") != 1 {
		t.Fatalf("expected one rendered diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "... 2 more diagnostics not shown (limit 1 per file)") {
		t.Fatalf("dropped count missing:\n%s", out)
	}
}
