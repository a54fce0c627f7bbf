package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexkit/internal/diag"
	"lexkit/internal/grammar/pl0"
	"lexkit/internal/source"
	"lexkit/internal/token"
	"lexkit/internal/trace"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "prog.pl0", "var x;\r\nbegin x := 1 @ end.\r\n")

	res, err := Tokenize(context.Background(), path, Options{Grammar: "pl0", Log: true})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Tokens); n != 10 {
		t.Fatalf("got %d tokens: %v", n, res.Tokens)
	}
	if !res.Tokens[len(res.Tokens)-1].IsEOF() {
		t.Fatal("last token must be EOF")
	}
	x := res.Tokens[1]
	if x.Kind != pl0.Ident || res.Session.Resolve(x.Sym) != "x" {
		t.Fatalf("second token %v", x)
	}
	// CRLF normalised: "begin" starts line 1 at column 0
	if begin := res.Tokens[3]; begin.Range.Start.Line != 1 || begin.Range.Start.Column != 0 {
		t.Fatalf("begin at %v", begin.Range.Start)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %+v", res.Bag.Items())
	}
	if len(res.Logged) != len(res.Tokens) {
		t.Fatalf("logged %d tokens, want %d", len(res.Logged), len(res.Tokens))
	}
	if len(res.Timing.Phases) != 3 {
		t.Fatalf("timing phases = %+v", res.Timing.Phases)
	}
}

func TestTokenizeSourceNormalisesLikeFiles(t *testing.T) {
	const src = "var x;\r\nbegin x := 1 end.\r\n"
	path := writeFile(t, t.TempDir(), "same.pl0", src)

	fromFile, err := Tokenize(context.Background(), path, Options{Grammar: "pl0"})
	if err != nil {
		t.Fatal(err)
	}
	fromStdin, err := TokenizeSource(context.Background(), "<stdin>", []byte(src), Options{Grammar: "pl0"})
	if err != nil {
		t.Fatal(err)
	}
	if fromStdin.Bag.Len() != 0 || fromFile.Bag.Len() != 0 {
		t.Fatalf("diagnostics: file=%d stdin=%d", fromFile.Bag.Len(), fromStdin.Bag.Len())
	}
	if len(fromStdin.Tokens) != len(fromFile.Tokens) {
		t.Fatalf("stdin gave %d tokens, file gave %d", len(fromStdin.Tokens), len(fromFile.Tokens))
	}
	for i := range fromFile.Tokens {
		if fromStdin.Tokens[i].Range != fromFile.Tokens[i].Range || fromStdin.Tokens[i].Kind != fromFile.Tokens[i].Kind {
			t.Fatalf("token %d: stdin %v, file %v", i, fromStdin.Tokens[i], fromFile.Tokens[i])
		}
	}
}

func TestTokenizeSourceRejectsInvalidUTF8(t *testing.T) {
	_, err := TokenizeSource(context.Background(), "<stdin>", []byte("x \xff y"), Options{Grammar: "pl0"})
	if !errors.Is(err, source.ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestTokenizeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Tokenize(context.Background(), filepath.Join(dir, "missing.pl0"), Options{Grammar: "pl0"}); err == nil {
		t.Fatal("expected load error")
	}
	path := writeFile(t, dir, "ok.pl0", "x")
	if _, err := Tokenize(context.Background(), path, Options{Grammar: "fortran"}); err == nil || !strings.Contains(err.Error(), "unknown grammar") {
		t.Fatalf("expected unknown grammar error, got %v", err)
	}
}

func TestTokenizeTraces(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	ctx := trace.WithTracer(context.Background(), tr)

	if _, err := TokenizeSource(ctx, "mem.arith", []byte("1 + ?"), Options{Grammar: "arith"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`"name":"tokenize"`,
		`"name":"lex"`,
		`"file":"mem.arith"`,
		`"name":"lex.invalid"`,
		`"lexeme":{"channel":"invalid","kind":"Invalid","start":"1:5","end":"1:6","text":"?"}`,
		`"counts":{"tokens":3,"invalid":1}`,
		`"counts":{"files":1,"bytes":5,"tokens":3,"invalid":1}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace lacks %s:\n%s", want, out)
		}
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pl0", "const a = 1;")
	writeFile(t, dir, "sub/b.pl0", "var b;\n@")
	writeFile(t, dir, "sub/c.pl0", "x\xff")
	writeFile(t, dir, "notes.txt", "ignored")

	fs, results, err := TokenizeDir(context.Background(), dir, Options{Grammar: "pl0", Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	a, b, c := results[0], results[1], results[2]
	if !strings.HasSuffix(a.Path, "a.pl0") || a.Result == nil || a.Bag.Len() != 0 {
		t.Fatalf("a.pl0: %+v", a)
	}
	if len(a.Result.Tokens) != 6 {
		t.Fatalf("a.pl0 tokens: %v", a.Result.Tokens)
	}
	if b.Bag.Len() != 1 || b.Bag.Items()[0].Primary.Start.Line != 1 {
		t.Fatalf("b.pl0 diagnostics: %+v", b.Bag.Items())
	}
	if c.Result != nil || c.Bag.Len() != 1 || c.Bag.Items()[0].Code != diag.IOInvalidEncoding {
		t.Fatalf("c.pl0: %+v", c)
	}
	if got := fs.Get(c.Bag.Items()[0].File).Path; !strings.HasSuffix(got, "c.pl0") {
		t.Fatalf("load diagnostic points to %q", got)
	}

	// sessions are per worker: each result resolves its own symbols
	if a.Result.Session == b.Result.Session {
		t.Fatal("files must not share a session")
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := TokenizeDir(context.Background(), t.TempDir(), Options{Grammar: "arith"})
	if err != nil || len(results) != 0 || fs.Len() != 0 {
		t.Fatalf("empty dir: %v %d", err, len(results))
	}
}

func TestTokenizeDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.arith", "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := TokenizeDir(ctx, dir, Options{Grammar: "arith"}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	res, err := TokenizeSource(context.Background(), "mem.pl0", []byte("begin foo := bar + foo end."), Options{Grammar: "pl0"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteDump(&buf, res); err != nil {
		t.Fatal(err)
	}
	d, err := ReadDump(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if d.Path != "mem.pl0" || d.Grammar != "pl0" || len(d.Tokens) != len(res.Tokens) {
		t.Fatalf("dump header: %+v", d)
	}
	for i, dt := range d.Tokens {
		got := dt.Token()
		if got != res.Tokens[i] {
			t.Fatalf("token %d: %v, want %v", i, got, res.Tokens[i])
		}
		if got.HasSymbol() && d.Symbols.Resolve(got.Sym) != res.Session.Resolve(got.Sym) {
			t.Fatalf("symbol %v resolves differently", got.Sym)
		}
	}
	if got := d.Tokens[len(d.Tokens)-1].Token(); got.Kind != token.EOF {
		t.Fatalf("last dumped token %v", got)
	}
}

func TestOptionsExt(t *testing.T) {
	if got := (Options{Grammar: "pl0"}).ext(); got != ".pl0" {
		t.Fatalf("ext = %q", got)
	}
	if got := (Options{Grammar: "pl0", Ext: ".p"}).ext(); got != ".p" {
		t.Fatalf("ext = %q", got)
	}
}
