package mython

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lexAll(t *testing.T, source string) []Token {
	t.Helper()
	lex, err := NewLexer(source)
	if err != nil {
		t.Fatalf("new lexer: %v", err)
	}
	tokens := []Token{lex.Current()}
	for tokens[len(tokens)-1].Kind != TokenEof {
		tok, err := lex.Advance()
		if err != nil {
			t.Fatalf("advance after %s: %v", tokens[len(tokens)-1], err)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func lexUntilError(t *testing.T, source string) error {
	t.Helper()
	lex, err := NewLexer(source)
	if err != nil {
		return err
	}
	for lex.Current().Kind != TokenEof {
		if _, err := lex.Advance(); err != nil {
			return err
		}
	}
	t.Fatalf("expected a lexical error, reached Eof")
	return nil
}

func TestLexerSimpleAssignment(t *testing.T) {
	got := lexAll(t, "x = 42\n")
	want := []Token{
		idToken("x"),
		charToken('='),
		numberToken(42),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerMissingTrailingNewline(t *testing.T) {
	got := lexAll(t, "print 1")
	want := []Token{
		{Kind: TokenPrint},
		numberToken(1),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	got := lexAll(t, "class return if else def print and or not None True False classy _x\n")
	want := []Token{
		{Kind: TokenClass},
		{Kind: TokenReturn},
		{Kind: TokenIf},
		{Kind: TokenElse},
		{Kind: TokenDef},
		{Kind: TokenPrint},
		{Kind: TokenAnd},
		{Kind: TokenOr},
		{Kind: TokenNot},
		{Kind: TokenNone},
		{Kind: TokenTrue},
		{Kind: TokenFalse},
		idToken("classy"),
		idToken("_x"),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerIndentAndDedent(t *testing.T) {
	source := "if x:\n" +
		"  y = 1\n" +
		"z = 2\n"
	got := lexAll(t, source)
	want := []Token{
		{Kind: TokenIf},
		idToken("x"),
		charToken(':'),
		{Kind: TokenNewline},
		{Kind: TokenIndent},
		idToken("y"),
		charToken('='),
		numberToken(1),
		{Kind: TokenNewline},
		{Kind: TokenDedent},
		idToken("z"),
		charToken('='),
		numberToken(2),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerFinalDedentsBeforeEof(t *testing.T) {
	source := "class A:\n" +
		"  def m(self):\n" +
		"    return 1\n"
	tokens := lexAll(t, source)

	tail := tokens[len(tokens)-3:]
	want := []Token{{Kind: TokenDedent}, {Kind: TokenDedent}, {Kind: TokenEof}}
	if diff := cmp.Diff(want, tail); diff != "" {
		t.Fatalf("stream tail mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerLayoutDeltas(t *testing.T) {
	// The synthesized Indent/Dedent runs must match the successive
	// indent-level deltas of the input lines.
	cases := [][]int{
		{0, 1, 2, 1, 0},
		{0, 1, 0, 1, 2, 2, 0},
		{0, 2, 0},
		{1, 0},
	}
	for _, levels := range cases {
		t.Run(fmt.Sprintf("%v", levels), func(t *testing.T) {
			var sb strings.Builder
			for _, level := range levels {
				sb.WriteString(strings.Repeat("  ", level))
				sb.WriteString("x = 1\n")
			}

			var deltas []int
			prev := 0
			for _, level := range levels {
				deltas = append(deltas, level-prev)
				prev = level
			}
			deltas = append(deltas, -prev) // closing dedents at Eof

			var got []int
			run := 0
			flush := func() {
				if run != 0 {
					got = append(got, run)
					run = 0
				}
			}
			for _, tok := range lexAll(t, sb.String()) {
				switch tok.Kind {
				case TokenIndent:
					if run < 0 {
						flush()
					}
					run++
				case TokenDedent:
					if run > 0 {
						flush()
					}
					run--
				case TokenNewline, TokenEof:
					flush()
				}
			}

			var want []int
			for _, d := range deltas {
				if d != 0 {
					want = append(want, d)
				}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("layout delta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexerBlankAndCommentLinesAreTransparent(t *testing.T) {
	plain := lexAll(t, "x = 1\ny = 2\n")
	padded := lexAll(t, "x = 1\n\n   \n# full-line comment\n\n# another\ny = 2\n")
	if diff := cmp.Diff(plain, padded); diff != "" {
		t.Fatalf("blank/comment lines changed the stream (-plain +padded):\n%s", diff)
	}
}

func TestLexerLeadingCommentsSkipped(t *testing.T) {
	lex, err := NewLexer("# header\n# more\n\nx = 1\n")
	if err != nil {
		t.Fatalf("new lexer: %v", err)
	}
	if got, want := lex.Current(), idToken("x"); !got.Equal(want) {
		t.Fatalf("first token: got %s, want %s", got, want)
	}
}

func TestLexerTrailingComment(t *testing.T) {
	got := lexAll(t, "x = 1 # note\ny = 2\n")
	want := lexAll(t, "x = 1\ny = 2\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trailing comment changed the stream (-want +got):\n%s", diff)
	}
}

func TestLexerTrailingCommentAtEOF(t *testing.T) {
	got := lexAll(t, "x = 1 # note")
	want := []Token{
		idToken("x"),
		charToken('='),
		numberToken(1),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerOddIndentFails(t *testing.T) {
	err := lexUntilError(t, "if x:\n   y = 1\n")
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexicalError, got %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), "invalid indent") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	got := lexAll(t, `x = 'a\tb\nc\q\''` + "\n")
	want := []Token{
		idToken("x"),
		charToken('='),
		stringToken("a\tb\ncq'"),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerDoubleQuotedString(t *testing.T) {
	got := lexAll(t, "s = \"it's fine\"\n")
	want := []Token{
		idToken("s"),
		charToken('='),
		stringToken("it's fine"),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := NewLexer("'abc")
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexicalError, got %T (%v)", err, err)
	}
}

func TestLexerNumberTermination(t *testing.T) {
	got := lexAll(t, "y = (1+2)*3/4 . , :\n")
	want := []Token{
		idToken("y"),
		charToken('='),
		charToken('('),
		numberToken(1),
		charToken('+'),
		numberToken(2),
		charToken(')'),
		charToken('*'),
		numberToken(3),
		charToken('/'),
		numberToken(4),
		charToken('.'),
		charToken(','),
		charToken(':'),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}

	if err := lexUntilError(t, "x = 12a\n"); err == nil {
		t.Fatalf("expected error for letter after number")
	}
}

func TestLexerComparisonOperators(t *testing.T) {
	got := lexAll(t, "a == b != c <= d >= e < f > g = h\n")
	want := []Token{
		idToken("a"),
		{Kind: TokenEq},
		idToken("b"),
		{Kind: TokenNotEq},
		idToken("c"),
		{Kind: TokenLessOrEq},
		idToken("d"),
		{Kind: TokenGreaterOrEq},
		idToken("e"),
		charToken('<'),
		idToken("f"),
		charToken('>'),
		idToken("g"),
		charToken('='),
		idToken("h"),
		{Kind: TokenNewline},
		{Kind: TokenEof},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerBangWithoutEqualsFails(t *testing.T) {
	if err := lexUntilError(t, "x = !y\n"); err == nil {
		t.Fatalf("expected error for bare '!'")
	}
}

func TestLexerEofIdempotent(t *testing.T) {
	lex, err := NewLexer("")
	if err != nil {
		t.Fatalf("new lexer: %v", err)
	}
	if lex.Current().Kind != TokenEof {
		t.Fatalf("empty input should start at Eof, got %s", lex.Current())
	}
	for i := 0; i < 3; i++ {
		tok, err := lex.Advance()
		if err != nil {
			t.Fatalf("advance past Eof: %v", err)
		}
		if tok.Kind != TokenEof {
			t.Fatalf("expected Eof, got %s", tok)
		}
	}
}

func TestTokenEquality(t *testing.T) {
	cases := []struct {
		a, b Token
		want bool
	}{
		{numberToken(1), numberToken(1), true},
		{numberToken(1), numberToken(2), false},
		{idToken("x"), idToken("x"), true},
		{idToken("x"), idToken("y"), false},
		{stringToken("x"), idToken("x"), false},
		{charToken('+'), charToken('+'), true},
		{charToken('+'), charToken('-'), false},
		{Token{Kind: TokenIndent}, Token{Kind: TokenIndent}, true},
		{Token{Kind: TokenIndent}, Token{Kind: TokenDedent}, false},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%s.Equal(%s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
