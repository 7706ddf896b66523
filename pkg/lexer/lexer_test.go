package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexSimpleStatement(t *testing.T) {
	toks, err := Lex(`fd 100 rt 90`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenType{IDENT, NUMBER, IDENT, NUMBER, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexWordVariableList(t *testing.T) {
	toks, err := Lex(`make "size :default [fd 10 rt 90]`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenType{IDENT, WORD, VARIABLE, LISTLIT, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if toks[1].Lexeme != "size" {
		t.Errorf("word lexeme = %q, want %q", toks[1].Lexeme, "size")
	}
	if toks[2].Lexeme != "default" {
		t.Errorf("variable lexeme = %q, want %q", toks[2].Lexeme, "default")
	}
	if toks[3].Lexeme != "[fd 10 rt 90]" {
		t.Errorf("list lexeme = %q", toks[3].Lexeme)
	}
}

func TestLexNestedList(t *testing.T) {
	toks, err := Lex(`repeat 4 [fd 10 [rt 90 fd 10] rt 90]`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	lastList := toks[len(toks)-2]
	if lastList.Type != LISTLIT {
		t.Fatalf("expected LISTLIT before EOF, got %v", lastList.Type)
	}
	if lastList.Lexeme != "[fd 10 [rt 90 fd 10] rt 90]" {
		t.Errorf("nested list lexeme = %q", lastList.Lexeme)
	}
}

func TestLexUnterminatedList(t *testing.T) {
	if _, err := Lex(`fd 10 [rt 90`); err == nil {
		t.Error("expected error for unterminated list")
	}
}

func TestLexNegativeNumber(t *testing.T) {
	toks, err := Lex(`setx -40`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[1].Type != NUMBER || toks[1].Lexeme != "-40" {
		t.Errorf("got %v %q", toks[1].Type, toks[1].Lexeme)
	}
}

func TestLexBareDotNumber(t *testing.T) {
	toks, err := Lex(`fd .5`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[1].Type != NUMBER || toks[1].Lexeme != ".5" {
		t.Errorf("got %v %q, want NUMBER \".5\"", toks[1].Type, toks[1].Lexeme)
	}
}

func TestLexDotAndQuestionMarkIdents(t *testing.T) {
	toks, err := Lex(`.setitem`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[0].Type != IDENT || toks[0].Lexeme != ".setitem" {
		t.Errorf("got %v %q", toks[0].Type, toks[0].Lexeme)
	}
	toks, err = Lex(`empty?`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[0].Lexeme != "empty?" {
		t.Errorf("got %q", toks[0].Lexeme)
	}
}

func TestLexInfixOperators(t *testing.T) {
	toks, err := Lex(`:x + 5 * ( 2 - 1 ) = :y`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenType{VARIABLE, PLUS, NUMBER, STAR, LPAREN, NUMBER, MINUS, NUMBER, RPAREN, EQUALS, VARIABLE, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexUnsupportedOperator(t *testing.T) {
	toks, err := Lex(`:x % 2`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if toks[1].Type != UNSUPPORTED {
		t.Errorf("got %v, want UNSUPPORTED", toks[1].Type)
	}
}

func TestLexComment(t *testing.T) {
	toks, err := Lex(`fd 10 ; walk forward`)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []TokenType{IDENT, NUMBER, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
