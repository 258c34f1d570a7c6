package token

import "testing"

func TestKindString(t *testing.T) {
	if ENTITY.String() != "entity" {
		t.Errorf("got %q", ENTITY.String())
	}
	if Kind(999).String() != "Kind(999)" {
		t.Errorf("unknown kind should fall back to Kind(n), got %q", Kind(999).String())
	}
}

func TestKeywordsMapping(t *testing.T) {
	for lexeme, kind := range Keywords {
		if kind.String() != lexeme {
			t.Errorf("keyword %q maps to kind %s, String() mismatch", lexeme, kind)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Col: 7}
	if p.String() != "3:7" {
		t.Errorf("got %q", p.String())
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENT, Lexeme: "foo", Pos: Position{Line: 1, Col: 1}}
	if tok.String() != `IDENT("foo")` {
		t.Errorf("got %q", tok.String())
	}
	eof := Token{Kind: EOF, Pos: Position{Line: 1, Col: 1}}
	if eof.String() != "EOF" {
		t.Errorf("got %q", eof.String())
	}
}
