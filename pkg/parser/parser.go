// Package parser implements a non-recovering recursive-descent parser
// that consumes the ERD DSL token stream and produces a Schema IR.
package parser

import (
	"fmt"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/lexer"
	"github.com/dshills/erdc/pkg/token"
)

// ParseError reports an unexpected token. Expected lists the token kinds
// (or free-form descriptions) that would have been accepted at Pos.
type ParseError struct {
	Pos      token.Position
	Expected []string
	Found    token.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: expected %v, found %s", e.Pos, e.Expected, e.Found)
}

// Parser consumes a pre-scanned token slice. The parser does not recover
// from errors: the first one aborts the parse.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses src in one call, returning the resulting Schema.
func Parse(src string) (*ir.Schema, error) {
	toks, err := lexer.All(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseFile()
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

// expect consumes the current token if it matches k, otherwise returns a
// ParseError describing what was expected.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, &ParseError{
			Pos:      p.cur().Pos,
			Expected: []string{k.String()},
			Found:    p.cur(),
		}
	}
	return p.advance(), nil
}

func (p *Parser) parseFile() (*ir.Schema, error) {
	s := ir.NewSchema()

	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.ENTITY:
			e, err := p.parseEntity()
			if err != nil {
				return nil, err
			}
			s.AddEntity(e)
		case token.REL:
			edges, err := p.parseRelBlock()
			if err != nil {
				return nil, err
			}
			s.Relationships = append(s.Relationships, edges...)
		case token.VIEW:
			v, err := p.parseView()
			if err != nil {
				return nil, err
			}
			s.AddView(v)
		case token.AT:
			hint, err := p.parseArrangementHint()
			if err != nil {
				return nil, err
			}
			s.Arrangement = hint
		default:
			return nil, &ParseError{
				Pos:      p.cur().Pos,
				Expected: []string{"entity", "rel", "view", "@"},
				Found:    p.cur(),
			}
		}
	}

	return s, nil
}

// parseEntity parses: 'entity' IDENT hint_level? '{' column* '}'
func (p *Parser) parseEntity() (*ir.Entity, error) {
	if _, err := p.expect(token.ENTITY); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	e := &ir.Entity{Name: nameTok.Lexeme}

	if p.at(token.AT) {
		level, err := p.parseHintLevel()
		if err != nil {
			return nil, err
		}
		e.LevelHint = &level
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	for !p.at(token.RBRACE) {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		e.Columns = append(e.Columns, col)
		p.skipSeparator()
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return e, nil
}

// parseHintLevel parses: '@' IDENT('hint') '.' IDENT('level') '=' INT
func (p *Parser) parseHintLevel() (int, error) {
	if _, err := p.expect(token.AT); err != nil {
		return 0, err
	}
	if err := p.expectIdentText("hint"); err != nil {
		return 0, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		return 0, err
	}
	if err := p.expectIdentText("level"); err != nil {
		return 0, err
	}
	if _, err := p.expect(token.EQUALS); err != nil {
		return 0, err
	}
	intTok, err := p.expect(token.INT)
	if err != nil {
		return 0, err
	}
	return parseIntLiteral(intTok)
}

func (p *Parser) expectIdentText(text string) error {
	if !p.at(token.IDENT) || p.cur().Lexeme != text {
		return &ParseError{
			Pos:      p.cur().Pos,
			Expected: []string{text},
			Found:    p.cur(),
		}
	}
	p.advance()
	return nil
}

func parseIntLiteral(t token.Token) (int, error) {
	n := 0
	for _, r := range t.Lexeme {
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// parseColumn parses: IDENT type constraint*
func (p *Parser) parseColumn() (ir.Column, error) {
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return ir.Column{}, err
	}

	typeTok, err := p.expect(token.IDENT)
	if err != nil {
		return ir.Column{}, err
	}
	colType, ok := ir.ColumnTypeByName[typeTok.Lexeme]
	if !ok {
		return ir.Column{}, &ParseError{
			Pos:      typeTok.Pos,
			Expected: []string{"int", "string", "decimal", "timestamp", "boolean", "text"},
			Found:    typeTok,
		}
	}

	col := ir.Column{Name: nameTok.Lexeme, Type: colType}

	for {
		cons, ok, err := p.tryParseConstraint()
		if err != nil {
			return ir.Column{}, err
		}
		if !ok {
			break
		}
		col.Constraints = append(col.Constraints, cons)
	}

	return col, nil
}

func (p *Parser) tryParseConstraint() (ir.Constraint, bool, error) {
	switch p.cur().Kind {
	case token.PK:
		p.advance()
		return ir.Constraint{Kind: ir.ConstraintPK}, true, nil
	case token.UNIQUE:
		p.advance()
		return ir.Constraint{Kind: ir.ConstraintUnique}, true, nil
	case token.NOT:
		p.advance()
		if _, err := p.expect(token.NULL); err != nil {
			return ir.Constraint{}, false, err
		}
		return ir.Constraint{Kind: ir.ConstraintNotNull}, true, nil
	case token.FK:
		p.advance()
		if _, err := p.expect(token.ARROW); err != nil {
			return ir.Constraint{}, false, err
		}
		entTok, err := p.expect(token.IDENT)
		if err != nil {
			return ir.Constraint{}, false, err
		}
		if _, err := p.expect(token.DOT); err != nil {
			return ir.Constraint{}, false, err
		}
		colTok, err := p.expect(token.IDENT)
		if err != nil {
			return ir.Constraint{}, false, err
		}
		return ir.Constraint{
			Kind:         ir.ConstraintFK,
			TargetEntity: entTok.Lexeme,
			TargetColumn: colTok.Lexeme,
		}, true, nil
	default:
		return ir.Constraint{}, false, nil
	}
}

// parseRelBlock parses: 'rel' '{' edge* '}'
func (p *Parser) parseRelBlock() ([]ir.Relationship, error) {
	if _, err := p.expect(token.REL); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var edges []ir.Relationship
	for !p.at(token.RBRACE) {
		edge, err := p.parseEdge()
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
		p.skipSeparator()
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return edges, nil
}

// parseEdge parses: IDENT card '--' card IDENT (':' STRING)? ('as' IDENT)?
func (p *Parser) parseEdge() (ir.Relationship, error) {
	leftTok, err := p.expect(token.IDENT)
	if err != nil {
		return ir.Relationship{}, err
	}
	leftCard, err := p.parseCardinality()
	if err != nil {
		return ir.Relationship{}, err
	}
	if _, err := p.expect(token.DASH2); err != nil {
		return ir.Relationship{}, err
	}
	rightCard, err := p.parseCardinality()
	if err != nil {
		return ir.Relationship{}, err
	}
	rightTok, err := p.expect(token.IDENT)
	if err != nil {
		return ir.Relationship{}, err
	}

	rel := ir.Relationship{
		LeftEntity:  leftTok.Lexeme,
		LeftCard:    leftCard,
		RightEntity: rightTok.Lexeme,
		RightCard:   rightCard,
	}

	if p.at(token.COLON) {
		p.advance()
		labelTok, err := p.expect(token.STRING)
		if err != nil {
			return ir.Relationship{}, err
		}
		rel.Label = labelTok.Lexeme
	}

	if p.at(token.AS) {
		p.advance()
		roleTok, err := p.expect(token.IDENT)
		if err != nil {
			return ir.Relationship{}, err
		}
		rel.Role = roleTok.Lexeme
	}

	return rel, nil
}

// InvalidCardinality reports a cardinality token that does not form one
// of the four allowed atoms: a bare INT whose literal value isn't 1, or a
// CARD token other than "0..1" and "1..*" (the lexer scans any
// digits..digits or digits..* run, e.g. "2..5" or "0..*", as a CARD).
type InvalidCardinality struct {
	Pos   token.Position
	Found string
}

func (e *InvalidCardinality) Error() string {
	return fmt.Sprintf("%s: invalid cardinality %q", e.Pos, e.Found)
}

func (p *Parser) parseCardinality() (ir.Cardinality, error) {
	switch p.cur().Kind {
	case token.INT:
		t := p.advance()
		if t.Lexeme != "1" {
			return 0, &InvalidCardinality{Pos: t.Pos, Found: t.Lexeme}
		}
		return ir.CardOne, nil
	case token.STAR:
		p.advance()
		return ir.CardMany, nil
	case token.CARD:
		t := p.advance()
		switch t.Lexeme {
		case "0..1":
			return ir.CardZeroOne, nil
		case "1..*":
			return ir.CardOneMany, nil
		default:
			return 0, &InvalidCardinality{Pos: t.Pos, Found: t.Lexeme}
		}
	default:
		return 0, &ParseError{
			Pos:      p.cur().Pos,
			Expected: []string{"1", "*", "0..1", "1..*"},
			Found:    p.cur(),
		}
	}
}

// parseView parses: 'view' IDENT '{' 'include' IDENT (',' IDENT)* '}'
func (p *Parser) parseView() (*ir.View, error) {
	if _, err := p.expect(token.VIEW); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INCLUDE); err != nil {
		return nil, err
	}

	v := &ir.View{Name: nameTok.Lexeme}

	first, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	v.Include = append(v.Include, first.Lexeme)

	for p.at(token.COMMA) {
		p.advance()
		next, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		v.Include = append(v.Include, next.Lexeme)
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return v, nil
}

// parseArrangementHint parses:
// '@' IDENT('hint') '.' IDENT('arrangement') '=' '{' row (';' row)* '}'
func (p *Parser) parseArrangementHint() (*ir.ArrangementHint, error) {
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	if err := p.expectIdentText("hint"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		return nil, err
	}
	if err := p.expectIdentText("arrangement"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUALS); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	hint := &ir.ArrangementHint{}

	row, err := p.parseRow()
	if err != nil {
		return nil, err
	}
	hint.Rows = append(hint.Rows, row)

	for p.at(token.SEMI) {
		p.advance()
		row, err := p.parseRow()
		if err != nil {
			return nil, err
		}
		hint.Rows = append(hint.Rows, row)
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return hint, nil
}

// parseRow parses: IDENT (IDENT)*
func (p *Parser) parseRow() ([]string, error) {
	first, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	row := []string{first.Lexeme}
	for p.at(token.IDENT) {
		row = append(row, p.advance().Lexeme)
	}
	return row, nil
}

// skipSeparator consumes an optional ';' or ',' between repeated items.
func (p *Parser) skipSeparator() {
	if p.at(token.SEMI) || p.at(token.COMMA) {
		p.advance()
	}
}
