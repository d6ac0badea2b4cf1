package fortransducer

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// postLexer tokenizes the output-level post-condition language accepted
// by pullback/emit/solve (spec.md §4.G's "mono-sorted FO over the
// output word"). Concrete surface syntax, e.g.:
//
//	exists x. forall y. (not (y <= x)) or letter(x, 'a')
var postLexer = lexer.MustStateful(lexer.Rules{
	"Root": []lexer.Rule{
		{Name: "whitespace", Pattern: `[ \r\t\n]+`},

		{Name: "Exists", Pattern: `\bexists\b`},
		{Name: "Forall", Pattern: `\bforall\b`},
		{Name: "Not", Pattern: `\bnot\b`},
		{Name: "And", Pattern: `\band\b`},
		{Name: "Or", Pattern: `\bor\b`},
		{Name: "True", Pattern: `\btrue\b`},
		{Name: "False", Pattern: `\bfalse\b`},
		{Name: "LetterKw", Pattern: `\bletter\b`},

		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Char", Pattern: `'(\\.|[^'\\])'`},

		{Name: "<->", Pattern: `<->`},
		{Name: "->", Pattern: `->`},
		{Name: "<=", Pattern: `<=`},
		{Name: ".", Pattern: `\.`},
		{Name: ",", Pattern: `,`},
		{Name: "(", Pattern: `\(`},
		{Name: ")", Pattern: `\)`},
	},
})

var postParser = participle.MustBuild[pgFormula](
	participle.Lexer(postLexer),
	participle.UseLookahead(2),
)

// ParsePostCondition parses an output-level post-condition (the file
// passed via --post) into an OutputFormula ready for Pullback.
func ParsePostCondition(filename, src string) (OutputFormula, error) {
	g, err := postParser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	return convertPgFormula(g)
}

type pgFormula struct {
	ExistsVar  *string  `parser:"(  'exists' @Ident '.'"`
	ExistsBody *pgFormula `parser:"@@"`
	ForallVar  *string  `parser:"| 'forall' @Ident '.'"`
	ForallBody *pgFormula `parser:"@@"`
	Impl       *pgImpl  `parser:"| @@ )"`
}

type pgImpl struct {
	Left  *pgOr   `parser:"@@"`
	Op    *string `parser:"( @('<->'|'->')"`
	Right *pgOr   `parser:"  @@ )?"`
}

type pgOr struct {
	Left *pgAnd   `parser:"@@"`
	Rest []*pgAnd `parser:"( 'or' @@ )*"`
}

type pgAnd struct {
	Left *pgNot   `parser:"@@"`
	Rest []*pgNot `parser:"( 'and' @@ )*"`
}

type pgNot struct {
	Not  *pgNot     `parser:"(  'not' @@"`
	Prim *pgPrimary `parser:"|  @@ )"`
}

type pgPrimary struct {
	Paren     *pgFormula `parser:"(  '(' @@ ')'"`
	True      bool       `parser:"|  @'true'"`
	False     bool       `parser:"|  @'false'"`
	LeX       *string    `parser:"|  ( @Ident '<='"`
	LeY       *string    `parser:"    @Ident )"`
	LetterVar *string    `parser:"|  ( 'letter' '(' @Ident ','"`
	LetterCh  *string    `parser:"    @Char ')' ) )"`
}

func convertPgFormula(g *pgFormula) (OutputFormula, error) {
	switch {
	case g.ExistsVar != nil:
		body, err := convertPgFormula(g.ExistsBody)
		if err != nil {
			return nil, err
		}
		return OExists{Var: *g.ExistsVar, Body: body}, nil
	case g.ForallVar != nil:
		body, err := convertPgFormula(g.ForallBody)
		if err != nil {
			return nil, err
		}
		return OForall{Var: *g.ForallVar, Body: body}, nil
	case g.Impl != nil:
		return convertPgImpl(g.Impl)
	default:
		return nil, fmt.Errorf("fortransducer: empty post-condition")
	}
}

func convertPgImpl(g *pgImpl) (OutputFormula, error) {
	left, err := convertPgOr(g.Left)
	if err != nil {
		return nil, err
	}
	if g.Op == nil {
		return left, nil
	}
	right, err := convertPgOr(g.Right)
	if err != nil {
		return nil, err
	}
	if *g.Op == "<->" {
		return OIff{L: left, R: right}, nil
	}
	return OImplies{L: left, R: right}, nil
}

func convertPgOr(g *pgOr) (OutputFormula, error) {
	left, err := convertPgAnd(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Rest {
		right, err := convertPgAnd(r)
		if err != nil {
			return nil, err
		}
		left = OOr{L: left, R: right}
	}
	return left, nil
}

func convertPgAnd(g *pgAnd) (OutputFormula, error) {
	left, err := convertPgNot(g.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range g.Rest {
		right, err := convertPgNot(r)
		if err != nil {
			return nil, err
		}
		left = OAnd{L: left, R: right}
	}
	return left, nil
}

func convertPgNot(g *pgNot) (OutputFormula, error) {
	if g.Not != nil {
		x, err := convertPgNot(g.Not)
		if err != nil {
			return nil, err
		}
		return ONot{X: x}, nil
	}
	return convertPgPrimary(g.Prim)
}

func convertPgPrimary(g *pgPrimary) (OutputFormula, error) {
	switch {
	case g.Paren != nil:
		return convertPgFormula(g.Paren)
	case g.True:
		return OTrue{}, nil
	case g.False:
		return OFalse{}, nil
	case g.LeX != nil:
		return OLessEqual{L: *g.LeX, R: *g.LeY}, nil
	case g.LetterVar != nil:
		ch := stripCharQuotes(*g.LetterCh)
		return OLetter{Var: *g.LetterVar, Letter: ch}, nil
	default:
		return nil, fmt.Errorf("fortransducer: empty post-condition atom")
	}
}

func stripCharQuotes(lit string) rune {
	if len(lit) < 3 {
		return 0
	}
	inner := lit[1 : len(lit)-1]
	r := []rune(inner)
	if len(r) == 0 {
		return 0
	}
	return r[0]
}
