package fortransducer

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the print-transducer source language of spec.md §6.
// Keyword rules are listed before Ident so that, e.g., "for" lexes as
// the For token rather than a generic identifier — the same ordering
// discipline the teacher's stateful lexer uses for its own keywords.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": []lexer.Rule{
		{Name: "whitespace", Pattern: `[ \r\t\n]+`},
		{Name: "comment", Pattern: `//[^\n]*`},

		{Name: "For", Pattern: `\bfor\b`},
		{Name: "In", Pattern: `\bin\b`},
		{Name: "If", Pattern: `\bif\b`},
		{Name: "Else", Pattern: `\belse\b`},
		{Name: "Print", Pattern: `\bprint\b`},
		{Name: "And", Pattern: `\band\b`},
		{Name: "Or", Pattern: `\bor\b`},
		{Name: "Not", Pattern: `\bnot\b`},
		{Name: "True", Pattern: `\bT\b`},
		{Name: "False", Pattern: `\bF\b`},
		{Name: "LabelKw", Pattern: `\blabel\b`},

		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `[0-9]+`},

		{Name: "..", Pattern: `\.\.`},
		{Name: "==", Pattern: `==`},
		{Name: "!=", Pattern: `!=`},
		{Name: "<=", Pattern: `<=`},
		{Name: ">=", Pattern: `>=`},
		{Name: "<", Pattern: `<`},
		{Name: ">", Pattern: `>`},
		{Name: ".", Pattern: `\.`},
		{Name: "(", Pattern: `\(`},
		{Name: ")", Pattern: `\)`},
		{Name: "{", Pattern: `\{`},
		{Name: "}", Pattern: `\}`},
	},
})
