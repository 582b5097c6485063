package expr

import (
	"testing"

	"github.com/matzehuels/tensorcanon/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
	}{
		{"symbol", "i", NewSym("i")},
		{"number", "42", NewNum(42)},
		{"spaces", "  i  ", NewSym("i")},
		{"sum", "i+j", NewOp("+", NewSym("i"), NewSym("j"))},
		{"difference", "i - 1", NewOp("-", NewSym("i"), NewNum(1))},
		{"product", "2*i", NewOp("*", NewNum(2), NewSym("i"))},
		{
			"precedence",
			"i + 2*j",
			NewOp("+", NewSym("i"), NewOp("*", NewNum(2), NewSym("j"))),
		},
		{
			"left assoc",
			"i+j+k",
			NewOp("+", NewOp("+", NewSym("i"), NewSym("j")), NewSym("k")),
		},
		{
			"parens",
			"(i+j)*k",
			NewOp("*", NewOp("+", NewSym("i"), NewSym("j")), NewSym("k")),
		},
		{"unary minus", "-i", NewOp("neg", NewSym("i"))},
		{"application", "f(i, j)", NewOp("f", NewSym("i"), NewSym("j"))},
		{
			"nested application",
			"f(g(i), j+1)",
			NewOp("f", NewOp("g", NewSym("i")), NewOp("+", NewSym("j"), NewNum(1))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"dangling operator", "i+"},
		{"unbalanced paren", "(i+j"},
		{"unbalanced call", "f(i"},
		{"trailing garbage", "i j"},
		{"bad char", "i @ j"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want error", tt.input)
			}
			if !errors.Is(err, errors.ErrCodeInvalidExpr) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidExpr)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// Parsing the rendered form reproduces the same expression.
	inputs := []string{"i", "i+j", "f(i, j)", "(i + 2*j)", "-k"}
	for _, in := range inputs {
		e := MustParse(in)
		back, err := Parse(e.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", e.String(), err)
		}
		if !Equal(e, back) {
			t.Errorf("round trip of %q: %s != %s", in, e, back)
		}
	}
}
