package dice

import "testing"

func TestLexerTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []tokenKind
	}{
		{"4d6", []tokenKind{tokNumber, tokD, tokNumber, tokEOF}},
		{"4dF", []tokenKind{tokNumber, tokDF, tokEOF}},
		{"4d6kh3", []tokenKind{tokNumber, tokD, tokNumber, tokKH, tokNumber, tokEOF}},
		{"4d6dl1", []tokenKind{tokNumber, tokD, tokNumber, tokDL, tokNumber, tokEOF}},
		{"10d6rr1e", nil}, // 'e' is not a token start; exercised in TestLexerErrors below
		{"6d10!>7f<3", []tokenKind{
			tokNumber, tokD, tokNumber, tokBang, tokGt, tokNumber, tokF, tokLt, tokNumber, tokEOF,
		}},
		{"1d100!!", []tokenKind{tokNumber, tokD, tokNumber, tokBangBang, tokEOF}},
		{"1d100!p", []tokenKind{tokNumber, tokD, tokNumber, tokBangP, tokEOF}},
		{"10d6ro1", []tokenKind{tokNumber, tokD, tokNumber, tokRO, tokNumber, tokEOF}},
		{"{2d6,1d8}k1", []tokenKind{
			tokLBrace, tokNumber, tokD, tokNumber, tokComma, tokNumber, tokD, tokNumber, tokRBrace, tokKH, tokNumber, tokEOF,
		}},
		{"[1+2]d6", []tokenKind{
			tokLBracket, tokNumber, tokPlus, tokNumber, tokRBracket, tokD, tokNumber, tokEOF,
		}},
		{"(1+2)*3", []tokenKind{
			tokLParen, tokNumber, tokPlus, tokNumber, tokRParen, tokStar, tokNumber, tokEOF,
		}},
	}
	for _, c := range cases {
		if c.want == nil {
			continue
		}
		t.Run(c.in, func(t *testing.T) {
			l := newLexer(c.in)
			for i, want := range c.want {
				tok, err := l.next()
				if err != nil {
					t.Fatalf("token %d: unexpected error: %v", i, err)
				}
				if tok.kind != want {
					t.Fatalf("token %d: got kind %d, want %d", i, tok.kind, want)
				}
			}
		})
	}
}

func TestLexerNumberValue(t *testing.T) {
	l := newLexer("123d6")
	tok, err := l.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.kind != tokNumber || tok.num != 123 {
		t.Fatalf("got %+v, want number 123", tok)
	}
}

func TestLexerErrors(t *testing.T) {
	for _, in := range []string{"4 d6", "4d6 kh3", "#", "4d6e", "4d6~"} {
		t.Run(in, func(t *testing.T) {
			l := newLexer(in)
			var sawErr bool
			for i := 0; i < len(in)+1; i++ {
				_, err := l.next()
				if err != nil {
					sawErr = true
					break
				}
			}
			if !sawErr {
				t.Fatalf("expected a lex error somewhere in %q", in)
			}
		})
	}
}
