package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenTypes(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Type.String()
	}
	return out
}

func Test_Lex_Simple_Assignment(t *testing.T) {
	toks, res := Lex([]byte("a = 1"))
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	want := []string{"IDENTIFIER", "WHITESPACE", "EQUAL", "WHITESPACE", "INTEGER"}
	if diff := cmp.Diff(want, tokenTypes(toks)); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
}

func Test_Lex_String_Tokens(t *testing.T) {
	toks, _ := Lex([]byte(`"a#{b}c"`))
	want := []string{"STRING_BEGIN", "STRING_CONTENT", "EMBEXPR_BEGIN", "IDENTIFIER", "EMBEXPR_END", "STRING_CONTENT", "STRING_END"}
	if diff := cmp.Diff(want, tokenTypes(toks)); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
}

func Test_Lex_Keywords_And_Modifiers(t *testing.T) {
	toks, _ := Lex([]byte("if a then b end\nc if d"))
	var kws []string
	for _, tok := range toks {
		if strings.HasPrefix(tok.Type.String(), "KEYWORD_") {
			kws = append(kws, tok.Type.String())
		}
	}
	want := []string{"KEYWORD_IF", "KEYWORD_THEN", "KEYWORD_END", "KEYWORD_IF_MODIFIER"}
	if diff := cmp.Diff(want, kws); diff != "" {
		t.Fatalf("keywords (-want +got):\n%s", diff)
	}
}

// Concatenating the token texts must reproduce the input byte for byte.
func Test_Lex_Lossless(t *testing.T) {
	inputs := []string{
		"",
		"a = 1\n",
		"  x  =  [1 ,2]  # trailing comment\n",
		"def foo(a, *b, c: 1, **d, &e)\n  a.b&.c(1) { |x| x }\nend\n",
		"x = <<~EOS\n  one\n  #{two}\nEOS\ny = 2\n",
		"foo(<<A, <<B)\na\nA\nb\nB\n",
		"%w[a b c] + %i[d e]\n",
		"/re#{1}/im =~ s\n",
		"=begin\ndoc\n=end\nx\n",
		"a \\\n  + b\n",
		"p 1\n__END__\nraw data\n",
		"\"unterminated",
		"def (,\n",
		"é = 1\n",
		"\xef\xbb\xbfputs 1\n",
	}
	for _, src := range inputs {
		t.Run(strconv.Quote(src), func(t *testing.T) {
			toks, _ := Lex([]byte(src))
			var b strings.Builder
			pos := 0
			for _, tok := range toks {
				if tok.Start != pos {
					t.Fatalf("gap or overlap at %d: next token %s", pos, tok)
				}
				b.WriteString(tok.Text([]byte(src)))
				pos = tok.End
			}
			if b.String() != src {
				t.Fatalf("round trip mismatch\nwant %q\ngot  %q", src, b.String())
			}
		})
	}
}

func Test_Lex_Token_Callback_Sees_Every_Token(t *testing.T) {
	var seen []TokenType
	res := Parse([]byte("a + b"), WithTokenCallback(func(tok Token) { seen = append(seen, tok.Type) }))
	if len(seen) == 0 || seen[len(seen)-1] != EOF {
		t.Fatalf("want the token stream to end with EOF, got %v", seen)
	}
	if res.TokenCount != len(seen) {
		t.Fatalf("token count %d, callback saw %d", res.TokenCount, len(seen))
	}
}

func Test_Lex_Comments_Collected(t *testing.T) {
	res := Parse([]byte("# one\nx = 1 # two\n=begin\nthree\n=end\n"))
	if len(res.Comments) != 3 {
		t.Fatalf("want 3 comments, got %d: %v", len(res.Comments), res.Comments)
	}
	kinds := []CommentType{res.Comments[0].Type, res.Comments[1].Type, res.Comments[2].Type}
	if diff := cmp.Diff([]CommentType{CommentInline, CommentInline, CommentEmbdoc}, kinds); diff != "" {
		t.Fatalf("comment types (-want +got):\n%s", diff)
	}
}

func Test_Lex_Unterminated_Embdoc(t *testing.T) {
	mustFailParseContains(t, "=begin\nnever closed\n", "embedded document meets end of file")
}

func Test_Lex_Invalid_Character(t *testing.T) {
	mustFailParseContains(t, "a = 1 \x01 2", "invalid character")
}

func Test_Lex_Dash_Globals(t *testing.T) {
	toks, res := Lex([]byte("$-w $-0"))
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	want := []string{"GLOBAL_VARIABLE", "WHITESPACE", "GLOBAL_VARIABLE"}
	if diff := cmp.Diff(want, tokenTypes(toks)); diff != "" {
		t.Fatalf("tokens (-want +got):\n%s", diff)
	}
	mustFailParseContains(t, "$- + 1", "`$-` is not allowed as a global variable name")
	mustFailParseContains(t, "$-", "`$-` is not allowed as a global variable name")
}
