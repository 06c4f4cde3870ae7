package parser

import "fmt"

// TokenType represents the kind of token.
type TokenType uint8

const (
	// Special
	EOF TokenType = iota
	MISSING
	NOT_PROVIDED
	WHITESPACE

	// Punctuation and operators
	AMPERSAND
	AMPERSAND_AMPERSAND
	AMPERSAND_AMPERSAND_EQUAL
	AMPERSAND_DOT
	AMPERSAND_EQUAL
	BACKTICK
	BANG
	BANG_EQUAL
	BANG_TILDE
	BRACE_LEFT
	BRACE_RIGHT
	BRACKET_LEFT
	BRACKET_LEFT_ARRAY
	BRACKET_LEFT_RIGHT
	BRACKET_LEFT_RIGHT_EQUAL
	BRACKET_RIGHT
	CARET
	CARET_EQUAL
	COLON
	COLON_COLON
	COMMA
	DOT
	DOT_DOT
	DOT_DOT_DOT
	EQUAL
	EQUAL_EQUAL
	EQUAL_EQUAL_EQUAL
	EQUAL_GREATER
	EQUAL_TILDE
	GREATER
	GREATER_EQUAL
	GREATER_GREATER
	GREATER_GREATER_EQUAL
	LAMBDA_BEGIN
	LESS
	LESS_EQUAL
	LESS_EQUAL_GREATER
	LESS_LESS
	LESS_LESS_EQUAL
	MINUS
	MINUS_EQUAL
	MINUS_GREATER
	NEWLINE
	IGNORED_NEWLINE
	PARENTHESIS_LEFT
	PARENTHESIS_LEFT_PARENTHESES
	PARENTHESIS_RIGHT
	PERCENT
	PERCENT_EQUAL
	PIPE
	PIPE_EQUAL
	PIPE_PIPE
	PIPE_PIPE_EQUAL
	PLUS
	PLUS_EQUAL
	QUESTION_MARK
	SEMICOLON
	SLASH
	SLASH_EQUAL
	STAR
	STAR_EQUAL
	STAR_STAR
	STAR_STAR_EQUAL
	TILDE
	UAMPERSAND
	UCOLON_COLON
	UDOT_DOT
	UDOT_DOT_DOT
	UMINUS
	UMINUS_NUM
	UPLUS
	USTAR
	USTAR_STAR

	// Literals and names
	BACK_REFERENCE
	CHARACTER_LITERAL
	CLASS_VARIABLE
	COMMENT
	CONSTANT
	EMBDOC_BEGIN
	EMBDOC_END
	EMBDOC_LINE
	EMBEXPR_BEGIN
	EMBEXPR_END
	EMBVAR
	FLOAT
	FLOAT_IMAGINARY
	FLOAT_RATIONAL
	FLOAT_RATIONAL_IMAGINARY
	GLOBAL_VARIABLE
	HEREDOC_END
	HEREDOC_START
	IDENTIFIER
	INSTANCE_VARIABLE
	INTEGER
	INTEGER_IMAGINARY
	INTEGER_RATIONAL
	INTEGER_RATIONAL_IMAGINARY
	LABEL
	LABEL_END
	METHOD_NAME
	NUMBERED_REFERENCE
	PERCENT_LOWER_I
	PERCENT_LOWER_W
	PERCENT_LOWER_X
	PERCENT_UPPER_I
	PERCENT_UPPER_W
	REGEXP_BEGIN
	REGEXP_END
	STRING_BEGIN
	STRING_CONTENT
	STRING_END
	SYMBOL_BEGIN
	WORDS_SEP
	DATA_END

	// Keywords
	KEYWORD_ALIAS
	KEYWORD_AND
	KEYWORD_BEGIN
	KEYWORD_BEGIN_UPCASE
	KEYWORD_BREAK
	KEYWORD_CASE
	KEYWORD_CLASS
	KEYWORD_DEF
	KEYWORD_DEFINED
	KEYWORD_DO
	KEYWORD_DO_LOOP
	KEYWORD_ELSE
	KEYWORD_ELSIF
	KEYWORD_END
	KEYWORD_END_UPCASE
	KEYWORD_ENSURE
	KEYWORD_FALSE
	KEYWORD_FOR
	KEYWORD_IF
	KEYWORD_IF_MODIFIER
	KEYWORD_IN
	KEYWORD_MODULE
	KEYWORD_NEXT
	KEYWORD_NIL
	KEYWORD_NOT
	KEYWORD_OR
	KEYWORD_REDO
	KEYWORD_RESCUE
	KEYWORD_RESCUE_MODIFIER
	KEYWORD_RETRY
	KEYWORD_RETURN
	KEYWORD_SELF
	KEYWORD_SUPER
	KEYWORD_THEN
	KEYWORD_TRUE
	KEYWORD_UNDEF
	KEYWORD_UNLESS
	KEYWORD_UNLESS_MODIFIER
	KEYWORD_UNTIL
	KEYWORD_UNTIL_MODIFIER
	KEYWORD_WHEN
	KEYWORD_WHILE
	KEYWORD_WHILE_MODIFIER
	KEYWORD_YIELD
	KEYWORD___ENCODING__
	KEYWORD___FILE__
	KEYWORD___LINE__

	tokenTypeCount
)

var tokenNames = [tokenTypeCount]string{
	EOF:                          "EOF",
	MISSING:                      "MISSING",
	NOT_PROVIDED:                 "NOT_PROVIDED",
	WHITESPACE:                   "WHITESPACE",
	AMPERSAND:                    "AMPERSAND",
	AMPERSAND_AMPERSAND:          "AMPERSAND_AMPERSAND",
	AMPERSAND_AMPERSAND_EQUAL:    "AMPERSAND_AMPERSAND_EQUAL",
	AMPERSAND_DOT:                "AMPERSAND_DOT",
	AMPERSAND_EQUAL:              "AMPERSAND_EQUAL",
	BACKTICK:                     "BACKTICK",
	BANG:                         "BANG",
	BANG_EQUAL:                   "BANG_EQUAL",
	BANG_TILDE:                   "BANG_TILDE",
	BRACE_LEFT:                   "BRACE_LEFT",
	BRACE_RIGHT:                  "BRACE_RIGHT",
	BRACKET_LEFT:                 "BRACKET_LEFT",
	BRACKET_LEFT_ARRAY:           "BRACKET_LEFT_ARRAY",
	BRACKET_LEFT_RIGHT:           "BRACKET_LEFT_RIGHT",
	BRACKET_LEFT_RIGHT_EQUAL:     "BRACKET_LEFT_RIGHT_EQUAL",
	BRACKET_RIGHT:                "BRACKET_RIGHT",
	CARET:                        "CARET",
	CARET_EQUAL:                  "CARET_EQUAL",
	COLON:                        "COLON",
	COLON_COLON:                  "COLON_COLON",
	COMMA:                        "COMMA",
	DOT:                          "DOT",
	DOT_DOT:                      "DOT_DOT",
	DOT_DOT_DOT:                  "DOT_DOT_DOT",
	EQUAL:                        "EQUAL",
	EQUAL_EQUAL:                  "EQUAL_EQUAL",
	EQUAL_EQUAL_EQUAL:            "EQUAL_EQUAL_EQUAL",
	EQUAL_GREATER:                "EQUAL_GREATER",
	EQUAL_TILDE:                  "EQUAL_TILDE",
	GREATER:                      "GREATER",
	GREATER_EQUAL:                "GREATER_EQUAL",
	GREATER_GREATER:              "GREATER_GREATER",
	GREATER_GREATER_EQUAL:        "GREATER_GREATER_EQUAL",
	LAMBDA_BEGIN:                 "LAMBDA_BEGIN",
	LESS:                         "LESS",
	LESS_EQUAL:                   "LESS_EQUAL",
	LESS_EQUAL_GREATER:           "LESS_EQUAL_GREATER",
	LESS_LESS:                    "LESS_LESS",
	LESS_LESS_EQUAL:              "LESS_LESS_EQUAL",
	MINUS:                        "MINUS",
	MINUS_EQUAL:                  "MINUS_EQUAL",
	MINUS_GREATER:                "MINUS_GREATER",
	NEWLINE:                      "NEWLINE",
	IGNORED_NEWLINE:              "IGNORED_NEWLINE",
	PARENTHESIS_LEFT:             "PARENTHESIS_LEFT",
	PARENTHESIS_LEFT_PARENTHESES: "PARENTHESIS_LEFT_PARENTHESES",
	PARENTHESIS_RIGHT:            "PARENTHESIS_RIGHT",
	PERCENT:                      "PERCENT",
	PERCENT_EQUAL:                "PERCENT_EQUAL",
	PIPE:                         "PIPE",
	PIPE_EQUAL:                   "PIPE_EQUAL",
	PIPE_PIPE:                    "PIPE_PIPE",
	PIPE_PIPE_EQUAL:              "PIPE_PIPE_EQUAL",
	PLUS:                         "PLUS",
	PLUS_EQUAL:                   "PLUS_EQUAL",
	QUESTION_MARK:                "QUESTION_MARK",
	SEMICOLON:                    "SEMICOLON",
	SLASH:                        "SLASH",
	SLASH_EQUAL:                  "SLASH_EQUAL",
	STAR:                         "STAR",
	STAR_EQUAL:                   "STAR_EQUAL",
	STAR_STAR:                    "STAR_STAR",
	STAR_STAR_EQUAL:              "STAR_STAR_EQUAL",
	TILDE:                        "TILDE",
	UAMPERSAND:                   "UAMPERSAND",
	UCOLON_COLON:                 "UCOLON_COLON",
	UDOT_DOT:                     "UDOT_DOT",
	UDOT_DOT_DOT:                 "UDOT_DOT_DOT",
	UMINUS:                       "UMINUS",
	UMINUS_NUM:                   "UMINUS_NUM",
	UPLUS:                        "UPLUS",
	USTAR:                        "USTAR",
	USTAR_STAR:                   "USTAR_STAR",
	BACK_REFERENCE:               "BACK_REFERENCE",
	CHARACTER_LITERAL:            "CHARACTER_LITERAL",
	CLASS_VARIABLE:               "CLASS_VARIABLE",
	COMMENT:                      "COMMENT",
	CONSTANT:                     "CONSTANT",
	EMBDOC_BEGIN:                 "EMBDOC_BEGIN",
	EMBDOC_END:                   "EMBDOC_END",
	EMBDOC_LINE:                  "EMBDOC_LINE",
	EMBEXPR_BEGIN:                "EMBEXPR_BEGIN",
	EMBEXPR_END:                  "EMBEXPR_END",
	EMBVAR:                       "EMBVAR",
	FLOAT:                        "FLOAT",
	FLOAT_IMAGINARY:              "FLOAT_IMAGINARY",
	FLOAT_RATIONAL:               "FLOAT_RATIONAL",
	FLOAT_RATIONAL_IMAGINARY:     "FLOAT_RATIONAL_IMAGINARY",
	GLOBAL_VARIABLE:              "GLOBAL_VARIABLE",
	HEREDOC_END:                  "HEREDOC_END",
	HEREDOC_START:                "HEREDOC_START",
	IDENTIFIER:                   "IDENTIFIER",
	INSTANCE_VARIABLE:            "INSTANCE_VARIABLE",
	INTEGER:                      "INTEGER",
	INTEGER_IMAGINARY:            "INTEGER_IMAGINARY",
	INTEGER_RATIONAL:             "INTEGER_RATIONAL",
	INTEGER_RATIONAL_IMAGINARY:   "INTEGER_RATIONAL_IMAGINARY",
	LABEL:                        "LABEL",
	LABEL_END:                    "LABEL_END",
	METHOD_NAME:                  "METHOD_NAME",
	NUMBERED_REFERENCE:           "NUMBERED_REFERENCE",
	PERCENT_LOWER_I:              "PERCENT_LOWER_I",
	PERCENT_LOWER_W:              "PERCENT_LOWER_W",
	PERCENT_LOWER_X:              "PERCENT_LOWER_X",
	PERCENT_UPPER_I:              "PERCENT_UPPER_I",
	PERCENT_UPPER_W:              "PERCENT_UPPER_W",
	REGEXP_BEGIN:                 "REGEXP_BEGIN",
	REGEXP_END:                   "REGEXP_END",
	STRING_BEGIN:                 "STRING_BEGIN",
	STRING_CONTENT:               "STRING_CONTENT",
	STRING_END:                   "STRING_END",
	SYMBOL_BEGIN:                 "SYMBOL_BEGIN",
	WORDS_SEP:                    "WORDS_SEP",
	DATA_END:                     "DATA_END",
	KEYWORD_ALIAS:                "KEYWORD_ALIAS",
	KEYWORD_AND:                  "KEYWORD_AND",
	KEYWORD_BEGIN:                "KEYWORD_BEGIN",
	KEYWORD_BEGIN_UPCASE:         "KEYWORD_BEGIN_UPCASE",
	KEYWORD_BREAK:                "KEYWORD_BREAK",
	KEYWORD_CASE:                 "KEYWORD_CASE",
	KEYWORD_CLASS:                "KEYWORD_CLASS",
	KEYWORD_DEF:                  "KEYWORD_DEF",
	KEYWORD_DEFINED:              "KEYWORD_DEFINED",
	KEYWORD_DO:                   "KEYWORD_DO",
	KEYWORD_DO_LOOP:              "KEYWORD_DO_LOOP",
	KEYWORD_ELSE:                 "KEYWORD_ELSE",
	KEYWORD_ELSIF:                "KEYWORD_ELSIF",
	KEYWORD_END:                  "KEYWORD_END",
	KEYWORD_END_UPCASE:           "KEYWORD_END_UPCASE",
	KEYWORD_ENSURE:               "KEYWORD_ENSURE",
	KEYWORD_FALSE:                "KEYWORD_FALSE",
	KEYWORD_FOR:                  "KEYWORD_FOR",
	KEYWORD_IF:                   "KEYWORD_IF",
	KEYWORD_IF_MODIFIER:          "KEYWORD_IF_MODIFIER",
	KEYWORD_IN:                   "KEYWORD_IN",
	KEYWORD_MODULE:               "KEYWORD_MODULE",
	KEYWORD_NEXT:                 "KEYWORD_NEXT",
	KEYWORD_NIL:                  "KEYWORD_NIL",
	KEYWORD_NOT:                  "KEYWORD_NOT",
	KEYWORD_OR:                   "KEYWORD_OR",
	KEYWORD_REDO:                 "KEYWORD_REDO",
	KEYWORD_RESCUE:               "KEYWORD_RESCUE",
	KEYWORD_RESCUE_MODIFIER:      "KEYWORD_RESCUE_MODIFIER",
	KEYWORD_RETRY:                "KEYWORD_RETRY",
	KEYWORD_RETURN:               "KEYWORD_RETURN",
	KEYWORD_SELF:                 "KEYWORD_SELF",
	KEYWORD_SUPER:                "KEYWORD_SUPER",
	KEYWORD_THEN:                 "KEYWORD_THEN",
	KEYWORD_TRUE:                 "KEYWORD_TRUE",
	KEYWORD_UNDEF:                "KEYWORD_UNDEF",
	KEYWORD_UNLESS:               "KEYWORD_UNLESS",
	KEYWORD_UNLESS_MODIFIER:      "KEYWORD_UNLESS_MODIFIER",
	KEYWORD_UNTIL:                "KEYWORD_UNTIL",
	KEYWORD_UNTIL_MODIFIER:       "KEYWORD_UNTIL_MODIFIER",
	KEYWORD_WHEN:                 "KEYWORD_WHEN",
	KEYWORD_WHILE:                "KEYWORD_WHILE",
	KEYWORD_WHILE_MODIFIER:       "KEYWORD_WHILE_MODIFIER",
	KEYWORD_YIELD:                "KEYWORD_YIELD",
	KEYWORD___ENCODING__:         "KEYWORD___ENCODING__",
	KEYWORD___FILE__:             "KEYWORD___FILE__",
	KEYWORD___LINE__:             "KEYWORD___LINE__",
}

// tokenHuman is the text used in diagnostics.
var tokenHuman = [tokenTypeCount]string{
	EOF:                          "end of file",
	MISSING:                      "missing token",
	NOT_PROVIDED:                 "not provided",
	WHITESPACE:                   "whitespace",
	AMPERSAND:                    "&",
	AMPERSAND_AMPERSAND:          "&&",
	AMPERSAND_AMPERSAND_EQUAL:    "&&=",
	AMPERSAND_DOT:                "&.",
	AMPERSAND_EQUAL:              "&=",
	BACKTICK:                     "`",
	BANG:                         "!",
	BANG_EQUAL:                   "!=",
	BANG_TILDE:                   "!~",
	BRACE_LEFT:                   "{",
	BRACE_RIGHT:                  "}",
	BRACKET_LEFT:                 "[",
	BRACKET_LEFT_ARRAY:           "[ (array)",
	BRACKET_LEFT_RIGHT:           "[]",
	BRACKET_LEFT_RIGHT_EQUAL:     "[]=",
	BRACKET_RIGHT:                "]",
	CARET:                        "^",
	CARET_EQUAL:                  "^=",
	COLON:                        ":",
	COLON_COLON:                  "::",
	COMMA:                        ",",
	DOT:                          ".",
	DOT_DOT:                      "..",
	DOT_DOT_DOT:                  "...",
	EQUAL:                        "=",
	EQUAL_EQUAL:                  "==",
	EQUAL_EQUAL_EQUAL:            "===",
	EQUAL_GREATER:                "=>",
	EQUAL_TILDE:                  "=~",
	GREATER:                      ">",
	GREATER_EQUAL:                ">=",
	GREATER_GREATER:              ">>",
	GREATER_GREATER_EQUAL:        ">>=",
	LAMBDA_BEGIN:                 "{ (lambda)",
	LESS:                         "<",
	LESS_EQUAL:                   "<=",
	LESS_EQUAL_GREATER:           "<=>",
	LESS_LESS:                    "<<",
	LESS_LESS_EQUAL:              "<<=",
	MINUS:                        "-",
	MINUS_EQUAL:                  "-=",
	MINUS_GREATER:                "->",
	NEWLINE:                      "newline",
	IGNORED_NEWLINE:              "ignored newline",
	PARENTHESIS_LEFT:             "(",
	PARENTHESIS_LEFT_PARENTHESES: "( (group)",
	PARENTHESIS_RIGHT:            ")",
	PERCENT:                      "%",
	PERCENT_EQUAL:                "%=",
	PIPE:                         "|",
	PIPE_EQUAL:                   "|=",
	PIPE_PIPE:                    "||",
	PIPE_PIPE_EQUAL:              "||=",
	PLUS:                         "+",
	PLUS_EQUAL:                   "+=",
	QUESTION_MARK:                "?",
	SEMICOLON:                    ";",
	SLASH:                        "/",
	SLASH_EQUAL:                  "/=",
	STAR:                         "*",
	STAR_EQUAL:                   "*=",
	STAR_STAR:                    "**",
	STAR_STAR_EQUAL:              "**=",
	TILDE:                        "~",
	UAMPERSAND:                   "& (unary)",
	UCOLON_COLON:                 ":: (unary)",
	UDOT_DOT:                     ".. (unary)",
	UDOT_DOT_DOT:                 "... (unary)",
	UMINUS:                       "-@",
	UMINUS_NUM:                   "- (numeric)",
	UPLUS:                        "+@",
	USTAR:                        "* (splat)",
	USTAR_STAR:                   "** (double splat)",
	BACK_REFERENCE:               "back reference",
	CHARACTER_LITERAL:            "character literal",
	CLASS_VARIABLE:               "class variable",
	COMMENT:                      "comment",
	CONSTANT:                     "constant",
	EMBDOC_BEGIN:                 "=begin",
	EMBDOC_END:                   "=end",
	EMBDOC_LINE:                  "embedded document line",
	EMBEXPR_BEGIN:                "#{",
	EMBEXPR_END:                  "} (interpolation)",
	EMBVAR:                       "#",
	FLOAT:                        "float",
	FLOAT_IMAGINARY:              "imaginary float",
	FLOAT_RATIONAL:               "rational float",
	FLOAT_RATIONAL_IMAGINARY:     "imaginary rational float",
	GLOBAL_VARIABLE:              "global variable",
	HEREDOC_END:                  "heredoc terminator",
	HEREDOC_START:                "heredoc",
	IDENTIFIER:                   "identifier",
	INSTANCE_VARIABLE:            "instance variable",
	INTEGER:                      "integer",
	INTEGER_IMAGINARY:            "imaginary integer",
	INTEGER_RATIONAL:             "rational integer",
	INTEGER_RATIONAL_IMAGINARY:   "imaginary rational integer",
	LABEL:                        "label",
	LABEL_END:                    "label terminator",
	METHOD_NAME:                  "method name",
	NUMBERED_REFERENCE:           "numbered reference",
	PERCENT_LOWER_I:              "%i",
	PERCENT_LOWER_W:              "%w",
	PERCENT_LOWER_X:              "%x",
	PERCENT_UPPER_I:              "%I",
	PERCENT_UPPER_W:              "%W",
	REGEXP_BEGIN:                 "regexp beginning",
	REGEXP_END:                   "regexp terminator",
	STRING_BEGIN:                 "string beginning",
	STRING_CONTENT:               "string content",
	STRING_END:                   "string terminator",
	SYMBOL_BEGIN:                 "symbol beginning",
	WORDS_SEP:                    "word separator",
	DATA_END:                     "__END__",
	KEYWORD_ALIAS:                "alias",
	KEYWORD_AND:                  "and",
	KEYWORD_BEGIN:                "begin",
	KEYWORD_BEGIN_UPCASE:         "BEGIN",
	KEYWORD_BREAK:                "break",
	KEYWORD_CASE:                 "case",
	KEYWORD_CLASS:                "class",
	KEYWORD_DEF:                  "def",
	KEYWORD_DEFINED:              "defined?",
	KEYWORD_DO:                   "do",
	KEYWORD_DO_LOOP:              "do (loop)",
	KEYWORD_ELSE:                 "else",
	KEYWORD_ELSIF:                "elsif",
	KEYWORD_END:                  "end",
	KEYWORD_END_UPCASE:           "END",
	KEYWORD_ENSURE:               "ensure",
	KEYWORD_FALSE:                "false",
	KEYWORD_FOR:                  "for",
	KEYWORD_IF:                   "if",
	KEYWORD_IF_MODIFIER:          "if (modifier)",
	KEYWORD_IN:                   "in",
	KEYWORD_MODULE:               "module",
	KEYWORD_NEXT:                 "next",
	KEYWORD_NIL:                  "nil",
	KEYWORD_NOT:                  "not",
	KEYWORD_OR:                   "or",
	KEYWORD_REDO:                 "redo",
	KEYWORD_RESCUE:               "rescue",
	KEYWORD_RESCUE_MODIFIER:      "rescue (modifier)",
	KEYWORD_RETRY:                "retry",
	KEYWORD_RETURN:               "return",
	KEYWORD_SELF:                 "self",
	KEYWORD_SUPER:                "super",
	KEYWORD_THEN:                 "then",
	KEYWORD_TRUE:                 "true",
	KEYWORD_UNDEF:                "undef",
	KEYWORD_UNLESS:               "unless",
	KEYWORD_UNLESS_MODIFIER:      "unless (modifier)",
	KEYWORD_UNTIL:                "until",
	KEYWORD_UNTIL_MODIFIER:       "until (modifier)",
	KEYWORD_WHEN:                 "when",
	KEYWORD_WHILE:                "while",
	KEYWORD_WHILE_MODIFIER:       "while (modifier)",
	KEYWORD_YIELD:                "yield",
	KEYWORD___ENCODING__:         "__ENCODING__",
	KEYWORD___FILE__:             "__FILE__",
	KEYWORD___LINE__:             "__LINE__",
}

func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Human returns a short description of t for error messages.
func (t TokenType) Human() string {
	if t < tokenTypeCount {
		return tokenHuman[t]
	}
	return t.String()
}

// Token is a lexical token: a kind and the byte range it covers.
type Token struct {
	Type  TokenType
	Start int
	End   int
}

func (t Token) Len() int { return t.End - t.Start }

// Text returns the bytes of src covered by t.
func (t Token) Text(src []byte) string {
	if t.Start < 0 || t.End > len(src) || t.Start > t.End {
		return ""
	}
	return string(src[t.Start:t.End])
}

func (t Token) String() string { return fmt.Sprintf("%s(%d...%d)", t.Type, t.Start, t.End) }
