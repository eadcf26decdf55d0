package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scan runs the scanner over src and returns the tokens with the reporter.
func scan(src string) ([]*Token, *mockReporter) {
	report := newMockReporter()
	return NewScanner([]rune(src), report).Scan(), report
}

// tok builds an expected token on line 1, the common case in these tables.
func tok(typ TokenType, lexeme string) *Token {
	return NewToken(typ, lexeme, nil, 1)
}

func TestScanTokens(t *testing.T) {
	testCases := map[string]struct {
		src  string
		toks []*Token
	}{
		"empty source": {"", []*Token{tokEOF(1)}},
		"punctuation": {"(){},.;", []*Token{
			tok(LEFT_PAREN, "("), tok(RIGHT_PAREN, ")"),
			tok(LEFT_BRACE, "{"), tok(RIGHT_BRACE, "}"),
			tok(COMMA, ","), tok(DOT, "."), tok(SEMICOLON, ";"),
			tokEOF(1)}},
		"arithmetic operators": {"+ - * /", []*Token{
			tok(PLUS, "+"), tok(MINUS, "-"), tok(STAR, "*"), tok(SLASH, "/"),
			tokEOF(1)}},
		"one char comparisons": {"! = < >", []*Token{
			tok(BANG, "!"), tok(EQUAL, "="), tok(LESS, "<"), tok(GREATER, ">"),
			tokEOF(1)}},
		"two char comparisons": {"!= == <= >=", []*Token{
			tok(BANG_EQUAL, "!="), tok(EQUAL_EQUAL, "=="),
			tok(LESS_EQUAL, "<="), tok(GREATER_EQUAL, ">="),
			tokEOF(1)}},
		"identifiers": {"a abc abc123 a1_b2 _abc _123", []*Token{
			tok(IDENTIFIER, "a"), tok(IDENTIFIER, "abc"),
			tok(IDENTIFIER, "abc123"), tok(IDENTIFIER, "a1_b2"),
			tok(IDENTIFIER, "_abc"), tok(IDENTIFIER, "_123"),
			tokEOF(1)}},
		"keywords": {
			"and class else false fun for if nil or print return super this true var while",
			[]*Token{
				tok(AND, "and"), tok(CLASS, "class"), tok(ELSE, "else"),
				tok(FALSE, "false"), tok(FUN, "fun"), tok(FOR, "for"),
				tok(IF, "if"), tok(NIL, "nil"), tok(OR, "or"),
				tok(PRINT, "print"), tok(RETURN, "return"), tok(SUPER, "super"),
				tok(THIS, "this"), tok(TRUE, "true"), tok(VAR, "var"),
				tok(WHILE, "while"),
				tokEOF(1)}},
		"keyword prefix is an identifier": {"classy nilly", []*Token{
			tok(IDENTIFIER, "classy"), tok(IDENTIFIER, "nilly"),
			tokEOF(1)}},
		"numbers": {"10 01 100 0.1 1.0 123.456 789.000", []*Token{
			NewToken(NUMBER, "10", 10.0, 1),
			NewToken(NUMBER, "01", 1.0, 1),
			NewToken(NUMBER, "100", 100.0, 1),
			NewToken(NUMBER, "0.1", 0.1, 1),
			NewToken(NUMBER, "1.0", 1.0, 1),
			NewToken(NUMBER, "123.456", 123.456, 1),
			NewToken(NUMBER, "789.000", 789.0, 1),
			tokEOF(1)}},
		"strings": {`"" "123"`, []*Token{
			NewToken(STRING, `""`, "", 1),
			NewToken(STRING, `"123"`, "123", 1),
			tokEOF(1)}},
		"string spanning lines": {"\"abc\n123\"", []*Token{
			NewToken(STRING, "\"abc\n123\"", "abc\n123", 2),
			tokEOF(2)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			toks, report := scan(tc.src)
			assert.False(t, report.HadError())
			assert.Equal(t, tc.toks, toks)
		})
	}
}

func TestScanMaximalMunch(t *testing.T) {
	// operators match maximally, "==" never scans as "=" "=" and the longest
	// two-character operator is taken before the shorter reading
	testCases := map[string]struct {
		src  string
		toks []*Token
	}{
		"equal equal then equal": {"===", []*Token{
			tok(EQUAL_EQUAL, "=="), tok(EQUAL, "="), tokEOF(1)}},
		"bang equal then equal": {"!==", []*Token{
			tok(BANG_EQUAL, "!="), tok(EQUAL, "="), tokEOF(1)}},
		"less equal then greater": {"<=>", []*Token{
			tok(LESS_EQUAL, "<="), tok(GREATER, ">"), tokEOF(1)}},
		"greater equal": {">>=", []*Token{
			tok(GREATER, ">"), tok(GREATER_EQUAL, ">="), tokEOF(1)}},
		"separated stays single": {"= =", []*Token{
			tok(EQUAL, "="), tok(EQUAL, "="), tokEOF(1)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			toks, report := scan(tc.src)
			assert.False(t, report.HadError())
			assert.Equal(t, tc.toks, toks)
		})
	}
}

func TestScanNumberNeverConsumesTrailingDot(t *testing.T) {
	// a dot with no digit behind it belongs to the next lexeme, so calls on
	// number literals still parse
	toks, report := scan("123.foo();")
	assert.False(t, report.HadError())
	assert.Equal(t, []*Token{
		NewToken(NUMBER, "123", 123.0, 1),
		tok(DOT, "."),
		tok(IDENTIFIER, "foo"),
		tok(LEFT_PAREN, "("),
		tok(RIGHT_PAREN, ")"),
		tok(SEMICOLON, ";"),
		tokEOF(1),
	}, toks)
}

func TestScanWhitespaceAndLineCounting(t *testing.T) {
	testCases := map[string]struct {
		src  string
		toks []*Token
	}{
		"spaces":          {"        ", []*Token{tokEOF(1)}},
		"carriage return": {"\r\r\r\r", []*Token{tokEOF(1)}},
		"tabs":            {"\t\t\t\t", []*Token{tokEOF(1)}},
		"newlines":        {"\n\n\n\n", []*Token{tokEOF(5)}},
		"mixed":           {"  \r\t\n", []*Token{tokEOF(2)}},
		"tokens carry their line": {"1\n2", []*Token{
			NewToken(NUMBER, "1", 1.0, 1),
			NewToken(NUMBER, "2", 2.0, 2),
			tokEOF(2)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			toks, report := scan(tc.src)
			assert.False(t, report.HadError())
			assert.Equal(t, tc.toks, toks)
		})
	}
}

func TestScanComments(t *testing.T) {
	testCases := map[string]struct {
		src  string
		toks []*Token
	}{
		"line comment":            {"// a line comment", []*Token{tokEOF(1)}},
		"line comment at EOF":     {"// no newline after", []*Token{tokEOF(1)}},
		"block comment":           {"/* a block comment */", []*Token{tokEOF(1)}},
		"stars inside block":      {"/* ** * **/", []*Token{tokEOF(1)}},
		"block comment spanning":  {"/*\na\nblock\ncomment\n*/", []*Token{tokEOF(5)}},
		"line comment keeps line": {"1 // trailing\n2", []*Token{
			NewToken(NUMBER, "1", 1.0, 1),
			NewToken(NUMBER, "2", 2.0, 2),
			tokEOF(2)}},
		"block comment inline": {"1 /* inline */ 2", []*Token{
			NewToken(NUMBER, "1", 1.0, 1),
			NewToken(NUMBER, "2", 2.0, 1),
			tokEOF(1)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			toks, report := scan(tc.src)
			assert.False(t, report.HadError())
			assert.Equal(t, tc.toks, toks)
		})
	}
}

func TestScanLexemesReconstructSource(t *testing.T) {
	// modulo whitespace and comments, joining the lexemes gives the source back
	src := `class Point { init(x, y) { this.x = x; this.y = y; } }
var p = Point(1, 2); // make one
print p.x + p.y;`
	want := strings.Join(strings.Fields(
		`class Point { init ( x , y ) { this . x = x ; this . y = y ; } }
		var p = Point ( 1 , 2 ) ; print p . x + p . y ;`), " ")

	toks, report := scan(src)

	var lexemes []string
	for _, token := range toks {
		if token.Typ != EOF {
			lexemes = append(lexemes, token.Lexeme)
		}
	}

	assert.False(t, report.HadError())
	assert.Equal(t, want, strings.Join(lexemes, " "))
}

func TestScanWithErrors(t *testing.T) {
	testCases := map[string]struct {
		src    string
		errors []error
		toks   []*Token
	}{
		"unterminated string": {
			"\"yo where's the closing quote",
			[]error{NewScanError(1, "Unterminated string.")},
			[]*Token{tokEOF(1)}},
		"unterminated string counts lines": {
			"\"yo\nwhere's\nthe\nclosing\nquote",
			[]error{NewScanError(5, "Unterminated string.")},
			[]*Token{tokEOF(5)}},
		"unterminated block comment": {
			"/*yo where's the closing STAR-SLASH",
			[]error{NewScanError(1, "Unterminated multiline comment.")},
			[]*Token{tokEOF(1)}},
		"scanning continues past bad characters": {
			"@ # $ % \"valid again\"",
			[]error{
				NewScanError(1, "Unexpected character."),
				NewScanError(1, "Unexpected character."),
				NewScanError(1, "Unexpected character."),
				NewScanError(1, "Unexpected character."),
			},
			[]*Token{NewToken(STRING, "\"valid again\"", "valid again", 1), tokEOF(1)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			toks, report := scan(tc.src)
			assert.True(t, report.HadError())
			assert.Equal(t, tc.errors, report.errors)
			assert.Equal(t, tc.toks, toks)
		})
	}
}
