/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mipsy_macro

import "fmt"

type TokenKind int

const (
	TokenWord    TokenKind = iota // identifier-like, the unit macros match against
	TokenLabel                    // label definition, colon included
	TokenString                   // quoted string or char literal, quotes included
	TokenComment                  // '#' through end of line
	TokenSpace                    // whitespace run, kept verbatim for re-emission
	TokenPunct                    // any other single character
)

// Token is one lexical unit of a source line. Tokens are immutable;
// concatenating the Text of a line's tokens reproduces the line exactly.
type Token struct {
	Text string
	Kind TokenKind
	Line int
	Col  int // 1-based byte column
}

// tokenizeLine splits one source line into tokens. Malformed quoting is
// reported as a warning and the rest of the line is absorbed into the
// current token rather than aborting.
func tokenizeLine(line string, lineNo int) (toks []Token, diags []Diagnostic) {
	for i := 0; i < len(line); {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			j := i + 1
			for j < len(line) && (line[j] == ' ' || line[j] == '\t' || line[j] == '\r') {
				j++
			}
			toks = append(toks, Token{line[i:j], TokenSpace, lineNo, i + 1})
			i = j

		case ch == '#':
			toks = append(toks, Token{line[i:], TokenComment, lineNo, i + 1})
			i = len(line)

		case ch == '"':
			j, terminated := scanString(line, i)
			if !terminated {
				diags = append(diags, Diagnostic{SeverityWarning, lineNo, i + 1,
					"unterminated string literal, treating the rest of the line as part of the string"})
			}
			toks = append(toks, Token{line[i:j], TokenString, lineNo, i + 1})
			i = j

		case ch == '\'':
			j, terminated := scanCharLiteral(line, i)
			if terminated {
				toks = append(toks, Token{line[i:j], TokenString, lineNo, i + 1})
				i = j
			} else {
				got := "end of line"
				if j < len(line) {
					got = fmt.Sprintf("%q", line[j])
				}
				diags = append(diags, Diagnostic{SeverityWarning, lineNo, i + 1,
					fmt.Sprintf("expected closing single quote, got %s, ignoring the rest of the line", got)})
				toks = append(toks, Token{line[i:], TokenComment, lineNo, i + 1})
				i = len(line)
			}

		case isWordStart(line, i):
			j, kind := scanWord(line, i)
			toks = append(toks, Token{line[i:j], kind, lineNo, i + 1})
			i = j

		default:
			toks = append(toks, Token{string(ch), TokenPunct, lineNo, i + 1})
			i++
		}
	}
	return toks, diags
}

// scanString scans a double-quoted literal starting at s[start] == '"'.
func scanString(s string, start int) (end int, terminated bool) {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1, true
		}
	}
	return len(s), false
}

// scanCharLiteral scans a single-quoted char literal starting at
// s[start] == '\''. When the closing quote is missing, end is the index
// of the offending character (or len(s)).
func scanCharLiteral(s string, start int) (end int, terminated bool) {
	i := start + 1
	if i < len(s) && s[i] == '\\' {
		i++
	}
	if i < len(s) {
		i++ // the character itself
	}
	if i < len(s) && s[i] == '\'' {
		return i + 1, true
	}
	return i, false
}

// A word starts at a kind prefix only when a word character follows it;
// a lone '$' or '.' is punctuation.
func isWordStart(s string, i int) bool {
	if isWordChar(s[i]) {
		return true
	}
	return isKindPrefix(s[i]) && i+1 < len(s) && isWordChar(s[i+1])
}

// scanWord scans a maximal word starting at s[start]. An unprefixed word
// that continues through '.' runs and ends in ':' is a label definition;
// otherwise the word stops at the first non-word character.
func scanWord(s string, start int) (end int, kind TokenKind) {
	i := start
	prefixed := isKindPrefix(s[i])
	if prefixed {
		i++
	}
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	if !prefixed && isLabelStart(s[start]) {
		j := i
		for j < len(s) && (isWordChar(s[j]) || s[j] == '.') {
			j++
		}
		if j < len(s) && s[j] == ':' {
			return j + 1, TokenLabel
		}
	}
	return i, TokenWord
}

func isKindPrefix(b byte) bool {
	return b == '$' || b == '@' || b == '.' || b == '!'
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func isLabelStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
