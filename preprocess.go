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

// An opinionated macro preprocessor for MIPS assembly as accepted by
// mipsy. It rewrites #define / #defineuntil macros on whole tokens,
// enforcing a kind prefix convention on macro names:
//
//	#define NAME 123            immediate
//	#define $NAME $s0           register
//	#define @NAME label($s0)    address
//	#define .NAME .word         directive
//	#define !NAME move $t0, $t1 raw, no checking
//
// Substitution is single pass and never recursive, preserves whitespace
// and never touches comments, strings or label names. Column alignment
// of trailing comments is not preserved when a replacement changes the
// line length.
package mipsy_macro

import (
	"fmt"
	"strings"
)

const (
	defineWord      = "#define"
	defineUntilWord = "#defineuntil"
)

// Process rewrites src, substituting active macros, and returns the
// rewritten text with the diagnostics gathered along the way. It is a
// pure function: each call works on a fresh macro table and no state
// survives between calls. No diagnostic aborts processing; lines whose
// declarations are rejected are dropped and everything else is emitted.
func Process(src string) (string, []Diagnostic) {
	p := &processor{table: newMacroTable()}
	return p.run(src)
}

type processor struct {
	table *macroTable
	diags []Diagnostic
}

func (p *processor) errorf(line, col int, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{SeverityError, line, col, fmt.Sprintf(format, args...)})
}

func (p *processor) warnf(line, col int, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{SeverityWarning, line, col, fmt.Sprintf(format, args...)})
}

func (p *processor) run(src string) (string, []Diagnostic) {
	var out strings.Builder
	for n, ln := range splitLines(src) {
		lineNo := n + 1
		toks, tdiags := tokenizeLine(ln.text, lineNo)
		p.diags = append(p.diags, tdiags...)

		if dir, ok := directiveToken(toks); ok {
			if p.declare(dir) {
				out.WriteString(ln.text)
				if ln.hasNL {
					out.WriteByte('\n')
				}
			}
			continue
		}

		p.expireAtLabels(toks, lineNo)
		out.WriteString(p.substitute(toks))
		if ln.hasNL {
			out.WriteByte('\n')
		}
	}

	for _, def := range p.table.unclosed() {
		p.warnf(def.Line, def.Col,
			"the scoped macro '%s' wasn't closed because its finishing label '%s' was never seen, check that label exists and is spelled correctly",
			def.Name, def.Until)
	}
	return out.String(), p.diags
}

// directiveToken reports whether the line is a macro declaration: its
// first non-whitespace token is a comment beginning with #define or
// #defineuntil. Comments elsewhere on a line are left alone.
func directiveToken(toks []Token) (Token, bool) {
	for _, tok := range toks {
		if tok.Kind == TokenSpace {
			continue
		}
		if tok.Kind == TokenComment && (directiveKeyword(tok.Text) != "") {
			return tok, true
		}
		break
	}
	return Token{}, false
}

func directiveKeyword(text string) string {
	for _, kw := range []string{defineUntilWord, defineWord} {
		if strings.HasPrefix(text, kw) && (len(text) == len(kw) || text[len(kw)] == ' ' || text[len(kw)] == '\t') {
			return kw
		}
	}
	return ""
}

// declare parses and validates one declaration line. It reports whether
// the line should be kept in the output: accepted declarations are
// emitted verbatim (they are comments to the assembler), rejected ones
// are dropped since they are not valid source either way.
func (p *processor) declare(dir Token) (keep bool) {
	kw := directiveKeyword(dir.Text)
	lineNo := dir.Line
	rest := dir.Text[len(kw):]
	restCol := dir.Col + len(kw)

	var until string
	if kw == defineUntilWord {
		label, labelCol, tail, tailCol := nextField(rest, restCol)
		if label == "" {
			p.errorf(lineNo, dir.Col,
				"macro '%s' failed to parse, the correct format is #defineuntil <label> <name> <value>", dir.Text)
			return false
		}
		if !labelNameRE.MatchString(label) {
			p.errorf(lineNo, labelCol,
				"scoped macro label '%s' is not a valid label name, make sure you're not including the ':' used only in the label definition", label)
			return false
		}
		if _, past := p.table.labels[label]; past {
			p.errorf(lineNo, labelCol,
				"scoped macro '%s' is defined after its finishing label '%s'", dir.Text, label)
			return false
		}
		until = label
		rest, restCol = tail, tailCol
	}

	name, nameCol, value, valueCol := nextField(rest, restCol)
	if name == "" {
		p.errorf(lineNo, dir.Col,
			"macro '%s' failed to parse, check that it has a name, the correct format is %s <name> <value>", dir.Text, kw)
		return false
	}
	value = strings.TrimRight(value, " \t")

	valueToks, vdiags := tokenizeLine(value, lineNo)
	for i := range valueToks {
		valueToks[i].Col += valueCol - 1
	}
	for _, d := range vdiags {
		d.Col += valueCol - 1
		p.diags = append(p.diags, d)
	}

	def := &MacroDefinition{
		Name:  name,
		Kind:  kindOf(name),
		Value: valueToks,
		Raw:   value,
		Line:  lineNo,
		Col:   nameCol,
		Until: until,
	}
	diags := validateDefinition(def, p.table)
	p.diags = append(p.diags, diags...)
	if HasErrors(diags) {
		return false
	}
	p.table.insert(def)
	return true
}

// expireAtLabels handles every label definition on a code line before
// any of the line's tokens are substituted: scoped macros terminating at
// a label are invisible to the label's own line.
func (p *processor) expireAtLabels(toks []Token, lineNo int) {
	for _, tok := range toks {
		if tok.Kind != TokenLabel {
			continue
		}
		label := strings.TrimSuffix(tok.Text, ":")
		if def, active := p.table.lookup(label); active {
			p.errorf(lineNo, tok.Col,
				"label name '%s' conflicts with the macro defined at line %d", label, def.Line)
		}
		p.table.seeLabel(label, lineNo)
	}
}

// substitute rewrites one code line. Only whole word tokens are matched;
// comments, strings, labels and punctuation pass through untouched, as
// does all original spacing. Replacement text is never re-scanned, so
// expansion is never transitive.
func (p *processor) substitute(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.Kind == TokenWord {
			if def, ok := p.table.lookup(tok.Text); ok {
				b.WriteString(def.Raw)
				continue
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// nextField returns the first whitespace-delimited field of s together
// with its 1-based column, plus the remainder and the remainder's column.
func nextField(s string, col int) (field string, fieldCol int, rest string, restCol int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	j := i
	for j < len(s) && s[j] != ' ' && s[j] != '\t' {
		j++
	}
	k := j
	for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
		k++
	}
	return s[i:j], col + i, s[k:], col + k
}

type sourceLine struct {
	text  string
	hasNL bool
}

func splitLines(s string) []sourceLine {
	if s == "" {
		return nil
	}
	lines := make([]sourceLine, 0, 64)
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, sourceLine{text: s})
			break
		}
		lines = append(lines, sourceLine{text: s[:i], hasNL: true})
		s = s[i+1:]
		if s == "" {
			break
		}
	}
	return lines
}
