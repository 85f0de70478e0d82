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

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcdcam/mipsy-macro/internal/mips"
)

// Value checking is deliberately heuristic: crude shape matching gives
// better error messages than full parsing and is far less fragile.
var (
	macroNameRE = regexp.MustCompile(`^[$@.!]?[A-Za-z_]\w*$`)
	labelNameRE = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)
	numberRE    = regexp.MustCompile(`^-?(0(x|o|b))?[\da-fA-F]+$`)
	// number, label, or char literal
	immediateRE = regexp.MustCompile(`^((-?(0(x|o|b))?[\da-fA-F]+)|([A-Za-z_][\w.]*)|('\\?.'))$`)
)

// validateDefinition checks a proposed definition against the naming and
// value-shape rules for its kind and against the currently active table.
// The definition must only be inserted when no error-severity diagnostic
// is returned.
func validateDefinition(def *MacroDefinition, t *macroTable) []Diagnostic {
	var diags []Diagnostic
	errorf := func(format string, args ...interface{}) {
		diags = append(diags, Diagnostic{SeverityError, def.Line, def.Col, fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...interface{}) {
		diags = append(diags, Diagnostic{SeverityWarning, def.Line, def.Col, fmt.Sprintf(format, args...)})
	}

	// Each error ends checking, like the original exception flow; piling
	// further complaints onto a discarded declaration helps nobody.
	if !macroNameRE.MatchString(def.Name) {
		errorf("macro name '%s' is not valid, expected an optional kind prefix ($ @ . !) followed by a letter or underscore and then word characters", def.Name)
		return diags
	}

	if def.Name != strings.ToUpper(def.Name) {
		warnf("macro name '%s' is not uppercase, all-caps macro names are encouraged", def.Name)
	}

	if mips.IsReserved(def.Name) {
		errorf("macro name '%s' conflicts with a MIPS %s name", def.Name, mips.NameType(def.Name))
		return diags
	}

	if prev, ok := t.lookup(def.Name); ok {
		errorf("a macro named '%s' is already defined at line %d, redefinition of an active macro is not allowed", def.Name, prev.Line)
		return diags
	}

	if w, ok := mips.SimilarReserved(stripName(def.Name)); ok {
		warnf("macro name '%s' is similar to the MIPS %s '%s'", def.Name, mips.NameType(w), w)
	}
	if names := t.similar(def.Name); len(names) > 0 {
		warnf("macro name '%s' is similar to the existing macro(s): %s", def.Name, strings.Join(names, ", "))
	}

	if line, ok := t.labels[def.Name]; ok {
		errorf("macro name '%s' conflicts with the label defined at line %d", def.Name, line)
		return diags
	}

	diags = append(diags, validateValue(def)...)
	return diags
}

func validateValue(def *MacroDefinition) []Diagnostic {
	var diags []Diagnostic
	errorf := func(format string, args ...interface{}) {
		diags = append(diags, Diagnostic{SeverityError, def.Line, def.Col, fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...interface{}) {
		diags = append(diags, Diagnostic{SeverityWarning, def.Line, def.Col, fmt.Sprintf(format, args...)})
	}

	if def.Kind == KindRaw {
		// raw macros exist to bypass value checking
		return nil
	}

	// Char literals are fine; '"' strings and '#' comments would break
	// the code a macro is spliced into.
	for _, tok := range def.Value {
		if tok.Kind == TokenComment || (tok.Kind == TokenString && strings.HasPrefix(tok.Text, `"`)) {
			errorf("non-raw macro value '%s' contains a string or comment, use a ! raw macro if this is intentional, e.g. #define !STR_1 \"hello\"", def.Raw)
			return diags
		}
	}

	switch def.Kind {
	case KindRegister:
		if len(wordTokens(def.Value)) != 1 || !mips.IsRegister(def.Raw) {
			errorf("value '%s' of register macro '%s' is not a single valid register", def.Raw, def.Name)
		}

	case KindAddress:
		if def.Raw == "" {
			errorf("address macro '%s' must have a value", def.Name)
		} else if strings.HasPrefix(def.Raw, "$") {
			warnf("value '%s' of address macro '%s' looks like a register, did you mean (%s)?", def.Raw, def.Name, def.Raw)
		} else if numberRE.MatchString(def.Raw) {
			warnf("value '%s' of address macro '%s' looks like a number, this probably isn't right", def.Raw, def.Name)
		}

	case KindDirective:
		if !strings.HasPrefix(def.Raw, ".") {
			errorf("value '%s' of directive macro '%s' does not start with '.'", def.Raw, def.Name)
		} else if !mips.IsDirective(def.Raw) {
			warnf("value '%s' of directive macro '%s' is not a known directive", def.Raw, def.Name)
		}

	case KindImmediate:
		if def.Raw != "" && !immediateRE.MatchString(def.Raw) {
			warnf("immediate macro value '%s' doesn't look like a single immediate, compound expressions won't work everywhere you'd expect, use a ! raw macro if you really mean it", def.Raw)
		}
	}
	return diags
}

func wordTokens(toks []Token) []Token {
	var out []Token
	for _, tok := range toks {
		if tok.Kind == TokenWord {
			out = append(out, tok)
		}
	}
	return out
}
