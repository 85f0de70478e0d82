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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// drain joins the non-whitespace tokens of a line with dots.
func drain(line string) string {
	toks, _ := tokenizeLine(line, 1)
	var parts []string
	for _, tok := range toks {
		if tok.Kind != TokenSpace {
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, ".")
}

type lexTest struct {
	name   string
	input  string
	output string
}

var lexTests = []lexTest{
	{
		"empty",
		"",
		"",
	},
	{
		"only whitespace",
		"  \t ",
		"",
	},
	{
		"simple instruction",
		"li $t0, 4",
		"li.$t0.,.4",
	},
	{
		"prefixed words",
		".byte 0, 1",
		".byte.0.,.1",
	},
	{
		"kind prefixes",
		"!RET @ADDR .DRCTV $X INIT",
		"!RET.@ADDR..DRCTV.$X.INIT",
	},
	{
		"label",
		"main: add $t0, $t1, $t2",
		"main:.add.$t0.,.$t1.,.$t2",
	},
	{
		"dotted label",
		"main.loop: j main.loop",
		"main.loop:.j.main..loop",
	},
	{
		"address expression",
		"sw $t0, numbers($s0)",
		"sw.$t0.,.numbers.(.$s0.)",
	},
	{
		"string with interior whitespace",
		`.asciiz "hello   world"`,
		`.asciiz."hello   world"`,
	},
	{
		"string with escaped quote",
		`.asciiz "say \"hi\""`,
		`.asciiz."say \"hi\""`,
	},
	{
		"trailing comment",
		"add $t0, $t1, $t2 # tally",
		"add.$t0.,.$t1.,.$t2.# tally",
	},
	{
		"comment only",
		"# just a note",
		"# just a note",
	},
	{
		"hash inside string is not a comment",
		`.asciiz "#define X 4"`,
		`.asciiz."#define X 4"`,
	},
	{
		"char literal",
		"li $a0, 'x'",
		"li.$a0.,.'x'",
	},
	{
		"escaped char literal",
		`li $a0, '\n'`,
		`li.$a0.,.'\n'`,
	},
	{
		"hash char literal is not a comment",
		"li $a0, '#'",
		"li.$a0.,.'#'",
	},
	{
		"numbers stay attached to words",
		"$X1 0x1F 0b101",
		"$X1.0x1F.0b101",
	},
	{
		"lone prefix characters are punctuation",
		"$ . ! @",
		"$...!.@",
	},
	{
		"negative immediate",
		"li $t0, -4",
		"li.$t0.,.-.4",
	},
}

func TestTokenize(t *testing.T) {
	for _, tt := range lexTests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.output, drain(tt.input)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Concatenating a line's tokens must reproduce the line byte for byte;
// the emitter depends on this to preserve formatting.
func TestTokenizeRoundTrip(t *testing.T) {
	for _, tt := range lexTests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := tokenizeLine(tt.input, 1)
			var b strings.Builder
			for _, tok := range toks {
				b.WriteString(tok.Text)
			}
			if diff := cmp.Diff(tt.input, b.String()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeWarnings(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		drain string
		diags []string
	}{
		{
			"unterminated string",
			`.asciiz "abc`,
			`.asciiz."abc`,
			[]string{`warning: line 1, col 9: unterminated string literal, treating the rest of the line as part of the string`},
		},
		{
			"char literal too long",
			"li 'ab'",
			"li.'ab'",
			[]string{`warning: line 1, col 4: expected closing single quote, got 'b', ignoring the rest of the line`},
		},
		{
			"char literal at end of line",
			"li 'a",
			"li.'a",
			[]string{`warning: line 1, col 4: expected closing single quote, got end of line, ignoring the rest of the line`},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			toks, diags := tokenizeLine(tt.input, 1)
			var parts []string
			for _, tok := range toks {
				if tok.Kind != TokenSpace {
					parts = append(parts, tok.Text)
				}
			}
			if diff := cmp.Diff(tt.drain, strings.Join(parts, ".")); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.diags, renderDiags(diags)); diff != "" {
				t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func renderDiags(diags []Diagnostic) []string {
	out := []string{}
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}
