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

import "strings"

// MacroKind is the syntactic category of a macro, derived from the
// leading character of its name.
type MacroKind int

const (
	KindImmediate MacroKind = iota // no prefix
	KindRegister                   // $
	KindAddress                    // @
	KindDirective                  // .
	KindRaw                        // !
)

func (k MacroKind) String() string {
	switch k {
	case KindRegister:
		return "register"
	case KindAddress:
		return "address"
	case KindDirective:
		return "directive"
	case KindRaw:
		return "raw"
	default:
		return "immediate"
	}
}

func kindOf(name string) MacroKind {
	switch name[0] {
	case '$':
		return KindRegister
	case '@':
		return KindAddress
	case '.':
		return KindDirective
	case '!':
		return KindRaw
	}
	return KindImmediate
}

// MacroDefinition is one validated macro. Definitions are immutable;
// redefinition after expiry creates a new entry.
type MacroDefinition struct {
	Name  string
	Kind  MacroKind
	Value []Token // value as tokens, inspected by validation
	Raw   string  // value text as written, spliced in on substitution
	Line  int
	Col   int
	Until string // terminator label for #defineuntil, empty for #define
}

// macroTable holds the active macro set for one file. The scoped layer is
// kept apart from the global layer and consulted first on lookup, so that
// shadow-and-restore semantics stay possible even though redefinition
// while active is currently rejected.
type macroTable struct {
	global   map[string]*MacroDefinition
	scoped   map[string]*MacroDefinition
	watches  map[string][]string // terminator label -> names expiring there
	labels   map[string]int      // label -> line first seen
	stripped map[string][]string // stripped name -> active macro names
	order    []*MacroDefinition  // scoped definitions in declaration order
}

func newMacroTable() *macroTable {
	return &macroTable{
		global:   map[string]*MacroDefinition{},
		scoped:   map[string]*MacroDefinition{},
		watches:  map[string][]string{},
		labels:   map[string]int{},
		stripped: map[string][]string{},
	}
}

// stripName reduces a macro name to its comparison form: lowercased,
// kind prefix removed.
func stripName(name string) string {
	return strings.ToLower(strings.TrimLeft(name, "$@.!"))
}

// lookup returns the active definition for name, scoped shadowing global.
func (t *macroTable) lookup(name string) (*MacroDefinition, bool) {
	if def, ok := t.scoped[name]; ok {
		return def, true
	}
	def, ok := t.global[name]
	return def, ok
}

func (t *macroTable) insert(def *MacroDefinition) {
	if def.Until == "" {
		t.global[def.Name] = def
	} else {
		t.scoped[def.Name] = def
		t.watches[def.Until] = append(t.watches[def.Until], def.Name)
		t.order = append(t.order, def)
	}
	s := stripName(def.Name)
	t.stripped[s] = append(t.stripped[s], def.Name)
}

// seeLabel records a label definition and expires every scoped macro
// whose terminator it is.
func (t *macroTable) seeLabel(label string, line int) {
	if _, seen := t.labels[label]; !seen {
		t.labels[label] = line
	}
	for _, name := range t.watches[label] {
		def, ok := t.scoped[name]
		if !ok {
			continue
		}
		delete(t.scoped, name)
		t.dropStripped(def.Name)
	}
	delete(t.watches, label)
}

func (t *macroTable) dropStripped(name string) {
	s := stripName(name)
	names := t.stripped[s]
	for i, n := range names {
		if n == name {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}
	if len(names) == 0 {
		delete(t.stripped, s)
	} else {
		t.stripped[s] = names
	}
}

// similar returns the active macro names sharing name's stripped form,
// excluding name itself.
func (t *macroTable) similar(name string) []string {
	var out []string
	for _, n := range t.stripped[stripName(name)] {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// unclosed returns the scoped definitions still active at end of file,
// in declaration order.
func (t *macroTable) unclosed() []*MacroDefinition {
	var out []*MacroDefinition
	for _, def := range t.order {
		if cur, ok := t.scoped[def.Name]; ok && cur == def {
			out = append(out, def)
		}
	}
	return out
}
