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

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// Diagnostic describes a single problem found while preprocessing.
// Diagnostics are accumulated in source order and never abort processing.
type Diagnostic struct {
	Severity Severity
	Line     int
	Col      int // 1-based, 0 when no meaningful column exists
	Message  string
}

func (d Diagnostic) String() string {
	if d.Col > 0 {
		return fmt.Sprintf("%s: line %d, col %d: %s", d.Severity, d.Line, d.Col, d.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
}

// HasErrors reports whether any diagnostic is of error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
