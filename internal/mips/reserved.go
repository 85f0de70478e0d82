// Package mips holds the reserved-word tables of the mipsy assembler:
// register names, assembler directives and instruction mnemonics.
// Macro names must not collide with any of these.
package mips

import (
	"strconv"
	"strings"
)

var Registers = []string{
	"$zero", "$at", "$gp", "$sp", "$fp", "$ra",
	"$v0", "$v1",
	"$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7", "$t8", "$t9",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$k0", "$k1",
}

var Directives = []string{
	".text", ".data", ".ktext", ".kdata", ".align", ".ascii", ".asciiz",
	".space", ".byte", ".half", ".word", ".float", ".double", ".globl",
}

// Instruction mnemonics understood by mipsy, native and pseudo.
var Instructions = []string{
	"add", "addi", "addiu", "addu", "and", "andi",
	"beq", "bgez", "bgezal", "bgtz", "blez", "bltz", "bltzal", "bne",
	"break", "div", "divu", "j", "jal", "jalr", "jr",
	"lb", "lbu", "lh", "lhu", "lui", "lw", "lwl", "lwr",
	"mfhi", "mflo", "mthi", "mtlo", "mult", "multu",
	"nor", "or", "ori",
	"sb", "sh", "sll", "sllv", "slt", "slti", "sltiu", "sltu",
	"sra", "srav", "srl", "srlv", "sub", "subu", "sw", "swl", "swr",
	"syscall", "xor", "xori",
	// pseudo-instructions
	"abs", "b", "beqz", "bge", "bgeu", "bgt", "bgtu", "ble", "bleu",
	"blt", "bltu", "bnez", "clear", "la", "li", "move", "mul", "mulo",
	"mulou", "neg", "negu", "nop", "not", "rem", "remu", "rol", "ror",
	"seq", "sge", "sgeu", "sgt", "sgtu", "sle", "sleu", "sne",
	"ulh", "ulhu", "ulw", "ush", "usw",
}

var (
	registerSet    = toSet(Registers)
	directiveSet   = toSet(Directives)
	instructionSet = toSet(Instructions)

	// stripped base form -> reserved word, e.g. "sp" -> "$sp"
	strippedForms = func() map[string]string {
		m := make(map[string]string)
		for _, lists := range [][]string{Registers, Instructions, Directives} {
			for _, w := range lists {
				m[strings.TrimLeft(w, "$.")] = w
			}
		}
		return m
	}()
)

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// IsReserved reports whether word (compared case-insensitively) is a
// register, directive or instruction name.
func IsReserved(word string) bool {
	w := strings.ToLower(word)
	return registerSet[w] || directiveSet[w] || instructionSet[w]
}

// IsRegister reports whether word names a real register, either by name
// or numerically ($0 through $31).
func IsRegister(word string) bool {
	if registerSet[word] {
		return true
	}
	if !strings.HasPrefix(word, "$") {
		return false
	}
	n, err := strconv.Atoi(word[1:])
	return err == nil && n >= 0 && n < 32
}

// IsDirective reports whether word is a known assembler directive.
func IsDirective(word string) bool {
	return directiveSet[word]
}

// NameType names the reserved-word category a word belongs to, judged by
// its prefix: register, directive, or instruction.
func NameType(word string) string {
	switch {
	case strings.HasPrefix(word, "$"):
		return "register"
	case strings.HasPrefix(word, "."):
		return "directive"
	default:
		return "instruction"
	}
}

// SimilarReserved returns the reserved word whose stripped base form
// equals stripped, if any. "sp" is similar to "$sp".
func SimilarReserved(stripped string) (string, bool) {
	w, ok := strippedForms[stripped]
	return w, ok
}
