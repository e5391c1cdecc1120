// Package cpu implements the 6502-family microprocessor at the heart of the
// console.
//
// The CPU consists of an 8-bit accumulator, two 8-bit index registers, an
// 8-bit status register, a 16-bit program counter, and an 8-bit stack
// pointer into a fixed 256-byte stack page. The fetch/decode/execute loop
// dispatches on a static descriptor table of documented opcodes and
// reproduces the documented quirks of the real chip, including the
// page-boundary indirect-jump bug and zero-page index wraparound.
//
// Interrupt lines are not modeled; the only stop condition is the software
// break opcode 0x00.
package cpu
