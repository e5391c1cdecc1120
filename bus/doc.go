// Package bus implements the 64K address space seen by the console CPU.
//
// The space is partitioned into 2K of work RAM mirrored across the first 8K,
// a peripheral register window (currently a stub: reads return zero, writes
// are discarded), and read-only program storage in the top half. A 16K
// program image is mirrored into both halves of the top 32K.
package bus
