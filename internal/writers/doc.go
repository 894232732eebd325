// Package writers turns transform results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (FASTA records, stats reports).
//   - core stays domain-only; xform stays orchestration-only.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
