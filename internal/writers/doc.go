// Package writers turns finished alignments into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (pretty blocks, JSON, TSV).
//   • The engine stays domain-only; the app stays orchestration-only.
//   • JSON goes through pkg/api (v1) for a stable wire format.
package writers
