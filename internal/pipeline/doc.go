// Package pipeline builds plotdata.Data from the input files: offset indices
// first, then the alignment, then each axis's overlays. Stages run one after
// the other; the context is checked between stages only.
package pipeline
