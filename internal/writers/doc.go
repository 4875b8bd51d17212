// Package writers serializes a finished plotdata.Data.
//
// Each output format registers a Func under its name; callers dispatch with
// Write. JSON and JSONL go through pkg/api (v1) for a stable wire format.
package writers
