// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: converts one value to its wire type and calls enc.Encode
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// The caller closes the returned channel and then reads exactly one error.
// After the first failure remaining values are drained and dropped, so the
// producer never blocks.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)

		var first error
		for v := range in {
			if first != nil {
				continue
			}
			first = encode(enc, v)
		}
		if first == nil {
			first = bw.Flush()
		}
		if first != nil && isBroken(first) {
			first = nil
		}
		done <- first
	}()

	return in, done
}

// Write streams every value in vs through Start and waits for the result.
func Write[T any](out io.Writer, vs []T, encode func(*json.Encoder, T) error, isBroken func(error) bool) error {
	in, done := Start(out, 0, encode, isBroken)
	for _, v := range vs {
		in <- v
	}
	close(in)
	return <-done
}
