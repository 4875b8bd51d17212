package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
)

func encodeInt(enc *json.Encoder, v int) error { return enc.Encode(v) }

func never(error) bool { return false }

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []int{1, 2, 3}, encodeInt, never); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "1\n2\n3\n" {
		t.Fatalf("got %q", got)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriteFlushError(t *testing.T) {
	boom := errors.New("boom")
	err := Write(failWriter{boom}, []int{1}, encodeInt, never)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestBrokenPipeSuppressed(t *testing.T) {
	err := Write(failWriter{io.ErrClosedPipe}, []int{1}, encodeInt,
		func(err error) bool { return errors.Is(err, io.ErrClosedPipe) })
	if err != nil {
		t.Fatalf("broken pipe should be suppressed, got %v", err)
	}
}

func TestEncodeErrorDoesNotBlockProducer(t *testing.T) {
	bad := errors.New("bad value")
	n := 0
	enc := func(e *json.Encoder, v int) error {
		n++
		if v == 2 {
			return bad
		}
		return e.Encode(v)
	}
	vs := make([]int, 1000)
	for i := range vs {
		vs[i] = i
	}
	if err := Write(io.Discard, vs, enc, never); !errors.Is(err, bad) {
		t.Fatalf("want bad value, got %v", err)
	}
	if n != 3 {
		t.Fatalf("encode called %d times after failure", n)
	}
}

func TestWriteStrings(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []string{"a"}, func(e *json.Encoder, s string) error { return e.Encode(s) }, never); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != `"a"` {
		t.Fatalf("got %q", buf.String())
	}
}
