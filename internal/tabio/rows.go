package tabio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLine bounds a single input line; PAF records with cg/cs tags get long.
const maxLine = 16 << 20

// ParseError reports a malformed row. Path may be empty for in-memory readers.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Scanner yields lines with the trailing newline (and CR) removed and keeps
// track of the 1-based line number for error reporting.
type Scanner struct {
	Path string
	sc   *bufio.Scanner
	line int
}

func NewScanner(r io.Reader, path string) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLine)
	return &Scanner{Path: path, sc: sc}
}

func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	return true
}

func (s *Scanner) Text() string { return strings.TrimRight(s.sc.Text(), "\r") }

func (s *Scanner) Line() int { return s.line }

func (s *Scanner) Err() error { return s.sc.Err() }

// Errorf builds a ParseError for the current line.
func (s *Scanner) Errorf(format string, a ...any) error {
	return &ParseError{Path: s.Path, Line: s.line, Err: fmt.Errorf(format, a...)}
}

// Int parses field i of f as a base-10 integer.
func (s *Scanner) Int(f []string, i int, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(f[i]))
	if err != nil {
		return 0, s.Errorf("bad %s %q (field %d)", what, f[i], i+1)
	}
	return v, nil
}

// Float parses field i of f as a float64.
func (s *Scanner) Float(f []string, i int, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(f[i]), 64)
	if err != nil {
		return 0, s.Errorf("bad %s %q (field %d)", what, f[i], i+1)
	}
	return v, nil
}

// SplitTab splits a line on tabs only; empty fields are kept.
func SplitTab(line string) []string { return strings.Split(line, "\t") }

// IsBEDHeader reports lines that BED-like files carry before data rows.
func IsBEDHeader(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track ") ||
		strings.HasPrefix(line, "browser ")
}
