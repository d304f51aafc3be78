// Readers for sequences, either one per line or fasta format.

package seq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/seqperplex/pkg/seq/common"
	"github.com/andrew-torda/seqperplex/pkg/white"
	"github.com/edsrzf/mmap-go"
)

const maxLine = 256 * 1024 * 1024 // longest line we are prepared to read

type lexer struct {
	scanner *bufio.Scanner
	seqgrp  *SeqGrp
	s_opts  *Options
	line    []byte
	nline   int
	cmmt    string // comment of the fasta entry being read
	seq     []byte // partial sequence
	err     error
}

type stateFn func(*lexer) stateFn

// FormatError says the input could not be read as sequences, for
// example a fasta entry with no sequence. Line counts from 1.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// next gets the following line, with white space removed from
// sequence lines. It returns false at the end of input.
func (l *lexer) next() bool {
	if !l.scanner.Scan() {
		l.err = l.scanner.Err()
		return false
	}
	l.nline++
	l.line = l.scanner.Bytes()
	return true
}

// cmmtOf returns a comment line without the ">" or a trailing carriage return.
func cmmtOf(line []byte) string {
	return string(bytes.TrimRight(line[1:], "\r"))
}

// gstart skips blank lines and decides what kind of input we have.
func gstart(l *lexer) stateFn {
	for l.next() {
		if len(bytes.TrimSpace(l.line)) == 0 {
			continue
		}
		if l.line[0] == cmmtChar {
			l.cmmt = cmmtOf(l.line)
			return gfasta
		}
		return gplain
	}
	return nil
}

// gplain reads one sequence per line. The current line has not been
// stored yet.
func gplain(l *lexer) stateFn {
	for {
		if len(l.line) > 0 && l.line[0] == cmmtChar {
			l.err = &FormatError{Line: l.nline, Msg: "fasta comment in plain sequence input"}
			return nil
		}
		white.Remove(&l.line)
		if len(l.line) != 0 {
			cmmt := fmt.Sprint("s", l.seqgrp.GetNSeq()+1)
			l.seqgrp.add(cmmt, l.line, l.s_opts)
		}
		if !l.next() {
			return nil
		}
	}
}

// gfasta reads sequence lines until the next comment.
func gfasta(l *lexer) stateFn {
	for l.next() {
		if len(l.line) > 0 && l.line[0] == cmmtChar {
			if !l.flush() {
				return nil
			}
			l.cmmt = cmmtOf(l.line)
			continue
		}
		white.Remove(&l.line)
		l.seq = append(l.seq, l.line...)
	}
	if l.err == nil {
		l.flush()
	}
	return nil
}

// flush stores the fasta entry we have been collecting.
func (l *lexer) flush() bool {
	if len(l.seq) == 0 {
		l.err = &FormatError{Line: l.nline, Msg: "zero length sequence after >" + trimStr(l.cmmt, 40)}
		return false
	}
	l.seqgrp.add(l.cmmt, l.seq, l.s_opts)
	l.seq = l.seq[:0]
	return true
}

// ReadSeqs reads sequences from rdr. If the first non-blank line starts
// with ">", the input is fasta. Otherwise, each non-blank line is one
// sequence. No input gives an empty group, not an error.
func ReadSeqs(rdr io.Reader, s_opts *Options) (*SeqGrp, error) {
	l := lexer{
		scanner: bufio.NewScanner(rdr),
		seqgrp:  new(SeqGrp),
		s_opts:  s_opts,
	}
	l.scanner.Buffer(make([]byte, 64*1024), maxLine)
	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.seqgrp, nil
}

// mapped is a file mapped into memory, read through a bytes.Reader.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	err := m.mm.Unmap()
	if e := m.fp.Close(); err == nil {
		err = e
	}
	return err
}

// Open returns a reader for a sequence file. An empty name or "-"
// means standard input, which is not closed. Real files are mapped
// into memory rather than read.
func Open(fname string) (io.ReadCloser, error) {
	if common.IsStdio(fname) {
		return io.NopCloser(os.Stdin), nil
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fi.Size() == 0 { // mmap refuses empty files
		return fp, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	return &mapped{Reader: bytes.NewReader(mm), mm: mm, fp: fp}, nil
}
