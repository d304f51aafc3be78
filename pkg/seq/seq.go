// 20 Dec 2017

// Package seq provides functions for sequences, which arrive either
// one per line or in fasta format. A group of sequences is treated as
// an alignment, so most of the calculations work column by column.
package seq

import (
	"fmt"
	"unicode"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/seqperplex/pkg/white"
)

// seq is one sequence with its comment. Symbols are runes, so a
// position is one character, whatever its size in utf-8.
type seq struct {
	cmmt string
	seq  []rune
}

// A marker to say what type of sequence we have, protein, DNA, ...
type SeqType byte

const (
	Unchecked SeqType = iota // Has not been looked at yet
	Unknown                  // Really unknown, not a protein or nucleotide
	Protein                  //
	DNA                      //
	RNA                      //
	Ntide                    // Nucleotide
)

func (t SeqType) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case Protein:
		return "protein"
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Ntide:
		return "nucleotide"
	}
	return "unchecked"
}

// Options contains all the choices passed in from the caller.
type Options struct {
	Upper bool // Convert to upper case on reading
}

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences, with some additional information
// such as the symbols that have been used and the tallies at each site.
type SeqGrp struct {
	symUsed  map[rune]bool // which symbols are actually used
	mapping  map[rune]int  // mapping['C'] tells me the index used for C
	revmap   []rune        // revmap[2] tells me the character in place 2
	seqs     []seq
	counts   *matrix.FMatrix2d
	coltot   []int32 // number of sequences that reach each column
	stype    SeqType
	usedKnwn bool // Do we know which symbols are used ?
}

// LengthError says that a sequence is not as long as the first one
// in the group. Index counts from 1.
type LengthError struct {
	Index int
	Len   int
	Want  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("sequence %d has length %d, but the first sequence has length %d",
		e.Index, e.Len, e.Want)
}

// GetSeq returns the symbols of the sequence
func (s seq) GetSeq() []rune { return s.seq }

// GetCmmt returns the comment, without the leading ">"
func (s seq) GetCmmt() string { return s.cmmt }

// Len
func (s seq) Len() int { return len(s.seq) }

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
func (s *seq) Upper() {
	for i, c := range s.seq {
		s.seq[i] = unicode.ToUpper(c)
	}
}

// GetLen returns the length of the first sequence.
// If we are reading a multiple sequence alignment, this should be the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].GetSeq())
}

// GetNSeq returns the number of sequences
func (seqgrp *SeqGrp) GetNSeq() int { return len(seqgrp.seqs) }

// GetSeqSlc return the slice of sequences
func (seqgrp *SeqGrp) GetSeqSlc() []seq { return seqgrp.seqs }

// GetCounts gives us the normally non-exported counts
func (seqgrp *SeqGrp) GetCounts() *matrix.FMatrix2d {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	return seqgrp.counts
}

// GetColTot returns the number of sequences which have a symbol at
// each column.
func (seqgrp *SeqGrp) GetColTot() []int32 {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	return seqgrp.coltot
}

// GetRevmap returns the non-exported revmap
func (seqgrp *SeqGrp) GetRevmap() []rune {
	if seqgrp.mapping == nil {
		seqgrp.mapsyms()
	}
	return seqgrp.revmap
}

// GetNSym returns the number of symbols used in a seqgrp.
func (seqgrp *SeqGrp) GetNSym() int { return len(seqgrp.GetRevmap()) }

// Upper uppercases all the members of a group of sequences.
// Anything calculated before is thrown away.
func (seqgrp *SeqGrp) Upper() {
	for i := range seqgrp.seqs {
		seqgrp.seqs[i].Upper()
	}
	seqgrp.clear()
}

// clear gets rid of calculated quantities.
func (seqgrp *SeqGrp) clear() {
	seqgrp.symUsed = nil
	seqgrp.mapping = nil
	seqgrp.revmap = nil
	seqgrp.counts = nil
	seqgrp.coltot = nil
	seqgrp.stype = Unchecked
	seqgrp.usedKnwn = false
}

// add appends one sequence to the group. The bytes are decoded as
// utf-8, so readers can hand us slices of their own buffers. A byte
// which is not valid utf-8 becomes utf8.RuneError and is counted as
// that symbol.
func (seqgrp *SeqGrp) add(cmmt string, s []byte, s_opts *Options) {
	t := seq{cmmt: cmmt, seq: []rune(string(s))}
	if s_opts != nil && s_opts.Upper {
		t.Upper()
	}
	seqgrp.seqs = append(seqgrp.seqs, t)
	seqgrp.clear()
}

// CheckLengths makes sure all sequences are as long as the first.
// It returns a *LengthError naming the first one that is not.
func (seqgrp *SeqGrp) CheckLengths() error {
	iwant := seqgrp.GetLen()
	for i := 1; i < len(seqgrp.seqs); i++ {
		if ilen := seqgrp.seqs[i].Len(); ilen != iwant {
			return &LengthError{Index: i + 1, Len: ilen, Want: iwant}
		}
	}
	return nil
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// White space is removed and strings left empty are skipped.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s1", "s2", ...
func Str2SeqGrp(sIn []string, s_opts *Options, prefix ...string) (*SeqGrp, error) {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqgrp := new(SeqGrp)
	for _, s := range sIn {
		b := []byte(s)
		white.Remove(&b)
		if len(b) == 0 {
			continue
		}
		cmmt := fmt.Sprint(base, seqgrp.GetNSeq()+1)
		seqgrp.add(cmmt, b, s_opts)
	}
	return seqgrp, nil
}
