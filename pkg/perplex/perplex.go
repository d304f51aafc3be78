// Package perplex calculates positional perplexity over a set of
// aligned sequences. At each position, the Shannon entropy H (bits) of
// the symbols found there is turned into a perplexity 2^H, which is the
// effective number of equally likely symbols. A conserved column has
// perplexity 1. Four bases in equal amounts give 4.
//
// The package also writes the results as csv, as a chart and as a
// chimera attribute file.
package perplex

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andrew-torda/seqperplex/pkg/seq"
)

// ErrNoInput means there were no sequences to work on.
var ErrNoInput = errors.New("please enter valid sequences")

// Policy says what to do with sequences that are not as long as the
// first one.
type Policy int

const (
	// Strict refuses sequences of different lengths.
	Strict Policy = iota
	// Truncate works over the length of the first sequence. Longer
	// sequences are cut off. A shorter one is left out of the columns
	// it does not reach.
	Truncate
)

func (p Policy) String() string {
	if p == Truncate {
		return "truncate"
	}
	return "strict"
}

// ParsePolicy turns "strict" or "truncate" into a Policy. The empty
// string means Strict.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "truncate":
		return Truncate, nil
	}
	return Strict, fmt.Errorf("unknown length policy %q", s)
}

// Request is everything needed for one calculation. If Input is set,
// sequences are read from it, one per line or fasta. Otherwise Seqs
// is used and blank strings are ignored.
type Request struct {
	Input  io.Reader
	Seqs   []string
	Kind   Kind
	Policy Policy
	Upper  bool // fold lower case to upper before counting
}

// Profile holds one perplexity per position. Index 0 is position 1.
type Profile []float64

// Result is a profile with what we learnt about the input on the way.
type Result struct {
	Kind    Kind
	Profile Profile
	NSeq    int
	Type    seq.SeqType
}

// Run reads the sequences of a request and calculates their profile.
// The kind only labels the result, but it has to be one we know.
func Run(req Request) (*Result, error) {
	if !req.Kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, req.Kind)
	}
	s_opts := &seq.Options{Upper: req.Upper}
	var seqgrp *seq.SeqGrp
	var err error
	if req.Input != nil {
		seqgrp, err = seq.ReadSeqs(req.Input, s_opts)
	} else {
		seqgrp, err = seq.Str2SeqGrp(req.Seqs, s_opts)
	}
	if err != nil {
		return nil, err
	}
	prof, err := Perplexity(seqgrp, req.Policy)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:    req.Kind,
		Profile: prof,
		NSeq:    seqgrp.GetNSeq(),
		Type:    seqgrp.GetType(),
	}, nil
}

// Calc is Run for callers that only want the numbers.
func Calc(req Request) (Profile, error) {
	res, err := Run(req)
	if err != nil {
		return nil, err
	}
	return res.Profile, nil
}

// Perplexity calculates the perplexity at each position of a group of
// sequences. It does not change the group, apart from caching counts.
func Perplexity(seqgrp *seq.SeqGrp, policy Policy) (Profile, error) {
	if seqgrp == nil || seqgrp.GetNSeq() == 0 || seqgrp.GetLen() == 0 {
		return nil, ErrNoInput
	}
	if policy == Strict {
		if err := seqgrp.CheckLengths(); err != nil {
			return nil, err
		}
	}
	prof := make(Profile, seqgrp.GetLen())
	seqgrp.Entropy(2, prof)
	for i, h := range prof {
		prof[i] = math.Exp2(h)
	}
	return prof, nil
}
