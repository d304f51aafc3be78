// 6 Apr 2020
// seqcalc does simple, common calculations on a set of sequences.
// The functions have to live in this package, since they
// need access to the internals of a sequence

package seq

import (
	"math"
	"slices"

	"github.com/andrew-torda/matrix"
)

// SetSymUsed fills out the set of symbols which are used. Only the
// columns of the first sequence count, since nothing after them is
// ever tallied. Any rune is a symbol, not just letters.
func (seqgrp *SeqGrp) SetSymUsed() {
	ncol := seqgrp.GetLen()
	seqgrp.symUsed = make(map[rune]bool)
	for _, ss := range seqgrp.seqs {
		s := ss.GetSeq()
		if len(s) > ncol {
			s = s[:ncol]
		}
		for _, c := range s {
			seqgrp.symUsed[c] = true
		}
	}
	seqgrp.usedKnwn = true
}

// GetType looks at a set of sequences and returns its best guess
// as to the type of sequence.
func (seqgrp *SeqGrp) GetType() SeqType {
	if seqgrp.stype != Unchecked { // If the sequence type has been
		return seqgrp.stype //      set, just return it.
	}

	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	protType := []rune{
		'D', 'E', 'F', 'H', 'I', 'K', 'L', 'M',
		'N', 'P', 'Q', 'R', 'S', 'V', 'W', 'Y'}

	used := seqgrp.symUsed
	stype := Unknown
	for _, c := range protType { // If we see an amino acid code,
		if used[c] { //          just call it protein.
			stype = Protein
		}
	}
	if stype == Unknown {
		switch {
		case used['T'] && used['U']:
			stype = Ntide
		case used['T']:
			stype = DNA
		case used['U']:
			stype = RNA
		case used['A'] && used['C'] && used['G']:
			stype = Ntide // cannot tell if it is RNA or DNA
		}
	}
	seqgrp.stype = stype
	return stype
}

// mapsyms looks at the symbols(characters, bases) used in a
// seqgrp. It then makes the index for mapping. Symbols are kept in
// code point order, so rows of the counts do not depend on map order.
func (seqgrp *SeqGrp) mapsyms() {
	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	seqgrp.revmap = seqgrp.revmap[:0]
	for c := range seqgrp.symUsed {
		seqgrp.revmap = append(seqgrp.revmap, c)
	}
	slices.Sort(seqgrp.revmap)
	seqgrp.mapping = make(map[rune]int, len(seqgrp.revmap))
	for i, c := range seqgrp.revmap {
		seqgrp.mapping[c] = i
	}
}

// UsageSite counts how many of each symbol appear at each site in
// the alignment.
// counts.Mat looks like [number_of_types][length_of_first_seq]
// A sequence longer than the first is only counted up to that length.
// A shorter one stops contributing where it ends, which is why we
// keep a total for each column.
func (seqgrp *SeqGrp) UsageSite() {
	if seqgrp.mapping == nil {
		seqgrp.mapsyms()
	}
	nrow := len(seqgrp.revmap)
	ncol := seqgrp.GetLen()
	seqgrp.counts = matrix.NewFMatrix2d(nrow, ncol)
	seqgrp.coltot = make([]int32, ncol)
	for _, ss := range seqgrp.seqs {
		s := ss.GetSeq()
		if len(s) > ncol {
			s = s[:ncol]
		}
		for i, c := range s {
			seqgrp.counts.Mat[seqgrp.mapping[c]][i] += 1
			seqgrp.coltot[i]++
		}
	}
}

// EntropyFromArray is the inner routine for calculating entropy.
// It operates on a table of counts and the column totals, so it can
// be called from routines which do not have the seqgrp.
// Frequencies are count / total, so a column only sees the sequences
// that reach it. Logarithms are to the given base.
func EntropyFromArray(counts [][]float32, coltot []int32, entropy []float64, logbase float64) {
	logfac := 1.0 / math.Log2(logbase) // to change base of logs
	for icol := range entropy {
		total := 0.0
		if coltot[icol] == 0 {
			entropy[icol] = 0
			continue
		}
		ntot := float64(coltot[icol])
		for irow := range counts {
			c := float64(counts[irow][icol])
			if c == 0.0 {
				continue
			}
			f := c / ntot
			total += f * math.Log2(f) * logfac
		}
		entropy[icol] = math.Abs(total)
	}
}

// Entropy calculates sequence entropy at each position of the first
// sequence. The caller allocates space for the result and says which
// base to use for logarithms. Base 2 gives bits.
func (seqgrp *SeqGrp) Entropy(logbase float64, entropy []float64) {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	EntropyFromArray(seqgrp.counts.Mat, seqgrp.coltot, entropy, logbase)
}
