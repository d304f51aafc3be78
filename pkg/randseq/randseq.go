// 31 July 2020

// Package randseq writes random aligned DNA sequences. Some columns
// are conserved, so the output looks a little like a real alignment
// and gives perplexities spread between 1 and 4.
package randseq

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
)

var letters = []byte{'A', 'C', 'G', 'T'}

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed    int64     // random number seed
	Wrtr     io.Writer // where we write to
	Cmmt     string    // Comment for the sequences
	Nseq     int       // number of sequences
	Len      int       // Length of sequences
	Conserve float64   // probability that a column has only one base
	Plain    bool      // one sequence per line, no comments
}

// Generate returns Nseq random sequences of length Len. The same seed
// always gives the same sequences.
func Generate(args *RandSeqArgs) ([][]byte, error) {
	if args.Nseq < 0 || args.Len < 0 {
		return nil, errors.New("randseq: negative number of sequences or length")
	}
	if args.Conserve < 0 || args.Conserve > 1 {
		return nil, fmt.Errorf("randseq: conservation %g is not a probability", args.Conserve)
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	seqs := make([][]byte, args.Nseq)
	for i := range seqs {
		seqs[i] = make([]byte, args.Len)
	}
	l := int32(len(letters))
	for icol := 0; icol < args.Len; icol++ {
		if rnd.Float64() < args.Conserve {
			c := letters[rnd.Int31n(l)]
			for _, s := range seqs {
				s[icol] = c
			}
			continue
		}
		for _, s := range seqs {
			s[icol] = letters[rnd.Int31n(l)]
		}
	}
	return seqs, nil
}

// writeseq takes sequences from a channel and writes them. n is the
// number of the sequence, so the output has comment lines
// "> something 1, > something 2..."
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()

	width := len(fmt.Sprintf("%d", args.Nseq))
	var i int
	for s := range sChan {
		i++
		if *errp != nil {
			continue // drain, so the sender is not stuck
		}
		if !args.Plain {
			if _, *errp = fmt.Fprintf(args.Wrtr, "> %s %[2]*d\n", args.Cmmt, width, i); *errp != nil {
				continue
			}
		}
		if _, *errp = args.Wrtr.Write(s); *errp != nil {
			continue
		}
		_, *errp = args.Wrtr.Write([]byte{'\n'})
	}
}

// RandSeqMain writes random sequences to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	seqs, err := Generate(args)
	if err != nil {
		return err
	}
	var wg sync.WaitGroup
	var wrtErr error
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &wrtErr)
	for _, s := range seqs {
		sChan <- s
	}
	close(sChan)
	wg.Wait()
	return wrtErr
}
