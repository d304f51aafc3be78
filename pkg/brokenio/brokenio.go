// brokenio wraps readers and writers so they fail. Sequence input often
// comes from pipes or files being written as we read, so we want to
// see that every error makes it back to the caller.
// Typical use: reader = brokenio.NewReader(reader, seed), then set the
// rates of failure. Everything works as before, but with artificial
// errors.
// When we introduce a failure on the first read, we return io.EOF and
// no error. This is what one often sees on a zero length file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is the error for every failure we make up.
var ErrBroken = errors.New("brokenio: artificial failure")

// A Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// Probabilities are the fraction of calls where something goes wrong,
// so a value of 0.05 means failure in 5% of the cases.
type Reader struct {
	rdrOrig      io.Reader  // Wrapped reader
	rnd          *rand.Rand // own source, so runs can be repeated
	probZeroFile float32    // Probability of returning a zero length file
	probFail     float32    // Probability of a failed read
	failAfter    int        // fail once this many bytes are read, -1 for never
	nCalled      int
	nByte        int
}

// NewReader returns a new Reader, a wrapper around the old one.
// Until a rate is set, it never fails.
func NewReader(rIn io.Reader, seed int64) *Reader {
	return &Reader{
		rdrOrig:   rIn,
		rnd:       rand.New(rand.NewSource(seed)),
		failAfter: -1,
	}
}

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a read failing.
// It must be between zero and 1.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes reads fail once n bytes have been delivered.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// NByte is the number of bytes passed through so far.
func (r *Reader) NByte() int { return r.nByte }

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file
// which is a rather common occurrence.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 {
		if r.rnd.Float32() < r.probZeroFile {
			return 0, io.EOF
		}
	}
	r.nCalled++
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("read call %d after %d bytes: %w", r.nCalled, r.nByte, ErrBroken)
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nByte += n
	if err == nil && r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return n, fmt.Errorf("read call %d: %w", r.nCalled, ErrBroken)
	}
	return n, err
}

// Writer passes data through until it has written failAfter bytes,
// then fails. Like a full disc.
type Writer struct {
	wrtrOrig  io.Writer
	failAfter int
	nByte     int
}

// NewWriter returns a Writer which will take failAfter bytes.
func NewWriter(w io.Writer, failAfter int) *Writer {
	return &Writer{wrtrOrig: w, failAfter: failAfter}
}

// Write writes as much of p as is allowed.
func (w *Writer) Write(p []byte) (int, error) {
	left := w.failAfter - w.nByte
	if left >= len(p) {
		n, err := w.wrtrOrig.Write(p)
		w.nByte += n
		return n, err
	}
	if left < 0 {
		left = 0
	}
	n, err := w.wrtrOrig.Write(p[:left])
	w.nByte += n
	if err != nil {
		return n, err
	}
	return n, fmt.Errorf("wrote %d of %d bytes: %w", n, len(p), ErrBroken)
}
