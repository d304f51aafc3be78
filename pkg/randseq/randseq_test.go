// 31 July 2020

package randseq_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/seqperplex/pkg/brokenio"
	"github.com/andrew-torda/seqperplex/pkg/randseq"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{
		Wrtr: &sb,
		Cmmt: "testing seq",
		Nseq: 500,
		Len:  160,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != args.Nseq {
		t.Fatal("count >, got ", n, "expected", args.Nseq)
	}
}

func TestPlain(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{Wrtr: &sb, Nseq: 7, Len: 12, Plain: true, Iseed: 3}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	for _, l := range lines {
		if len(l) != 12 || strings.Trim(l, "ACGT") != "" {
			t.Fatalf("bad line %q", l)
		}
	}
}

func TestSeedAndConserve(t *testing.T) {
	args := randseq.RandSeqArgs{Nseq: 20, Len: 50, Iseed: 42, Conserve: 1}
	a, err := randseq.Generate(&args)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := randseq.Generate(&args)
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			t.Fatal("same seed gave different sequences at", i)
		}
		if !bytes.Equal(a[i], a[0]) {
			t.Fatal("fully conserved columns differ in sequence", i)
		}
	}
	args.Conserve = 1.5
	if _, err := randseq.Generate(&args); err == nil {
		t.Fatal("conservation above 1 should fail")
	}
}

func TestWriteFail(t *testing.T) {
	for _, n := range []int{0, 5, 100} {
		args := randseq.RandSeqArgs{Wrtr: brokenio.NewWriter(io.Discard, n), Nseq: 30, Len: 40}
		if err := randseq.RandSeqMain(&args); !errors.Is(err, brokenio.ErrBroken) {
			t.Fatalf("writer failing after %d bytes gave %v", n, err)
		}
	}
}
