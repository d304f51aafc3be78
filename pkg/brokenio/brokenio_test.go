package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/seqperplex/pkg/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func TestNoFailure(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring), 1)
	b, err := io.ReadAll(rdr)
	if err != nil || string(b) != longstring {
		t.Fatalf("got %q %v", b, err)
	}
	if rdr.NByte() != len(longstring) {
		t.Fatal("counted", rdr.NByte(), "bytes")
	}
}

func TestFailAfter(t *testing.T) {
	for _, n := range []int{0, 1, 7, 39} {
		rdr := brokenio.NewReader(strings.NewReader(longstring), 1)
		rdr.SetFailAfter(n)
		b, err := io.ReadAll(rdr)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Fatalf("fail after %d gave %v", n, err)
		}
		if string(b) != longstring[:n] {
			t.Fatalf("fail after %d read %q", n, b)
		}
	}
}

func TestZeroFile(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring), 1)
	rdr.SetProbZeroFile(1)
	b, err := io.ReadAll(rdr)
	if err != nil || len(b) != 0 {
		t.Fatalf("zero file got %q %v", b, err)
	}
}

func TestProbFail(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring), 1)
	rdr.SetProbFail(1)
	s := make([]byte, 10)
	n, err := rdr.Read(s)
	if n != 10 || !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("read", n, err)
	}
}

func TestWriter(t *testing.T) {
	tests := []struct {
		failAfter int
		writes    []string
		want      string
		fail      bool
	}{
		{10, []string{"abc", "def"}, "abcdef", false},
		{4, []string{"abc", "def"}, "abcd", true},
		{3, []string{"abc", "def"}, "abc", true},
		{0, []string{"a"}, "", true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		w := brokenio.NewWriter(&buf, tt.failAfter)
		var err error
		for _, s := range tt.writes {
			if _, err = io.WriteString(w, s); err != nil {
				break
			}
		}
		if got := errors.Is(err, brokenio.ErrBroken); got != tt.fail {
			t.Errorf("fail after %d: error %v", tt.failAfter, err)
		}
		if buf.String() != tt.want {
			t.Errorf("fail after %d: wrote %q want %q", tt.failAfter, buf.String(), tt.want)
		}
	}
}
