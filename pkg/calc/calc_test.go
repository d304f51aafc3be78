// 27 April 2020

package calc_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/andrew-torda/seqperplex/pkg/calc"
	"github.com/andrew-torda/seqperplex/pkg/perplex"
	"github.com/andrew-torda/seqperplex/pkg/seq"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
)

var seqstring = `> s1
ACGT
> s2
ACGA
> s3
ACGT
> s4
ACTT
> s5
ACGG
> s6
ACGA`

var plainstring = "ACGT\nACGA\nACGT\nACTT\nACGG\nACGA\n"

func tmpInput(t *testing.T, s string) string {
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal("Fail writing test file", err)
	}
	t.Cleanup(func() { os.Remove(fname) })
	return fname
}

func readBack(t *testing.T, fname string) perplex.Profile {
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	prof, err := perplex.ReadCSV(fp)
	if err != nil {
		t.Fatal(err)
	}
	return prof
}

func TestMymain(t *testing.T) {
	dir := t.TempDir()
	for i, s := range []string{seqstring, plainstring} {
		outfile := filepath.Join(dir, common.CSVName)
		if err := Mymain(&CmdFlag{}, tmpInput(t, s), outfile); err != nil {
			t.Fatal("bust on simple test", i, err)
		}
		prof := readBack(t, outfile)
		if len(prof) != 4 || prof[0] != 1 || prof[1] != 1 {
			t.Fatalf("run %d gave %v", i, prof)
		}
	}
}

func TestOutputs(t *testing.T) {
	dir := t.TempDir()
	var notes bytes.Buffer
	flags := CmdFlag{
		Kind:    perplex.Markov,
		Plot:    filepath.Join(dir, "plot.svg"),
		Chimera: filepath.Join(dir, "attr.txt"),
		Offset:  100,
		Verbose: true,
		Stderr:  &notes,
	}
	if err := Mymain(&flags, tmpInput(t, seqstring), filepath.Join(dir, "out.csv")); err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(flags.Plot)
	if err != nil || !bytes.Contains(svg, []byte("<svg")) {
		t.Fatal("no svg plot", err)
	}
	attr, err := os.ReadFile(flags.Chimera)
	if err != nil || !bytes.Contains(attr, []byte("\t:101\t1.00000")) {
		t.Fatalf("chimera file %q %v", attr, err)
	}
	for _, want := range []string{perplex.Markov.Caption(), perplex.StubNote, "6 sequences", "most variable [4 3 1 2]"} {
		if !strings.Contains(notes.String(), want) {
			t.Errorf("notes missing %q:\n%s", want, notes.String())
		}
	}
}

func TestUpperTruncate(t *testing.T) {
	dir := t.TempDir()
	outfile := filepath.Join(dir, "out.csv")
	in := tmpInput(t, "acgt\nACGTA\nACG\n")
	var lenErr *seq.LengthError
	if err := Mymain(&CmdFlag{Upper: true}, in, outfile); !errors.As(err, &lenErr) {
		t.Fatal("different lengths gave", err)
	}
	if err := Mymain(&CmdFlag{Upper: true, Truncate: true}, in, outfile); err != nil {
		t.Fatal(err)
	}
	for i, v := range readBack(t, outfile) {
		if v != 1 {
			t.Fatalf("position %d got %v", i+1, v)
		}
	}
}

func TestBadInput(t *testing.T) {
	dir := t.TempDir()
	outfile := filepath.Join(dir, "out.csv")
	if err := Mymain(&CmdFlag{}, tmpInput(t, "\n\n"), outfile); !errors.Is(err, perplex.ErrNoInput) {
		t.Fatal("blank input gave", err)
	}
	if err := Mymain(&CmdFlag{}, filepath.Join(dir, "missing"), outfile); err == nil {
		t.Fatal("missing input file accepted")
	}
	flags := CmdFlag{Plot: filepath.Join(dir, "p.gif"), Chart: perplex.ChartOpts{Format: "gif"}}
	if err := Mymain(&flags, tmpInput(t, plainstring), outfile); err == nil {
		t.Fatal("gif plot accepted")
	}
	if err := Mymain(&CmdFlag{}, tmpInput(t, ">a\n>b\nAC\n"), outfile); err == nil {
		t.Fatal("empty fasta entry accepted")
	} else {
		var fmtErr *seq.FormatError
		if !errors.As(err, &fmtErr) || fmtErr.Line != 2 {
			t.Fatal("empty fasta entry gave", err)
		}
	}
}

// TestPlotFormat checks that a .png or .svg suffix picks the chart
// format and other names fall back to the configured one.
func TestPlotFormat(t *testing.T) {
	dir := t.TempDir()
	outfile := filepath.Join(dir, "out.csv")
	in := tmpInput(t, plainstring)
	tests := []struct {
		plot   string
		format string
		svg    bool
	}{
		{"plot.out", "svg", true},
		{"plot.out", "", false},
		{"plot.png", "svg", false},
		{"plot.SVG", "png", true},
	}
	for _, tt := range tests {
		flags := CmdFlag{Plot: filepath.Join(dir, tt.plot), Chart: perplex.ChartOpts{Format: tt.format}}
		if err := Mymain(&flags, in, outfile); err != nil {
			t.Fatal(tt.plot, err)
		}
		b, err := os.ReadFile(flags.Plot)
		if err != nil {
			t.Fatal(err)
		}
		isSVG := bytes.Contains(b, []byte("<svg"))
		isPNG := bytes.HasPrefix(b, []byte("\x89PNG"))
		if isSVG != tt.svg || isPNG == tt.svg {
			t.Errorf("%s with format %q: svg %v png %v", tt.plot, tt.format, isSVG, isPNG)
		}
	}
}
