// 27 april 2020
package calc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
	"github.com/andrew-torda/seqperplex/pkg/seq"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
)

const nTop = 5 // most variable positions listed in the summary

type CmdFlag struct {
	Chimera  string            // write output in format for chimera
	Offset   int               // Add this to the residue numbering in chimera output
	Kind     perplex.Kind      // label for the analysis
	Truncate bool              // use the first sequence's length, do not insist on equal lengths
	Upper    bool              // fold sequences to upper case
	Plot     string            // file name for a chart, png or svg from the suffix
	Chart    perplex.ChartOpts // size of chart
	Verbose  bool              // caption and summary to stderr
	Time     bool              // do we want to print out run time ?
	Stderr   io.Writer         // for notes, os.Stderr if nil
}

// create opens a named file for writing, or gives back standard output.
// The returned function closes the file, if there is one.
func create(fname, what string) (io.Writer, func() error, error) {
	if common.IsStdio(fname) {
		return os.Stdout, func() error { return nil }, nil
	}
	common.WarnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("%s file %v: %w", what, fname, err)
	}
	return fp, fp.Close, nil
}

// writeCSV writes the csv file. If there is no filename or the
// filename is "-", write to standard output.
func writeCSV(outfile string, prof perplex.Profile) error {
	fp, closer, err := create(outfile, "output")
	if err != nil {
		return err
	}
	if err = perplex.WriteCSV(fp, prof); err != nil {
		closer()
		return fmt.Errorf("writing %v: %w", outfile, err)
	}
	return closer()
}

// writePlot draws the chart. A .png or .svg suffix on the file name
// picks the format. Any other name gets the configured format.
func writePlot(fname string, prof perplex.Profile, flags *CmdFlag) error {
	opts := flags.Chart
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".png", ".svg":
		opts.Format = fname
	}
	format, err := perplex.ChartFormat(opts.Format)
	if err != nil {
		return err
	}
	opts.Format = format
	fp, closer, err := create(fname, "plot")
	if err != nil {
		return err
	}
	if err = perplex.RenderChart(fp, prof, flags.Kind, opts); err != nil {
		closer()
		return err
	}
	return closer()
}

// writeChimera writes the perplexity in a form suitable
// for reading in chimera as an attribute file
func writeChimera(fname string, prof perplex.Profile, offset int) error {
	fp, closer, err := create(fname, "chimera output")
	if err != nil {
		return err
	}
	if err = perplex.WriteChimera(fp, prof, offset); err != nil {
		closer()
		return err
	}
	return closer()
}

// notes prints what the user asked for with -v
func notes(w io.Writer, res *perplex.Result, flags *CmdFlag) {
	prof := res.Profile
	fmt.Fprintln(w, flags.Kind.String()+":", flags.Kind.Caption())
	if !flags.Kind.Implemented() {
		fmt.Fprintln(w, perplex.StubNote)
	}
	fmt.Fprintf(w, "%s sequences, %s positions, %s type\n",
		humanize.Comma(int64(res.NSeq)), humanize.Comma(int64(len(prof))), res.Type)
	if s, err := perplex.Summarize(prof, nTop); err == nil {
		fmt.Fprintln(w, s)
	}
}

// Mymain is the main function for calculating perplexity and writing to a file
func Mymain(flags *CmdFlag, infile, outfile string) error {
	stderr := flags.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}

	rdr, err := seq.Open(infile)
	if err != nil {
		return fmt.Errorf("Fail reading sequences: %w", err)
	}
	defer rdr.Close()
	req := perplex.Request{Input: rdr, Kind: flags.Kind, Upper: flags.Upper}
	if flags.Truncate {
		req.Policy = perplex.Truncate
	}
	res, err := perplex.Run(req)
	if err != nil {
		var lenErr *seq.LengthError
		if errors.Is(err, perplex.ErrNoInput) || errors.Is(err, perplex.ErrUnknownKind) || errors.As(err, &lenErr) {
			return err
		}
		return fmt.Errorf("Fail reading sequences: %w", err)
	}
	prof := res.Profile

	if err = writeCSV(outfile, prof); err != nil {
		return err
	}
	if flags.Plot != "" {
		if err = writePlot(flags.Plot, prof, flags); err != nil {
			return err
		}
	}
	if flags.Chimera != "" { // Do we have to write a chimera attribute file ?
		if err = writeChimera(flags.Chimera, prof, flags.Offset); err != nil {
			return err
		}
	}
	if flags.Verbose {
		notes(stderr, res, flags)
	}
	return nil
}
