// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// CSVName is the file name offered when perplexities are downloaded.
const CSVName = "perplexity_values.csv"

// IsStdio says whether a file name means standard input or output.
// We treat both the empty string and "-" that way.
func IsStdio(fname string) bool { return fname == "" || fname == "-" }

// WarnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func WarnExists(fname string) {
	if IsStdio(fname) {
		return
	}
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}
