package perplex

import (
	"fmt"
	"io"
	"time"
)

// WriteChimera writes a profile in the format wanted by chimera for
// residue attributes. offset is added to the residue numbers, which
// otherwise start from 1.
func WriteChimera(w io.Writer, p Profile, offset int) error {
	head := "\nattribute: perplexity\nmatch mode: 1-to-1\nrecipient: residues"
	if _, err := fmt.Fprintln(w, "#", time.Now().Format(time.RFC1123), head); err != nil {
		return err
	}
	for i, v := range p {
		rnum := i + 1 + offset
		if _, err := fmt.Fprintf(w, "\t:%d\t%#g\n", rnum, v); err != nil {
			return err
		}
	}
	return nil
}
