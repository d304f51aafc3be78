// Calculate positional perplexity for a set of aligned sequences.

package main

import (
	"github.com/andrew-torda/seqperplex/pkg/cli"
)

func main() {
	cli.Execute() // initialize cobra commands
}
