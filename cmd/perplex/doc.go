/*
Perplex calculates the perplexity at each position of a set of aligned
DNA sequences. At each position, the Shannon entropy H (in bits) of the
bases found there is turned into 2^H, the effective number of equally
likely bases. A conserved position has perplexity 1. All four bases in
equal amounts give 4.

Input is either one sequence per line, or fasta. Blank lines are
ignored. By default, all sequences must be as long as the first one.
With --truncate, only the length of the first sequence is used. A
shorter sequence then just stops counting where it ends.

Symbols are counted as they are, so "a" and "A" are different unless
-u is given. Gaps and other characters count as ordinary symbols.

There are eight kinds of perplexity to choose from. Each has its own
caption, but at the moment only conditional perplexity is more than a
label. The others give the same numbers.

Usage:

	perplex calc [flags] [infile [outfile]]
	perplex serve [--port 9019] [--addr address]
	perplex kinds [--format yaml|json]
	perplex randseq [flags] [outfile]

The calc flags are:

	-k kind
		conditional, evolutionary, structural, functional, multiscale,
		markov, weighted or stochastic
	--truncate
		use the length of the first sequence
	-u
		convert sequences to upper case
	-p plotfile
		write a chart, png or svg depending on the suffix
	-c chimerafile
		write an attribute file for chimera
	-f offset
		added to residue numbers in the chimera file
	-v
		print the caption and some statistics to stderr

Given no output filename, calc writes csv to standard output. The csv has
a header and the columns Position (from 1) and Perplexity.

Every setting can also come from a yaml file given with --config, or from
an environment variable such as PERPLEX_KIND or PERPLEX_SERVE_PORT.
Flags win over the environment, which wins over the file.
*/
package main
