// Package web is a small interactive front end. Users paste
// sequences, pick a kind of perplexity and get a chart, a summary and
// a csv file back.
package web

import (
	"log"
	"os"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
)

// Global holds settings shared by every request. Nothing in it changes
// once the server is running.
type Global struct {
	log logger

	Site  string
	Chart perplex.ChartOpts

	// initial state of the form
	Kind   perplex.Kind
	Policy perplex.Policy
	Upper  bool
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// NewGlobal returns settings that log to l, or to stderr if l is nil.
func NewGlobal(site string, chart perplex.ChartOpts, l logger) *Global {
	if l == nil {
		l = log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime)
	}
	return &Global{log: l, Site: site, Chart: chart}
}
