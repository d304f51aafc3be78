package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
	"github.com/andrew-torda/seqperplex/pkg/seq"
)

// sampleSeqs fill the text area on a fresh page
var sampleSeqs = []string{"ACGT", "ACGA", "ACGT", "ACTT", "ACGG", "ACGA"}

// form is what the user sent us. Every POST route takes the same
// fields, so the download and chart buttons can share one html form.
type form struct {
	Text   string
	Kind   perplex.Kind
	Policy perplex.Policy
	Upper  bool
}

func (g *Global) defaultForm() form {
	return form{
		Text:   strings.Join(sampleSeqs, "\n"),
		Kind:   g.Kind,
		Policy: g.Policy,
		Upper:  g.Upper,
	}
}

// parseForm reads the fields "sequences", "kind", "policy" and
// "upper". Missing fields get the server's defaults.
func (g *Global) parseForm(r *http.Request) (form, error) {
	f := g.defaultForm()
	if err := r.ParseForm(); err != nil {
		return f, fmt.Errorf("reading form: %w", err)
	}
	f.Text = r.PostFormValue("sequences")
	var err error
	if s := r.PostFormValue("kind"); s != "" {
		if f.Kind, err = perplex.ParseKind(s); err != nil {
			return f, err
		}
	}
	if s := r.PostFormValue("policy"); s != "" {
		if f.Policy, err = perplex.ParsePolicy(s); err != nil {
			return f, err
		}
	}
	if vals, ok := r.PostForm["upper"]; ok { // a hidden "off" comes with the checkbox
		f.Upper = false
		for _, v := range vals {
			if v == "on" || v == "true" {
				f.Upper = true
			}
		}
	}
	return f, nil
}

// calc runs the calculator on the text of a form. The text can be one
// sequence per line or fasta.
func (f form) calc() (*perplex.Result, error) {
	return perplex.Run(perplex.Request{
		Input:  strings.NewReader(f.Text),
		Kind:   f.Kind,
		Policy: f.Policy,
		Upper:  f.Upper,
	})
}

// statusOf says which status code goes with a calculation error.
func statusOf(err error) int {
	var lenErr *seq.LengthError
	var fmtErr *seq.FormatError
	switch {
	case errors.Is(err, perplex.ErrNoInput),
		errors.As(err, &lenErr),
		errors.As(err, &fmtErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
