package web

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
)

const (
	nTop          = 5
	noInputNotice = "Please enter valid sequences."
)

// result is what the page shows after a calculation
type result struct {
	Title    string
	Caption  string
	StubNote string
	Chart    template.URL
	Summary  perplex.Summary
	NPos     int
}

// actions are where the buttons of the form post to
type actions struct {
	Compute  string
	Download string
	Chart    string
}

type indexPage struct {
	Form    form
	Kinds   []perplex.KindInfo
	Actions actions
	Notice  string
	Problem string
	Result  *result
}

func (h *handler) page(f form) indexPage {
	return indexPage{
		Form:  f,
		Kinds: perplex.KindTable(),
		Actions: actions{
			Compute:  h.urlFor("compute"),
			Download: h.urlFor("download"),
			Chart:    h.urlFor("chart"),
		},
	}
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	Render(h, w, r, h.Global.Site, "index.html", h.page(h.defaultForm()), nil)
}

func (h *handler) Kinds(w http.ResponseWriter, r *http.Request) {
	Render(h, w, r, "Kinds", "", perplex.KindTable(), &renderOpts{OutputFormat: JSON, Status: http.StatusOK})
}

// Compute shows the results on the same page as the form.
func (h *handler) Compute(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseForm(r)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}
	output := h.page(f)
	opts := NewRenderOpts()

	res, err := f.calc()
	switch {
	case errors.Is(err, perplex.ErrNoInput):
		output.Notice = noInputNotice
		Render(h, w, r, h.Global.Site, "index.html", output, opts)
		return
	case err != nil:
		output.Problem = err.Error()
		opts.Status = statusOf(err)
		Render(h, w, r, h.Global.Site, "index.html", output, opts)
		return
	}

	// Convert the chart to a PNG and base64 encode it so we can show it raw
	chartOpts := h.Global.Chart
	chartOpts.Format = "png"
	var imBuff bytes.Buffer
	if err := perplex.RenderChart(&imBuff, res.Profile, res.Kind, chartOpts); err != nil {
		HTTPError(h, w, r, err)
		return
	}
	encodedString := base64.StdEncoding.EncodeToString(imBuff.Bytes())

	shown := result{
		Title:   res.Kind.String(),
		Caption: res.Kind.Caption(),
		Chart:   template.URL("data:image/png;base64," + encodedString),
		NPos:    len(res.Profile),
	}
	if !res.Kind.Implemented() {
		shown.StubNote = perplex.StubNote
	}
	if shown.Summary, err = perplex.Summarize(res.Profile, nTop); err != nil {
		HTTPError(h, w, r, err)
		return
	}
	output.Result = &shown
	Render(h, w, r, h.Global.Site, "index.html", output, opts)
}

// formProfile is for the routes which return a file. Errors have been
// sent to the client when ok is false, as json if the client asked
// for json.
func (h *handler) formProfile(w http.ResponseWriter, r *http.Request) (res *perplex.Result, ok bool) {
	fail := HTTPError
	if wantsJSON(r) {
		fail = JSONError
	}
	f, err := h.parseForm(r)
	if err != nil {
		fail(h, w, r, err, http.StatusBadRequest)
		return nil, false
	}
	if res, err = f.calc(); err != nil {
		code := statusOf(err)
		if errors.Is(err, perplex.ErrNoInput) {
			err = errors.New(noInputNotice)
		}
		fail(h, w, r, err, code)
		return nil, false
	}
	return res, true
}

func (h *handler) Download(w http.ResponseWriter, r *http.Request) {
	res, ok := h.formProfile(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := perplex.WriteCSV(&buf, res.Profile); err != nil {
		HTTPError(h, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", common.CSVName))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Println(r.URL.Path, err)
	}
}

func (h *handler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	res, ok := h.formProfile(w, r)
	if !ok {
		return
	}
	chartOpts := h.Global.Chart
	chartOpts.Format = "png"
	var buf bytes.Buffer
	if err := perplex.RenderChart(&buf, res.Profile, res.Kind, chartOpts); err != nil {
		HTTPError(h, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Println(r.URL.Path, err)
	}
}
