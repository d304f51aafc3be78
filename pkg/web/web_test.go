package web_test

import (
	"encoding/json"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/andrew-torda/seqperplex/pkg/perplex"
	"github.com/andrew-torda/seqperplex/pkg/seq/common"
	. "github.com/andrew-torda/seqperplex/pkg/web"
)

const example = "ACGT\nACGA\nACGT\nACTT\nACGG\nACGA"

func newServer(t *testing.T) (http.Handler, *Global) {
	g := NewGlobal("Positional Perplexity", perplex.ChartOpts{Width: 320, Height: 200}, log.New(io.Discard, "", 0))
	h, err := Router(g)
	if err != nil {
		t.Fatal(err)
	}
	return h, g
}

func post(t *testing.T, h http.Handler, path string, vals url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h, _ := newServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatal("status", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, example) {
		t.Error("sample sequences not in text area")
	}
	for _, k := range perplex.Kinds() {
		if !strings.Contains(body, k.String()) {
			t.Error("kind missing from page:", k)
		}
	}
	if strings.Contains(body, "data:image/png") {
		t.Error("fresh page has a chart")
	}
}

func TestCompute(t *testing.T) {
	h, _ := newServer(t)
	tests := []struct {
		name     string
		vals     url.Values
		code     int
		want     []string
		chart    bool
		stubNote bool
	}{
		{"conditional", url.Values{"sequences": {example}}, http.StatusOK,
			[]string{"Conditional Perplexity", perplex.Conditional.Caption()}, true, false},
		{"markov", url.Values{"sequences": {example}, "kind": {"markov"}}, http.StatusOK,
			[]string{"Markov-Based Perplexity", perplex.Markov.Caption()}, true, true},
		{"fasta", url.Values{"sequences": {">a\nACGT\n>b\nACGA\n"}}, http.StatusOK,
			[]string{"most variable"}, true, false},
		{"empty", url.Values{"sequences": {"  \n\n"}}, http.StatusOK,
			[]string{"Please enter valid sequences."}, false, false},
		{"lengths", url.Values{"sequences": {"ACGT\nACG"}}, http.StatusUnprocessableEntity,
			[]string{"sequence 2 has length 3"}, false, false},
		{"truncate", url.Values{"sequences": {"ACGT\nACG"}, "policy": {"truncate"}}, http.StatusOK,
			nil, true, false},
		{"bad kind", url.Values{"sequences": {example}, "kind": {"quantum"}}, http.StatusBadRequest,
			[]string{"unknown perplexity kind"}, false, false},
		{"empty fasta entry", url.Values{"sequences": {">a\n>b\nAC"}}, http.StatusUnprocessableEntity,
			[]string{"line 2: zero length sequence after &gt;a"}, false, false},
		{"comment in plain", url.Values{"sequences": {"ACGT\n>x\nACGT"}}, http.StatusUnprocessableEntity,
			[]string{"line 2: fasta comment in plain sequence input"}, false, false},
		{"not ascii", url.Values{"sequences": {"AéT\nAéT\nAxT\nAxT"}}, http.StatusOK,
			[]string{"<td>positions</td><td>3</td>"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/", tt.vals)
			if rec.Code != tt.code {
				t.Fatalf("status %d want %d", rec.Code, tt.code)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("page missing %q", w)
				}
			}
			if got := strings.Contains(body, "data:image/png;base64,"); got != tt.chart {
				t.Errorf("chart shown %v want %v", got, tt.chart)
			}
			if got := strings.Contains(body, perplex.StubNote); got != tt.stubNote {
				t.Errorf("stub note shown %v want %v", got, tt.stubNote)
			}
		})
	}
}

// The buttons post to the named routes.
func TestActions(t *testing.T) {
	h, _ := newServer(t)
	body := post(t, h, "/", url.Values{"sequences": {example}}).Body.String()
	for _, want := range []string{`action="/"`, `formaction="/download"`, `formaction="/chart.png"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s", want)
		}
	}
}

func TestJSONError(t *testing.T) {
	h, _ := newServer(t)
	vals := url.Values{"sequences": {"ACGT\nACG"}}
	req := httptest.NewRequest(http.MethodPost, "/download", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatal("status", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatal("content type", ct)
	}
	var msg struct {
		Success bool
		Message string
	}
	if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Success || !strings.Contains(msg.Message, "sequence 2 has length 3") {
		t.Fatalf("json error %+v", msg)
	}

	if rec = post(t, h, "/download", vals); !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Error("html client got", rec.Header().Get("Content-Type"))
	}
}

func TestUpperBox(t *testing.T) {
	h, _ := newServer(t)
	vals := url.Values{"sequences": {"acgt\nACGT"}, "upper": {"off", "on"}}
	rec := post(t, h, "/download", vals)
	prof, err := perplex.ReadCSV(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range prof {
		if v != 1 {
			t.Fatalf("upper case box ignored, position %d got %v", i+1, v)
		}
	}
}

func TestDownload(t *testing.T) {
	h, _ := newServer(t)
	rec := post(t, h, "/download", url.Values{"sequences": {example}})
	if rec.Code != http.StatusOK {
		t.Fatal("status", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Error("content type", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment") || !strings.Contains(cd, `filename="`+common.CSVName+`"`) {
		t.Error("content disposition", cd)
	}
	prof, err := perplex.ReadCSV(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(prof) != 4 || prof[0] != 1 {
		t.Fatal("downloaded profile", prof)
	}

	if rec = post(t, h, "/download", url.Values{"sequences": {""}}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatal("empty download gave status", rec.Code)
	}
}

func TestChartPNG(t *testing.T) {
	h, g := newServer(t)
	rec := post(t, h, "/chart.png", url.Values{"sequences": {example}, "kind": {"weighted"}})
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatal("status", rec.Code, rec.Header())
	}
	cfg, err := png.DecodeConfig(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != g.Chart.Width || cfg.Height != g.Chart.Height {
		t.Fatalf("chart size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestKinds(t *testing.T) {
	h, _ := newServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kinds", nil))
	if rec.Code != http.StatusOK {
		t.Fatal("status", rec.Code)
	}
	var kk []perplex.KindInfo
	if err := json.NewDecoder(rec.Body).Decode(&kk); err != nil {
		t.Fatal(err)
	}
	if len(kk) != 8 || kk[0].Name != "conditional" || !kk[0].Implemented || kk[5].Title != "Markov-Based Perplexity" {
		t.Fatalf("kinds %+v", kk)
	}
}
