package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// wantsJSON is true if the client would rather have errors as json.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// JSONError is HTTPError for clients which asked for json.
func JSONError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	w.Header().Set("Content-Type", "application/json")
	unifiedError(h, w, r, err, code...)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Success bool
		Message string
	}{
		false,
		err.Error(),
	})
}

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	output := struct {
		StatusCode     int
		StatusCodeText string
		Error          string
	}{
		StatusCode:     http.StatusInternalServerError,
		StatusCodeText: http.StatusText(http.StatusInternalServerError),
		Error:          err.Error(),
	}

	for _, c := range code {
		output.StatusCode = c
		output.StatusCodeText = http.StatusText(c)
		break // Take the first, if any is given
	}

	/*
		Built from the Render() function, but not calling Render()
		to avoid possibility of infinite loop
	*/
	page := Page{
		Title: "Error",
		Site:  h.Global.Site,
		Data:  output,
	}

	tpl, tplErr := h.Template("error.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	unifiedError(h, w, r, err, output.StatusCode)
	if tplErr != nil {
		fmt.Fprintf(w, "Error (%d) %v", output.StatusCode, err)
		return
	}
	if err := tpl.Execute(w, page); err != nil {
		fmt.Fprintf(w, "Error (%d) (%v) with %+v", output.StatusCode, err, page)
	}
}

func unifiedError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	usedCode := http.StatusInternalServerError
	if len(code) > 0 {
		usedCode = code[0]
	}
	w.WriteHeader(usedCode)
	h.log.Println(r.Host, r.URL.Path, ":", usedCode, err)
}
