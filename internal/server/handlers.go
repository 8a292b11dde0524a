package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/emurenMRz/vdeck/internal/contact"
	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
	"github.com/emurenMRz/vdeck/internal/page"
)

const vcardContentType = "text/x-vcard"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deck.Rows()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := page.New()
	doc.Contacts.SetRows(rows)

	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf, s.opts.Title, s.endpoints); err != nil {
		s.writeError(w, r, apperrors.InternalError("render index", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deck.Rows()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []contact.Row{}
	}
	s.writeJSON(w, rows)
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	b, err := s.deck.Raw(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", vcardContentType)
	w.Write(b)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	d, err := s.deck.Detail(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, d)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("Failed to write response", logging.Err(err))
	}
}

// writeError answers with the status of err. Only server faults are logged
// as errors; bad names and missing cards are routine.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", err, logging.String("path", r.URL.Path))
	} else {
		s.log.Debug("Request rejected", logging.String("path", r.URL.Path), logging.Err(err))
	}
	http.Error(w, http.StatusText(status), status)
}
