package server

import (
	"mime"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// IndexPath is the server-rendered contact page.
const IndexPath = "/vdeck/"

func init() {
	// Ensure common MIME types are set (some platforms lack them by default)
	mime.AddExtensionType(".css", "text/css")
	mime.AddExtensionType(".js", "application/javascript")
	mime.AddExtensionType(".vcf", vcardContentType)
}

func (s *Server) routes() *mux.Router {
	// Card names reach the deck uncleaned so that traversal is rejected
	// rather than redirected.
	r := mux.NewRouter().SkipClean(true)
	r.Use(s.logRequests)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusFound)
	}).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc(IndexPath, s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(browser.ListPath, s.handleList).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(browser.RawPath+"{name:.+}", s.handleRaw).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(browser.DetailPath+"{name:.+}", s.handleDetail).Methods(http.MethodGet, http.MethodHead)

	if s.opts.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.opts.StaticDir))
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
	}
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug(r.Method+" "+r.URL.Path,
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
}
