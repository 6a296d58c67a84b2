package server

import "net/http"

// statusRecorder captures the status code a handler writes so the logging
// and metrics middleware can label the completed scrape with it. Duplicate
// WriteHeader calls are dropped rather than passed through.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wrote {
		return
	}
	r.status = status
	r.wrote = true
	r.ResponseWriter.WriteHeader(status)
}

// Write records the implicit 200 when the handler never called WriteHeader.
func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// Status returns the status code sent to the client.
func (r *statusRecorder) Status() int {
	return r.status
}
