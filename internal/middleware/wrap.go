package middleware

import "net/http"

// responseRecorder wraps ResponseWriter and runs a hook just before the
// first byte or header reaches the client, so cookies can still be attached.
type responseRecorder struct {
	http.ResponseWriter
	beforeWrite func(http.ResponseWriter)
	wrote       bool
}

func newResponseRecorder(w http.ResponseWriter, beforeWrite func(http.ResponseWriter)) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, beforeWrite: beforeWrite}
}

func (rw *responseRecorder) WriteHeader(statusCode int) {
	rw.flushHook()
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	rw.flushHook()
	return rw.ResponseWriter.Write(b)
}

func (rw *responseRecorder) flushHook() {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
}
