// Package responsewriter records what a handler sent, for the logging,
// metrics and tracing middleware layered around it.
package responsewriter

import "net/http"

// ResponseWriter remembers the status line and counts body bytes.
type ResponseWriter struct {
	http.ResponseWriter
	status int // 0 until the header is sent
	size   int
}

// Wrap returns w unchanged when some outer middleware already wrapped it,
// so every layer reads the same counters.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = &ResponseWriter{ResponseWriter: w}
	}
	return rw
}

// WriteHeader forwards only the first status; later calls are dropped.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.WriteHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// StatusCode is the sent status, or 200 when the handler wrote nothing,
// which is what net/http answers in that case.
func (w *ResponseWriter) StatusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *ResponseWriter) BytesWritten() int { return w.size }

// Written reports whether the status line has gone out.
func (w *ResponseWriter) Written() bool { return w.status != 0 }

// Unwrap exposes the inner writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
