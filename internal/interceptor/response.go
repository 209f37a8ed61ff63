package interceptor

import (
	"fmt"
	"net/http"
)

// Response is a complete buffered response. Fields are exported so the cache
// bucket can encode it.
type Response struct {
	Status int         `msgpack:"status"`
	Header http.Header `msgpack:"header"`
	Body   []byte      `msgpack:"body"`
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Write copies the response onto w.
func (r *Response) Write(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(r.Status)
	_, err := w.Write(r.Body)
	return err
}

// Offline is returned when no provider produced a successful response.
func Offline(req *Request) *Response {
	return &Response{
		Status: http.StatusServiceUnavailable,
		Header: http.Header{"Content-Type": []string{"text/plain"}},
		Body:   []byte(fmt.Sprintf("Network error happened %s - %s", req.Method, req.URL.String())),
	}
}
