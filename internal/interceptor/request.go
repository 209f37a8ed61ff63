package interceptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
)

const maxFormMemory = 32 << 20

// Request is an intercepted request. Body holds the raw payload so it can be
// forwarded upstream after Form has been decoded from it.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
	Form   url.Values
}

// ErrUndecodableForm is returned alongside a usable Request whose body could
// not be decoded as a form. The raw Body is kept and Form is empty.
var ErrUndecodableForm = errors.New("undecodable form")

// NewRequest captures r. The URL is made absolute from the Host header so it
// can serve as the cache key. Only non-GET requests carry form data.
func NewRequest(r *http.Request) (*Request, error) {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}

	req := &Request{
		Method: r.Method,
		URL:    &u,
		Header: r.Header.Clone(),
	}
	if r.Method == http.MethodGet || r.Body == nil {
		return req, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	req.Body = body

	form, err := decodeForm(r.Header.Get("Content-Type"), body)
	if err != nil {
		req.Form = url.Values{}
		return req, fmt.Errorf("%w: %w", ErrUndecodableForm, err)
	}
	req.Form = form
	return req, nil
}

// Route is the path plus query string with the host stripped.
func (r *Request) Route() string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// Key identifies the request in the cache bucket.
func (r *Request) Key() string {
	return r.URL.String()
}

func decodeForm(contentType string, body []byte) (url.Values, error) {
	form := url.Values{}
	if contentType == "" {
		return form, nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, err
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		return url.ParseQuery(string(body))
	case "multipart/form-data":
		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		parsed, err := reader.ReadForm(maxFormMemory)
		if err != nil {
			return nil, err
		}
		defer parsed.RemoveAll()
		for key, values := range parsed.Value {
			form[key] = values
		}
		return form, nil
	default:
		return form, nil
	}
}
