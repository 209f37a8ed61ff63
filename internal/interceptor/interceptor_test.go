package interceptor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type memoryBucket struct {
	mutex   sync.Mutex
	entries map[string]*Response
	puts    int
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{entries: map[string]*Response{}}
}

func (b *memoryBucket) Match(_ context.Context, key string) (*Response, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.entries[key], nil
}

func (b *memoryBucket) Put(_ context.Context, key string, resp *Response) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries[key] = resp
	b.puts++
	return nil
}

// countingProvider records how often it was asked and answers with resp/err.
type countingProvider struct {
	name  string
	resp  *Response
	err   error
	panic bool
	calls int
}

func (p *countingProvider) Name() string { return p.name }

func (p *countingProvider) TryRespond(context.Context, *Request) (*Response, error) {
	p.calls++
	if p.panic {
		panic("boom")
	}
	return p.resp, p.err
}

type renderFunc func(ctx context.Context, req RenderRequest) (*Response, error)

func (f renderFunc) Render(ctx context.Context, req RenderRequest) (*Response, error) {
	return f(ctx, req)
}

func getRequest(t *testing.T, rawURL string) *Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &Request{Method: http.MethodGet, URL: u, Header: http.Header{}}
}

func okResponse(body string) *Response {
	return &Response{Status: http.StatusOK, Header: http.Header{"Content-Type": {"text/html"}}, Body: []byte(body)}
}

func TestIntercept_CacheHitSkipsOtherProviders(t *testing.T) {
	bucket := newMemoryBucket()
	cached := okResponse("<li>cached</li>")
	bucket.entries["http://shell/fragments/transaction"] = cached

	render := &countingProvider{name: "render", resp: okResponse("rendered")}
	network := &countingProvider{name: "network", resp: okResponse("network")}
	i := New(testLogger(), &CacheProvider{Bucket: bucket}, render, network)

	resp := i.Intercept(context.Background(), getRequest(t, "http://shell/fragments/transaction"))

	assert.Same(t, cached, resp)
	assert.Zero(t, render.calls)
	assert.Zero(t, network.calls)
}

func TestIntercept_RenderSuccessSkipsNetwork(t *testing.T) {
	rendered := okResponse("<li>local</li>")
	network := &countingProvider{name: "network", resp: okResponse("network")}
	i := New(testLogger(),
		&CacheProvider{Bucket: newMemoryBucket()},
		&RenderProvider{Renderer: renderFunc(func(context.Context, RenderRequest) (*Response, error) {
			return rendered, nil
		})},
		network,
	)

	resp := i.Intercept(context.Background(), getRequest(t, "http://shell/fragments/transaction"))

	assert.Same(t, rendered, resp)
	assert.Zero(t, network.calls)
}

func TestIntercept_AllFailReturnsPlaceholder(t *testing.T) {
	i := New(testLogger(),
		&countingProvider{name: "cache"},
		&countingProvider{name: "render", resp: &Response{Status: http.StatusNotFound}},
		&countingProvider{name: "network", err: errors.New("dial tcp: refused")},
	)
	req := getRequest(t, "http://shell/card?x=1")
	req.Method = http.MethodDelete

	resp := i.Intercept(context.Background(), req)

	assert.False(t, resp.OK())
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Network error happened DELETE - http://shell/card?x=1", string(resp.Body))
}

func TestIntercept_PanicIsSwallowed(t *testing.T) {
	panicking := &countingProvider{name: "render", panic: true}
	network := &countingProvider{name: "network", resp: okResponse("network")}
	i := New(testLogger(), panicking, network)

	resp := i.Intercept(context.Background(), getRequest(t, "http://shell/card"))

	assert.Equal(t, 1, panicking.calls)
	assert.Equal(t, "network", string(resp.Body))
}

func TestIntercept_FirstSuccessWinsInOrder(t *testing.T) {
	first := &countingProvider{name: "a", resp: &Response{Status: http.StatusInternalServerError}}
	second := &countingProvider{name: "b", resp: okResponse("b")}
	third := &countingProvider{name: "c", resp: okResponse("c")}
	i := New(testLogger(), first, second, third)

	resp := i.Intercept(context.Background(), getRequest(t, "http://shell/x"))

	assert.Equal(t, "b", string(resp.Body))
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, third.calls)
}

func TestIntercept_UnreachableNetworkExample(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstreamURL, _ := url.Parse(upstream.URL)
	upstream.Close()

	bucket := newMemoryBucket()
	i := New(testLogger(),
		&CacheProvider{Bucket: bucket},
		&RenderProvider{Renderer: renderFunc(func(context.Context, RenderRequest) (*Response, error) {
			return &Response{Status: http.StatusNotFound}, nil
		})},
		NewNetworkProvider(nil, upstreamURL, bucket, testLogger()),
	)

	resp := i.Intercept(context.Background(), getRequest(t, "http://shell/card"))

	assert.True(t, strings.HasPrefix(string(resp.Body), "Network error happened GET"))
	assert.Zero(t, bucket.puts)
}

func TestRenderProvider_PassesRouteAndForm(t *testing.T) {
	var got RenderRequest
	provider := &RenderProvider{Renderer: renderFunc(func(_ context.Context, req RenderRequest) (*Response, error) {
		got = req
		return okResponse("ok"), nil
	})}

	u, _ := url.Parse("http://shell.local:9447/fragments/transaction/add?card=c1")
	_, err := provider.TryRespond(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    u,
		Form:   url.Values{"amount": {"12.50"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/fragments/transaction/add?card=c1", got.Route)
	assert.Equal(t, "12.50", got.Form.Get("amount"))
}

func TestCacheProvider_OnlyServesGet(t *testing.T) {
	bucket := newMemoryBucket()
	bucket.entries["http://shell/card"] = okResponse("cached")
	req := getRequest(t, "http://shell/card")
	req.Method = http.MethodPost

	resp, err := (&CacheProvider{Bucket: bucket}).TryRespond(context.Background(), req)

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestNewRequest_GetHasNoForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://shell/fragments/transaction?limit=5", nil)

	req, err := NewRequest(r)
	require.NoError(t, err)

	assert.Nil(t, req.Form)
	assert.Equal(t, "/fragments/transaction?limit=5", req.Route())
	assert.Equal(t, "http://shell/fragments/transaction?limit=5", req.Key())
}

func TestNewRequest_DecodesURLEncodedForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/fragments/transaction/add", strings.NewReader("amount=12.50&description=Lunch"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := NewRequest(r)
	require.NoError(t, err)

	assert.Equal(t, "12.50", req.Form.Get("amount"))
	assert.Equal(t, "Lunch", req.Form.Get("description"))
	assert.Equal(t, "amount=12.50&description=Lunch", string(req.Body))
	assert.Equal(t, "http://example.com/fragments/transaction/add", req.Key())
}

func TestNewRequest_DecodesMultipartForm(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("amount", "3"))
	require.NoError(t, writer.WriteField("description", "Coffee"))
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/fragments/transaction/add", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())

	req, err := NewRequest(r)
	require.NoError(t, err)

	assert.Equal(t, "3", req.Form.Get("amount"))
	assert.Equal(t, "Coffee", req.Form.Get("description"))
}

func TestNetworkProvider_WritesBackSuccessfulGets(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/card":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()
	upstreamURL, _ := url.Parse(upstream.URL)

	bucket := newMemoryBucket()
	provider := NewNetworkProvider(upstream.Client(), upstreamURL, bucket, testLogger())

	resp, err := provider.TryRespond(context.Background(), getRequest(t, "http://shell/api/card"))
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "[]", string(resp.Body))

	missing, err := provider.TryRespond(context.Background(), getRequest(t, "http://shell/api/nothing"))
	require.NoError(t, err)
	assert.False(t, missing.OK())

	provider.Wait()
	cached, _ := bucket.Match(context.Background(), "http://shell/api/card")
	require.NotNil(t, cached)
	assert.Equal(t, "[]", string(cached.Body))
	assert.Equal(t, 1, bucket.puts)
}

func TestNetworkProvider_ForwardsBodyAndSkipsCacheForPost(t *testing.T) {
	var gotBody, gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer upstream.Close()
	upstreamURL, _ := url.Parse(upstream.URL)

	bucket := newMemoryBucket()
	provider := NewNetworkProvider(upstream.Client(), upstreamURL, bucket, testLogger())

	u, _ := url.Parse("http://shell/api/card")
	resp, err := provider.TryRespond(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    u,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   []byte(`{"name":"Visa"}`),
	})
	require.NoError(t, err)
	provider.Wait()

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, `{"name":"Visa"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
	assert.Zero(t, bucket.puts)
}

func TestServeHTTP_WritesPlaceholder(t *testing.T) {
	i := New(testLogger(), &countingProvider{name: "cache"})
	srv := httptest.NewServer(i)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/card")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Network error happened GET - "+srv.URL+"/card", string(body))
}

func TestNewRequest_UndecodableFormKeepsBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://shell/api/card", strings.NewReader("raw payload"))
	r.Header.Set("Content-Type", "multipart/form-data; boundary=") // no usable boundary

	req, err := NewRequest(r)

	assert.ErrorIs(t, err, ErrUndecodableForm)
	require.NotNil(t, req)
	assert.Equal(t, []byte("raw payload"), req.Body)
	assert.Empty(t, req.Form)
}

func TestServeHTTP_UndecodableFormStillForwardsBody(t *testing.T) {
	var gotBody, gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()
	upstreamURL, _ := url.Parse(upstream.URL)

	network := NewNetworkProvider(upstream.Client(), upstreamURL, newMemoryBucket(), testLogger())
	srv := httptest.NewServer(New(testLogger(), network))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/card/c1", strings.NewReader(`{"name":"Visa"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json; charset")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	network.Wait()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, `{"name":"Visa"}`, gotBody)
	assert.Equal(t, "application/json; charset", gotContentType)
}
