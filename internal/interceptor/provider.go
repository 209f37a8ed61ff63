package interceptor

import (
	"context"
	"net/http"
	"net/url"
)

// Provider is one way of producing a response. A nil response or one that is
// not OK tells the interceptor to try the next provider.
type Provider interface {
	Name() string
	TryRespond(ctx context.Context, req *Request) (*Response, error)
}

// Bucket is the response cache. A miss is a nil response with a nil error.
type Bucket interface {
	Match(ctx context.Context, key string) (*Response, error)
	Put(ctx context.Context, key string, resp *Response) error
}

// RenderRequest is what a Renderer sees of a request.
type RenderRequest struct {
	Method string
	Route  string
	Form   url.Values
	Header http.Header
}

// Renderer produces fragments locally without the network.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (*Response, error)
}

type CacheProvider struct {
	Bucket Bucket
}

func (p *CacheProvider) Name() string { return "cache" }

func (p *CacheProvider) TryRespond(ctx context.Context, req *Request) (*Response, error) {
	if req.Method != http.MethodGet {
		return nil, nil
	}
	return p.Bucket.Match(ctx, req.Key())
}

type RenderProvider struct {
	Renderer Renderer
}

func (p *RenderProvider) Name() string { return "render" }

func (p *RenderProvider) TryRespond(ctx context.Context, req *Request) (*Response, error) {
	return p.Renderer.Render(ctx, RenderRequest{
		Method: req.Method,
		Route:  req.Route(),
		Form:   req.Form,
		Header: req.Header,
	})
}
