package interceptor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var hopHeaders = []string{"Connection", "Keep-Alive", "Proxy-Connection", "Te", "Trailer", "Transfer-Encoding", "Upgrade"}

// NetworkProvider forwards requests to the upstream origin. Successful GET
// responses are written back to Bucket in the background.
type NetworkProvider struct {
	Client   *http.Client
	Upstream *url.URL
	Bucket   Bucket
	Logger   *logrus.Logger

	writeBacks sync.WaitGroup
}

func NewNetworkProvider(client *http.Client, upstream *url.URL, bucket Bucket, logger *logrus.Logger) *NetworkProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &NetworkProvider{Client: client, Upstream: upstream, Bucket: bucket, Logger: logger}
}

func (p *NetworkProvider) Name() string { return "network" }

func (p *NetworkProvider) TryRespond(ctx context.Context, req *Request) (*Response, error) {
	target := p.Upstream.JoinPath(req.URL.Path)
	target.RawQuery = req.URL.RawQuery

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	outbound, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, err
	}
	outbound.Header = req.Header.Clone()
	for _, h := range hopHeaders {
		outbound.Header.Del(h)
	}

	upstreamResp, err := p.Client.Do(outbound)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: %w", target.Redacted(), err)
	}
	defer upstreamResp.Body.Close()

	respBody, err := io.ReadAll(upstreamResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	resp := &Response{
		Status: upstreamResp.StatusCode,
		Header: upstreamResp.Header.Clone(),
		Body:   respBody,
	}
	for _, h := range hopHeaders {
		resp.Header.Del(h)
	}
	resp.Header.Del("Content-Length")

	if resp.OK() && req.Method == http.MethodGet && p.Bucket != nil {
		p.writeBack(ctx, req.Key(), resp)
	}
	return resp, nil
}

func (p *NetworkProvider) writeBack(ctx context.Context, key string, resp *Response) {
	p.writeBacks.Add(1)
	go func() {
		defer p.writeBacks.Done()

		putCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		if err := p.Bucket.Put(putCtx, key, resp); err != nil {
			p.Logger.WithError(err).WithField("key", key).Warn("NetworkProvider.writeBack.failed")
		}
	}()
}

// Wait blocks until every pending cache write-back has finished.
func (p *NetworkProvider) Wait() {
	p.writeBacks.Wait()
}
