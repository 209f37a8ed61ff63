// Package interceptor answers shell requests from the first provider that
// succeeds, falling back to an offline placeholder.
package interceptor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/logging"
)

type Interceptor struct {
	providers []Provider
	logger    *logrus.Logger
}

// New tries providers in the order given.
func New(logger *logrus.Logger, providers ...Provider) *Interceptor {
	return &Interceptor{providers: providers, logger: logger}
}

// Intercept never fails. Provider errors and panics are logged and the next
// provider is tried.
func (i *Interceptor) Intercept(ctx context.Context, req *Request) *Response {
	logData := logging.GetLogData(ctx)
	for _, provider := range i.providers {
		var endTimer func()
		if logData != nil {
			endTimer = logData.AddToExistingTiming("providersMs")
		}
		resp, err := i.try(ctx, provider, req)
		if endTimer != nil {
			endTimer()
		}
		if err != nil {
			i.logger.WithError(err).WithFields(logrus.Fields{
				"provider": provider.Name(),
				"url":      req.URL.String(),
			}).Debug("Interceptor.Intercept.provider failed")
			continue
		}
		if resp.OK() {
			if logData != nil {
				logData.AddData("provider", provider.Name())
			}
			return resp
		}
	}

	if logData != nil {
		logData.AddData("provider", "offline")
	}
	return Offline(req)
}

func (i *Interceptor) try(ctx context.Context, provider Provider, req *Request) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.WithField("provider", provider.Name()).Warnf("Interceptor.try.panic: %v", r)
			resp, err = nil, fmt.Errorf("provider %s panicked: %v", provider.Name(), r)
		}
	}()
	return provider.TryRespond(ctx, req)
}

// Handle serves one shell request. It is meant to be wrapped by
// logging.LoggingWrapper.
func (i *Interceptor) Handle(w http.ResponseWriter, r *http.Request, logData *logging.LogData) error {
	req, err := NewRequest(r)
	switch {
	case errors.Is(err, ErrUndecodableForm):
		logData.AddData("formError", err.Error())
	case err != nil:
		// The body could not be read at all. The cache and the network still
		// get the method and URL.
		logData.AddData("requestError", err.Error())
		req = &Request{Method: r.Method, URL: r.URL, Header: r.Header}
	}
	logData.AddData("method", req.Method)
	logData.AddData("route", req.Route())

	resp := i.Intercept(r.Context(), req)
	logData.AddData("status", resp.Status)
	return resp.Write(w)
}

func (i *Interceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.LoggingWrapper("Intercept", i.logger, i.Handle)(w, r)
}
