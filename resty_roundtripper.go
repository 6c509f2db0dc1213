package logdash

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// RestyRoundTripper wraps a resty client for use as an HTTP client.
type RestyRoundTripper struct {
	restyClient *resty.Client
}

// RoundTrip implements the RoundTripper interface, converting the request for Resty
func (r *RestyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	restyReq := r.restyClient.R().
		SetContext(req.Context()).
		SetDoNotParseResponse(true) // the long-poll client reads the raw body itself

	for k, v := range req.Header {
		restyReq.SetHeader(k, v[0])
	}

	restyReq.Method = req.Method
	restyReq.URL = req.URL.String()

	resp, err := restyReq.Send()
	if err != nil {
		return nil, err
	}

	return &http.Response{
		Status:     resp.Status(),
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.RawBody(),
		Request:    req,
	}, nil
}
