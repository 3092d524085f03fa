// Package api implements the HTTP surface of the soil analysis service.
//
// New(provider, opts...) returns an http.Handler that serves:
//
//	GET  /                               service banner
//	GET  /health                         liveness with a timestamp
//	POST /api/soil-analysis              analysis for an explicit location and window
//	GET  /api/soil-analysis/{lat}/{lon}  analysis with default buffer and trailing window
//	GET  /metrics                        Prometheus exposition, when a gatherer is set
//
// Failures are reported as {"detail": "..."}: 400 for malformed input and 500
// when the provider fails.
package api
