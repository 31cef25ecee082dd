// Package metrics exposes the server's tally scope through the
// Prometheus reporter.
package metrics

import (
	"net/http"
	"time"

	"github.com/uber-go/tally/v4"
	"github.com/uber-go/tally/v4/prometheus"
)

// Scope bundles a tally root scope with the HTTP handler serving the
// scraped values.
type Scope struct {
	tally.Scope
	closer  func() error
	handler http.Handler
}

// NewScope creates a Prometheus-reported scope with the given prefix.
func NewScope(prefix string) *Scope {
	reporter := prometheus.NewReporter(prometheus.Options{})
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         prefix,
		Separator:      prometheus.DefaultSeparator,
		CachedReporter: reporter,
	}, time.Second)
	return &Scope{
		Scope:   scope,
		closer:  closer.Close,
		handler: reporter.HTTPHandler(),
	}
}

// Handler serves the scrape endpoint.
func (s *Scope) Handler() http.Handler { return s.handler }

// Close stops the reporting loop.
func (s *Scope) Close() error { return s.closer() }
