// Package resilience holds the fault tolerance building blocks used
// around external calls: manifest source fetches and media CDN checks.
//
// The circuitbreaker subpackage stops hammering a source that keeps
// failing; the retry subpackage retries transient failures with
// exponential backoff and jitter:
//
//	cb := circuitbreaker.New(circuitbreaker.ManifestFetchConfig())
//	_, err := cb.Execute(func() (interface{}, error) { return fetchManifest(ctx) })
//
//	err = retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//		return headCheck(ctx, imageURL)
//	})
package resilience
