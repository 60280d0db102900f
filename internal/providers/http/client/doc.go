// Package client is the outbound HTTP client shared by the recipe store and
// timer gateways.
//
// Built on go-resty/resty with sonic for JSON bodies. Every call passes a
// token-bucket limiter (golang.org/x/time/rate) and a circuit breaker from
// infrastructure/resilience. Calls are never retried: a failure surfaces once
// and the gateway maps it to a spoken fallback.
//
// Example:
//
//	c := client.NewClient(client.Options{Name: "drive", BaseURL: cfg.Drive.BaseURL})
//	resp, err := c.Do(ctx, func(req *resty.Request) (*resty.Response, error) {
//		return req.SetQueryParam("key", key).Get("/drive/v3/files")
//	})
package client
