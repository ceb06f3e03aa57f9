// Package remote provides an HTTP client for the quote sync endpoint.
//
// # Endpoints
//
//   - GET  /quotes: the server's full quote list, {"quotes":[...]}
//   - POST /quotes: batch upsert by id, echoes the stored copies
//
// # Request Handling
//
// All requests use the caller's context, send Accept: application/json and
// User-Agent: quoter/0.1, and time out after 5 seconds. Errors are wrapped
// with what failed:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /quotes returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// The client does not retry; the syncer's poll loop owns backoff.
//
// # URL Construction
//
//   - "127.0.0.1:7489" → http://127.0.0.1:7489
//   - "https://quotes.example.com/anything" → https://quotes.example.com
package remote
