// Package transport is the console's HTTP client for the admin API.
//
// Every request goes to the configured base URL joined with /api, carries
// JSON bodies and relies on cookie credentials held in an http.CookieJar.
// Responses wrapped in a {success, message, data} envelope are unwrapped
// one level before decoding. Non-2xx replies and transport failures are
// normalized to *RequestError values whose messages are fixed and whose
// kinds can be matched with errors.Is (ErrNotFound, ErrTimeout, ...).
//
// A 401 on an ordinary request is handed to an authrefresh.Coordinator,
// which refreshes the session once and replays the request.
package transport
