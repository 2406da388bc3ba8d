// Package services holds the console's per-feature views. Each view wraps a
// resource.Paginated store for its list and adds the feature's actions;
// every successful action re-fetches the current page.
//
// Errors from the API are returned to the caller and, for list fetches,
// also kept in the view state so the screen can show an empty list with
// the message and offer a retry.
package services
