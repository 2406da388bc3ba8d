// Package cli provides the interactive admin console.
//
// It wires configuration, the persistent session store, the admin API
// client and the per-section views, and runs a REPL on top of them.
// Typical flow: restore the saved session or ask for credentials, wait for
// the server to accept the session, then browse and act on users, posts,
// audit logs, email, AI agent conversations and analytics.
//
// App is also the router.Navigator of the API client: when a session
// refresh fails, the client navigates to /login and the REPL asks for
// credentials again before the next prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the per-section command files for details.
package cli
