// Package session manages an authenticated session against the SINTAC
// portal.
//
// # Overview
//
// The package provides:
//  1. A session state machine (see Session) that owns the credentials,
//     performs login/logout, resolves relative paths against the portal
//     base URL, and transparently re-authenticates when the remote side
//     has silently expired the session.
//  2. A background keep-alive monitor, one per authenticated session,
//     that probes the portal identity endpoint on a fixed cadence and
//     closes the session as soon as the probe stops answering with the
//     expected username.
//  3. In-band error detection (see DetectSignal): the portal answers
//     200 OK even on failure and signals errors through an alert script
//     embedded in the HTML body.
//
// # Error Handling
//
// A detected alert signal is returned as *common.RemoteError. Transport
// errors from the underlying HTTP client pass through unwrapped and are
// never retried here; the only implicit recovery is the single
// re-login-on-expiry performed by Do. Closing a session never fails.
//
// Concurrency
//
// A Session is safe for concurrent use. At most one keep-alive monitor
// runs per session: Login waits for the previous monitor to observably
// terminate before starting a replacement.
package session
