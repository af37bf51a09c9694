package session

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dbarbosa/libanac/internal/common"
	"github.com/dbarbosa/libanac/internal/logging"
)

// State is the lifecycle state of a portal session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Portal paths. All resolve against the configured base URL.
const (
	loginPath    = "/SACI/"
	passwordPath = "/SACI/Login.asp"
	logoutPath   = "/sintac/ResultadoExecutarLogout.do"
	identityPath = "/SACI/SCA/ACESSO/getSessaoLogin.asp"
)

const (
	defaultBaseURL           = "https://sistemas.anac.gov.br/"
	defaultKeepAliveInterval = 5 * time.Second
	defaultRequestTimeout    = 30 * time.Second
)

// Credentials identify the portal user. The password is mutable: a
// successful ChangePassword updates it in place.
type Credentials struct {
	Username string
	Password string
}

// Config carries construction-time settings for a Session.
type Config struct {
	// BaseURL is the portal root. Defaults to the production portal.
	BaseURL string

	// CACertPath points at the PEM bundle the portal's TLS chain verifies
	// against (the portal does not chain to the platform trust store).
	// Empty means platform default.
	CACertPath string

	// KeepAliveInterval is the cadence of the background identity probe.
	KeepAliveInterval time.Duration

	// RequestTimeout bounds every single portal request.
	RequestTimeout time.Duration

	// Transport, when set, is used instead of a client built from
	// CACertPath. A cookie jar is attached if it has none.
	Transport *http.Client

	Logger logging.Logger
	Clock  clockwork.Clock
}

// Session is the authenticated portal session. It wraps the injected HTTP
// transport and exposes only request issuance and lifecycle operations.
type Session struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	interval time.Duration
	log      logging.Logger
	clock    clockwork.Clock

	// loginMu serializes Login end to end, so concurrent expired callers
	// cannot each hand off the monitor and start one of their own.
	loginMu sync.Mutex

	mu      sync.Mutex
	state   State
	creds   Credentials
	monitor *monitor
}

// New opens an authenticated session: it logs in immediately and starts the
// keep-alive monitor. If login fails the error is returned and there is no
// session to close.
func New(ctx context.Context, cfg Config, creds Credentials) (*Session, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.KeepAliveInterval <= 0 {
		cfg.KeepAliveInterval = defaultKeepAliveInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	client := cfg.Transport
	if client == nil {
		client, err = newTransport(cfg.CACertPath)
		if err != nil {
			return nil, err
		}
	}
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client.Jar = jar
	}

	s := &Session{
		base:     base,
		http:     client,
		timeout:  cfg.RequestTimeout,
		interval: cfg.KeepAliveInterval,
		log:      cfg.Logger.With("username", creds.Username),
		clock:    cfg.Clock,
		state:    StateUnauthenticated,
		creds:    creds,
	}

	if err := s.Login(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// newTransport builds a cookie-aware HTTP client, pinning TLS verification
// to the given PEM bundle when one is configured.
func newTransport(caCertPath string) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Jar: jar}

	if caCertPath == "" {
		return client, nil
	}

	pem, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caCertPath)
	}
	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: pool},
	}
	return client, nil
}

// Username returns the credential username the session authenticates as.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Username
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Login authenticates with the stored credentials and starts a fresh
// keep-alive monitor. Any previous monitor is cancelled and waited on
// first, so two monitors never run for the same session even when several
// callers hit an expired session at once. Safe to call from the request
// path: the wait happens without holding the session lock.
func (s *Session) Login(ctx context.Context) error {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	s.mu.Lock()
	prev := s.monitor
	s.monitor = nil
	s.state = StateUnauthenticated
	creds := s.creds
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
		select {
		case <-prev.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	form := url.Values{}
	form.Set("acao", "VL")
	form.Set("txtLogin", creds.Username)
	form.Set("txtSenha", creds.Password)

	if _, err := s.do(ctx, http.MethodPost, loginPath, form); err != nil {
		s.mu.Lock()
		s.state = StateExpired
		s.mu.Unlock()
		return err
	}

	m := newMonitor()
	s.mu.Lock()
	s.state = StateAuthenticated
	s.monitor = m
	s.mu.Unlock()

	go s.keepAlive(m)

	s.log.Debug(ctx, "session authenticated")
	return nil
}

// Logout tells the portal to drop the session. The state becomes Expired no
// matter what the request did.
func (s *Session) Logout(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.state = StateExpired
		s.mu.Unlock()
	}()
	_, _ = s.do(ctx, http.MethodGet, logoutPath, nil)
}

// Close logs out unless the session is already expired, stops the monitor,
// and releases idle transport connections. It never returns an error and is
// safe to call repeatedly from any goroutine, including the keep-alive
// monitor itself.
func (s *Session) Close() error {
	s.mu.Lock()
	m := s.monitor
	wasExpired := s.state == StateExpired
	s.state = StateExpired
	s.mu.Unlock()

	if m != nil {
		m.cancel()
	}
	if !wasExpired {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.Logout(ctx)
		cancel()
	}
	s.http.CloseIdleConnections()
	return nil
}

// Do issues a request against the portal, logging in first if the session
// has expired. Relative paths resolve against the configured base URL; for
// GET requests the form encodes into the query string, otherwise it is sent
// urlencoded in the body. The response body is scanned for the portal's
// in-band alert signal and a match is returned as *common.RemoteError
// without retrying.
func (s *Session) Do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	s.mu.Lock()
	expired := s.state == StateExpired
	s.mu.Unlock()

	if expired {
		if err := s.Login(ctx); err != nil {
			return nil, err
		}
	}
	return s.do(ctx, method, path, form)
}

// Identity asks the portal who the session currently belongs to. The
// trimmed response body is the username.
func (s *Session) Identity(ctx context.Context) (string, error) {
	body, err := s.Do(ctx, http.MethodGet, identityPath, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// probe is Identity without the re-login-on-expiry step. The keep-alive
// monitor must use it: going through Do could call Login, which waits for
// the monitor itself to terminate.
func (s *Session) probe(ctx context.Context) (string, error) {
	body, err := s.do(ctx, http.MethodGet, identityPath, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// ChangePassword submits the password-change form, confirming the new
// password twice as the portal requires. The locally held credential is
// updated only after the request returns without error.
func (s *Session) ChangePassword(ctx context.Context, newPassword string) error {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	form := url.Values{}
	form.Set("acao", "SNS")
	form.Set("txtLogin", creds.Username)
	form.Set("txtSenha", newPassword)
	form.Set("txtSenhaAtual", creds.Password)
	form.Set("txtSenhaNova", newPassword)
	form.Set("txtSenhaNova2", newPassword)

	if _, err := s.Do(ctx, http.MethodPost, passwordPath, form); err != nil {
		return err
	}

	s.mu.Lock()
	s.creds.Password = newPassword
	s.mu.Unlock()
	return nil
}

// do performs a single request without touching session state. Login,
// Logout and the keep-alive probe come through here so they can never
// recurse into Login.
func (s *Session) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	u := s.base.ResolveReference(ref)

	var body io.Reader
	if form != nil {
		if method == http.MethodGet {
			q := u.Query()
			for k, vs := range form {
				for _, v := range vs {
					q.Add(k, v)
				}
			}
			u.RawQuery = q.Encode()
		} else {
			body = strings.NewReader(form.Encode())
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", s.base.String())
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	id := uuid.NewString()
	s.log.Debug(ctx, "portal request", "id", id, "method", method, "path", path)

	resp, err := s.http.Do(req)
	if err != nil {
		// Transport errors pass through unwrapped.
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "portal response", "id", id, "status", resp.StatusCode, "bytes", len(data))

	if msg, ok := DetectSignal(data); ok {
		return nil, &common.RemoteError{Message: msg}
	}
	return data, nil
}
