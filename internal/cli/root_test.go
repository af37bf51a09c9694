package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/dbarbosa/libanac/internal/config"
	"github.com/dbarbosa/libanac/internal/logbook"
	"github.com/dbarbosa/libanac/internal/session"
)

type fakePortal struct {
	srv *httptest.Server

	mu         sync.Mutex
	submits    int
	lastSubmit url.Values
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()
	p := &fakePortal{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /SACI/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bem-vindo</html>"))
	})
	mux.HandleFunc("GET /sintac/ResultadoExecutarLogout.do", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>tchau</html>"))
	})
	mux.HandleFunc("GET /SACI/SCA/ACESSO/getSessaoLogin.asp", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jsilva\r\n"))
	})
	mux.HandleFunc("GET /SACI/CIV/Digital/incluir.asp", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><form><input type="hidden" name="ID_AERONAUTA" value="12345"></form></html>`))
	})
	mux.HandleFunc("GET /SACI/CIV/Digital/buscaHabilitacaoXML.asp", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<elementos><elemento>
			<cd_categoria>PRI</cd_categoria>
			<id_dominio_habilitacao>42</id_dominio_habilitacao>
			<cd_tipo>MLTE</cd_tipo>
		</elemento></elementos>`))
	})
	mux.HandleFunc("POST /SACI/CIV/Digital/manter.asp", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		p.mu.Lock()
		p.submits++
		p.lastSubmit = r.PostForm
		p.mu.Unlock()
		w.Write([]byte("<html>ok</html>"))
	})

	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

// newTestApp wires an App to the fake portal with its input scripted, the
// way piped stdin would deliver it.
func newTestApp(t *testing.T, p *fakePortal, input string) (*App, *bytes.Buffer) {
	t.Helper()

	sess, err := session.New(context.Background(), session.Config{
		BaseURL: p.srv.URL,
		Clock:   clockwork.NewFakeClock(),
	}, session.Credentials{Username: "jsilva", Password: "s3cret"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	lb, err := logbook.New(context.Background(), sess)
	require.NoError(t, err)

	var out bytes.Buffer
	return &App{
		config:  &config.Config{BaseURL: p.srv.URL},
		session: sess,
		logbook: lb,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func TestRoot_CommandsAndPromptsShareOneReader(t *testing.T) {
	p := newFakePortal(t)

	// A command line followed immediately by the lines its prompts consume;
	// nothing may be read ahead past the "add" command itself.
	input := strings.Join([]string{
		"whoami",
		"add",
		"5/1/2020", // date
		"2",        // landings
		"06",       // role
		"PT-ABC",   // registration
		"sbsp",     // departure
		"sbrj",     // destination
		"",         // remarks
		"1.5",      // day time
		"0:30",     // night time
		"",         // cross-country
		"",         // instrument
		"",         // hood
		"exit",
	}, "\n") + "\n"

	app, out := newTestApp(t, p, input)
	app.root(context.Background())

	require.Contains(t, out.String(), "jsilva (logbook id 12345)")
	require.Contains(t, out.String(), "Draft saved.")

	p.mu.Lock()
	defer p.mu.Unlock()
	require.Equal(t, 1, p.submits)
	require.Equal(t, "05/01/2020", p.lastSubmit.Get("txtDataVoo"))
	require.Equal(t, "PTABC", p.lastSubmit.Get("txtMatricula"))
}

func TestRoot_ExitsOnEndOfInput(t *testing.T) {
	p := newFakePortal(t)

	app, out := newTestApp(t, p, "whoami\n")
	app.root(context.Background())

	require.Contains(t, out.String(), "jsilva")
}
