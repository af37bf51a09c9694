package session

import (
	"fmt"
	"testing"

	"github.com/dbarbosa/libanac/internal/common"
	"github.com/stretchr/testify/require"
)

func TestDetectSignal_Matches(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single quotes",
			body: `<html><script language='javaScript'>alert('Usuario ou senha invalidos');</script></html>`,
			want: "Usuario ou senha invalidos",
		},
		{
			name: "double quotes",
			body: `<script language="javaScript">alert("Sessao expirada")</script>`,
			want: "Sessao expirada",
		},
		{
			name: "case insensitive",
			body: `<SCRIPT LANGUAGE='JAVASCRIPT'>ALERT('Erro')`,
			want: "Erro",
		},
		{
			name: "commented alert",
			body: `<script language='javaScript'> /* alert('Rascunho gravado com sucesso!') */</script>`,
			want: "Rascunho gravado com sucesso!",
		},
		{
			name: "whitespace before alert",
			body: "<script language='javaScript'>\n\t alert('Aviso')",
			want: "Aviso",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := DetectSignal([]byte(tc.body))
			require.True(t, ok)
			require.Equal(t, tc.want, msg)
		})
	}
}

func TestDetectSignal_NoMatch(t *testing.T) {
	bodies := []string{
		"",
		"<html><body>ok</body></html>",
		`<script language='javaScript'>doSomething()</script>`,
		`<script>alert('no language attribute')</script>`,
	}
	for _, body := range bodies {
		_, ok := DetectSignal([]byte(body))
		require.False(t, ok, "body %q", body)
	}
}

func TestIsSuccessSignal(t *testing.T) {
	ok := &common.RemoteError{Message: "Rascunho gravado com sucesso!"}
	require.True(t, IsSuccessSignal(ok))
	require.True(t, IsSuccessSignal(fmt.Errorf("submit: %w", ok)))

	require.False(t, IsSuccessSignal(&common.RemoteError{Message: "Sessao expirada"}))
	require.False(t, IsSuccessSignal(fmt.Errorf("plain error")))
	require.False(t, IsSuccessSignal(nil))
}
