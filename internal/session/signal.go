package session

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dbarbosa/libanac/internal/common"
)

// The portal reports failures with HTTP 200 and a client-side alert script
// in the body. This pattern, with its captured message, is the only error
// channel the remote system has. Every response is scanned, text or not;
// the portal gives no reliable way to tell them apart.
var alertScript = regexp.MustCompile(`(?is)<script language=['"]javascript['"]>\s*(?:/\*)?\s*alert\(['"](.*?)['"]\)`)

// successSuffix ends the alert message the portal emits when a logbook
// draft is accepted. Submission is the one caller allowed to treat a
// matched signal as success; everyone else treats any match as failure.
const successSuffix = "sucesso!"

// DetectSignal scans a response body for the embedded alert signal and
// returns the captured message.
func DetectSignal(body []byte) (string, bool) {
	m := alertScript.FindSubmatch(body)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// IsSuccessSignal reports whether err is a RemoteError carrying the
// portal's draft-accepted message.
func IsSuccessSignal(err error) bool {
	var re *common.RemoteError
	return errors.As(err, &re) && strings.HasSuffix(re.Message, successSuffix)
}
