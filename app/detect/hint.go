package detect

import "net/http"

// HintHeader is the client hint carrying the browser color scheme preference.
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// Hint is the color scheme client hint of a request. It is a snapshot, changes arrive with the next request.
type Hint string

// HintSignal returns the client hint of the request.
func HintSignal(r *http.Request) Hint {
	return Hint(r.Header.Get(HintHeader))
}

// PrefersDark parses the hint, ErrUndetected if it is absent or unknown.
func (h Hint) PrefersDark() (bool, error) {
	dark, ok := parseScheme(string(h))
	if !ok {
		return false, ErrUndetected
	}
	return dark, nil
}
