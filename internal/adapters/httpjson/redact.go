package httpjson

import (
	"net/url"
	"strings"
)

// redact oculta el parámetro key de una URL antes de loguearla o devolverla en un error.
// Si la URL no parsea se descarta la query entera.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		base, _, _ := strings.Cut(raw, "?")
		return base
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
