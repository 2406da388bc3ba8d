package session

import (
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

// TokenInfo is what the console can read from the access-token cookie
// without the server's key.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekAccessToken reads the access-token JWT held by jar for u. The
// signature is not verified; the result is for display only.
func PeekAccessToken(jar http.CookieJar, u *url.URL) (TokenInfo, bool) {
	if jar == nil || u == nil {
		return TokenInfo{}, false
	}
	for _, c := range jar.Cookies(u) {
		if c.Name != AccessTokenCookie {
			continue
		}
		claims := &jwt.RegisteredClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(c.Value, claims); err != nil {
			return TokenInfo{}, false
		}
		info := TokenInfo{Subject: claims.Subject}
		if claims.ExpiresAt != nil {
			info.ExpiresAt = claims.ExpiresAt.Time
		}
		return info, true
	}
	return TokenInfo{}, false
}
