// Package oauth1 signs requests with OAuth 1.0a HMAC-SHA1, the scheme the
// Instapaper API requires. It is intentionally minimal and dependency-free.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Token is an OAuth 1.0a token + secret pair.
type Token struct {
	Key    string
	Secret string
}

type Signer struct {
	ConsumerKey    string
	ConsumerSecret string
	Now            func() time.Time
}

func NewSigner(consumerKey, consumerSecret string) *Signer {
	return &Signer{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Now:            time.Now,
	}
}

// AuthorizationHeader builds the value for the HTTP Authorization header
// for a signed request. body holds the form parameters of an
// application/x-www-form-urlencoded POST, which must be part of the
// signature base string. token is nil for the xAuth access-token request.
func (s *Signer) AuthorizationHeader(method, rawURL string, body url.Values, token *Token) (string, error) {
	if s.ConsumerKey == "" || s.ConsumerSecret == "" {
		return "", errors.New("oauth1: missing consumer credentials")
	}
	nonce, err := nonce()
	if err != nil {
		return "", err
	}

	oauth := map[string]string{
		"oauth_consumer_key":     s.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        fmt.Sprintf("%d", s.Now().Unix()),
		"oauth_version":          "1.0",
	}
	if token != nil && token.Key != "" {
		oauth["oauth_token"] = token.Key
	}

	baseURL, err := baseStringURL(rawURL)
	if err != nil {
		return "", err
	}
	base := strings.ToUpper(method) + "&" + escape(baseURL) + "&" + escape(paramString(oauth, body))

	key := escape(s.ConsumerSecret) + "&"
	if token != nil {
		key += escape(token.Secret)
	}
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauth["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// Deterministic header ordering for easier debugging.
	keys := make([]string, 0, len(oauth))
	for k := range oauth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"=\""+escape(oauth[k])+"\"")
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}

// paramString normalizes oauth and body parameters per the OAuth 1.0
// signature rules: escape first, then sort by key (value breaks ties).
func paramString(oauth map[string]string, body url.Values) string {
	type kv struct{ k, v string }
	pairs := make([]kv, 0, len(oauth)+len(body))
	for k, v := range oauth {
		pairs = append(pairs, kv{escape(k), escape(v)})
	}
	for k, vs := range body {
		for _, v := range vs {
			pairs = append(pairs, kv{escape(k), escape(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.k+"="+p.v)
	}
	return strings.Join(parts, "&")
}

// baseStringURL strips query and fragment and lowercases scheme and host,
// per the OAuth 1.0 base-string URL rules.
func baseStringURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("oauth1: invalid URL: %s", rawURL)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path, nil
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// escape encodes per RFC3986 with unreserved ALPHA / DIGIT / "-" / "." /
// "_" / "~", the only encoding valid inside signature base strings.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
