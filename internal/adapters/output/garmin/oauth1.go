package garmin

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// consumer is the OAuth1 application identity Garmin issues to the mobile app
type consumer struct {
	Key    string `json:"consumer_key"`
	Secret string `json:"consumer_secret"`
}

// oauth1Signer produces RFC 5849 HMAC-SHA1 Authorization headers
type oauth1Signer struct {
	consumer consumer
	now      func() time.Time
	nonce    func() string
}

func newOAuth1Signer(c consumer) *oauth1Signer {
	return &oauth1Signer{
		consumer: c,
		now:      time.Now,
		nonce: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// sign sets the OAuth Authorization header on req. form holds the
// application/x-www-form-urlencoded body parameters, which take part in the
// signature. token and secret may be empty for consumer-only requests.
func (s *oauth1Signer) sign(req *http.Request, form url.Values, token, secret string) {
	oauth := map[string]string{
		"oauth_consumer_key":     s.consumer.Key,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_version":          "1.0",
	}
	if token != "" {
		oauth["oauth_token"] = token
	}

	base := signatureBase(req.Method, req.URL, form, oauth)
	key := percentEncode(s.consumer.Secret) + "&" + percentEncode(secret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	oauth["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	names := make([]string, 0, len(oauth))
	for k := range oauth {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, percentEncode(k)+`="`+percentEncode(oauth[k])+`"`)
	}
	req.Header.Set("Authorization", "OAuth "+strings.Join(parts, ", "))
}

// signatureBase builds METHOD&url&params with every component percent-encoded
// and parameters sorted by name then value
func signatureBase(method string, u *url.URL, form url.Values, oauth map[string]string) string {
	type pair struct{ k, v string }
	var params []pair
	for k, vs := range u.Query() {
		for _, v := range vs {
			params = append(params, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, vs := range form {
		for _, v := range vs {
			params = append(params, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, v := range oauth {
		params = append(params, pair{percentEncode(k), percentEncode(v)})
	}
	sort.Slice(params, func(i, j int) bool {
		if params[i].k == params[j].k {
			return params[i].v < params[j].v
		}
		return params[i].k < params[j].k
	})

	joined := make([]string, len(params))
	for i, p := range params {
		joined[i] = p.k + "=" + p.v
	}

	baseURL := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + u.EscapedPath()
	return strings.ToUpper(method) + "&" + percentEncode(baseURL) + "&" + percentEncode(strings.Join(joined, "&"))
}

// percentEncode escapes everything outside the RFC 3986 unreserved set
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}
