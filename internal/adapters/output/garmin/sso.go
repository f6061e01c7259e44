package garmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"

	"garmin-gateway/internal/domain"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

var ticketPattern = regexp.MustCompile(`embed\?ticket=([^"]+)"`)

// ssoFlow carries the cookie jar and referrer of one login attempt
type ssoFlow struct {
	client  *http.Client
	sso     string
	embed   string
	lastURL string
	lastDoc string
}

// ssoLogin walks the embedded SSO widget and returns the service ticket
func (a *ClientAdapter) ssoLogin(ctx context.Context, email, password string, prompt domain.MFAPrompt) (string, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create cookie jar: %w", err)
	}
	flow := &ssoFlow{
		client: newHTTPClient(a.timeout, jar),
		sso:    a.ssoBaseURL + "/sso",
		embed:  a.ssoBaseURL + "/sso/embed",
	}

	embedParams := url.Values{
		"id":          {"gauth-widget"},
		"embedWidget": {"true"},
		"gauthHost":   {flow.sso},
	}
	signinParams := url.Values{
		"id":                              {"gauth-widget"},
		"embedWidget":                     {"true"},
		"gauthHost":                       {flow.embed},
		"service":                         {flow.embed},
		"source":                          {flow.embed},
		"redirectAfterAccountLoginUrl":    {flow.embed},
		"redirectAfterAccountCreationUrl": {flow.embed},
	}

	// Set cookies
	if err := flow.do(ctx, http.MethodGet, "/embed", embedParams, nil); err != nil {
		return "", err
	}

	// Get CSRF token
	if err := flow.do(ctx, http.MethodGet, "/signin", signinParams, nil); err != nil {
		return "", err
	}
	csrf, err := csrfToken(flow.lastDoc)
	if err != nil {
		return "", err
	}

	// Submit login form
	form := url.Values{
		"username": {email},
		"password": {password},
		"embed":    {"true"},
		"_csrf":    {csrf},
	}
	if err := flow.do(ctx, http.MethodPost, "/signin", signinParams, form); err != nil {
		return "", err
	}

	title := pageTitle(flow.lastDoc)
	if strings.Contains(title, "MFA") {
		if prompt == nil {
			return "", domain.ErrMFARequired
		}
		if err := flow.verifyMFA(ctx, signinParams, prompt); err != nil {
			return "", err
		}
		title = pageTitle(flow.lastDoc)
	}
	if title != "Success" {
		return "", fmt.Errorf("unexpected sso page title: %q", title)
	}

	m := ticketPattern.FindStringSubmatch(flow.lastDoc)
	if m == nil {
		return "", errors.New("sso response carries no ticket")
	}

	logrus.Debug("Garmin SSO login succeeded")

	return m[1], nil
}

func (f *ssoFlow) verifyMFA(ctx context.Context, params url.Values, prompt domain.MFAPrompt) error {
	csrf, err := csrfToken(f.lastDoc)
	if err != nil {
		return err
	}
	code, err := prompt(ctx)
	if err != nil {
		return fmt.Errorf("failed to read mfa code: %w", err)
	}
	form := url.Values{
		"mfa-code": {strings.TrimSpace(code)},
		"embed":    {"true"},
		"_csrf":    {csrf},
		"fromPage": {"setupEnterMfaCode"},
	}
	return f.do(ctx, http.MethodPost, "/verifyMFA/loginEnterMfaCode", params, form)
}

// do issues one SSO request, sending the previous page as referrer, and keeps
// the response document for scraping
func (f *ssoFlow) do(ctx context.Context, method, path string, params, form url.Values) error {
	target := f.sso + path + "?" + params.Encode()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create sso request: %w", err)
	}
	req.Header.Set("User-Agent", ssoUserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if f.lastURL != "" {
		req.Header.Set("Referer", f.lastURL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("sso %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp, "sso "+method+" "+path)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read sso response: %w", err)
	}
	f.lastURL = resp.Request.URL.String()
	f.lastDoc = string(doc)
	return nil
}

// csrfToken finds the value of the hidden _csrf input
func csrfToken(doc string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", errors.New("sso page carries no csrf token")
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "input" {
				continue
			}
			var name, value string
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "name":
					name = attr.Val
				case "value":
					value = attr.Val
				}
			}
			if name == "_csrf" && value != "" {
				return value, nil
			}
		}
	}
}

// pageTitle returns the text of the first <title> element
func pageTitle(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "title" {
				if z.Next() == html.TextToken {
					return strings.TrimSpace(string(z.Text()))
				}
				return ""
			}
		}
	}
}

// preauthorize trades the SSO ticket for an OAuth1 token
func (a *ClientAdapter) preauthorize(ctx context.Context, c consumer, ticket string) (*OAuth1Token, error) {
	query := url.Values{
		"ticket":             {ticket},
		"login-url":          {a.ssoBaseURL + "/sso/embed"},
		"accepts-mfa-tokens": {"true"},
	}
	target := a.apiBaseURL + "/oauth-service/oauth/preauthorized?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create preauthorize request: %w", err)
	}
	req.Header.Set("User-Agent", oauthUserAgent)
	newOAuth1Signer(c).sign(req, nil, "", "")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to preauthorize: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "preauthorize")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read preauthorize response: %w", err)
	}
	return parseOAuth1Token(string(body), a.domain)
}

// exchange trades the OAuth1 token for a fresh OAuth2 token
func (a *ClientAdapter) exchange(ctx context.Context, c consumer, oauth1 *OAuth1Token) (*OAuth2Token, error) {
	form := url.Values{}
	if oauth1.MFAToken != nil && *oauth1.MFAToken != "" {
		form.Set("mfa_token", *oauth1.MFAToken)
	}
	target := a.apiBaseURL + "/oauth-service/oauth/exchange/user/2.0"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange request: %w", err)
	}
	req.Header.Set("User-Agent", oauthUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	newOAuth1Signer(c).sign(req, form, oauth1.OAuthToken, oauth1.OAuthTokenSecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth1 token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "exchange")
	}

	var token OAuth2Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to parse oauth2 token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("exchange response carries no access token")
	}
	token.setExpirations(a.now())
	return &token, nil
}
