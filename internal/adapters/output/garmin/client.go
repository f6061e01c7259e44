package garmin

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"garmin-gateway/configs"
	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/output"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure ClientAdapter implements GarminClient interface
var _ output.GarminClient = (*ClientAdapter)(nil)

const (
	defaultDomain      = "garmin.com"
	defaultConsumerURL = "https://thegarth.s3.amazonaws.com/oauth_consumer.json"

	// User agents the Garmin mobile app presents to SSO and the OAuth service
	ssoUserAgent   = "GCM-iOS-5.7.2.1"
	oauthUserAgent = "com.garmin.android.apps.connectmobile"

	// maxErrorBody bounds how much of an upstream error body ends up in messages
	maxErrorBody = 512
)

// ClientAdapter struct - Output adapter for Garmin Connect SSO and API
type ClientAdapter struct {
	httpClient  *http.Client
	timeout     time.Duration
	domain      string
	ssoBaseURL  string
	apiBaseURL  string
	consumerURL string
	now         func() time.Time

	// Consumer caching
	consumer   *consumer
	consumerMu sync.RWMutex
}

// NewClientAdapter func - Creates new Garmin Connect client adapter
func NewClientAdapter(config configs.Garmin) (*ClientAdapter, error) {
	domainName := strings.TrimSpace(config.Domain)
	if domainName == "" {
		domainName = defaultDomain
	}
	consumerURL := config.ConsumerURL
	if consumerURL == "" {
		consumerURL = defaultConsumerURL
	}

	// Zero means no client-side timeout on upstream calls
	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout < 0 {
		return nil, fmt.Errorf("%w: garmin timeout must not be negative", domain.ErrConfiguration)
	}

	adapter := &ClientAdapter{
		httpClient:  newHTTPClient(timeout, nil),
		timeout:     timeout,
		domain:      domainName,
		ssoBaseURL:  "https://sso." + domainName,
		apiBaseURL:  "https://connectapi." + domainName,
		consumerURL: consumerURL,
		now:         time.Now,
	}
	if config.ConsumerKey != "" && config.ConsumerSecret != "" {
		adapter.consumer = &consumer{Key: config.ConsumerKey, Secret: config.ConsumerSecret}
	}

	logrus.Infof("Garmin client adapter initialized for domain: %s, timeout: %v", domainName, timeout)

	return adapter, nil
}

func newHTTPClient(timeout time.Duration, jar http.CookieJar) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Login performs the SSO credential flow and exchanges the ticket for tokens
func (a *ClientAdapter) Login(ctx context.Context, email, password string, prompt domain.MFAPrompt) (output.GarminSession, error) {
	ticket, err := a.ssoLogin(ctx, email, password, prompt)
	if err != nil {
		return nil, err
	}

	c, err := a.getConsumer(ctx)
	if err != nil {
		return nil, err
	}
	oauth1, err := a.preauthorize(ctx, c, ticket)
	if err != nil {
		return nil, err
	}
	oauth2, err := a.exchange(ctx, c, oauth1)
	if err != nil {
		return nil, err
	}

	session, err := a.newSession(ctx, oauth1, oauth2)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Resume rebuilds a session from persisted tokens. An expired OAuth2 token is
// exchanged for a fresh one on the first API call.
func (a *ClientAdapter) Resume(ctx context.Context, tokens domain.TokenArtifacts) (output.GarminSession, error) {
	oauth1, oauth2, err := decodeTokens(tokens)
	if err != nil {
		return nil, err
	}
	session, err := a.newSession(ctx, oauth1, oauth2)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// getConsumer returns the OAuth1 consumer, fetching it once when not configured
func (a *ClientAdapter) getConsumer(ctx context.Context) (consumer, error) {
	// Fast path: check if consumer is already cached
	a.consumerMu.RLock()
	if a.consumer != nil {
		c := *a.consumer
		a.consumerMu.RUnlock()
		return c, nil
	}
	a.consumerMu.RUnlock()

	// Slow path: fetch and cache
	a.consumerMu.Lock()
	defer a.consumerMu.Unlock()
	if a.consumer != nil {
		return *a.consumer, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.consumerURL, nil)
	if err != nil {
		return consumer{}, fmt.Errorf("failed to create consumer request: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return consumer{}, fmt.Errorf("failed to fetch oauth consumer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return consumer{}, fmt.Errorf("failed to fetch oauth consumer: status %d", resp.StatusCode)
	}

	var c consumer
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return consumer{}, fmt.Errorf("failed to parse oauth consumer: %w", err)
	}
	if c.Key == "" || c.Secret == "" {
		return consumer{}, fmt.Errorf("oauth consumer from %s is incomplete", a.consumerURL)
	}
	a.consumer = &c

	logrus.Debugf("Fetched OAuth consumer from %s", a.consumerURL)

	return c, nil
}

// statusError reads a non-2xx response into an ErrUpstream error
func statusError(resp *http.Response, what string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%w: %s: status %d", domain.ErrUpstream, what, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s: status %d - %s", domain.ErrUpstream, what, resp.StatusCode, msg)
}
