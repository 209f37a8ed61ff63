package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jsonWebKeySet struct {
	Keys []jsonWebKey `json:"keys"`
}

// JWKSVerifier verifies RS256 id_tokens against a remote JSON Web Key Set.
// Keys are cached and refetched when a token names an unknown kid.
type JWKSVerifier struct {
	url       string
	audiences []string
	client    *http.Client
	logger    *logrus.Logger

	mutex sync.RWMutex
	keys  map[string]*rsa.PublicKey

	// MinRefreshInterval bounds how often an unknown kid may trigger a fetch.
	MinRefreshInterval time.Duration

	refreshMutex sync.Mutex
	lastRefresh  time.Time
	scheduler    *cron.Cron
}

var _ Verifier = (*JWKSVerifier)(nil)

func NewJWKSVerifier(url string, audiences []string, client *http.Client, logger *logrus.Logger) *JWKSVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &JWKSVerifier{
		url:       url,
		audiences: audiences,
		client:    client,
		logger:    logger,
		keys:      map[string]*rsa.PublicKey{},

		MinRefreshInterval: time.Minute,
	}
}

// Refresh replaces the cached key set with the one currently served at the JWKS URL.
func (v *JWKSVerifier) Refresh(ctx context.Context) error {
	v.refreshMutex.Lock()
	defer v.refreshMutex.Unlock()
	return v.refresh(ctx)
}

// refreshIfStale fetches the key set unless the last fetch was less than
// MinRefreshInterval ago.
func (v *JWKSVerifier) refreshIfStale(ctx context.Context) error {
	v.refreshMutex.Lock()
	defer v.refreshMutex.Unlock()

	if !v.lastRefresh.IsZero() && time.Since(v.lastRefresh) < v.MinRefreshInterval {
		return nil
	}
	return v.refresh(ctx)
}

// refresh must be called with refreshMutex held.
func (v *JWKSVerifier) refresh(ctx context.Context) error {
	v.lastRefresh = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var set jsonWebKeySet
	if err = json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, key := range set.Keys {
		if key.Kty != "RSA" || key.Kid == "" {
			continue
		}
		publicKey, err := key.rsaPublicKey()
		if err != nil {
			v.logger.WithError(err).WithField("kid", key.Kid).Warn("JWKSVerifier.Refresh.skipping key")
			continue
		}
		keys[key.Kid] = publicKey
	}

	v.mutex.Lock()
	v.keys = keys
	v.mutex.Unlock()

	v.logger.WithField("keys", len(keys)).Debug("JWKSVerifier.Refresh.complete")
	return nil
}

// StartRefresh refreshes the key set on the given cron schedule, e.g. "@every 6h".
func (v *JWKSVerifier) StartRefresh(spec string) error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		if err := v.Refresh(context.Background()); err != nil {
			v.logger.WithError(err).Warn("JWKSVerifier.ScheduledRefresh.failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule jwks refresh: %w", err)
	}

	v.scheduler = scheduler
	scheduler.Start()
	return nil
}

func (v *JWKSVerifier) Stop() {
	if v.scheduler != nil {
		<-v.scheduler.Stop().Done()
	}
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrInvalidKid
		}
		return v.key(ctx, kid)
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !slices.ContainsFunc(Issuers, func(issuer string) bool { return claims.VerifyIssuer(issuer, true) }) {
		return nil, ErrInvalidIssuer
	}
	if !slices.ContainsFunc(v.audiences, func(audience string) bool { return claims.VerifyAudience(audience, true) }) {
		return nil, ErrInvalidAudience
	}

	return claims, nil
}

func (v *JWKSVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mutex.RLock()
	key, ok := v.keys[kid]
	v.mutex.RUnlock()
	if ok {
		return key, nil
	}

	if err := v.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	v.mutex.RLock()
	defer v.mutex.RUnlock()
	if key, ok = v.keys[kid]; ok {
		return key, nil
	}
	return nil, ErrInvalidKid
}

func (k jsonWebKey) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() > 1<<31-1 || exponent.Sign() <= 0 {
		return nil, fmt.Errorf("exponent out of range")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(exponent.Int64()),
	}, nil
}
