package session

import (
	"context"
	"errors"
	"time"

	"lending/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/facebookgo/clock"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/golang-jwt/jwt"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidIssuer the token was issued by neither mixin nor a configured issuer
	ErrInvalidIssuer = errors.New("invalid issuer")
	// ErrTokenExpired the exp claim of the token has passed
	ErrTokenExpired = errors.New("token expired")
)

// maxCacheDuration upper bound of a cached login, tokens without exp are re-checked after it
const maxCacheDuration = 10 * time.Minute

// New new session
func New(users core.IUserStore, userz core.IUserService, capacity int, issuers []string) core.Session {
	return newSession(users, userz, capacity, issuers, clock.New())
}

func newSession(users core.IUserStore, userz core.IUserService, capacity int, issuers []string, clock clock.Clock) core.Session {
	var s core.Session = &session{
		users:   users,
		userz:   userz,
		issuers: issuers,
		clock:   clock,
		sf:      &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			clock:   clock,
			tokens:  gcache.New(capacity).LRU().Expiration(maxCacheDuration).Build(),
		}
	}

	return s
}

type claims struct {
	jwt.StandardClaims
	Scope string `json:"scp,omitempty"`
}

// parseClaims reads the claims without verifying the signature, mixin verifies the token on login
func parseClaims(accessToken string) claims {
	var claim claims
	_, _, _ = new(jwt.Parser).ParseUnverified(accessToken, &claim)
	return claim
}

// ttl how long the token stays valid as of now, maxCacheDuration if it carries no exp
func ttl(claim claims, now time.Time) time.Duration {
	if claim.ExpiresAt == 0 {
		return maxCacheDuration
	}

	d := time.Unix(claim.ExpiresAt, 0).Sub(now)
	if d > maxCacheDuration {
		d = maxCacheDuration
	}

	return d
}

type session struct {
	users   core.IUserStore
	userz   core.IUserService
	clock   clock.Clock
	sf      *singleflight.Group
	issuers []string
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	user, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		claim := parseClaims(accessToken)

		if claim.Scope != "FULL" && !govalidator.IsIn(claim.Issuer, s.issuers...) {
			return nil, ErrInvalidIssuer
		}

		if ttl(claim, s.clock.Now()) <= 0 {
			return nil, ErrTokenExpired
		}

		if jti := claim.Id; govalidator.IsUUID(jti) {
			ctx = mixin.WithRequestID(ctx, jti)
		}

		user, err := s.userz.Login(ctx, accessToken)
		if err != nil {
			return nil, err
		}

		if exists, err := s.users.Find(ctx, user.UserID); err == nil && exists.ID > 0 {
			exists.Name = user.Name
			exists.AccessToken = user.AccessToken
			user = exists
		}

		return user, nil
	})

	if err != nil {
		return nil, err
	}

	return user.(*core.User), nil
}

type cacheSession struct {
	core.Session
	clock  clock.Clock
	tokens gcache.Cache
}

// Login only caches the user id, positions are read fresh on every request.
// A cached token is dropped as soon as its exp passes.
func (s *cacheSession) Login(ctx context.Context, accessToken string) (*core.User, error) {
	d := ttl(parseClaims(accessToken), s.clock.Now())
	if d <= 0 {
		s.tokens.Remove(accessToken)
		return nil, ErrTokenExpired
	}

	if v, err := s.tokens.Get(accessToken); err == nil {
		return &core.User{UserID: v.(string), AccessToken: accessToken}, nil
	}

	user, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	_ = s.tokens.SetWithExpire(accessToken, user.UserID, d)
	return user, nil
}
