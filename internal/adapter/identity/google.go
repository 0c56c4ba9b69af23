// Package identity verifies ID tokens issued by Google Sign-In.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// GoogleCertsURL publishes the keys Google signs ID tokens with.
const GoogleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

type googleClaims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	jwt.RegisteredClaims
}

// GoogleVerifier validates Google ID tokens for one OAuth client.
type GoogleVerifier struct {
	keys     *KeySet
	audience string
	now      func() time.Time
}

// NewGoogleVerifier creates a verifier accepting tokens minted for clientID.
func NewGoogleVerifier(keys *KeySet, clientID string) *GoogleVerifier {
	return &GoogleVerifier{keys: keys, audience: strings.TrimSpace(clientID), now: time.Now}
}

// Verify checks signature, audience, issuer and expiry and returns the profile.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (model.Identity, error) {
	if v.audience == "" {
		return model.Identity{}, errors.New("identity: google client id is not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	claims := &googleClaims{}
	_, err := parser.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("identity: token missing kid header")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("identity: %w", err)
	}

	if _, ok := googleIssuers[claims.Issuer]; !ok {
		return model.Identity{}, fmt.Errorf("identity: unexpected issuer %q", claims.Issuer)
	}
	if claims.Subject == "" {
		return model.Identity{}, errors.New("identity: token has no subject")
	}

	return model.Identity{
		Subject:    claims.Subject,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		Email:      claims.Email,
		Picture:    claims.Picture,
	}, nil
}
