package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultSigningKey signs order vouchers. A fixed key keeps vouchers
// verifiable across the simulator and the tests driving it; nothing about
// it is secret.
const defaultSigningKey = "twin-pizza-order-voucher-key"

// OrderSigner mints the JWT voucher attached to every order confirmation.
// The real backend returns a signed receipt the frontend renders for
// verification; the simulator issues a genuine, verifiable HS256 token
// instead of an opaque placeholder string.
type OrderSigner struct {
	key []byte
}

// NewOrderSigner creates a signer with the default key.
func NewOrderSigner() *OrderSigner {
	return &OrderSigner{key: []byte(defaultSigningKey)}
}

// Sign mints a voucher for the given order and diner.
func (s *OrderSigner) Sign(orderID int64, dinerID string) (string, error) {
	claims := jwt.MapClaims{
		"iss": "twin-pizza",
		"oid": orderID,
		"iat": time.Now().Unix(),
	}
	if dinerID != "" {
		claims["sub"] = dinerID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// VerifyVoucher checks a voucher's signature and returns its claims, so
// tests can assert on what was minted.
func (s *OrderSigner) VerifyVoucher(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	return claims, nil
}
