package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
)

// context key
type ctxKey string

const CtxClaimsKey ctxKey = "claims"

// ErrNoIdentity is the single error returned for any token that does not
// verify. Callers branch on presence of claims, never on the reason.
var ErrNoIdentity = errors.New("no identity")

// Claims wraps jwt.RegisteredClaims with the username and role of the subject.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// safer subject helper
func (c *Claims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Parses TTL such as "15m", "1h", "20s", "30" (minutes)
func parseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 15 * time.Minute, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

func GenerateToken(userID int64, username string, role models.Role, secret, ttlStr string) (string, int64, error) {
	if secret == "" {
		return "", 0, errors.New("secret not configured")
	}

	dur, err := parseTTL(ttlStr)
	if err != nil {
		return "", 0, err
	}

	now := time.Now()
	expTime := now.Add(dur)

	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expTime.Unix(), nil
}

// VerifyToken resolves a bearer credential to claims. Absent, malformed,
// badly signed and expired tokens all come back as ErrNoIdentity.
func VerifyToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	var claims Claims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrNoIdentity
	}

	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, ErrNoIdentity
	}

	return &claims, nil
}
