package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Service issues and verifies stateless session tokens. Verification is
// purely cryptographic: there is no server-side session store and no
// revocation, a token stays valid until its embedded expiry.
type Service struct {
	signer Signer
}

// NewService creates a token service backed by the given signer
func NewService(signer Signer) *Service {
	return &Service{signer: signer}
}

// Issue creates a signed token for the given subject, expiring ttl from now
func (s *Service) Issue(subjectID int64, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"userId": subjectID,           // The authenticated subject
		"iat":    now.Unix(),          // Issued At
		"exp":    now.Add(ttl).Unix(), // Expiry: when the token stops verifying
	}

	signedToken, err := s.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "token.Service.Issue")
	}
	return signedToken, nil
}

// Verify parses and validates a token, returning the embedded subject ID.
// Failures map onto the error taxonomy: ErrMalformedToken for unparseable
// input, ErrInvalidSignature for signature mismatches and
// ErrTokenExpired when the expiry has passed. A verified subject is not
// guaranteed to still exist; callers that care must look it up.
func (s *Service) Verify(rawToken string) (int64, error) {
	parsed, err := jwtlib.ParseWithClaims(
		rawToken,
		jwtlib.MapClaims{},
		s.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{s.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return 0, classifyVerifyError(err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return 0, apperrors.ErrMalformedToken
	}

	subject, ok := claims["userId"].(float64)
	if !ok {
		return 0, apperrors.ErrMalformedToken
	}
	return int64(subject), nil
}

func classifyVerifyError(err error) error {
	switch {
	case apperrors.Is(err, jwtlib.ErrTokenExpired):
		return apperrors.Wrapf(apperrors.ErrTokenExpired, "token.Service.Verify")
	case apperrors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return apperrors.Wrapf(apperrors.ErrInvalidSignature, "token.Service.Verify")
	case apperrors.Is(err, jwtlib.ErrTokenMalformed):
		return apperrors.Wrapf(apperrors.ErrMalformedToken, "token.Service.Verify")
	default:
		return apperrors.Wrapf(apperrors.ErrMalformedToken, "token.Service.Verify: %v", err)
	}
}
