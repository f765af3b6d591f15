package jwt

import (
	"errors"
	"fmt"
	"time"

	"Potluck-Backend/domain"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService verifies the identity tokens issued to signed-in users and
	// can mint them for local development.
	JWTService interface {
		GenerateTokenUser(identity domain.Identity, duration time.Duration) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetIdentityByToken(token string) (domain.Identity, error)
	}

	jwtIdentityClaim struct {
		UserID  string `json:"user_id"`
		Name    string `json:"name,omitempty"`
		Email   string `json:"email,omitempty"`
		Picture string `json:"picture,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService(secretKey string, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateTokenUser(identity domain.Identity, duration time.Duration) string {
	claims := jwtIdentityClaim{
		identity.UID,
		identity.DisplayName,
		identity.Email,
		identity.PhotoURL,
		jwt.RegisteredClaims{
			Subject:   identity.UID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Errorw("failed to sign token", "error", err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if j.secretKey == "" {
		return nil, domain.ErrJWTSecretNotSet
	}
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtIdentityClaim{}, j.parseToken)
}

func (j *jwtService) GetIdentityByToken(token string) (domain.Identity, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtIdentityClaim)
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	return domain.Identity{
		UID:         uid,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PhotoURL:    claims.Picture,
	}, nil
}
