package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lac-hong-legacy/english_api/dto"

	"github.com/alphabatem/common/context"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration time.Duration
	jwtSecretKey        string
	issuer              string
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = 24 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRY_HOURS")); err == nil && hours > 0 {
		svc.AccessTokenDuration = time.Duration(hours) * time.Hour
	}

	svc.jwtSecretKey = os.Getenv("JWT_SECRET")
	if svc.jwtSecretKey == "" {
		return errors.New("JWT_SECRET is required")
	}
	svc.issuer = "english_api"
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// NewJWTService builds a standalone signer, used outside the service container.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{AccessTokenDuration: ttl, jwtSecretKey: secret, issuer: "english_api"}
}

func (svc *JWTService) VerifyJWTToken(jwtToken string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey,
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(svc.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("unsupported JWT format")
	}
	return claims, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) GenerateToken(userID, role string) (*dto.TokenPair, error) {
	accessToken, err := svc.ToJWT(userID, role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   int64(svc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *JWTService) ToJWT(userID, role string) (string, error) {
	now := time.Now()

	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    svc.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
