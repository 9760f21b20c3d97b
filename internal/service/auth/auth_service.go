// Package auth verifies employee credentials and issues the short-lived JWT
// the ticketing endpoints require. Kept outside the issuance core: the core
// only records the employee id this package vouches for.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/zvrva/ticketing/internal/domain"
	"github.com/zvrva/ticketing/internal/repository"
)

type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (int64, error)
}

type Service struct {
	employees repository.EmployeeRepository
	secret    []byte
	tokenTTL  time.Duration
}

func NewService(employees repository.EmployeeRepository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{employees: employees, secret: secret, tokenTTL: tokenTTL}
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	employee, err := s.employees.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      employee.ID,
		"username": employee.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken validates the signature and expiry and returns the employee id.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, domain.ErrInvalidCredentials
	}
	return int64(sub), nil
}

var _ AuthUseCase = (*Service)(nil)
