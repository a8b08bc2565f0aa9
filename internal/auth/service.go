package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrConflict     = errors.New("conflict")     // 409
)

const tokenTTL = 12 * time.Hour

type Service struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *Service) Register(ctx context.Context, studentID, name, password string) error {
	if studentID == "" || name == "" {
		return fmt.Errorf("%w: student id and name required", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}

	if _, err := s.Repo.GetUserByStudentID(ctx, studentID); err == nil {
		return fmt.Errorf("%w: student %s already registered", ErrConflict, studentID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.Repo.CreateUser(ctx, &models.User{
		StudentID:    studentID,
		Name:         name,
		PasswordHash: hash,
		Role:         RoleStudent,
	})
}

func (s *Service) Login(ctx context.Context, studentID, password string) (string, error) {
	if studentID == "" || password == "" {
		return "", fmt.Errorf("%w: student id and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: unknown student", ErrUnauthorized)
		}
		return "", err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	return CreateToken(s.JWTSecret, user.StudentID, user.Name, user.Role, tokenTTL)
}
