package repo

import (
	"context"

	"github.com/cklam2/canteen/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) GetUserByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, "student_id = ?", studentID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
