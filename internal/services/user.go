package services

import (
	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	Role     string `form:"role"`
	Email    string `form:"email"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

type CreateUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Name      string  `json:"name"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin manager user"`
	APIUserID *string `json:"api_user_id"`
}

// Create inserts a new user. An empty role falls back to the "user" default.
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = "user"
	}

	user := models.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		APIUserID: req.APIUserID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns a user by ID
func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserRequest struct {
	Name      string  `json:"name"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin manager user"`
	APIUserID *string `json:"api_user_id"`
}

// Update applies the non-empty fields of req to an existing user.
func (s *UserService) Update(id string, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.APIUserID != nil {
		user.APIUserID = req.APIUserID
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Rows still referencing the user make the delete fail
// with a foreign-key violation; dependent data must go first.
func (s *UserService) Delete(id string) error {
	return s.db.Delete(&models.User{}, "id = ?", id).Error
}

// List returns paginated users
func (s *UserService) List(req *UserListRequest) (*UserListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Email != "" {
		query = query.Where("email LIKE ?", "%"+req.Email+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}
