package services

import (
	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

// maxDepartmentDepth caps the parent-chain walk; a chain longer than this is
// treated as a cycle.
const maxDepartmentDepth = 64

type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

// CreateInstitution inserts a new institution.
func (s *OrganizationService) CreateInstitution(name, acronym string) (*models.Institution, error) {
	inst := models.Institution{Name: name, Acronym: acronym}
	if err := s.db.Create(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetInstitution returns an institution by ID
func (s *OrganizationService) GetInstitution(id string) (*models.Institution, error) {
	var inst models.Institution
	if err := s.db.First(&inst, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

// UpdateInstitution renames an institution.
func (s *OrganizationService) UpdateInstitution(id, name, acronym string) (*models.Institution, error) {
	var inst models.Institution
	if err := s.db.First(&inst, "id = ?", id).Error; err != nil {
		return nil, err
	}

	inst.Name = name
	inst.Acronym = acronym
	if err := s.db.Save(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

type CreateDepartmentRequest struct {
	InstitutionID       string  `json:"institution_id" binding:"required"`
	Name                string  `json:"name" binding:"required"`
	IsSecretariat       bool    `json:"is_secretariat"`
	ParentSecretariatID *string `json:"parent_secretariat_id"`
}

// CreateDepartment inserts a department, refusing a parent chain that loops.
func (s *OrganizationService) CreateDepartment(req *CreateDepartmentRequest) (*models.Department, error) {
	dept := models.Department{
		InstitutionID:       req.InstitutionID,
		Name:                req.Name,
		IsSecretariat:       req.IsSecretariat,
		ParentSecretariatID: req.ParentSecretariatID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkParentChain(tx, dept.ID, req.ParentSecretariatID); err != nil {
			return err
		}
		return tx.Create(&dept).Error
	})
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// GetDepartment returns a department by ID
func (s *OrganizationService) GetDepartment(id string) (*models.Department, error) {
	var dept models.Department
	if err := s.db.First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

type UpdateDepartmentRequest struct {
	Name                string  `json:"name"`
	IsSecretariat       *bool   `json:"is_secretariat"`
	ParentSecretariatID *string `json:"parent_secretariat_id"`
	ClearParent         bool    `json:"clear_parent"`
}

// UpdateDepartment applies changes to a department. Re-parenting runs the
// cycle check against the proposed parent before anything is written.
func (s *OrganizationService) UpdateDepartment(id string, req *UpdateDepartmentRequest) (*models.Department, error) {
	var dept models.Department
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dept, "id = ?", id).Error; err != nil {
			return err
		}

		if req.Name != "" {
			dept.Name = req.Name
		}
		if req.IsSecretariat != nil {
			dept.IsSecretariat = *req.IsSecretariat
		}
		if req.ClearParent {
			dept.ParentSecretariatID = nil
		} else if req.ParentSecretariatID != nil {
			dept.ParentSecretariatID = req.ParentSecretariatID
		}

		if err := s.checkParentChain(tx, dept.ID, dept.ParentSecretariatID); err != nil {
			return err
		}
		return tx.Save(&dept).Error
	})
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// checkParentChain walks up from parentID and fails with ErrDepartmentCycle
// if it meets selfID or runs past the depth cap. The adjacency schema cannot
// express this constraint, so the access layer owns it.
func (s *OrganizationService) checkParentChain(tx *gorm.DB, selfID string, parentID *string) error {
	seen := 0
	current := parentID
	for current != nil {
		if selfID != "" && *current == selfID {
			return ErrDepartmentCycle
		}
		seen++
		if seen > maxDepartmentDepth {
			return ErrDepartmentCycle
		}

		var parent models.Department
		if err := tx.Select("id", "parent_secretariat_id").First(&parent, "id = ?", *current).Error; err != nil {
			return err
		}
		current = parent.ParentSecretariatID
	}
	return nil
}

// ListChildren returns the departments directly under a secretariat.
func (s *OrganizationService) ListChildren(parentID string) ([]models.Department, error) {
	var children []models.Department
	err := s.db.Where("parent_secretariat_id = ?", parentID).Order("name ASC").Find(&children).Error
	return children, err
}

// ListDepartments returns every department of an institution.
func (s *OrganizationService) ListDepartments(institutionID string) ([]models.Department, error) {
	var depts []models.Department
	err := s.db.Where("institution_id = ?", institutionID).Order("name ASC").Find(&depts).Error
	return depts, err
}

// JoinDepartment adds a user to a department. An empty role means member.
// The membership pair is unique; joining twice fails on the index.
func (s *OrganizationService) JoinDepartment(userID, departmentID, role string) (*models.UserDepartment, error) {
	if role == "" {
		role = "member"
	}
	m := models.UserDepartment{
		UserID:       userID,
		DepartmentID: departmentID,
		Role:         role,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// LeaveDepartment removes a user's membership.
func (s *OrganizationService) LeaveDepartment(userID, departmentID string) error {
	return s.db.Where("user_id = ? AND department_id = ?", userID, departmentID).
		Delete(&models.UserDepartment{}).Error
}

// ListMembers returns the memberships of a department with users preloaded.
func (s *OrganizationService) ListMembers(departmentID string) ([]models.UserDepartment, error) {
	var members []models.UserDepartment
	err := s.db.Preload("User").Where("department_id = ?", departmentID).Find(&members).Error
	return members, err
}
