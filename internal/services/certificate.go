package services

import (
	"time"

	"github.com/softagon/gedhub/internal/models"
	"github.com/softagon/gedhub/internal/utils"
	"gorm.io/gorm"
)

// CertificateService persists digital certificates. Certificate passwords are
// sealed with AES-GCM under the configured secret before they touch the
// database and opened again on single-row reads.
type CertificateService struct {
	db     *gorm.DB
	secret string
}

func NewCertificateService(db *gorm.DB, secret string) *CertificateService {
	return &CertificateService{db: db, secret: secret}
}

// Add stores a certificate, sealing the password first.
func (s *CertificateService) Add(userID, filePath, password string, expiresAt *time.Time) (*models.DigitalCertificate, error) {
	sealed, err := utils.Seal(password, s.secret)
	if err != nil {
		return nil, err
	}

	cert := models.DigitalCertificate{
		UserID:    userID,
		FilePath:  filePath,
		Password:  sealed,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// Get returns a certificate with its password opened, ready for use against
// the certificate file.
func (s *CertificateService) Get(id string) (*models.DigitalCertificate, error) {
	var cert models.DigitalCertificate
	if err := s.db.First(&cert, "id = ?", id).Error; err != nil {
		return nil, err
	}

	password, err := utils.Open(cert.Password, s.secret)
	if err != nil {
		return nil, err
	}
	cert.Password = password
	return &cert, nil
}

// ListForUser returns a user's certificates with passwords left sealed.
func (s *CertificateService) ListForUser(userID string) ([]models.DigitalCertificate, error) {
	var certs []models.DigitalCertificate
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&certs).Error
	return certs, err
}

// Delete removes a certificate.
func (s *CertificateService) Delete(id string) error {
	return s.db.Delete(&models.DigitalCertificate{}, "id = ?", id).Error
}
