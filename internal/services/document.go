package services

import (
	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

type CreateDocumentRequest struct {
	Title    string   `json:"title" binding:"required"`
	FilePath string   `json:"file_path" binding:"required"`
	MimeType string   `json:"mime_type"`
	Keywords []string `json:"keywords"`
	OwnerID  string   `json:"owner_id" binding:"required"`
}

// Create inserts a new document.
func (s *DocumentService) Create(req *CreateDocumentRequest) (*models.Document, error) {
	doc := models.Document{
		Title:    req.Title,
		FilePath: req.FilePath,
		MimeType: req.MimeType,
		Keywords: req.Keywords,
		OwnerID:  req.OwnerID,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByID returns a document with its file metadata preloaded.
func (s *DocumentService) GetByID(id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Preload("Metadata").First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

type UpdateDocumentRequest struct {
	Title             string   `json:"title"`
	FilePath          string   `json:"file_path"`
	MimeType          string   `json:"mime_type"`
	Keywords          []string `json:"keywords"`
	OCRText           *string  `json:"ocr_text"`
	Signed            *bool    `json:"signed"`
	SignatureMetadata *string  `json:"signature_metadata"`
}

// Update applies the provided fields to a document.
func (s *DocumentService) Update(id string, req *UpdateDocumentRequest) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if req.Title != "" {
		doc.Title = req.Title
	}
	if req.FilePath != "" {
		doc.FilePath = req.FilePath
	}
	if req.MimeType != "" {
		doc.MimeType = req.MimeType
	}
	if req.Keywords != nil {
		doc.Keywords = req.Keywords
	}
	if req.OCRText != nil {
		doc.OCRText = req.OCRText
	}
	if req.Signed != nil {
		doc.Signed = *req.Signed
	}
	if req.SignatureMetadata != nil {
		doc.SignatureMetadata = req.SignatureMetadata
	}

	if err := s.db.Save(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document and everything hanging off it in one transaction.
// The foreign keys are RESTRICT, so children go first; a task still pointing
// at the document aborts the whole thing.
func (s *DocumentService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.SharedDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.FileMetadata{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Document{}, "id = ?", id).Error
	})
}

// AddVersion appends an immutable version snapshot. The version number is
// max+1 for the document, assigned inside the transaction; the composite
// unique index catches concurrent writers.
func (s *DocumentService) AddVersion(documentID, filePath, changeSummary, createdByID string) (*models.DocumentVersion, error) {
	var version models.DocumentVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current int
		if err := tx.Model(&models.DocumentVersion{}).
			Where("document_id = ?", documentID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&current).Error; err != nil {
			return err
		}

		version = models.DocumentVersion{
			DocumentID:    documentID,
			VersionNumber: current + 1,
			FilePath:      filePath,
			ChangeSummary: changeSummary,
			CreatedByID:   createdByID,
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListVersions returns a document's versions in ascending version order.
func (s *DocumentService) ListVersions(documentID string) ([]models.DocumentVersion, error) {
	var versions []models.DocumentVersion
	err := s.db.Where("document_id = ?", documentID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

// Share grants a user access to a document. An empty permission means read.
func (s *DocumentService) Share(documentID, userID, permission string) (*models.SharedDocument, error) {
	if permission == "" {
		permission = "read"
	}
	share := models.SharedDocument{
		DocumentID: documentID,
		UserID:     userID,
		Permission: permission,
	}
	if err := s.db.Create(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// Unshare revokes a user's access to a document.
func (s *DocumentService) Unshare(documentID, userID string) error {
	return s.db.Where("document_id = ? AND user_id = ?", documentID, userID).
		Delete(&models.SharedDocument{}).Error
}

// ListShares returns the share entries of a document.
func (s *DocumentService) ListShares(documentID string) ([]models.SharedDocument, error) {
	var shares []models.SharedDocument
	err := s.db.Where("document_id = ?", documentID).Find(&shares).Error
	return shares, err
}

// AddAttachment stores a supporting file record for a document.
func (s *DocumentService) AddAttachment(documentID, fileName, filePath, mimeType string, size int64) (*models.Attachment, error) {
	att := models.Attachment{
		DocumentID: documentID,
		FileName:   fileName,
		FilePath:   filePath,
		MimeType:   mimeType,
		Size:       size,
	}
	if err := s.db.Create(&att).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

// ListAttachments returns a document's attachments, newest first.
func (s *DocumentService) ListAttachments(documentID string) ([]models.Attachment, error) {
	var atts []models.Attachment
	err := s.db.Where("document_id = ?", documentID).Order("created_at DESC").Find(&atts).Error
	return atts, err
}

// SetMetadata records integrity data for a document's file. The relation is
// one-to-one: a second insert for the same document fails on the unique
// index.
func (s *DocumentService) SetMetadata(documentID string, size int64, mimeType, checksum string) (*models.FileMetadata, error) {
	meta := models.FileMetadata{
		DocumentID: documentID,
		Size:       size,
		MimeType:   mimeType,
		Checksum:   checksum,
	}
	if err := s.db.Create(&meta).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetMetadata returns the file metadata of a document.
func (s *DocumentService) GetMetadata(documentID string) (*models.FileMetadata, error) {
	var meta models.FileMetadata
	if err := s.db.First(&meta, "document_id = ?", documentID).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListForOwner returns documents owned by a user, newest first.
func (s *DocumentService) ListForOwner(ownerID string) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

// ListSharedWith returns documents another user shared with the given one.
func (s *DocumentService) ListSharedWith(userID string) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.
		Joins("JOIN shared_documents ON shared_documents.document_id = documents.id").
		Where("shared_documents.user_id = ?", userID).
		Order("documents.created_at DESC").
		Find(&docs).Error
	return docs, err
}
