package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringSlice is a []string persisted as JSON so the column works on both
// PostgreSQL and the SQLite test database.
type StringSlice []string

// Document is the central GED entity: a stored file plus its indexing and
// signature state.
type Document struct {
	ID                string      `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string      `gorm:"size:300;not null" json:"title"`
	FilePath          string      `gorm:"size:500;not null" json:"file_path"`
	MimeType          string      `gorm:"size:100" json:"mime_type"`
	Keywords          StringSlice `gorm:"type:text;serializer:json" json:"keywords"`
	OCRText           *string     `gorm:"type:text" json:"ocr_text"`
	Signed            bool        `gorm:"not null;default:false" json:"signed"`
	SignatureMetadata *string     `gorm:"type:text" json:"signature_metadata"` // JSON blob from the signer
	OwnerID           string      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner             *User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"owner,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`

	Versions    []DocumentVersion `gorm:"foreignKey:DocumentID" json:"versions,omitempty"`
	Shares      []SharedDocument  `gorm:"foreignKey:DocumentID" json:"shares,omitempty"`
	Attachments []Attachment      `gorm:"foreignKey:DocumentID" json:"attachments,omitempty"`
	Metadata    *FileMetadata     `gorm:"foreignKey:DocumentID" json:"metadata,omitempty"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DocumentVersion is an immutable snapshot of a document. VersionNumber is
// assigned by the document service (max+1 inside the insert transaction) and
// guarded by the composite unique index.
type DocumentVersion struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_document_version" json:"document_id"`
	Document      *Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:RESTRICT" json:"document,omitempty"`
	VersionNumber int       `gorm:"not null;uniqueIndex:idx_document_version" json:"version_number"`
	FilePath      string    `gorm:"size:500;not null" json:"file_path"`
	ChangeSummary string    `gorm:"type:text" json:"change_summary"`
	CreatedByID   string    `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy     *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT" json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (v *DocumentVersion) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// SharedDocument grants a user access to someone else's document.
type SharedDocument struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_share_pair" json:"document_id"`
	Document   *Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:RESTRICT" json:"document,omitempty"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_share_pair" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Permission string    `gorm:"size:20;not null;default:read" json:"permission"` // read, write
	CreatedAt  time.Time `json:"created_at"`
}

func (s *SharedDocument) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Attachment is a supporting file associated with a document.
type Attachment struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID string    `gorm:"type:uuid;not null;index" json:"document_id"`
	Document   *Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:RESTRICT" json:"document,omitempty"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FilePath   string    `gorm:"size:500;not null" json:"file_path"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Attachment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// FileMetadata holds integrity data for a document's stored file. The unique
// index on DocumentID makes the relation one-to-one.
type FileMetadata struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID string    `gorm:"type:uuid;not null;uniqueIndex" json:"document_id"`
	Document   *Document `gorm:"foreignKey:DocumentID;constraint:OnDelete:RESTRICT" json:"document,omitempty"`
	Size       int64     `gorm:"not null" json:"size"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	Checksum   string    `gorm:"size:64;not null" json:"checksum"` // SHA-256 hex of the file content
	CreatedAt  time.Time `json:"created_at"`
}

func (m *FileMetadata) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (Document) TableName() string        { return "documents" }
func (DocumentVersion) TableName() string { return "document_versions" }
func (SharedDocument) TableName() string  { return "shared_documents" }
func (Attachment) TableName() string      { return "attachments" }
func (FileMetadata) TableName() string    { return "file_metadata" }
