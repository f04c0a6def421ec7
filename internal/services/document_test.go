package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestDocumentCreate_MissingOwnerFails(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	_, err := svc.Create(&CreateDocumentRequest{
		Title:    "Orphan",
		FilePath: "/files/orphan.pdf",
		OwnerID:  "00000000-0000-0000-0000-000000000000",
	})
	if err == nil {
		t.Error("creating a document with a non-existent owner should fail")
	}
}

func TestDocumentVersions_Monotonic(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "versions@example.com")
	doc := createTestDocument(t, db, owner.ID)

	for i := 1; i <= 3; i++ {
		v, err := svc.AddVersion(doc.ID, "/files/v.pdf", "edit", owner.ID)
		if err != nil {
			t.Fatalf("AddVersion() error: %v", err)
		}
		if v.VersionNumber != i {
			t.Errorf("VersionNumber = %d, expected %d", v.VersionNumber, i)
		}
	}

	versions, err := svc.ListVersions(doc.ID)
	if err != nil {
		t.Fatalf("ListVersions() error: %v", err)
	}
	seen := map[int]bool{}
	for _, v := range versions {
		if seen[v.VersionNumber] {
			t.Errorf("duplicate version number %d", v.VersionNumber)
		}
		seen[v.VersionNumber] = true
	}
	if len(versions) != 3 {
		t.Errorf("len(versions) = %d, expected 3", len(versions))
	}
}

func TestDocumentVersions_PerDocumentNumbering(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "twodocs@example.com")
	docA := createTestDocument(t, db, owner.ID)
	docB := createTestDocument(t, db, owner.ID)

	if _, err := svc.AddVersion(docA.ID, "/a/1.pdf", "", owner.ID); err != nil {
		t.Fatalf("AddVersion() error: %v", err)
	}
	vb, err := svc.AddVersion(docB.ID, "/b/1.pdf", "", owner.ID)
	if err != nil {
		t.Fatalf("AddVersion() error: %v", err)
	}
	if vb.VersionNumber != 1 {
		t.Errorf("first version of second document = %d, expected 1", vb.VersionNumber)
	}
}

func TestFileMetadata_OneToOne(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "meta@example.com")
	doc := createTestDocument(t, db, owner.ID)

	if _, err := svc.SetMetadata(doc.ID, 1024, "application/pdf", "abc123"); err != nil {
		t.Fatalf("SetMetadata() error: %v", err)
	}
	if _, err := svc.SetMetadata(doc.ID, 2048, "application/pdf", "def456"); err == nil {
		t.Error("second metadata insert for the same document should fail")
	}

	meta, err := svc.GetMetadata(doc.ID)
	if err != nil {
		t.Fatalf("GetMetadata() error: %v", err)
	}
	if meta.Checksum != "abc123" {
		t.Errorf("Checksum = %q, expected %q", meta.Checksum, "abc123")
	}
}

func TestDocumentShare_AndSharedWith(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "sharer@example.com")
	recipient := createTestUser(t, db, "recipient@example.com")
	doc := createTestDocument(t, db, owner.ID)

	share, err := svc.Share(doc.ID, recipient.ID, "")
	if err != nil {
		t.Fatalf("Share() error: %v", err)
	}
	if share.Permission != "read" {
		t.Errorf("Permission = %q, expected %q", share.Permission, "read")
	}

	// Sharing the same pair twice fails on the unique index.
	if _, err := svc.Share(doc.ID, recipient.ID, "write"); err == nil {
		t.Error("duplicate share should fail")
	}

	docs, err := svc.ListSharedWith(recipient.ID)
	if err != nil {
		t.Fatalf("ListSharedWith() error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Errorf("ListSharedWith() = %v, expected the shared document", docs)
	}

	if err := svc.Unshare(doc.ID, recipient.ID); err != nil {
		t.Fatalf("Unshare() error: %v", err)
	}
	shares, err := svc.ListShares(doc.ID)
	if err != nil {
		t.Fatalf("ListShares() error: %v", err)
	}
	if len(shares) != 0 {
		t.Errorf("len(shares) = %d after unshare, expected 0", len(shares))
	}
}

func TestDocumentUpdate_SigningFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "signer@example.com")
	doc := createTestDocument(t, db, owner.ID)

	if doc.Signed {
		t.Error("new document should not be signed")
	}

	signed := true
	meta := `{"algorithm":"RSA-SHA256"}`
	updated, err := svc.Update(doc.ID, &UpdateDocumentRequest{Signed: &signed, SignatureMetadata: &meta})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !updated.Signed {
		t.Error("Signed should be true after update")
	}
	if updated.SignatureMetadata == nil || *updated.SignatureMetadata != meta {
		t.Errorf("SignatureMetadata not persisted, got %v", updated.SignatureMetadata)
	}
}

func TestDocumentDelete_RemovesChildren(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "deleter@example.com")
	doc := createTestDocument(t, db, owner.ID)

	if _, err := svc.AddVersion(doc.ID, "/files/v1.pdf", "", owner.ID); err != nil {
		t.Fatalf("AddVersion() error: %v", err)
	}
	if _, err := svc.SetMetadata(doc.ID, 10, "application/pdf", "sum"); err != nil {
		t.Fatalf("SetMetadata() error: %v", err)
	}
	if _, err := svc.AddAttachment(doc.ID, "a.png", "/files/a.png", "image/png", 5); err != nil {
		t.Fatalf("AddAttachment() error: %v", err)
	}

	if err := svc.Delete(doc.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	if _, err := svc.GetByID(doc.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetByID() after delete = %v, expected record not found", err)
	}
	versions, err := svc.ListVersions(doc.ID)
	if err != nil {
		t.Fatalf("ListVersions() error: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("versions survived document delete: %d", len(versions))
	}
}

func TestDocumentKeywords_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewDocumentService(db)

	owner := createTestUser(t, db, "keywords@example.com")
	doc, err := svc.Create(&CreateDocumentRequest{
		Title:    "Tagged",
		FilePath: "/files/tagged.pdf",
		OwnerID:  owner.ID,
		Keywords: []string{"contract", "2026", "legal"},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	stored, err := svc.GetByID(doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(stored.Keywords) != 3 || stored.Keywords[0] != "contract" {
		t.Errorf("Keywords = %v, expected [contract 2026 legal]", stored.Keywords)
	}
}
