package models

import "testing"

func TestBeforeCreate_GeneratesID(t *testing.T) {
	u := &User{Email: "a@example.com"}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected a generated ID")
	}

	other := &User{Email: "b@example.com"}
	if err := other.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error: %v", err)
	}
	if other.ID == u.ID {
		t.Error("two hooks generated the same ID")
	}
}

func TestBeforeCreate_KeepsExplicitID(t *testing.T) {
	const explicit = "11111111-2222-3333-4444-555555555555"
	d := &Document{ID: explicit, Title: "pinned"}
	if err := d.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() error: %v", err)
	}
	if d.ID != explicit {
		t.Errorf("ID = %q, expected the explicit value", d.ID)
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		name  string
		got   string
		table string
	}{
		{"User", User{}.TableName(), "users"},
		{"Document", Document{}.TableName(), "documents"},
		{"DocumentVersion", DocumentVersion{}.TableName(), "document_versions"},
		{"FileMetadata", FileMetadata{}.TableName(), "file_metadata"},
		{"Workflow", Workflow{}.TableName(), "workflows"},
		{"AuditLog", AuditLog{}.TableName(), "audit_logs"},
		{"Department", Department{}.TableName(), "departments"},
		{"UserDepartment", UserDepartment{}.TableName(), "user_departments"},
		{"Ticket", Ticket{}.TableName(), "tickets"},
		{"TicketStatus", TicketStatus{}.TableName(), "ticket_statuses"},
		{"TicketCustomField", TicketCustomField{}.TableName(), "ticket_custom_fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.table {
				t.Errorf("TableName() = %q, expected %q", tt.got, tt.table)
			}
		})
	}
}
