package services

import (
	"errors"
	"testing"
)

func TestCreateDepartment_Tree(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)

	inst, err := svc.CreateInstitution("Prefeitura", "PMX")
	if err != nil {
		t.Fatalf("CreateInstitution() error: %v", err)
	}

	secretariat, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID: inst.ID,
		Name:          "Education Secretariat",
		IsSecretariat: true,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error: %v", err)
	}

	child, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID:       inst.ID,
		Name:                "Schools Office",
		ParentSecretariatID: &secretariat.ID,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error: %v", err)
	}

	children, err := svc.ListChildren(secretariat.ID)
	if err != nil {
		t.Fatalf("ListChildren() error: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Errorf("ListChildren() = %v, expected the schools office", children)
	}
}

func TestUpdateInstitution(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)

	inst, err := svc.CreateInstitution("Prefeitura", "PMX")
	if err != nil {
		t.Fatalf("CreateInstitution() error: %v", err)
	}

	updated, err := svc.UpdateInstitution(inst.ID, "Prefeitura Municipal", "PM")
	if err != nil {
		t.Fatalf("UpdateInstitution() error: %v", err)
	}
	if updated.Name != "Prefeitura Municipal" || updated.Acronym != "PM" {
		t.Errorf("UpdateInstitution() = %q/%q, expected renamed fields", updated.Name, updated.Acronym)
	}

	got, err := svc.GetInstitution(inst.ID)
	if err != nil {
		t.Fatalf("GetInstitution() error: %v", err)
	}
	if got.Acronym != "PM" {
		t.Errorf("Acronym = %q after update, expected %q", got.Acronym, "PM")
	}
}

func TestUpdateDepartment_SelfParentRejected(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)
	_, dept := createTestOrg(t, db)

	_, err := svc.UpdateDepartment(dept.ID, &UpdateDepartmentRequest{ParentSecretariatID: &dept.ID})
	if !errors.Is(err, ErrDepartmentCycle) {
		t.Errorf("self-parenting = %v, expected ErrDepartmentCycle", err)
	}
}

func TestUpdateDepartment_CycleRejected(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)
	inst, a := createTestOrg(t, db)

	b, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID:       inst.ID,
		Name:                "B",
		ParentSecretariatID: &a.ID,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error: %v", err)
	}
	c, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID:       inst.ID,
		Name:                "C",
		ParentSecretariatID: &b.ID,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error: %v", err)
	}

	// a -> b -> c; making c the parent of a closes the loop.
	_, err = svc.UpdateDepartment(a.ID, &UpdateDepartmentRequest{ParentSecretariatID: &c.ID})
	if !errors.Is(err, ErrDepartmentCycle) {
		t.Errorf("cycle a->b->c->a = %v, expected ErrDepartmentCycle", err)
	}
}

func TestUpdateDepartment_ClearParent(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)
	inst, parent := createTestOrg(t, db)

	child, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID:       inst.ID,
		Name:                "Child",
		ParentSecretariatID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error: %v", err)
	}

	updated, err := svc.UpdateDepartment(child.ID, &UpdateDepartmentRequest{ClearParent: true})
	if err != nil {
		t.Fatalf("UpdateDepartment() error: %v", err)
	}
	if updated.ParentSecretariatID != nil {
		t.Errorf("ParentSecretariatID = %v, expected nil", updated.ParentSecretariatID)
	}
}

func TestMembership(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrganizationService(db)
	_, dept := createTestOrg(t, db)
	user := createTestUser(t, db, "member@example.com")

	m, err := svc.JoinDepartment(user.ID, dept.ID, "")
	if err != nil {
		t.Fatalf("JoinDepartment() error: %v", err)
	}
	if m.Role != "member" {
		t.Errorf("Role = %q, expected %q", m.Role, "member")
	}

	// The membership pair is unique.
	if _, err := svc.JoinDepartment(user.ID, dept.ID, "head"); err == nil {
		t.Error("joining the same department twice should fail")
	}

	members, err := svc.ListMembers(dept.ID)
	if err != nil {
		t.Fatalf("ListMembers() error: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("len(members) = %d, expected 1", len(members))
	}
	if members[0].User == nil || members[0].User.Email != "member@example.com" {
		t.Error("membership should preload the user")
	}

	if err := svc.LeaveDepartment(user.ID, dept.ID); err != nil {
		t.Fatalf("LeaveDepartment() error: %v", err)
	}
	members, err = svc.ListMembers(dept.ID)
	if err != nil {
		t.Fatalf("ListMembers() error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("len(members) = %d after leave, expected 0", len(members))
	}
}
