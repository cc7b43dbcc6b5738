package domain

import "testing"

func TestRankOrdering(t *testing.T) {
	if !(RoleAdmin.Rank() > RoleManager.Rank() &&
		RoleManager.Rank() > RoleUser.Rank() &&
		RoleUser.Rank() > RoleViewer.Rank() &&
		RoleViewer.Rank() > Role("unknown").Rank()) {
		t.Fatalf("rank order violated: admin=%d manager=%d user=%d viewer=%d unknown=%d",
			RoleAdmin.Rank(), RoleManager.Rank(), RoleUser.Rank(), RoleViewer.Rank(), Role("unknown").Rank())
	}
}

func TestDominates(t *testing.T) {
	if !Dominates(RoleAdmin, RoleViewer) {
		t.Fatal("admin should dominate viewer")
	}
	if Dominates(RoleViewer, RoleAdmin) {
		t.Fatal("viewer should not dominate admin")
	}
	if !Dominates(RoleManager, RoleManager) {
		t.Fatal("a role should dominate itself")
	}
}

func TestSatisfiesIsExactMembership(t *testing.T) {
	if Satisfies(RoleManager, RoleAdmin, RoleUser) {
		t.Fatal("manager is not a member of {admin, user}; membership must not fall back to rank")
	}
	if !Satisfies(RoleUser, RoleAdmin, RoleUser) {
		t.Fatal("user is a member of {admin, user}")
	}
	if Satisfies(RoleAdmin) {
		t.Fatal("empty allow-list admits nobody")
	}
}

func TestValid(t *testing.T) {
	for _, role := range Roles() {
		if !role.Valid() {
			t.Fatalf("%s should be valid", role)
		}
	}
	if Role("citizen").Valid() {
		t.Fatal("unknown role should be invalid")
	}
}
