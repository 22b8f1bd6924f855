package access

import (
	"errors"
	"reflect"
	"testing"

	"github.com/omercouncil/budget-portal/internal/budget/types"
)

var baselineFixture = []types.BudgetLine{
	{ID: "1", Wing: "A", Dept: "X"},
	{ID: "2", Wing: "B", Dept: "X"},
	{ID: "3", Wing: "A", Dept: "Y"},
	{ID: "4", Wing: `שפ"ה`, Dept: "תברואה"},
}

func TestResolveVisibleAdmin(t *testing.T) {
	got := ResolveVisible(User{Scope: AdminScope{}}, baselineFixture)
	if !reflect.DeepEqual(got, baselineFixture) {
		t.Errorf("admin should see all rows, got %v", got)
	}
}

func TestResolveVisibleWing(t *testing.T) {
	got := ResolveVisible(User{Scope: WingScope{Wing: "A"}}, baselineFixture)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("wing A should see rows 1 and 3, got %v", got)
	}
}

func TestResolveVisibleWingNeverLeaksByDept(t *testing.T) {
	// Row 2 shares dept X with row 1 but belongs to wing B: a WING user
	// scoped to A must not see it.
	got := ResolveVisible(User{Scope: WingScope{Wing: "A"}}, baselineFixture)
	for _, line := range got {
		if line.ID == "2" {
			t.Fatal("wing-scoped user saw a row from another wing")
		}
	}
}

func TestResolveVisibleDept(t *testing.T) {
	got := ResolveVisible(User{Scope: DeptScope{Dept: "X"}}, baselineFixture)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("dept X should see rows 1 and 2, got %v", got)
	}
}

func TestResolveVisibleCanonicalizes(t *testing.T) {
	// The scope target carries a gershayim variant of the same wing name.
	got := ResolveVisible(User{Scope: WingScope{Wing: "שפ״ה"}}, baselineFixture)
	if len(got) != 1 || got[0].ID != "4" {
		t.Errorf("quote-variant scope should match row 4, got %v", got)
	}
}

func TestResolveVisibleIsPure(t *testing.T) {
	user := User{Scope: WingScope{Wing: "A"}}
	first := ResolveVisible(user, baselineFixture)
	second := ResolveVisible(user, baselineFixture)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs should yield identical output")
	}
}

func TestResolveVisibleTasks(t *testing.T) {
	tasks := []types.WorkPlanTask{
		{ID: "t1", Wing: "A", Dept: "X"},
		{ID: "t2", Wing: "B", Dept: "Z"},
	}
	got := ResolveVisibleTasks(User{Scope: WingScope{Wing: "B"}}, tasks)
	if len(got) != 1 || got[0].ID != "t2" {
		t.Errorf("wing B should see task t2 only, got %v", got)
	}
}

func TestParentWing(t *testing.T) {
	tasks := []types.WorkPlanTask{{ID: "t1", Wing: "C", Dept: "Q"}}

	if got := ParentWing(User{Scope: DeptScope{Dept: "Y"}}, baselineFixture, tasks); got != "A" {
		t.Errorf("dept Y parent wing = %q, want A", got)
	}
	// Dept only present in the work-plan dataset.
	if got := ParentWing(User{Scope: DeptScope{Dept: "Q"}}, baselineFixture, tasks); got != "C" {
		t.Errorf("dept Q parent wing = %q, want C", got)
	}
	if got := ParentWing(User{Scope: WingScope{Wing: "B"}}, baselineFixture, tasks); got != "B" {
		t.Errorf("wing scope parent wing = %q, want B", got)
	}
	if got := ParentWing(User{Scope: AdminScope{}}, baselineFixture, tasks); got != "" {
		t.Errorf("admin parent wing = %q, want empty", got)
	}
}

func TestAuthenticate(t *testing.T) {
	user, err := Authenticate("Aharony", "1234")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.Username != "aharony" {
		t.Errorf("username = %q", user.Username)
	}
	if _, ok := user.Scope.(AdminScope); !ok {
		t.Errorf("scope = %T, want AdminScope", user.Scope)
	}

	user, err = Authenticate("tavroa", "1234")
	if err != nil {
		t.Fatal(err)
	}
	dept, ok := user.Scope.(DeptScope)
	if !ok || dept.Dept != "תברואה" {
		t.Errorf("scope = %#v", user.Scope)
	}

	if _, err := Authenticate("aharony", "wrong"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("wrong password should yield ErrUnknownUser, got %v", err)
	}
	if _, err := Authenticate("nobody", "1234"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("unknown user should yield ErrUnknownUser, got %v", err)
	}
}
