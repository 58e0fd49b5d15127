package profile

import (
	"reflect"
	"testing"
)

func TestMergeOverridesOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	base := Profile{
		UserID:     1,
		TargetRole: "Backend Developer",
		FirstName:  "Ana",
		LastName:   "Souza",
		Phone:      "+5511999998888",
		Skills:     []string{"Go", "SQL"},
	}

	merged := Merge(base, Patch{FirstName: "Maria"})

	if merged.FirstName != "Maria" {
		t.Fatalf("expected first name override, got %q", merged.FirstName)
	}
	if merged.LastName != "Souza" || merged.TargetRole != "Backend Developer" || merged.Phone != "+5511999998888" {
		t.Fatalf("unsupplied fields must be preserved: %+v", merged)
	}
	if !reflect.DeepEqual(merged.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("skills must survive a patch without skills: %v", merged.Skills)
	}
}

func TestMergeLastWriteWinsPerField(t *testing.T) {
	t.Parallel()

	p := Profile{UserID: 7}
	patches := []Patch{
		{TargetRole: "Data Engineer", Skills: []string{"Python"}},
		{FirstName: "Jo"},
		{TargetRole: "Backend Developer"},
		{LastName: "Silva"},
	}

	for _, patch := range patches {
		p = Merge(p, patch)
	}

	if p.TargetRole != "Backend Developer" {
		t.Fatalf("expected last role to win, got %q", p.TargetRole)
	}
	if p.FirstName != "Jo" || p.LastName != "Silva" {
		t.Fatalf("expected interview fields to accumulate: %+v", p)
	}
	if !reflect.DeepEqual(p.Skills, []string{"Python"}) {
		t.Fatalf("skills must be kept across later patches: %v", p.Skills)
	}
}

func TestMergeSkillsNilAware(t *testing.T) {
	t.Parallel()

	base := Profile{Skills: []string{"Go"}}

	kept := Merge(base, Patch{})
	if !reflect.DeepEqual(kept.Skills, []string{"Go"}) {
		t.Fatalf("nil skills patch must preserve the stored slice: %v", kept.Skills)
	}

	cleared := Merge(base, Patch{Skills: []string{}})
	if len(cleared.Skills) != 0 {
		t.Fatalf("an explicit empty slice must replace the stored skills: %v", cleared.Skills)
	}

	replaced := Merge(base, Patch{Skills: []string{"Rust", "Kafka"}})
	if !reflect.DeepEqual(replaced.Skills, []string{"Rust", "Kafka"}) {
		t.Fatalf("unexpected skills: %v", replaced.Skills)
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		p      Profile
		expect bool
	}{
		{
			name:   "complete without phone",
			p:      Profile{FirstName: "Ana", LastName: "Souza", TargetRole: "QA Engineer"},
			expect: true,
		},
		{
			name:   "missing last name",
			p:      Profile{FirstName: "Ana", TargetRole: "QA Engineer", Phone: "+5511999998888"},
			expect: false,
		},
		{
			name:   "missing role",
			p:      Profile{FirstName: "Ana", LastName: "Souza"},
			expect: false,
		},
		{
			name:   "empty profile",
			p:      Profile{},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.p.Complete(); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestPatchIsZero(t *testing.T) {
	t.Parallel()

	if !(Patch{}).IsZero() {
		t.Fatal("empty patch must be zero")
	}
	if (Patch{Skills: []string{}}).IsZero() {
		t.Fatal("a non-nil skills slice is an update, not a zero patch")
	}
}
