package git

import "testing"

func TestIdentityProfileIsEmpty(t *testing.T) {
	tests := []struct {
		profile IdentityProfile
		want    bool
	}{
		{IdentityProfile{}, true},
		{IdentityProfile{Name: "   ", Email: "\t"}, true},
		{IdentityProfile{Name: "Jane"}, false},
		{IdentityProfile{Email: "jane@example.com"}, false},
	}

	for _, tt := range tests {
		if got := tt.profile.IsEmpty(); got != tt.want {
			t.Errorf("IsEmpty(%+v) = %v, want %v", tt.profile, got, tt.want)
		}
	}
}

func TestIdentityProfileDisplayLabel(t *testing.T) {
	tests := []struct {
		profile IdentityProfile
		want    string
	}{
		{IdentityProfile{Name: "Jane Doe", Email: "jane@example.com"}, "Jane Doe <jane@example.com>"},
		{IdentityProfile{Name: "Jane Doe"}, "Jane Doe"},
		{IdentityProfile{Email: "jane@example.com"}, "jane@example.com"},
		{IdentityProfile{Name: "  Jane  ", Email: ""}, "Jane"},
	}

	for _, tt := range tests {
		if got := tt.profile.DisplayLabel(); got != tt.want {
			t.Errorf("DisplayLabel(%+v) = %q, want %q", tt.profile, got, tt.want)
		}
	}
}

func TestSortProfiles_CaseInsensitive(t *testing.T) {
	profiles := []IdentityProfile{
		{Name: "zoe", Email: "zoe@example.com"},
		{Name: "Amy", Email: "amy@example.com"},
		{Name: "bob", Email: "bob@example.com"},
	}
	SortProfiles(profiles)

	want := []string{"Amy", "bob", "zoe"}
	for i, p := range profiles {
		if p.Name != want[i] {
			t.Errorf("profiles[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}
