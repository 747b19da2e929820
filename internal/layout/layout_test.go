package layout

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Shell
	}{
		{"/bg/mb-admin/offers", ShellAdmin},
		{"/en/mech-admin/offers", ShellAdmin},
		{"/en/admin-login", ShellAdmin},
		{"/bg/booking", ShellPublic},
		{"/bg", ShellPublic},
		{"/", ShellPublic},
		{"/bg/services/mb-admin", ShellAdmin},
		{"/bg/mb-administrator", ShellPublic},
	}
	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
