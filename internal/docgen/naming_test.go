package docgen

import "testing"

func TestVariableName(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"id"}, want: "id"},
		{path: []string{"user", "id"}, want: "userId"},
		{path: []string{"post", "id"}, want: "postId"},
		{path: []string{"user", "posts", "first"}, want: "userPostsFirst"},
		{path: []string{"User", "iD"}, want: "UserID"},
		{path: []string{"a", "_b", "c"}, want: "a_bC"},
		{path: []string{"node", "éte"}, want: "nodeÉte"},
	}
	for _, tt := range tests {
		if got := VariableName(tt.path); got != tt.want {
			t.Errorf("VariableName(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestAppendPath(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "root"

	a := appendPath(base, "a")
	b := appendPath(base, "b")

	if a[1] != "a" || b[1] != "b" {
		t.Errorf("sibling paths share storage: %v %v", a, b)
	}
}
