package casing

import "testing"

func TestSnake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"UserProfile":  "user_profile",
		"User":         "user",
		"HTTPServer":   "h_t_t_p_server",
		"already_down": "already_down",
		"":             "",
	}
	for in, want := range cases {
		if got := Snake(in); got != want {
			t.Errorf("Snake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCamel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"user_name":       "userName",
		"created_at_time": "createdAtTime",
		"plain":           "plain",
		"Upper":           "upper",
	}
	for in, want := range cases {
		if got := Camel(in); got != want {
			t.Errorf("Camel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPascal(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"user_name": "UserName",
		"user":      "User",
		"":          "",
	}
	for in, want := range cases {
		if got := Pascal(in); got != want {
			t.Errorf("Pascal(%q) = %q, want %q", in, got, want)
		}
	}
}
