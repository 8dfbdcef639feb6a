package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "x_y@sub.domain.org"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plain", "@no-local.com", "no-domain@", "a@b", "spaces in@mail.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "09876543210", " 9876543210 "}
	for _, m := range valid {
		if !ValidateMobile(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}

	invalid := []string{"", "12345", "1234567890", "98765432101", "abcdefghij"}
	for _, m := range invalid {
		if ValidateMobile(m) {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

func TestNormalizeMobile(t *testing.T) {
	cases := map[string]string{
		"9876543210":    "9876543210",
		"+919876543210": "9876543210",
		"09876543210":   "9876543210",
		" 9876543210 ":  "9876543210",
	}
	for in, want := range cases {
		if got := NormalizeMobile(in); got != want {
			t.Errorf("NormalizeMobile(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("abcdefgh"); !ok {
		t.Error("expected 8-char lettered password to pass")
	}
	if ok, _ := ValidatePassword("1234567890"); ok {
		t.Error("expected digits-only password to fail")
	}
	if ok, _ := ValidatePassword("ab1"); ok {
		t.Error("expected short password to fail")
	}
}
