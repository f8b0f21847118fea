package orchestrate

import "testing"

func TestPasswordStringMasksLength(t *testing.T) {
	p := NewPassword("hunter2")
	if p.String() != "Password(*******)" {
		t.Fatalf("got %q", p.String())
	}
}

func TestNoPasswordString(t *testing.T) {
	if NoPassword.String() != "Password(None)" {
		t.Fatalf("got %q", NoPassword.String())
	}
}

func TestPasswordGet(t *testing.T) {
	if _, ok := NoPassword.Get(); ok {
		t.Fatal("expected NoPassword to report unset")
	}
	value, ok := NewPassword("secret").Get()
	if !ok || value != "secret" {
		t.Fatalf("got (%q, %v)", value, ok)
	}
}
