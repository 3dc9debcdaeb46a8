package slug_test

import (
	"testing"

	"github.com/themirzaalibaig/server-ecommerce/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Shoes", "shoes"},
		{"Running Shoes", "running-shoes"},
		{"  Running   Shoes  ", "running-shoes"},
		{"Men's T-Shirt!!", "men-s-t-shirt"},
		{"--Sale--", "sale"},
		{"100% Cotton", "100-cotton"},
		{"", ""},
		{"***", ""},
	}
	for _, c := range cases {
		if got := slug.Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeIdempotent(t *testing.T) {
	names := []string{"Running Shoes", "Men's T-Shirt!!", "déjà vu"}
	for _, n := range names {
		once := slug.Make(n)
		if twice := slug.Make(once); twice != once {
			t.Errorf("Make not idempotent: %q → %q → %q", n, once, twice)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !slug.IsValid("running-shoes") {
		t.Error("expected canonical slug to be valid")
	}
	if slug.IsValid("Running Shoes") {
		t.Error("expected raw name to be invalid")
	}
	if slug.IsValid("") {
		t.Error("expected empty string to be invalid")
	}
}
