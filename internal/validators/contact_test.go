package validators

import (
	"testing"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

func testRules(t *testing.T) Rules {
	t.Helper()
	r, err := NewRules(
		`^[^@\s]+@[^@\s]+\.[^@\s]+$`,
		`^\+?[0-9][0-9\s()-]{6,19}$`,
		`^[0-9]{6,10}$`,
		false,
		time.UTC,
	)
	if err != nil {
		t.Fatalf("NewRules: %v", err)
	}
	return r
}

func valid() Contact {
	return Contact{
		Name:  "Ana Torres",
		Email: "ana@example.com",
		Phone: "3001234567",
	}
}

func TestValidate_OK(t *testing.T) {
	r := testRules(t)

	if err := r.Validate(valid()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	c := valid()
	c.Document = "1020304050"
	c.Birthdate = "1990-04-12"
	if err := r.Validate(c); err != nil {
		t.Fatalf("Validate with optional fields: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	r := testRules(t)

	cases := []struct {
		name   string
		mutate func(*Contact)
	}{
		{"blank name", func(c *Contact) { c.Name = "   " }},
		{"missing email", func(c *Contact) { c.Email = "" }},
		{"missing phone", func(c *Contact) { c.Phone = "" }},
		{"bad email", func(c *Contact) { c.Email = "ana@@example" }},
		{"bad phone", func(c *Contact) { c.Phone = "abc" }},
	}
	for _, tc := range cases {
		c := valid()
		tc.mutate(&c)
		if err := r.Validate(c); !apperr.IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	r := testRules(t)

	c := valid()
	c.Document = "abc"
	if err := r.Validate(c); !apperr.IsValidation(err) {
		t.Fatalf("bad document: expected ValidationError, got %v", err)
	}

	c = valid()
	c.Birthdate = "12/04/1990"
	if err := r.Validate(c); !apperr.IsValidation(err) {
		t.Fatalf("bad birthdate format: expected ValidationError, got %v", err)
	}

	c = valid()
	c.Birthdate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	if err := r.Validate(c); !apperr.IsValidation(err) {
		t.Fatalf("future birthdate: expected ValidationError, got %v", err)
	}

	c = valid()
	c.Birthdate = "1850-01-01"
	if err := r.Validate(c); !apperr.IsValidation(err) {
		t.Fatalf("out-of-range birthdate: expected ValidationError, got %v", err)
	}
}

func TestNewRules_InvalidPattern(t *testing.T) {
	if _, err := NewRules(`([`, `.*`, `.*`, false, time.UTC); err == nil {
		t.Fatal("expected error for an invalid email pattern")
	}
}
