package validators

import (
	"regexp"
	"strings"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ===============================
// Contact validation
// ===============================

type Contact struct {
	Name      string
	Email     string
	Phone     string
	Document  string
	Birthdate string
}

// Rules are built from configuration; the engine hard-wires nothing here.
type Rules struct {
	Email    *regexp.Regexp
	Phone    *regexp.Regexp
	Document *regexp.Regexp

	// CheckEmailDomain enables the DNS existence check on top of the pattern.
	CheckEmailDomain bool

	Loc *time.Location
}

func NewRules(emailPattern, phonePattern, documentPattern string, checkDomain bool, loc *time.Location) (Rules, error) {
	email, err := regexp.Compile(emailPattern)
	if err != nil {
		return Rules{}, apperr.Validation("email_pattern", err.Error())
	}
	phone, err := regexp.Compile(phonePattern)
	if err != nil {
		return Rules{}, apperr.Validation("phone_pattern", err.Error())
	}
	document, err := regexp.Compile(documentPattern)
	if err != nil {
		return Rules{}, apperr.Validation("document_pattern", err.Error())
	}
	return Rules{
		Email:            email,
		Phone:            phone,
		Document:         document,
		CheckEmailDomain: checkDomain,
		Loc:              loc,
	}, nil
}

func (r Rules) Validate(c Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return apperr.Validation("email", "required")
	}
	if !r.Email.MatchString(c.Email) {
		return apperr.Validation("email", "invalid format")
	}
	if r.CheckEmailDomain && !IsEmailDomainValid(c.Email) {
		return apperr.Validation("email", "domain does not resolve")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return apperr.Validation("phone", "required")
	}
	if !r.Phone.MatchString(c.Phone) {
		return apperr.Validation("phone", "invalid format")
	}

	// Document and birthdate are optional (schema v2 fields).
	if c.Document != "" && !r.Document.MatchString(c.Document) {
		return apperr.Validation("document", "invalid format")
	}
	if c.Birthdate != "" {
		if err := r.validateBirthdate(c.Birthdate); err != nil {
			return err
		}
	}
	return nil
}

func (r Rules) validateBirthdate(value string) error {
	loc := r.Loc
	if loc == nil {
		loc = time.Local
	}
	bd, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return apperr.Validation("birthdate", "invalid date")
	}
	now := time.Now().In(loc)
	if bd.After(now) {
		return apperr.Validation("birthdate", "in the future")
	}
	if bd.Before(now.AddDate(-120, 0, 0)) {
		return apperr.Validation("birthdate", "out of range")
	}
	return nil
}
