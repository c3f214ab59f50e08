package domain

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field name to a human readable reason. A nil or empty
// FieldErrors means the input is valid.
type FieldErrors map[string]string

func (f FieldErrors) add(field, reason string) FieldErrors {
	if f == nil {
		f = FieldErrors{}
	}
	if _, ok := f[field]; !ok {
		f[field] = reason
	}
	return f
}

// OK reports whether no field failed.
func (f FieldErrors) OK() bool { return len(f) == 0 }

const (
	MaxNameLength     = 100
	MaxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks an already normalized email address.
func ValidateEmail(email string) FieldErrors {
	var errs FieldErrors
	switch {
	case email == "":
		errs = errs.add("email", "Email is required")
	case !emailPattern.MatchString(email):
		errs = errs.add("email", "Please provide a valid email")
	}
	return errs
}

// PasswordPolicy is the configurable minimum a new password must meet.
type PasswordPolicy struct {
	MinLength int
}

// ValidatePassword checks password against the policy.
func ValidatePassword(password string, policy PasswordPolicy) FieldErrors {
	var errs FieldErrors
	n := utf8.RuneCountInString(password)
	switch {
	case password == "":
		errs = errs.add("password", "Password is required")
	case n < policy.MinLength:
		errs = errs.add("password", "Password must be at least "+strconv.Itoa(policy.MinLength)+" characters")
	case n > MaxPasswordLength:
		errs = errs.add("password", "Password must be at most "+strconv.Itoa(MaxPasswordLength)+" characters")
	}
	return errs
}

// ValidateName checks an admin display name. name must already be trimmed.
func ValidateName(name string) FieldErrors {
	var errs FieldErrors
	switch {
	case name == "":
		errs = errs.add("name", "Name is required")
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs = errs.add("name", "Name must be at most "+strconv.Itoa(MaxNameLength)+" characters")
	}
	return errs
}

// AcceptInput is what an invitee submits to create their account.
type AcceptInput struct {
	Token    string
	Name     string
	Password string
}

// Normalize trims the free text fields. Passwords are taken verbatim.
func (in AcceptInput) Normalize() AcceptInput {
	in.Token = strings.TrimSpace(in.Token)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// ValidateAcceptInput checks a normalized AcceptInput.
func ValidateAcceptInput(in AcceptInput, policy PasswordPolicy) FieldErrors {
	var errs FieldErrors
	if in.Token == "" {
		errs = errs.add("token", "Invite token is required")
	}
	for k, v := range ValidateName(in.Name) {
		errs = errs.add(k, v)
	}
	for k, v := range ValidatePassword(in.Password, policy) {
		errs = errs.add(k, v)
	}
	return errs
}

// RequestInput is the public lead submission.
type RequestInput struct {
	Name          string
	Phone         string
	StoreURL      string
	MonthlySalary string
}

// Normalize trims every field.
func (in RequestInput) Normalize() RequestInput {
	return RequestInput{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		StoreURL:      strings.TrimSpace(in.StoreURL),
		MonthlySalary: strings.TrimSpace(in.MonthlySalary),
	}
}

// ValidateRequestInput checks a normalized RequestInput; every field is
// required.
func ValidateRequestInput(in RequestInput) FieldErrors {
	var errs FieldErrors
	if in.Name == "" {
		errs = errs.add("name", "Name is required")
	}
	if in.Phone == "" {
		errs = errs.add("phone", "Phone number is required")
	}
	if in.StoreURL == "" {
		errs = errs.add("store_url", "Store URL is required")
	}
	if in.MonthlySalary == "" {
		errs = errs.add("monthly_salary", "Monthly sales is required")
	}
	return errs
}

// AdminUpdate holds the optional fields an owner may change on an admin.
type AdminUpdate struct {
	Name *string
	Role *string
}

// Normalize trims the provided fields.
func (u AdminUpdate) Normalize() AdminUpdate {
	if u.Name != nil {
		n := strings.TrimSpace(*u.Name)
		u.Name = &n
	}
	if u.Role != nil {
		r := strings.ToLower(strings.TrimSpace(*u.Role))
		u.Role = &r
	}
	return u
}

// ValidateAdminUpdate checks a normalized AdminUpdate. At least one field
// must be present.
func ValidateAdminUpdate(u AdminUpdate) FieldErrors {
	var errs FieldErrors
	if u.Name == nil && u.Role == nil {
		return errs.add("body", "Nothing to update")
	}
	if u.Name != nil {
		for k, v := range ValidateName(*u.Name) {
			errs = errs.add(k, v)
		}
	}
	if u.Role != nil && !ValidRole(*u.Role) {
		errs = errs.add("role", "Role must be one of owner, admin")
	}
	return errs
}
