package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Email reports whether s has a plausible local@domain.tld shape after
// trimming. Deliberately loose: no Unicode/IDN handling.
func Email(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, dom := s[:at], s[at+1:]
	if strings.ContainsAny(local, " @") || strings.ContainsAny(dom, " @") {
		return false
	}
	dot := strings.LastIndex(dom, ".")
	return dot > 0 && dot < len(dom)-1
}

const passwordSymbols = "@$!%*?&"

// Password checks signup password strength. All failing rules are
// accumulated rather than short-circuited so the client can show every
// problem at once.
func Password(s string) (bool, []string) {
	var errs []string
	if len(s) < 8 {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower {
		errs = append(errs, "Include at least one lowercase letter")
	}
	if !upper {
		errs = append(errs, "Include at least one uppercase letter")
	}
	if !digit {
		errs = append(errs, "Include at least one number")
	}
	if !symbol {
		errs = append(errs, "Include at least one special character (@$!%*?&)")
	}
	return len(errs) == 0, errs
}
