package utils

import (
	"errors"
	"os"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"
)

// Validator bundles the struct validator, the HTML sanitizer and the
// MX-based email verifier.
type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
}

var (
	instance      *Validator
	once          sync.Once
	configuration *truemail.Configuration
	sanitizer     = bluemonday.StrictPolicy()
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         os.Getenv("VERIFIER_EMAIL"),
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: verifyEmail,
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

// SanitizeString strips any markup from a request-derived string.
func SanitizeString(value string) string {
	return sanitizer.Sanitize(value)
}

// SanitizeData strips markup from every string field of the given struct
// pointer. Password fields are left alone: escaping would silently change
// the credential before hashing.
func (v *Validator) SanitizeData(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return errNotAStructPtr
	}

	structValue := value.Elem()
	structType := structValue.Type()
	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		if field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		if strings.Contains(structType.Field(i).Name, "Password") {
			continue
		}
		field.SetString(SanitizeString(field.String()))
	}

	return nil
}

var errNotAStructPtr = errors.New("payload is not a struct pointer")

// verifyEmail checks deliverability of the address via MX lookup. Only
// consulted when EMAIL_VERIFICATION=on, since it needs outbound DNS.
func verifyEmail(email string) bool {
	if os.Getenv("EMAIL_VERIFICATION") != "on" {
		return true
	}
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *validator.Validate) {
	if err := v.RegisterValidation("username_validation", usernameValidation); err != nil {
		return
	}

	if err := v.RegisterValidation("password_validation", passwordValidation); err != nil {
		return
	}
}

func usernameValidation(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	// The pattern allows a-z, A-Z, 0-9, ., -, and _
	pattern := `^[a-zA-Z0-9.\-_]+$`
	match, err := regexp.MatchString(pattern, username)
	if err != nil {
		return false
	}

	return match
}

// passwordValidation enforces the password policy: 8 to 24 characters with
// at least one lowercase letter, one uppercase letter, one digit and one
// special character from !@#$%.
func passwordValidation(fl validator.FieldLevel) bool {
	var upperLetter, lowerLetter, number, specialChar bool

	value := fl.Field().String()
	if len(value) < 8 || len(value) > 24 {
		return false
	}

	for _, r := range value {
		if r > unicode.MaxASCII {
			return false
		}

		switch {
		case unicode.IsUpper(r):
			upperLetter = true
		case unicode.IsLower(r):
			lowerLetter = true
		case unicode.IsNumber(r):
			number = true
		case r == '!' || r == '@' || r == '#' || r == '$' || r == '%':
			specialChar = true
		}
	}

	return upperLetter && lowerLetter && number && specialChar
}
