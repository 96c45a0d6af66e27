package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-core/internal/schemas"
)

func TestPasswordValidation(t *testing.T) {
	v := GetValidator()

	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"Valid", "Valid#Pass1", true},
		{"ValidAllSymbols", "aB3!@#$%ok", true},
		{"TooShort", "aB1!xyz", false},
		{"TooLong", "aB1!abcdefghijklmnopqrstu", false},
		{"NoUppercase", "invalid#pass1", false},
		{"NoLowercase", "INVALID#PASS1", false},
		{"NoDigit", "Invalid#Pass", false},
		{"NoSpecial", "InvalidPass1", false},
		{"WrongSpecial", "Invalid?Pass1", false},
		{"NonASCII", "Välid#Pass1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate.Var(tc.password, "password_validation")
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsernameValidation(t *testing.T) {
	v := GetValidator()

	testCases := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Simple", "testUser", true},
		{"WithSeparators", "test.user-name_1", true},
		{"WithSpace", "test user", false},
		{"WithAtSign", "test@user", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate.Var(tc.username, "username_validation")
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegistrationRequestValidation(t *testing.T) {
	v := GetValidator()

	valid := schemas.RegistrationRequest{
		Username: "testUser",
		Email:    "test@example.com",
		Password: "Valid#Pass1",
	}
	assert.NoError(t, v.Validate.Struct(valid))

	missingEmail := valid
	missingEmail.Email = ""
	assert.Error(t, v.Validate.Struct(missingEmail))

	badPassword := valid
	badPassword.Password = "weak"
	assert.Error(t, v.Validate.Struct(badPassword))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", SanitizeString("plain text"))
}
