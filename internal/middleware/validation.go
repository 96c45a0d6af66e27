package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

// ValidateAndSanitizeStruct decodes the request body into a fresh copy of
// the given prototype, validates it, and stores the result in the context
// under SanitizedPayloadKey. Policy violations on the password field map to
// InvalidPassword so the client gets the policy text, everything else maps
// to BadRequest.
func ValidateAndSanitizeStruct(prototype interface{}) gin.HandlerFunc {
	prototypeType := reflect.TypeOf(prototype).Elem()

	return func(c *gin.Context) {
		obj := reflect.New(prototypeType).Interface()

		if err := c.ShouldBindJSON(obj); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		if err := utils.GetValidator().SanitizeData(obj); err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		if err := utils.GetValidator().Validate.Struct(obj); err != nil {
			customErr := mapValidationError(err)
			status := http.StatusBadRequest
			if customErr == schemas.MissingFields {
				status = http.StatusUnprocessableEntity
			}
			utils.WriteAndLogError(c, customErr, status, err)
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}

func mapValidationError(err error) *schemas.CustomError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return schemas.BadRequest
	}

	for _, fieldErr := range validationErrors {
		if fieldErr.Tag() == "password_validation" {
			return schemas.InvalidPassword
		}
		if fieldErr.Tag() == "required" {
			return schemas.MissingFields
		}
	}

	return schemas.BadRequest
}
