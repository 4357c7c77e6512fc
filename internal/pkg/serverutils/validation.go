// FILE: internal/pkg/serverutils/validation.go
package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a parsed request body.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Field '%s' failed on '%s' rule", f.Field(), f.Tag()))
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
