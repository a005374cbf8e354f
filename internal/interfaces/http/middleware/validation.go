package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// SetupValidator configures gin's validator: JSON tag names in error
// messages and the attrtype tag for attribute type enums.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("attrtype", func(fl validator.FieldLevel) bool {
		_, err := taxonomy.ParseAttributeType(fl.Field().String())
		return err == nil
	})
}
