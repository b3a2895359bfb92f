package validatorPkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"reflect"
)

// New returns a validator that understands decimal amounts, so `gt=0` and friends
// apply to money fields.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return validate
}
