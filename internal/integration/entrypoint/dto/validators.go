package dto

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/project-ledger/backend/internal/domain/entity"
)

// RegisterValidators adds the tags used in request bindings to gin's validator:
// the closed enums project_status, tx_type and tax_rate, and money for amounts.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	tags := map[string]validator.Func{
		"project_status": func(fl validator.FieldLevel) bool {
			return entity.ProjectStatus(fl.Field().String()).IsValid()
		},
		"tx_type": func(fl validator.FieldLevel) bool {
			return entity.TransactionType(fl.Field().String()).IsValid()
		},
		"tax_rate": func(fl validator.FieldLevel) bool {
			return entity.IsAllowedTaxRate(int(fl.Field().Int()))
		},
		"money": func(fl validator.FieldLevel) bool {
			amount, err := decimal.NewFromString(fl.Field().String())
			return err == nil && entity.HasMoneyScale(amount)
		},
	}

	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

// decimalValue lets tags see a decimal as its string form.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// FailedOn reports whether a binding error includes a failure of the given tag.
func FailedOn(err error, tag string) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, fieldErr := range validationErrors {
		if fieldErr.Tag() == tag {
			return true
		}
	}
	return false
}
