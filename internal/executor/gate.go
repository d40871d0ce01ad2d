package executor

import (
	"context"

	"clikit/internal/core"
	"clikit/internal/validate"
)

// Rule именованная проверка, которая может и нормализовать значение.
type Rule[T any] struct {
	Name     string
	Validate func(T) (T, error)
}

// ValidatorRule строит правило из validate.Validator.
func ValidatorRule[T any](name string, v validate.Validator[T]) Rule[T] {
	return Rule[T]{
		Name: name,
		Validate: func(value T) (T, error) {
			return v(value)
		},
	}
}

// Gate прогоняет правила по порядку и только потом вызывает action.
func Gate[T, R any](ctx context.Context, cc *core.CommandContext, data T, rules []Rule[T], action func(ctx context.Context, data T) (R, error)) (R, error) {
	var zero R
	value := data
	for _, rule := range rules {
		next, err := call(core.CodeValidation, "Validation failed: "+rule.Name, func() (T, error) {
			return rule.Validate(value)
		})
		if err != nil {
			cc.Logger.Error("Validation failed: " + rule.Name)
			return zero, err
		}
		value = next
	}
	cc.Logger.Success("All validations passed")
	if err := canceled(ctx); err != nil {
		return zero, err
	}
	return action(ctx, value)
}
