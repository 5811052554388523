// Package validator provides small declarative validation rules.
//
// Each exported rule constructor returns a Rule: a Check closure paired with
// a field-attributed ValidationError. Apply evaluates every rule and collects
// the failures into ValidationErrors, which implements error:
//
//	err := validator.Apply(
//		validator.RequiredMap("payload", payload),
//		validator.ValidEmail("email", email),
//		validator.MaxLenString("email", email, 320),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		details := verrs.ToMap() // field -> messages
//	}
//
// Optional fields are validated by only adding their rules when the value is
// present. Rules never mutate their inputs and hold no shared state.
package validator
