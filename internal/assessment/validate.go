package assessment

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports one malformed or out-of-domain input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one record so the
// caller can surface them together.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "invalid assessment: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

// jsonTagName makes validator messages reference json field names, which
// is what the people editing assessment files actually see.
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Validate checks raw domains and cross-field rules. It must pass before
// any score is computed; partial scoring never proceeds past a failure.
func (a *Assessment) Validate() error {
	var errs ValidationErrors

	if err := validate.Struct(a); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validating assessment: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, ValidationError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Assessment."),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
			})
		}
	}

	errs = append(errs, a.crossFieldErrors()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (a *Assessment) crossFieldErrors() ValidationErrors {
	var errs ValidationErrors

	if tt := a.ToeTouch; tt != nil {
		if tt.DistanceCm == nil && tt.Reach == nil {
			errs = append(errs, ValidationError{
				Field:   "toe_touch",
				Message: "either distance_cm or reach must be set",
			})
		}
		if tt.DistanceCm != nil && tt.Reach != nil {
			errs = append(errs, ValidationError{
				Field:   "toe_touch",
				Message: "distance_cm and reach are mutually exclusive",
			})
		}
	}

	if fc := a.FarmersCarry; fc != nil && fc.DistanceM == 0 {
		errs = append(errs, ValidationError{
			Field:   "farmers_carry.distance_m",
			Message: "carry distance must be positive",
		})
	}

	if env := a.Environment; env != nil && env.Location == "outdoor" && env.TemperatureC == nil {
		errs = append(errs, ValidationError{
			Field:   "environment.temperature_c",
			Message: "outdoor sessions must record temperature",
		})
	}

	for test, v := range a.Overrides {
		if !knownTest(test) {
			errs = append(errs, ValidationError{
				Field:   "overrides." + string(test),
				Message: "unknown test",
			})
			continue
		}
		if v < 0 {
			errs = append(errs, ValidationError{
				Field:   "overrides." + string(test),
				Message: "override score must not be negative",
			})
		}
	}

	return errs
}

func knownTest(t TestID) bool {
	for _, known := range AllTests {
		if t == known {
			return true
		}
	}
	return false
}
