package providers

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/BaSui01/extractflow/types"
)

// For any status code and message, MapHTTPError must return a non-nil error
// carrying the original status, message and provider, and 5xx statuses must
// always be marked retryable.
func TestProperty_MapHTTPError_Total(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every status maps to a structured error", prop.ForAll(
		func(status int, msg string) bool {
			err := MapHTTPError(status, msg, "groq")
			if err == nil {
				return false
			}
			if err.HTTPStatus != status || err.Message != msg || err.Provider != "groq" {
				return false
			}
			return err.Code != ""
		},
		gen.IntRange(400, 599),
		gen.AnyString(),
	))

	properties.Property("5xx statuses are retryable", prop.ForAll(
		func(status int) bool {
			err := MapHTTPError(status, "server error", "groq")
			return err.Retryable
		},
		gen.IntRange(500, 599),
	))

	properties.Property("auth failures are never retryable", prop.ForAll(
		func(msg string) bool {
			for _, status := range []int{401, 403} {
				if MapHTTPError(status, msg, "groq").Retryable {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("4xx never maps to a config error code", prop.ForAll(
		func(status int, msg string) bool {
			err := MapHTTPError(status, msg, "groq")
			return !types.IsConfigError(err)
		},
		gen.IntRange(400, 499),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
