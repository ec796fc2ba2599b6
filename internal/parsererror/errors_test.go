package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "record parse error",
			err: &ParseError{
				Parser: "json",
				Field:  "amount",
				Value:  "abc",
				Index:  3,
				Err:    errors.New("invalid decimal"),
			},
			expected: "json: record 3: failed to parse amount='abc': invalid decimal",
		},
		{
			name: "file parse error",
			err: &ParseError{
				Parser: "yaml",
				Field:  "document",
				Value:  "",
				Index:  -1,
				Err:    errors.New("not a sequence"),
			},
			expected: "yaml: failed to parse document='': not a sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Parser: "csv", Field: "payments", Value: "cash", Index: 0, Err: originalErr}

	wrapped := fmt.Errorf("loading snapshot: %w", parseErr)
	assert.True(t, errors.Is(wrapped, originalErr))

	var target *ParseError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "payments", target.Field)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Reason: "missing critical paths", Missing: []string{"totals.income", "operational.result"}}
	assert.Equal(t, "validation failed for daily summary: missing critical paths: totals.income, operational.result", err.Error())

	err = &ValidationError{FilePath: "summary.json", Reason: "empty document"}
	assert.Equal(t, "validation failed for summary.json: empty document", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "day.xml", ExpectedFormat: ".json, .yaml, .yml or .csv", Msg: "unsupported extension"}
	assert.Equal(t, "invalid format in file 'day.xml': unsupported extension. Expected: .json, .yaml, .yml or .csv", err.Error())
}
