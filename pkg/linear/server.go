package linear

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetClientFn returns the Linear client a handler should use for the
// current request. Injected rather than held globally so tests can
// substitute a mocked endpoint.
type GetClientFn func(context.Context) (*Client, error)

// MarshalledTextResult marshals v and wraps it in a text result. A nil
// pointer marshals to "null", which is how "not found" reads surface.
func MarshalledTextResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to marshal text result to json", err)
	}
	return mcp.NewToolResultText(string(data))
}

// ToBoolPtr converts a bool to a *bool pointer, for tool annotations.
func ToBoolPtr(b bool) *bool {
	return &b
}

// RequiredParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request.
// 2. Checks if the parameter is of the expected type.
// 3. Checks if the parameter is not empty, i.e: non-zero value
func RequiredParam[T comparable](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	args := r.GetArguments()
	if _, ok := args[p]; !ok {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	value, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T", p, zero)
	}

	if value == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	return value, nil
}

// RequiredInt is a helper function that can be used to fetch a requested parameter from the request
// as an int.
func RequiredInt(r mcp.CallToolRequest, p string) (int, error) {
	v, err := RequiredParam[float64](r, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, it checks if the parameter is of the expected type and returns it
func OptionalParam[T any](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	args := r.GetArguments()
	if _, ok := args[p]; !ok {
		return zero, nil
	}

	value, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, args[p])
	}

	return value, nil
}

// OptionalParamOK is like OptionalParam but also reports whether the
// parameter was supplied at all. Update tools need the distinction: a
// supplied empty value clears a field, an absent one leaves it untouched.
func OptionalParamOK[T any](r mcp.CallToolRequest, p string) (value T, ok bool, err error) {
	args := r.GetArguments()
	raw, exists := args[p]
	if !exists {
		return
	}

	value, ok = raw.(T)
	if !ok {
		err = fmt.Errorf("parameter %s is not of type %T, is %T", p, value, raw)
		return
	}

	ok = true
	return
}

// OptionalIntParam is a helper function that can be used to fetch a requested parameter from the request
// as an int, returning zero when absent.
func OptionalIntParam(r mcp.CallToolRequest, p string) (int, error) {
	v, err := OptionalParam[float64](r, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalIntParamWithDefault is similar to OptionalIntParam, but it also
// takes a default value returned when the parameter is absent or zero.
func OptionalIntParamWithDefault(r mcp.CallToolRequest, p string, d int) (int, error) {
	v, err := OptionalIntParam(r, p)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return d, nil
	}
	return v, nil
}

// OptionalStringArrayParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, iterates the elements and checks each is a string
func OptionalStringArrayParam(r mcp.CallToolRequest, p string) ([]string, error) {
	args := r.GetArguments()
	if _, ok := args[p]; !ok {
		return []string{}, nil
	}

	switch v := args[p].(type) {
	case []string:
		return v, nil
	case []any:
		strSlice := make([]string, len(v))
		for i, v := range v {
			s, ok := v.(string)
			if !ok {
				return []string{}, fmt.Errorf("parameter %s is not of type string, is %T", p, v)
			}
			strSlice[i] = s
		}
		return strSlice, nil
	default:
		return []string{}, fmt.Errorf("parameter %s could not be coerced to []string, is %T", p, args[p])
	}
}

// RequiredStringArrayParam is like OptionalStringArrayParam but fails when
// the parameter is absent or empty.
func RequiredStringArrayParam(r mcp.CallToolRequest, p string) ([]string, error) {
	args := r.GetArguments()
	if _, ok := args[p]; !ok {
		return nil, fmt.Errorf("missing required parameter: %s", p)
	}
	v, err := OptionalStringArrayParam(r, p)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("missing required parameter: %s", p)
	}
	return v, nil
}
