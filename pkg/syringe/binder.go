package syringe

import (
	"fmt"
	"reflect"
)

// bindArguments builds the ordered argument vector for a constructor's
// parameter types from the caller-supplied values, deferring unmatched
// parameters to the service lookup.
//
// Supplied values are matched by type compatibility, not position: each
// parameter consumes the first still-unconsumed supplied value whose
// runtime type is assignable to it, numeric widening included. Matching
// is completed for every parameter before any lookup runs, so binding
// failures are reported ahead of lookup failures.
func bindArguments(params []reflect.Type, supplied []any, lookup ServiceLookup) ([]reflect.Value, error) {
	if len(supplied) > len(params) {
		return nil, &TooManyParametersError{Expected: len(params), Received: len(supplied)}
	}

	args := make([]reflect.Value, len(params))
	consumed := make([]bool, len(supplied))
	var unmatched []int

	for i, p := range params {
		bound := false
		for j, s := range supplied {
			if consumed[j] {
				continue
			}
			if v, ok := coerce(s, p); ok {
				args[i] = v
				consumed[j] = true
				bound = true
				break
			}
		}
		if !bound {
			unmatched = append(unmatched, i)
		}
	}

	for j, ok := range consumed {
		if !ok {
			return nil, &UnexpectedParameterError{Type: reflect.TypeOf(supplied[j])}
		}
	}

	for _, i := range unmatched {
		v, err := lookup.Get(params[i])
		if err != nil {
			return nil, err
		}
		bound, ok := coerce(v, params[i])
		if !ok {
			return nil, fmt.Errorf("service lookup returned %T, not assignable to %s", v, params[i])
		}
		args[i] = bound
	}

	return args, nil
}

// coerce converts a supplied value to a parameter type if the two are
// compatible: directly assignable, or related by the numeric widening
// table. An untyped nil binds to any nilable parameter.
func coerce(value any, param reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch param.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(param), true
		}
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(param) {
		return v, true
	}
	if widens(v.Kind(), param.Kind()) {
		return v.Convert(param), true
	}
	return reflect.Value{}, false
}

// widenings is the numeric widening policy: a supplied value of the key
// kind may bind to a parameter of any listed kind. Only conversions
// that preserve every representable value are allowed; int and int64
// additionally widen to float64, matching the usual boxed-number rule.
// Booleans bind only to booleans and are covered by assignability.
var widenings = map[reflect.Kind][]reflect.Kind{
	reflect.Int8:    {reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int, reflect.Float32, reflect.Float64},
	reflect.Int16:   {reflect.Int32, reflect.Int64, reflect.Int, reflect.Float32, reflect.Float64},
	reflect.Int32:   {reflect.Int64, reflect.Int, reflect.Float64},
	reflect.Int:     {reflect.Int64, reflect.Float64},
	reflect.Int64:   {reflect.Float64},
	reflect.Uint8:   {reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int, reflect.Float32, reflect.Float64},
	reflect.Uint16:  {reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Int32, reflect.Int64, reflect.Int, reflect.Float32, reflect.Float64},
	reflect.Uint32:  {reflect.Uint64, reflect.Uint, reflect.Int64, reflect.Float64},
	reflect.Uint:    {reflect.Uint64},
	reflect.Uint64:  {},
	reflect.Float32: {reflect.Float64},
}

func widens(from, to reflect.Kind) bool {
	for _, k := range widenings[from] {
		if k == to {
			return true
		}
	}
	return false
}
