package shapes

import (
	"reflect"

	"github.com/gomlx/exceptions"
	. "github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// CastAsDType casts a numeric value to the corresponding Go type for the given DType.
// If the value is a slice it will convert to a newly allocated slice of the given DType.
//
// It panics if value is not numeric (or bool), or if there is no valid conversion.
func CastAsDType(value any, dtype DType) any {
	valueOf := reflect.ValueOf(value)
	if valueOf.Kind() != reflect.Slice && valueOf.Kind() != reflect.Array {
		return castScalarAsDType(valueOf, dtype)
	}
	newTypeOf := typeForSliceDType(valueOf.Type(), dtype)
	newValueOf := reflect.MakeSlice(newTypeOf, valueOf.Len(), valueOf.Len())
	for ii := 0; ii < valueOf.Len(); ii++ {
		elem := CastAsDType(valueOf.Index(ii).Interface(), dtype)
		newValueOf.Index(ii).Set(reflect.ValueOf(elem))
	}
	return newValueOf.Interface()
}

func castScalarAsDType(valueOf reflect.Value, dtype DType) any {
	switch dtype {
	case Bool:
		if valueOf.Kind() == reflect.Bool {
			return valueOf.Bool()
		}
		return !valueOf.IsZero()
	case Float16:
		return float16.Fromfloat32(float32(scalarToFloat64(valueOf)))
	case BFloat16:
		return bfloat16.FromFloat32(float32(scalarToFloat64(valueOf)))
	}
	if valueOf.Kind() == reflect.Bool {
		one := int64(0)
		if valueOf.Bool() {
			one = 1
		}
		return reflect.ValueOf(one).Convert(dtype.GoType()).Interface()
	}
	return valueOf.Convert(dtype.GoType()).Interface()
}

func scalarToFloat64(valueOf reflect.Value) float64 {
	switch valueOf.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(valueOf.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(valueOf.Uint())
	case reflect.Float32, reflect.Float64:
		return valueOf.Float()
	case reflect.Bool:
		if valueOf.Bool() {
			return 1
		}
		return 0
	}
	exceptions.Panicf("shapes: cannot convert scalar %s to a number", valueOf.Type())
	return 0
}

func typeForSliceDType(valueType reflect.Type, dtype DType) reflect.Type {
	if valueType.Kind() != reflect.Slice && valueType.Kind() != reflect.Array {
		return dtype.GoType()
	}
	subType := typeForSliceDType(valueType.Elem(), dtype)
	return reflect.SliceOf(subType)
}
