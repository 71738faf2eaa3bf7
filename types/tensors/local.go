package tensors

import (
	"fmt"
	"math"
	"reflect"

	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// MultiDimensionSlice lists the Go types a Tensor can be created from with FromValue.
// There are no recursions in generics constraints definitions, so we enumerate up to
// 4 levels of slices -- FromAnyValue works with any arbitrary number.
type MultiDimensionSlice interface {
	bool | int | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 |
		[]bool | []int | []int8 | []int16 | []int32 | []int64 | []uint8 | []uint16 | []uint32 | []uint64 | []float32 | []float64 |
		[][]bool | [][]int | [][]int8 | [][]int16 | [][]int32 | [][]int64 | [][]uint8 | [][]uint16 | [][]uint32 | [][]uint64 | [][]float32 | [][]float64 |
		[][][]bool | [][][]int | [][][]int8 | [][][]int16 | [][][]int32 | [][][]int64 | [][][]uint8 | [][][]uint16 | [][][]uint32 | [][][]uint64 | [][][]float32 | [][][]float64
}

// FromShape returns a Tensor with the given shape, with the data initialized to zeros.
func FromShape(shape shapes.Shape) *Tensor {
	if !shape.Ok() {
		exceptions.Panicf("tensors.FromShape: invalid shape %s", shape)
	}
	flatV := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), shape.Size(), shape.Size())
	return &Tensor{shape: shape.Clone(), flat: flatV.Interface()}
}

// FromFlatDataAndDimensions creates a Tensor from the flat data (in row-major order)
// and the given dimensions. The DType is inferred from the data type.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Tensor {
	dtype := dtypes.FromGenericsType[T]()
	shape := shapes.Make(dtype, dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("tensors.FromFlatDataAndDimensions: data size %d does not match shape %s (size %d)",
			len(data), shape, shape.Size())
	}
	t := FromShape(shape)
	copy(t.flat.([]T), data)
	return t
}

// FromScalar creates a scalar Tensor from the given value.
func FromScalar[T dtypes.Supported](value T) *Tensor {
	return FromFlatDataAndDimensions([]T{value})
}

// FromValue creates a Tensor from a scalar or (multidimensional) slice value.
// The shape and DType are inferred from the value. Slices must be regular:
// all sub-slices of an axis must have the same length.
func FromValue[S MultiDimensionSlice](value S) *Tensor {
	return FromAnyValue(value)
}

// FromAnyValue is a non-generic version of FromValue. It also accepts a *Tensor,
// in which case it is returned unchanged.
func FromAnyValue(value any) *Tensor {
	if t, ok := value.(*Tensor); ok {
		return t
	}
	shape, err := shapeForValue(value)
	if err != nil {
		panic(errors.Wrapf(err, "tensors.FromAnyValue(%T)", value))
	}
	t := FromShape(shape)
	flatV := reflect.ValueOf(t.flat)
	nextIdx := 0
	copyValueToFlat(reflect.ValueOf(value), flatV, &nextIdx)
	return t
}

func shapeForValue(value any) (shape shapes.Shape, err error) {
	valueOf := reflect.ValueOf(value)
	typeOf := valueOf.Type()
	for typeOf.Kind() == reflect.Slice {
		if valueOf.Len() == 0 {
			err = errors.Errorf("cannot create tensor from empty slice %T", value)
			return
		}
		shape.Dimensions = append(shape.Dimensions, valueOf.Len())
		valueOf = valueOf.Index(0)
		typeOf = typeOf.Elem()
	}
	shape.DType = dtypes.FromGoType(typeOf)
	if shape.DType == dtypes.InvalidDType {
		err = errors.Errorf("cannot create tensor from %T: unsupported element type %s", value, typeOf)
	}
	return
}

func copyValueToFlat(valueOf, flatV reflect.Value, nextIdx *int) {
	if valueOf.Kind() != reflect.Slice {
		flatV.Index(*nextIdx).Set(valueOf)
		*nextIdx++
		return
	}
	for ii := 0; ii < valueOf.Len(); ii++ {
		copyValueToFlat(valueOf.Index(ii), flatV, nextIdx)
	}
}

// ConstFlatData calls accessFn with the flat data of the Tensor, as a slice of the
// Go type corresponding to the DType. The data must not be modified.
func (t *Tensor) ConstFlatData(accessFn func(flat any)) error {
	if !t.Ok() {
		return errors.New("tensors.ConstFlatData: invalid tensor")
	}
	accessFn(t.flat)
	return nil
}

// MustConstFlatData is like ConstFlatData but panics on error.
func (t *Tensor) MustConstFlatData(accessFn func(flat any)) {
	if err := t.ConstFlatData(accessFn); err != nil {
		panic(err)
	}
}

// MutableFlatData calls accessFn with the flat data of the Tensor, which may be modified in place.
func (t *Tensor) MutableFlatData(accessFn func(flat any)) error {
	if !t.Ok() {
		return errors.New("tensors.MutableFlatData: invalid tensor")
	}
	accessFn(t.flat)
	return nil
}

// ToScalar returns the value of a scalar Tensor. It panics if the Tensor is not
// a scalar or if T doesn't match its DType.
func ToScalar[T dtypes.Supported](t *Tensor) T {
	t.AssertValid()
	if !t.IsScalar() {
		exceptions.Panicf("tensors.ToScalar: tensor is not a scalar, shape=%s", t.shape)
	}
	flat, ok := t.flat.([]T)
	if !ok {
		exceptions.Panicf("tensors.ToScalar[%s]: tensor has dtype %s", dtypes.FromGenericsType[T](), t.DType())
	}
	return flat[0]
}

// Value returns the Tensor contents as a scalar (if rank 0) or a multidimensional
// slice of the Go type corresponding to its DType.
func (t *Tensor) Value() any {
	t.AssertValid()
	flatV := reflect.ValueOf(t.flat)
	if t.IsScalar() {
		return flatV.Index(0).Interface()
	}
	nextIdx := 0
	return multiDimFromFlat(flatV, t.shape.Dimensions, &nextIdx).Interface()
}

func multiDimFromFlat(flatV reflect.Value, dimensions []int, nextIdx *int) reflect.Value {
	if len(dimensions) == 0 {
		v := flatV.Index(*nextIdx)
		*nextIdx++
		return v
	}
	elemType := flatV.Type().Elem()
	for range dimensions[1:] {
		elemType = reflect.SliceOf(elemType)
	}
	result := reflect.MakeSlice(reflect.SliceOf(elemType), dimensions[0], dimensions[0])
	for ii := 0; ii < dimensions[0]; ii++ {
		result.Index(ii).Set(multiDimFromFlat(flatV, dimensions[1:], nextIdx))
	}
	return result
}

// GoStr converts the Tensor contents to a multidimensional Go value and prints it with %#v.
func (t *Tensor) GoStr() string {
	return fmt.Sprintf("%#v", t.Value())
}

// Equal checks whether t and otherTensor have the same shape and bit-identical values.
func (t *Tensor) Equal(otherTensor *Tensor) bool {
	t.AssertValid()
	otherTensor.AssertValid()
	if !t.shape.Equal(otherTensor.shape) {
		return false
	}
	return reflect.DeepEqual(t.flat, otherTensor.flat)
}

// InDelta checks whether t and otherTensor have the same shape and all their values
// are within delta from each other. NaN values are considered equal to each other,
// so it can be used to check NaN-producing edge cases.
func (t *Tensor) InDelta(otherTensor *Tensor, delta float64) bool {
	t.AssertValid()
	otherTensor.AssertValid()
	if !t.shape.Equal(otherTensor.shape) {
		return false
	}
	tFlat := flatToFloat64(t.flat)
	oFlat := flatToFloat64(otherTensor.flat)
	for ii, v := range tFlat {
		o := oFlat[ii]
		if math.IsNaN(v) || math.IsNaN(o) {
			// NaN only matches NaN: a comparison against delta would be
			// vacuously false and let a mismatch through.
			if math.IsNaN(v) != math.IsNaN(o) {
				return false
			}
			continue
		}
		if math.Abs(v-o) > delta {
			return false
		}
	}
	return true
}

func flatToFloat64(flat any) []float64 {
	switch values := flat.(type) {
	case []float64:
		return values
	case []bool:
		result := make([]float64, len(values))
		for ii, v := range values {
			if v {
				result[ii] = 1
			}
		}
		return result
	case []float16.Float16:
		result := make([]float64, len(values))
		for ii, v := range values {
			result[ii] = float64(v.Float32())
		}
		return result
	case []bfloat16.BFloat16:
		result := make([]float64, len(values))
		for ii, v := range values {
			result[ii] = float64(v.Float32())
		}
		return result
	}
	valuesOf := reflect.ValueOf(flat)
	result := make([]float64, valuesOf.Len())
	for ii := range result {
		result[ii] = scalarFloat64(valuesOf.Index(ii))
	}
	return result
}

func scalarFloat64(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Complex64, reflect.Complex128:
		return real(v.Complex())
	}
	exceptions.Panicf("tensors: cannot convert %s to float64", v.Type())
	return 0
}
