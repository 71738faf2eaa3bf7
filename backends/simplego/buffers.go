package simplego

import (
	"reflect"
	"sync"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Buffer implements backends.Buffer and is used to store data (inputs and outputs of
// computation graph execution) for the simplego backend.
type Buffer struct {
	shape shapes.Shape

	// flat is a slice of the Go type corresponding to shape.DType, with shape.Size() elements.
	flat any

	// valid is set to false when the buffer is finalized (returned to the pool).
	valid bool
}

// Shape of the buffer.
func (b *Buffer) Shape() shapes.Shape { return b.shape }

type bufferPoolKey struct {
	dtype  dtypes.DType
	length int
}

func (b *Backend) getBufferPool(dtype dtypes.DType, length int) *sync.Pool {
	key := bufferPoolKey{dtype: dtype, length: length}
	poolAny, ok := b.bufferPools.Load(key)
	if !ok {
		pool := &sync.Pool{
			New: func() any {
				flatV := reflect.MakeSlice(reflect.SliceOf(dtype.GoType()), length, length)
				return &Buffer{flat: flatV.Interface()}
			},
		}
		poolAny, _ = b.bufferPools.LoadOrStore(key, pool)
	}
	return poolAny.(*sync.Pool)
}

// getBuffer returns a buffer with space for the given dtype and length, reusing a pooled one if available.
// The contents are undefined: don't assume they are zeroed.
func (b *Backend) getBuffer(dtype dtypes.DType, length int) *Buffer {
	buffer := b.getBufferPool(dtype, length).Get().(*Buffer)
	buffer.valid = true
	buffer.shape = shapes.Invalid()
	buffer.shape.DType = dtype
	return buffer
}

// getBufferForShape returns a buffer for the given shape.
func (b *Backend) getBufferForShape(shape shapes.Shape) *Buffer {
	buffer := b.getBuffer(shape.DType, shape.Size())
	buffer.shape = shape.Clone()
	return buffer
}

// putBuffer returns the buffer to the pool for reuse. The buffer must no longer be used.
func (b *Backend) putBuffer(buffer *Buffer) {
	if buffer == nil || !buffer.valid {
		return
	}
	buffer.valid = false
	length := reflect.ValueOf(buffer.flat).Len()
	b.getBufferPool(buffer.shape.DType, length).Put(buffer)
}

// cloneBuffer returns a new buffer with the same shape and a copy of the data.
func (b *Backend) cloneBuffer(buffer *Buffer) *Buffer {
	newBuffer := b.getBufferForShape(buffer.shape)
	reflect.Copy(reflect.ValueOf(newBuffer.flat), reflect.ValueOf(buffer.flat))
	return newBuffer
}

func (b *Backend) castBuffer(buffer backends.Buffer) (*Buffer, error) {
	typed, ok := buffer.(*Buffer)
	if !ok {
		return nil, errors.Errorf("buffer %T is not a simplego buffer", buffer)
	}
	if !typed.valid {
		return nil, errors.Errorf("buffer was already finalized")
	}
	return typed, nil
}

// BufferFinalize implements backends.DataInterface.
func (b *Backend) BufferFinalize(buffer backends.Buffer) error {
	typed, err := b.castBuffer(buffer)
	if err != nil {
		return errors.WithMessage(err, "BufferFinalize")
	}
	b.putBuffer(typed)
	return nil
}

// BufferShape implements backends.DataInterface.
func (b *Backend) BufferShape(buffer backends.Buffer) (shapes.Shape, error) {
	typed, err := b.castBuffer(buffer)
	if err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "BufferShape")
	}
	return typed.shape, nil
}

// BufferToFlatData implements backends.DataInterface: it transfers the flat contents of
// the buffer to the given flat slice, which must be of the matching Go type and size.
func (b *Backend) BufferToFlatData(buffer backends.Buffer, flat any) error {
	typed, err := b.castBuffer(buffer)
	if err != nil {
		return errors.WithMessage(err, "BufferToFlatData")
	}
	flatV := reflect.ValueOf(flat)
	srcV := reflect.ValueOf(typed.flat)
	if flatV.Type() != srcV.Type() {
		return errors.Errorf("BufferToFlatData: buffer holds %s, asked to transfer to %T",
			typed.shape, flat)
	}
	if flatV.Len() != srcV.Len() {
		return errors.Errorf("BufferToFlatData: buffer holds %d values, flat slice has space for %d",
			srcV.Len(), flatV.Len())
	}
	reflect.Copy(flatV, srcV)
	return nil
}

// BufferFromFlatData implements backends.DataInterface: it creates a buffer shaped shape with
// a copy of the given flat data.
func (b *Backend) BufferFromFlatData(deviceNum backends.DeviceNum, flat any, shape shapes.Shape) (backends.Buffer, error) {
	if deviceNum != 0 {
		return nil, errors.Errorf("BufferFromFlatData: simplego only supports deviceNum 0, got %d", deviceNum)
	}
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice || flatV.Type().Elem() != shape.DType.GoType() {
		return nil, errors.Errorf("BufferFromFlatData: flat data %T doesn't match shape %s", flat, shape)
	}
	if flatV.Len() != shape.Size() {
		return nil, errors.Errorf("BufferFromFlatData: flat data has %d values, shape %s requires %d",
			flatV.Len(), shape, shape.Size())
	}
	buffer := b.getBufferForShape(shape)
	reflect.Copy(reflect.ValueOf(buffer.flat), flatV)
	return buffer, nil
}
