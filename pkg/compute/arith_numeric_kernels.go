package compute

import (
	"errors"
	"math"
)

var errDivisionByZero = errors.New("division by zero")

// numericArithKernel computes an element-wise arithmetic operation. The
// valid mask lets division kernels skip null slots, which may hold
// garbage data; other kernels ignore it.
type numericArithKernel[T numeric] interface {
	DoSS(left, right T) (T, error)
	DoSA(out []T, valid []bool, left T, right []T) error
	DoAS(out []T, valid []bool, left []T, right T) error
	DoAA(out []T, valid []bool, left, right []T) error
}

var (
	int64AddKernel numericArithKernel[int64] = numericAddKernelImpl[int64]{}
	int64SubKernel numericArithKernel[int64] = numericSubKernelImpl[int64]{}
	int64MulKernel numericArithKernel[int64] = numericMulKernelImpl[int64]{}
	int64DivKernel numericArithKernel[int64] = intDivKernelImpl{}
	int64ModKernel numericArithKernel[int64] = intModKernelImpl{}
	int64MinKernel numericArithKernel[int64] = numericMinKernelImpl[int64]{}
	int64MaxKernel numericArithKernel[int64] = numericMaxKernelImpl[int64]{}

	float64AddKernel numericArithKernel[float64] = numericAddKernelImpl[float64]{}
	float64SubKernel numericArithKernel[float64] = numericSubKernelImpl[float64]{}
	float64MulKernel numericArithKernel[float64] = numericMulKernelImpl[float64]{}
	float64DivKernel numericArithKernel[float64] = floatDivKernelImpl{}
	float64ModKernel numericArithKernel[float64] = floatModKernelImpl{}
	float64MinKernel numericArithKernel[float64] = numericMinKernelImpl[float64]{}
	float64MaxKernel numericArithKernel[float64] = numericMaxKernelImpl[float64]{}
)

type numericAddKernelImpl[T numeric] struct{}

func (numericAddKernelImpl[T]) DoSS(left, right T) (T, error) {
	return left + right, nil
}

func (numericAddKernelImpl[T]) DoSA(out []T, _ []bool, left T, right []T) error {
	for i := range right {
		out[i] = left + right[i]
	}
	return nil
}

func (numericAddKernelImpl[T]) DoAS(out []T, _ []bool, left []T, right T) error {
	for i := range left {
		out[i] = left[i] + right
	}
	return nil
}

func (numericAddKernelImpl[T]) DoAA(out []T, _ []bool, left, right []T) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] + right[i]
	}
	return nil
}

type numericSubKernelImpl[T numeric] struct{}

func (numericSubKernelImpl[T]) DoSS(left, right T) (T, error) {
	return left - right, nil
}

func (numericSubKernelImpl[T]) DoSA(out []T, _ []bool, left T, right []T) error {
	for i := range right {
		out[i] = left - right[i]
	}
	return nil
}

func (numericSubKernelImpl[T]) DoAS(out []T, _ []bool, left []T, right T) error {
	for i := range left {
		out[i] = left[i] - right
	}
	return nil
}

func (numericSubKernelImpl[T]) DoAA(out []T, _ []bool, left, right []T) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] - right[i]
	}
	return nil
}

type numericMulKernelImpl[T numeric] struct{}

func (numericMulKernelImpl[T]) DoSS(left, right T) (T, error) {
	return left * right, nil
}

func (numericMulKernelImpl[T]) DoSA(out []T, _ []bool, left T, right []T) error {
	for i := range right {
		out[i] = left * right[i]
	}
	return nil
}

func (numericMulKernelImpl[T]) DoAS(out []T, _ []bool, left []T, right T) error {
	for i := range left {
		out[i] = left[i] * right
	}
	return nil
}

func (numericMulKernelImpl[T]) DoAA(out []T, _ []bool, left, right []T) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] * right[i]
	}
	return nil
}

type numericMinKernelImpl[T numeric] struct{}

func (numericMinKernelImpl[T]) DoSS(left, right T) (T, error) {
	return min(left, right), nil
}

func (numericMinKernelImpl[T]) DoSA(out []T, _ []bool, left T, right []T) error {
	for i := range right {
		out[i] = min(left, right[i])
	}
	return nil
}

func (numericMinKernelImpl[T]) DoAS(out []T, _ []bool, left []T, right T) error {
	for i := range left {
		out[i] = min(left[i], right)
	}
	return nil
}

func (numericMinKernelImpl[T]) DoAA(out []T, _ []bool, left, right []T) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = min(left[i], right[i])
	}
	return nil
}

type numericMaxKernelImpl[T numeric] struct{}

func (numericMaxKernelImpl[T]) DoSS(left, right T) (T, error) {
	return max(left, right), nil
}

func (numericMaxKernelImpl[T]) DoSA(out []T, _ []bool, left T, right []T) error {
	for i := range right {
		out[i] = max(left, right[i])
	}
	return nil
}

func (numericMaxKernelImpl[T]) DoAS(out []T, _ []bool, left []T, right T) error {
	for i := range left {
		out[i] = max(left[i], right)
	}
	return nil
}

func (numericMaxKernelImpl[T]) DoAA(out []T, _ []bool, left, right []T) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = max(left[i], right[i])
	}
	return nil
}

// intDivKernelImpl divides 64bit integers. Division by zero at a valid
// slot is an error.
type intDivKernelImpl struct{}

func (intDivKernelImpl) DoSS(left, right int64) (int64, error) {
	if right == 0 {
		return 0, errDivisionByZero
	}
	return left / right, nil
}

func (intDivKernelImpl) DoSA(out []int64, valid []bool, left int64, right []int64) error {
	for i := range right {
		if valid != nil && !valid[i] {
			continue
		}
		if right[i] == 0 {
			return errDivisionByZero
		}
		out[i] = left / right[i]
	}
	return nil
}

func (intDivKernelImpl) DoAS(out []int64, valid []bool, left []int64, right int64) error {
	if right == 0 {
		return errDivisionByZero
	}
	for i := range left {
		if valid != nil && !valid[i] {
			continue
		}
		out[i] = left[i] / right
	}
	return nil
}

func (intDivKernelImpl) DoAA(out []int64, valid []bool, left, right []int64) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		if valid != nil && !valid[i] {
			continue
		}
		if right[i] == 0 {
			return errDivisionByZero
		}
		out[i] = left[i] / right[i]
	}
	return nil
}

// intModKernelImpl computes the remainder of 64bit integer division.
// A zero modulus at a valid slot is an error.
type intModKernelImpl struct{}

func (intModKernelImpl) DoSS(left, right int64) (int64, error) {
	if right == 0 {
		return 0, errDivisionByZero
	}
	return left % right, nil
}

func (intModKernelImpl) DoSA(out []int64, valid []bool, left int64, right []int64) error {
	for i := range right {
		if valid != nil && !valid[i] {
			continue
		}
		if right[i] == 0 {
			return errDivisionByZero
		}
		out[i] = left % right[i]
	}
	return nil
}

func (intModKernelImpl) DoAS(out []int64, valid []bool, left []int64, right int64) error {
	if right == 0 {
		return errDivisionByZero
	}
	for i := range left {
		if valid != nil && !valid[i] {
			continue
		}
		out[i] = left[i] % right
	}
	return nil
}

func (intModKernelImpl) DoAA(out []int64, valid []bool, left, right []int64) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		if valid != nil && !valid[i] {
			continue
		}
		if right[i] == 0 {
			return errDivisionByZero
		}
		out[i] = left[i] % right[i]
	}
	return nil
}

// floatDivKernelImpl divides 64bit floats with IEEE semantics: division
// by zero yields an infinity or NaN, never an error.
type floatDivKernelImpl struct{}

func (floatDivKernelImpl) DoSS(left, right float64) (float64, error) {
	return left / right, nil
}

func (floatDivKernelImpl) DoSA(out []float64, _ []bool, left float64, right []float64) error {
	for i := range right {
		out[i] = left / right[i]
	}
	return nil
}

func (floatDivKernelImpl) DoAS(out []float64, _ []bool, left []float64, right float64) error {
	for i := range left {
		out[i] = left[i] / right
	}
	return nil
}

func (floatDivKernelImpl) DoAA(out []float64, _ []bool, left, right []float64) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] / right[i]
	}
	return nil
}

// floatModKernelImpl computes math.Mod with IEEE semantics.
type floatModKernelImpl struct{}

func (floatModKernelImpl) DoSS(left, right float64) (float64, error) {
	return math.Mod(left, right), nil
}

func (floatModKernelImpl) DoSA(out []float64, _ []bool, left float64, right []float64) error {
	for i := range right {
		out[i] = math.Mod(left, right[i])
	}
	return nil
}

func (floatModKernelImpl) DoAS(out []float64, _ []bool, left []float64, right float64) error {
	for i := range left {
		out[i] = math.Mod(left[i], right)
	}
	return nil
}

func (floatModKernelImpl) DoAA(out []float64, _ []bool, left, right []float64) error {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = math.Mod(left[i], right[i])
	}
	return nil
}
