package compute

// comparisonKernel computes an element-wise ordering predicate. The out
// slice is preallocated by the dispatcher to the array length.
type comparisonKernel[T ordered] interface {
	DoSS(left, right T) bool
	DoSA(out []bool, left T, right []T)
	DoAS(out []bool, left []T, right T)
	DoAA(out []bool, left, right []T)
}

var (
	int64EqualKernel    comparisonKernel[int64] = equalKernelImpl[int64]{}
	int64NotEqualKernel comparisonKernel[int64] = notEqualKernelImpl[int64]{}
	int64GTEKernel      comparisonKernel[int64] = gteKernelImpl[int64]{}
	int64GTKernel       comparisonKernel[int64] = gtKernelImpl[int64]{}
	int64LTEKernel      comparisonKernel[int64] = lteKernelImpl[int64]{}
	int64LTKernel       comparisonKernel[int64] = ltKernelImpl[int64]{}

	float64EqualKernel    comparisonKernel[float64] = equalKernelImpl[float64]{}
	float64NotEqualKernel comparisonKernel[float64] = notEqualKernelImpl[float64]{}
	float64GTEKernel      comparisonKernel[float64] = gteKernelImpl[float64]{}
	float64GTKernel       comparisonKernel[float64] = gtKernelImpl[float64]{}
	float64LTEKernel      comparisonKernel[float64] = lteKernelImpl[float64]{}
	float64LTKernel       comparisonKernel[float64] = ltKernelImpl[float64]{}

	stringEqualKernel    comparisonKernel[string] = equalKernelImpl[string]{}
	stringNotEqualKernel comparisonKernel[string] = notEqualKernelImpl[string]{}
	stringGTEKernel      comparisonKernel[string] = gteKernelImpl[string]{}
	stringGTKernel       comparisonKernel[string] = gtKernelImpl[string]{}
	stringLTEKernel      comparisonKernel[string] = lteKernelImpl[string]{}
	stringLTKernel       comparisonKernel[string] = ltKernelImpl[string]{}
)

type equalKernelImpl[T ordered] struct{}

func (equalKernelImpl[T]) DoSS(left, right T) bool {
	return left == right
}

func (equalKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left == right[i]
	}
}

func (equalKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] == right
	}
}

func (equalKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] == right[i]
	}
}

type notEqualKernelImpl[T ordered] struct{}

func (notEqualKernelImpl[T]) DoSS(left, right T) bool {
	return left != right
}

func (notEqualKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left != right[i]
	}
}

func (notEqualKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] != right
	}
}

func (notEqualKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] != right[i]
	}
}

type gtKernelImpl[T ordered] struct{}

func (gtKernelImpl[T]) DoSS(left, right T) bool {
	return left > right
}

func (gtKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left > right[i]
	}
}

func (gtKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] > right
	}
}

func (gtKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] > right[i]
	}
}

type gteKernelImpl[T ordered] struct{}

func (gteKernelImpl[T]) DoSS(left, right T) bool {
	return left >= right
}

func (gteKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left >= right[i]
	}
}

func (gteKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] >= right
	}
}

func (gteKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] >= right[i]
	}
}

type ltKernelImpl[T ordered] struct{}

func (ltKernelImpl[T]) DoSS(left, right T) bool {
	return left < right
}

func (ltKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left < right[i]
	}
}

func (ltKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] < right
	}
}

func (ltKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] < right[i]
	}
}

type lteKernelImpl[T ordered] struct{}

func (lteKernelImpl[T]) DoSS(left, right T) bool {
	return left <= right
}

func (lteKernelImpl[T]) DoSA(out []bool, left T, right []T) {
	for i := range right {
		out[i] = left <= right[i]
	}
}

func (lteKernelImpl[T]) DoAS(out []bool, left []T, right T) {
	for i := range left {
		out[i] = left[i] <= right
	}
}

func (lteKernelImpl[T]) DoAA(out []bool, left, right []T) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] <= right[i]
	}
}
