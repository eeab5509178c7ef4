package compute

// logicalKernel is a boolean operation with variants for each
// combination of scalar and array operands.
type logicalKernel interface {
	// DoSS computes the operation for two scalars.
	DoSS(left, right bool) bool

	// DoSA computes the operation for a scalar and an array, storing
	// results in out. out and right must be the same length.
	DoSA(out []bool, left bool, right []bool)

	// DoAS computes the operation for an array and a scalar, storing
	// results in out. out and left must be the same length.
	DoAS(out []bool, left []bool, right bool)

	// DoAA computes the operation for two arrays, storing results in
	// out. out, left, and right must all be the same length.
	DoAA(out []bool, left, right []bool)
}

var (
	logicalAndKernel logicalKernel = andKernelImpl{}
	logicalOrKernel  logicalKernel = orKernelImpl{}
	logicalXorKernel logicalKernel = xorKernelImpl{}
)

type andKernelImpl struct{}

func (andKernelImpl) DoSS(left, right bool) bool {
	return left && right
}

func (andKernelImpl) DoSA(out []bool, left bool, right []bool) {
	for i := range right {
		out[i] = left && right[i]
	}
}

func (andKernelImpl) DoAS(out []bool, left []bool, right bool) {
	for i := range left {
		out[i] = left[i] && right
	}
}

func (andKernelImpl) DoAA(out []bool, left, right []bool) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] && right[i]
	}
}

type orKernelImpl struct{}

func (orKernelImpl) DoSS(left, right bool) bool {
	return left || right
}

func (orKernelImpl) DoSA(out []bool, left bool, right []bool) {
	for i := range right {
		out[i] = left || right[i]
	}
}

func (orKernelImpl) DoAS(out []bool, left []bool, right bool) {
	for i := range left {
		out[i] = left[i] || right
	}
}

func (orKernelImpl) DoAA(out []bool, left, right []bool) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] || right[i]
	}
}

type xorKernelImpl struct{}

func (xorKernelImpl) DoSS(left, right bool) bool {
	return left != right
}

func (xorKernelImpl) DoSA(out []bool, left bool, right []bool) {
	for i := range right {
		out[i] = left != right[i]
	}
}

func (xorKernelImpl) DoAS(out []bool, left []bool, right bool) {
	for i := range left {
		out[i] = left[i] != right
	}
}

func (xorKernelImpl) DoAA(out []bool, left, right []bool) {
	if len(left) != len(right) {
		panic("invalid length")
	}
	for i := range left {
		out[i] = left[i] != right[i]
	}
}
