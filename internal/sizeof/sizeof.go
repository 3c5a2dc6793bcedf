package sizeof

import (
	"unsafe"

	"github.com/keilerkonzept/hll"
)

const Observation = int(unsafe.Sizeof(hll.Observation{}))
