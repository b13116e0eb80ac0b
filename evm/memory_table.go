package evm

func memoryKeccak256(stack *Stack) (uint64, uint64, bool) {
	return memoryRegion(stack.Back(0), stack.Back(1))
}

func memoryMLoad(stack *Stack) (uint64, uint64, bool) {
	return memoryRegionWithUint(stack.Back(0), 32)
}

func memoryMStore8(stack *Stack) (uint64, uint64, bool) {
	return memoryRegionWithUint(stack.Back(0), 1)
}

func memoryMStore(stack *Stack) (uint64, uint64, bool) {
	return memoryRegionWithUint(stack.Back(0), 32)
}
