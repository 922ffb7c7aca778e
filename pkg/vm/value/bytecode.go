package value

// ByteCode is the sole artifact the generator hands off to the VM: every
// arena it grew, a name-to-package-index map, the packages in load order,
// and the entry function's key.
type ByteCode struct {
	Objects *Objects

	PackageIndices map[string]int16
	Packages       []PackageKey

	Entry FunctionKey
}
