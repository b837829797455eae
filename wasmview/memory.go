package wasmview

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/introspect/errors"
)

// Memory is a linear memory addressed by 32-bit offsets.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	Size() uint32
}

var _ Memory = (api.Memory)(nil)

// ExportedMemory returns the memory mod exports under name.
func ExportedMemory(mod api.Module, name string) (Memory, error) {
	if mod == nil {
		return nil, errors.InvalidInput(errors.PhaseMemory, "nil module")
	}
	mem := mod.ExportedMemory(name)
	if mem == nil {
		return nil, errors.NotFound(errors.PhaseMemory, "memory export", name)
	}
	return mem, nil
}

// read returns n bytes at addr, or an out-of-bounds error naming path.
func read(mem Memory, path []string, addr, n uint32) ([]byte, error) {
	if err := bounds(mem, path, addr, n); err != nil {
		return nil, err
	}
	data, ok := mem.Read(addr, n)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, path, uint64(addr), uint64(n), uint64(mem.Size()))
	}
	return data, nil
}

func write(mem Memory, path []string, addr uint32, data []byte) error {
	if err := bounds(mem, path, addr, uint32(len(data))); err != nil {
		return err
	}
	if !mem.Write(addr, data) {
		return errors.OutOfBounds(errors.PhaseMemory, path, uint64(addr), uint64(len(data)), uint64(mem.Size()))
	}
	return nil
}

func bounds(mem Memory, path []string, addr, n uint32) error {
	if uint64(addr)+uint64(n) > uint64(mem.Size()) {
		return errors.OutOfBounds(errors.PhaseMemory, path, uint64(addr), uint64(n), uint64(mem.Size()))
	}
	return nil
}
