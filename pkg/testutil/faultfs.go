package testutil

import (
	"io/fs"

	"github.com/arthur-debert/dotstow/pkg/types"
)

// Op names an FS operation FaultFS can fail.
type Op string

const (
	OpReadFile  Op = "readfile"
	OpWriteFile Op = "writefile"
	OpRemove    Op = "remove"
	OpRemoveAll Op = "removeall"
	OpSymlink   Op = "symlink"
	OpLstat     Op = "lstat"
	OpMkdirAll  Op = "mkdirall"
)

// FaultFS wraps an FS and fails configured operations on configured paths.
type FaultFS struct {
	types.FS
	faults map[Op]map[string]error
}

// NewFaultFS wraps base.
func NewFaultFS(base types.FS) *FaultFS {
	return &FaultFS{FS: base, faults: make(map[Op]map[string]error)}
}

// Fail makes op on path return err.
func (f *FaultFS) Fail(op Op, path string, err error) *FaultFS {
	if f.faults[op] == nil {
		f.faults[op] = make(map[string]error)
	}
	f.faults[op][path] = err
	return f
}

func (f *FaultFS) fault(op Op, path string) error {
	if err, ok := f.faults[op][path]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.fault(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.fault(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) RemoveAll(path string) error {
	if err := f.fault(OpRemoveAll, path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.fault(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}
