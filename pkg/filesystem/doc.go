// Package filesystem provides filesystem implementations for dotstow.
//
// This package contains the implementation of the types.FS interface
// backed by the real OS filesystem. Tests wrap it to inject failures.
package filesystem
