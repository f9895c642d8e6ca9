// Command libappx builds the appx workflows as a C shared library:
//
//	go build -buildmode=c-shared -o libappx.so ./cmd/libappx
//
// Every export returns a result code (0 success, see types.Code) and never
// unwinds across the C boundary. NULL string arguments are treated as missing.
package main

import "C"

import (
	"github.com/joshuapare/appxkit/pkg/abi"
)

//export UnpackAppx
func UnpackAppx(from, to *C.char) C.uint {
	return C.uint(abi.UnpackAppx(goString(from), goString(to)))
}

//export PackAppx
func PackAppx(from, to *C.char) C.uint {
	return C.uint(abi.PackAppx(goString(from), goString(to)))
}

//export ValidateAppxSignature
func ValidateAppxSignature(path *C.char) C.uint {
	return C.uint(abi.ValidateAppxSignature(goString(path)))
}

// AppxInit turns on file logging under logDir (NULL for the default
// directory).
//
//export AppxInit
func AppxInit(logDir *C.char, verbose C.int) C.uint {
	return C.uint(abi.Init(goString(logDir), verbose != 0))
}

//export AppxShutdown
func AppxShutdown() C.uint {
	return C.uint(abi.Shutdown())
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func main() {}
