// Package abi is the result-code boundary around the appx workflows. Each
// entry point checks its arguments before touching the filesystem, runs the
// workflow, and reduces whatever happened to a types.Code. Nothing escapes:
// unrecognized errors and panics both surface as types.CodeUnknown.
//
// Paths are plain strings; the empty string stands for a null or missing
// argument.
package abi

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/appxkit/internal/logger"
	"github.com/joshuapare/appxkit/pkg/appx"
	"github.com/joshuapare/appxkit/pkg/types"
)

// resultOf runs fn behind the boundary. args are checked first; an empty one
// fails with CodeInvalidArgument and fn is never called.
func resultOf(op string, args []string, fn func() error) (code types.Code) {
	defer func() {
		if r := recover(); r != nil {
			logger.L.Error("panic at ABI boundary", "op", op, "panic", fmt.Sprint(r))
			code = types.CodeUnknown
		}
	}()

	for _, a := range args {
		if a == "" {
			logger.L.Warn("missing argument", "op", op)
			return types.CodeInvalidArgument
		}
	}

	err := fn()
	code = types.CodeOf(err)
	if err != nil {
		logger.L.Warn("operation failed", "op", op, "code", uint32(code), "error", err)
	}
	return code
}

// UnpackAppx extracts the package at from into the directory to.
func UnpackAppx(from, to string) types.Code {
	return resultOf("unpack", []string{from, to}, func() error {
		return appx.Unpack(from, to)
	})
}

// PackAppx packs the directory from into a new package at to.
func PackAppx(from, to string) types.Code {
	return resultOf("pack", []string{from, to}, func() error {
		return appx.Pack(from, to, nil)
	})
}

// ValidateAppxSignature checks the signature block of the package at path.
func ValidateAppxSignature(path string) types.Code {
	return resultOf("validate signature", []string{path}, func() error {
		return appx.ValidateSignature(path, nil)
	})
}

// Init enables logging to daily JSON files under logDir (the default
// directory when empty). It replaces load-time hooks; calling it is optional.
func Init(logDir string, verbose bool) types.Code {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return resultOf("init", nil, func() error {
		if err := logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: level}); err != nil {
			return types.Wrap(types.ErrKindIO, "init logging", err)
		}
		logger.L.Info("appxkit initialized")
		return nil
	})
}

// Shutdown flushes and closes logging set up by Init.
func Shutdown() types.Code {
	return resultOf("shutdown", nil, func() error {
		logger.L.Info("appxkit shutting down")
		return types.Wrap(types.ErrKindIO, "shutdown logging", logger.Shutdown())
	})
}
