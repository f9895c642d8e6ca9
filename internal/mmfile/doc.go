// Package mmfile provides platform-specific helpers for memory-mapping package
// files so the ZIP directory can be read with random access.
package mmfile
