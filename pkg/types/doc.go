// Package types holds the error taxonomy shared by every layer of appxkit and
// the stable numeric codes it is reduced to at the ABI boundary.
package types
