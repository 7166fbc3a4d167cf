// Package registerreader implements the Register Reader use case.
package registerreader
