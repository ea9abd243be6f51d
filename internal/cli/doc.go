// Package cli implements the interactive operator menu of the course
// registration system over an io.Reader and io.Writer.
package cli
