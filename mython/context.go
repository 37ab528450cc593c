package mython

import "io"

// Context carries the execution environment shared by every evaluator
// node; today that is the output stream written by print and str().
type Context struct {
	output io.Writer
}

func NewContext(output io.Writer) *Context {
	return &Context{output: output}
}

// Output returns the stream print statements write to.
func (c *Context) Output() io.Writer {
	return c.output
}
