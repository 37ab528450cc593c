package mython

import (
	"io"
	"os"
)

// Config controls interpreter defaults.
type Config struct {
	// Output receives everything print statements write. Defaults to
	// os.Stdout.
	Output io.Writer
}

// Engine compiles and runs Mython programs. Classes are resolved at
// parse time, so the engine carries the class table across Compile
// calls; a REPL can define a class in one submission and instantiate it
// in the next.
type Engine struct {
	config  Config
	classes map[string]*Class
}

func NewEngine(cfg Config) *Engine {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Engine{config: cfg, classes: make(map[string]*Class)}
}

// Program is a compiled Mython program, ready to execute.
type Program struct {
	body *Compound
}

// Compile lexes and parses source into an executable program. Lexical
// and syntax failures are returned as *LexicalError / *SyntaxError.
func (e *Engine) Compile(source string) (*Program, error) {
	body, err := parseWithClasses(source, e.classes)
	if err != nil {
		return nil, err
	}
	return &Program{body: body}, nil
}

// Run executes the program in a fresh global scope, writing to the
// engine's configured output.
func (e *Engine) Run(program *Program) error {
	return program.Execute(NewScope(), NewContext(e.config.Output))
}

// Execute runs the program against a caller-supplied scope and context.
// Hosts that keep state between runs (the REPL) reuse the same scope.
func (p *Program) Execute(scope Scope, ctx *Context) error {
	_, err := p.body.Execute(scope, ctx)
	return err
}
