package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to pure string manipulation.
type Sandbox struct {
	L *lua.LState

	printFunc func(string)
}

// NewSandbox creates a new sandbox for the Lua state.
// Output of print() goes to printFunc, or nowhere when it is nil.
func NewSandbox(L *lua.LState, printFunc func(string)) *Sandbox {
	return &Sandbox{L: L, printFunc: printFunc}
}

// Install removes every global that could load code or reach the host.
func (s *Sandbox) Install() {
	for _, name := range []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require",
		"module",
		"collectgarbage",
	} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
}

// installPrint replaces print so script output never reaches stdout.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		if s.printFunc == nil {
			return 0
		}
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.printFunc(strings.Join(parts, "\t"))
		return 0
	}))
}
