// Package lua runs user-supplied token normalizers written in Lua.
//
// A normalizer script defines a global function that receives the submitted
// prompt text and returns the token to insert:
//
//	function shout(value)
//	    return ":" .. string.upper(value) .. ":"
//	end
//
// Scripts run in a sandboxed gopher-lua state. Only the base, table, string
// and math libraries are opened; io, os, debug and package are not, and the
// file and chunk loaders (dofile, loadfile, load, loadstring, require) are
// removed. Every call is bounded by an execution timeout.
//
// gopher-lua's LState is not goroutine-safe. State serializes access with a
// mutex, so a Normalizer may be shared between goroutines.
package lua
