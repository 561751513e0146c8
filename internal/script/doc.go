// Package script runs user-supplied Lua restriction rules against resolved
// keyboard layouts.
//
// A script defines a global function
//
//	function enabled(text, index, number, number_type)
//	    return text ~= "使"
//	end
//
// which is called once for every ordinary key the engine has enabled. A false
// result disables the key. The script cannot enable a key the engine has
// disabled and never sees function keys.
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries. Each call is bounded by a timeout.
package script
