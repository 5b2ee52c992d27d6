package interp

// returnSignal carries a `return` statement's value up to the enclosing
// function call boundary. It is deliberately not a *loxerr.RuntimeError:
// it never sets the error flag, carries a value instead of a message, and
// must stop exactly at the nearest function boundary rather than the
// script boundary (§7 "Return").
type returnSignal struct {
	Value Value
}

func (r *returnSignal) Error() string { return "return" }

// asReturn reports whether err is a returnSignal, and if so unwraps it.
// Kept unexported: only execBlockStmts's callers within this package need to
// distinguish a return from a genuine runtime error.
func asReturn(err error) (*returnSignal, bool) {
	r, ok := err.(*returnSignal)
	return r, ok
}
