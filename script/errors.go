package script

import "errors"

// Sentinel errors for script parsing, compilation and execution.
var (
	// ErrUnexpectedToken indicates a syntax error in the script source.
	ErrUnexpectedToken = errors.New("script: unexpected token")
	// ErrReturnStatement indicates the script used a return statement,
	// refused at compile time (spec.md §4.6 Safety).
	ErrReturnStatement = errors.New("script: return statements are not permitted")
	// ErrUnknownSymbol indicates a bare identifier does not resolve to a
	// registered variable or a script-local temporary.
	ErrUnknownSymbol = errors.New("script: unknown symbol")
	// ErrUnknownFunction indicates a call to a name with no builtin
	// definition and no setVarDef/setVarDefSticky/getJanusValueQuietly
	// special form.
	ErrUnknownFunction = errors.New("script: unknown function")
	// ErrWrongArgCount indicates a builtin or special form was called with
	// the wrong number of arguments.
	ErrWrongArgCount = errors.New("script: wrong argument count")
	// ErrSetVarDefOddArgs indicates setVarDef/setVarDefSticky was called
	// with an odd argument count (must be (variable, expression) pairs).
	ErrSetVarDefOddArgs = errors.New("script: setVarDef requires (variable, expression) pairs")
	// ErrSetVarDefNotIdent indicates a setVarDef/setVarDefSticky variable
	// argument was not a bare identifier.
	ErrSetVarDefNotIdent = errors.New("script: setVarDef variable argument must be an identifier")
	// ErrSetVarDefUnknownVar indicates a setVarDef target does not name a
	// registered variable.
	ErrSetVarDefUnknownVar = errors.New("script: setVarDef target is not a known variable")
	// ErrSetVarDefOnInput indicates setVarDef/setVarDefSticky targeted an
	// Input variable, refused at compile time (spec.md §4.6 Safety).
	ErrSetVarDefOnInput = errors.New("script: setVarDef cannot target an Input variable")
	// ErrAssignToOtherVariable indicates a bare `:=` assignment targeted a
	// registered variable other than the script's own owner — only
	// setVarDef/setVarDefSticky may write other variables.
	ErrAssignToOtherVariable = errors.New("script: only setVarDef/setVarDefSticky may assign another variable")
	// ErrNotTranspilable indicates a MathML expression tree uses an
	// operator Transpile cannot render as a script: one with no scalar
	// fast path (every matrix operator, spec.md §4.6: "Matrix-valued
	// variables always use MathML"), a scalar operator with no script
	// builtin of the same name, or a piece/otherwise outside a piecewise.
	ErrNotTranspilable = errors.New("script: expression is not transpilable to script form")
)
