package runtime

// ScriptKind distinguishes how a Script's code is entered.
type ScriptKind int

const (
	GlobalScript ScriptKind = iota
	EvalScript
	FunctionScript
)

func (k ScriptKind) String() string {
	switch k {
	case EvalScript:
		return "eval"
	case FunctionScript:
		return "function"
	}
	return "global"
}

// Script is a unit of parsed code handed to Context.Run.
type Script struct {
	Name     string
	Kind     ScriptKind
	Function FunctionLiteral
}

// Interpreter executes parsed code on behalf of a Context. Evaluation of
// statements and expressions lives outside the runtime package.
type Interpreter interface {
	// Run executes a global or eval body in the context's current
	// environments and returns its completion value.
	Run(ctx *Context, code FunctionLiteral, isEval bool) (Value, error)
	// Invoke runs a code function for one call.
	Invoke(ctx *Context, fn *JSCodeFunction, args *Arguments) (Value, error)
}

// Parser turns source text into FunctionLiterals.
type Parser interface {
	ParseScript(name, src string) (FunctionLiteral, error)
	ParseFunction(params, body string) (FunctionLiteral, error)
}
