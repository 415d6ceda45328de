package domain

import "slices"

// Arity is the number of operands an operation consumes.
type Arity int

const (
	// Unary operations read only the first operand.
	Unary Arity = 1
	// Binary operations read both operands.
	Binary Arity = 2
)

// UnaryFunc is a one-operand operation.
type UnaryFunc func(a float64) (float64, error)

// BinaryFunc is a two-operand operation.
type BinaryFunc func(a, b float64) (float64, error)

// Operation is a registry entry.
type Operation struct {
	// Name is the canonical name shared by all tokens of the same operation.
	Name   string
	Arity  Arity
	unary  UnaryFunc
	binary BinaryFunc
}

// Apply runs the operation. The second operand is ignored for unary operations.
func (o Operation) Apply(a, b float64) (float64, error) {
	if o.Arity == Unary {
		return o.unary(a)
	}
	return o.binary(a, b)
}

func unaryOp(name string, fn UnaryFunc) Operation {
	return Operation{Name: name, Arity: Unary, unary: fn}
}

func binaryOp(name string, fn BinaryFunc) Operation {
	return Operation{Name: name, Arity: Binary, binary: fn}
}

// OperationRegistry maps operator tokens to operations. It is immutable after
// construction and safe for concurrent use.
type OperationRegistry struct {
	operations map[string]Operation
	// exposed lists the tokens accepted by Lookup, in display order.
	exposed []string
}

// NewOperationRegistry builds the registry of supported operations.
func NewOperationRegistry() *OperationRegistry {
	var (
		add      = binaryOp("add", Add)
		subtract = binaryOp("subtract", Subtract)
		multiply = binaryOp("multiply", Multiply)
		divide   = binaryOp("divide", Divide)
		power    = binaryOp("power", Power)
		mod      = binaryOp("mod", Mod)
		percent  = binaryOp("percent", Percent)
		sqrt     = unaryOp("sqrt", Sqrt)
		negate   = unaryOp("negate", Negate)
	)

	return &OperationRegistry{
		operations: map[string]Operation{
			"+":       add,
			"-":       subtract,
			"*":       multiply,
			"/":       divide,
			"pow":     power,
			"^":       power,
			"mod":     mod,
			"%":       mod,
			"percent": percent,
			"sqrt":    sqrt,
			"negate":  negate,
		},
		exposed: []string{"+", "-", "*", "/", "pow", "^", "mod", "%", "percent", "sqrt"},
	}
}

// Lookup returns the operation for an exposed token.
func (r *OperationRegistry) Lookup(token string) (Operation, error) {
	if !r.isExposed(token) {
		return Operation{}, UnsupportedOperator(token)
	}
	return r.operations[token], nil
}

// Get returns any registered operation by token, including ones that are not
// accepted from requests.
func (r *OperationRegistry) Get(token string) (Operation, bool) {
	op, ok := r.operations[token]
	return op, ok
}

// Dispatch looks up token and applies it to the operands.
func (r *OperationRegistry) Dispatch(token string, a, b float64) (float64, error) {
	op, err := r.Lookup(token)
	if err != nil {
		return 0, err
	}
	return op.Apply(a, b)
}

// Tokens returns the tokens accepted from requests, in display order.
func (r *OperationRegistry) Tokens() []string {
	return slices.Clone(r.exposed)
}

func (r *OperationRegistry) isExposed(token string) bool {
	return slices.Contains(r.exposed, token)
}
