package ast

import (
	"encoding/json"
	"fmt"

	"github.com/tarn-lang/tarn/frontend/token"
)

// This file decodes the parser's serialized surface tree. Every node is
// an object carrying a "kind" discriminator plus "start"/"end" locations;
// the remaining fields depend on the kind. Structural violations (unknown
// kinds, missing fields) are decode errors, not desugaring errors: a tree
// that decodes successfully is assumed to satisfy parser invariants.

// DecodeModule parses one serialized surface module.
func DecodeModule(data []byte) (Module, error) {
	var raw jsonModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return Module{}, fmt.Errorf("decoding surface module: %w", err)
	}
	module := Module{
		Range:        raw.jsonRange.toRange(),
		Name:         raw.Name,
		Imports:      make([]Import, 0, len(raw.Imports)),
		Declarations: make([]Declaration, 0, len(raw.Declarations)),
	}
	for _, imp := range raw.Imports {
		module.Imports = append(module.Imports, Import{
			Range:      imp.jsonRange.toRange(),
			Alias:      imp.Alias,
			ImportPath: imp.Path,
			Exposing:   imp.Exposing,
		})
	}
	for i, data := range raw.Declarations {
		decl, err := decodeDeclaration(data)
		if err != nil {
			return Module{}, fmt.Errorf("declaration %d: %w", i, err)
		}
		module.Declarations = append(module.Declarations, decl)
	}
	return module, nil
}

// DecodeExpr parses one serialized surface expression.
func DecodeExpr(data []byte) (Expr, error) {
	return decodeExpr(data)
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"byteOffset"`
}

func (l jsonLocation) toLocation() token.Location {
	return token.Location{File: l.File, Line: l.Line, Column: l.Column, Offset: l.Offset}
}

type jsonRange struct {
	Start jsonLocation `json:"start"`
	End   jsonLocation `json:"end"`
}

func (r jsonRange) toRange() token.Range {
	return token.Range{PosStart: r.Start.toLocation(), PosEnd: r.End.toLocation()}
}

type jsonModule struct {
	jsonRange
	Name         string            `json:"name"`
	Imports      []jsonImport      `json:"imports"`
	Declarations []json.RawMessage `json:"declarations"`
}

type jsonImport struct {
	jsonRange
	Alias    string   `json:"alias"`
	Path     string   `json:"path"`
	Exposing []string `json:"exposing"`
}

// jsonNode is the common envelope of every serialized tree node. Each
// decode function unmarshals the envelope first and the kind-specific
// payload second, from the same bytes.
type jsonNode struct {
	jsonRange
	Kind string `json:"kind"`
}

func decodeDeclaration(data []byte) (Declaration, error) {
	var node jsonNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	switch node.Kind {
	case "let":
		var raw struct {
			Name      string          `json:"name"`
			Value     json.RawMessage `json:"value"`
			Exported  bool            `json:"exported"`
			Mutable   bool            `json:"mutable"`
			Recursive bool            `json:"recursive"`
			Comments  []string        `json:"comments"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return &LetDeclaration{
			Range:     node.toRange(),
			Name:      raw.Name,
			Value:     value,
			Exported:  raw.Exported,
			Mutable:   raw.Mutable,
			Recursive: raw.Recursive,
			Comments:  raw.Comments,
		}, nil
	case "type":
		var raw struct {
			Name     string   `json:"name"`
			Params   []string `json:"params"`
			Variants []struct {
				jsonRange
				Label string            `json:"label"`
				Args  []json.RawMessage `json:"args"`
			} `json:"variants"`
			Exported bool `json:"exported"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		decl := &TypeDeclaration{
			Range:    node.toRange(),
			Name:     raw.Name,
			Params:   raw.Params,
			Exported: raw.Exported,
		}
		for _, v := range raw.Variants {
			args, err := decodeTypes(v.Args)
			if err != nil {
				return nil, err
			}
			decl.Variants = append(decl.Variants, VariantDef{
				Range: v.toRange(),
				Label: v.Label,
				Args:  args,
			})
		}
		return decl, nil
	case "external":
		var raw struct {
			Name     string          `json:"name"`
			Type     json.RawMessage `json:"type"`
			Exported bool            `json:"exported"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		typ, err := decodeType(raw.Type)
		if err != nil {
			return nil, err
		}
		return &ExternalDeclaration{
			Range:    node.toRange(),
			Name:     raw.Name,
			Type:     typ,
			Exported: raw.Exported,
		}, nil
	default:
		return nil, fmt.Errorf("unknown declaration kind %q", node.Kind)
	}
}

func decodeExpr(data []byte) (Expr, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var node jsonNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	rng := node.toRange()
	switch node.Kind {
	case "literal":
		var raw struct {
			LitKind string `json:"litKind"`
			Syntax  string `json:"syntax"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		kind, err := litKindFromString(raw.LitKind)
		if err != nil {
			return nil, err
		}
		return &Literal{Kind: kind, Syntax: raw.Syntax, Range: rng}, nil
	case "var":
		var raw struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Var{Name: raw.Name, Range: rng}, nil
	case "block":
		var raw struct {
			Stmts []json.RawMessage `json:"stmts"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		stmts, err := decodeExprs(raw.Stmts)
		if err != nil {
			return nil, err
		}
		return &Block{Stmts: stmts, Range: rng}, nil
	case "bind":
		var raw struct {
			Pattern   json.RawMessage `json:"pattern"`
			Value     json.RawMessage `json:"value"`
			Mutable   bool            `json:"mutable"`
			Recursive bool            `json:"recursive"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		pattern, err := decodePattern(raw.Pattern)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		return &Bind{Pattern: pattern, Value: value, Mutable: raw.Mutable, Recursive: raw.Recursive, Range: rng}, nil
	case "if":
		var raw struct {
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
			Else json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(raw.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(raw.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(raw.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els, Range: rng}, nil
	case "func":
		var raw struct {
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		params, err := decodePatterns(raw.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Func{Params: params, Body: body, Range: rng}, nil
	case "call":
		var raw struct {
			Func json.RawMessage   `json:"func"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		fn, err := decodeExpr(raw.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(raw.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Func: fn, Args: args, Range: rng}, nil
	case "pipe":
		var raw struct {
			Arg  json.RawMessage `json:"arg"`
			Func json.RawMessage `json:"func"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		arg, err := decodeExpr(raw.Arg)
		if err != nil {
			return nil, err
		}
		fn, err := decodeExpr(raw.Func)
		if err != nil {
			return nil, err
		}
		return &Pipe{Arg: arg, Func: fn, Range: rng}, nil
	case "compose":
		var raw struct {
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
			Backward bool            `json:"backward"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Compose{Left: left, Right: right, Backward: raw.Backward, Range: rng}, nil
	case "list":
		var raw struct {
			Elems []struct {
				Expr   json.RawMessage `json:"expr"`
				Spread bool            `json:"spread"`
			} `json:"elems"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		list := &ListLit{Range: rng}
		for _, elem := range raw.Elems {
			expr, err := decodeExpr(elem.Expr)
			if err != nil {
				return nil, err
			}
			list.Elems = append(list.Elems, ListElem{Expr: expr, Spread: elem.Spread})
		}
		return list, nil
	case "while":
		var raw struct {
			Cond json.RawMessage `json:"cond"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(raw.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(raw.Body)
		if err != nil {
			return nil, err
		}
		return &While{Cond: cond, Body: body, Range: rng}, nil
	case "when":
		var raw struct {
			Value json.RawMessage `json:"value"`
			Cases []struct {
				jsonRange
				Pattern json.RawMessage `json:"pattern"`
				Body    json.RawMessage `json:"body"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		value, err := decodeExpr(raw.Value)
		if err != nil {
			return nil, err
		}
		when := &When{Value: value, Range: rng}
		for _, c := range raw.Cases {
			pattern, err := decodePattern(c.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := decodeExpr(c.Body)
			if err != nil {
				return nil, err
			}
			when.Cases = append(when.Cases, WhenCase{Range: c.toRange(), Pattern: pattern, Body: body})
		}
		return when, nil
	case "record":
		var raw struct {
			Fields []jsonField `json:"fields"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		fields, err := decodeFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		return &RecordLit{Fields: fields, Range: rng}, nil
	case "recordUpdate":
		var raw struct {
			Record json.RawMessage `json:"record"`
			Fields []jsonField     `json:"fields"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		record, err := decodeExpr(raw.Record)
		if err != nil {
			return nil, err
		}
		fields, err := decodeFields(raw.Fields)
		if err != nil {
			return nil, err
		}
		return &RecordUpdate{Record: record, Fields: fields, Range: rng}, nil
	case "recordSelect":
		var raw struct {
			Record json.RawMessage `json:"record"`
			Label  string          `json:"label"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		record, err := decodeExpr(raw.Record)
		if err != nil {
			return nil, err
		}
		return &RecordSelect{Record: record, Label: raw.Label, Range: rng}, nil
	case "variant":
		var raw struct {
			Label string            `json:"label"`
			Args  []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := decodeExprs(raw.Args)
		if err != nil {
			return nil, err
		}
		return &Variant{Label: raw.Label, Args: args, Range: rng}, nil
	case "binary":
		var raw struct {
			Left     json.RawMessage `json:"left"`
			Operator string          `json:"operator"`
			Right    json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		op, err := binaryOpFromString(raw.Operator)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Left: left, Operator: op, Right: right, Range: rng}, nil
	case "unary":
		var raw struct {
			Operator string          `json:"operator"`
			Operand  json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		op, err := unaryOpFromString(raw.Operator)
		if err != nil {
			return nil, err
		}
		operand, err := decodeExpr(raw.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op, Operand: operand, Range: rng}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", node.Kind)
	}
}

func decodeExprs(data []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, 0, len(data))
	for _, d := range data {
		expr, err := decodeExpr(d)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

type jsonField struct {
	jsonRange
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

func decodeFields(raw []jsonField) ([]Field, error) {
	fields := make([]Field, 0, len(raw))
	for _, f := range raw {
		value, err := decodeExpr(f.Value)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Range: f.toRange(), Name: f.Name, Value: value})
	}
	return fields, nil
}

func decodePattern(data []byte) (Pattern, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing pattern")
	}
	var node jsonNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	rng := node.toRange()
	switch node.Kind {
	case "var":
		var raw struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &VarPattern{Name: raw.Name, Range: rng}, nil
	case "wildcard":
		return &WildcardPattern{Range: rng}, nil
	case "literal":
		var raw struct {
			LitKind string `json:"litKind"`
			Syntax  string `json:"syntax"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		kind, err := litKindFromString(raw.LitKind)
		if err != nil {
			return nil, err
		}
		return &LiteralPattern{Kind: kind, Syntax: raw.Syntax, Range: rng}, nil
	case "variant":
		var raw struct {
			Label string            `json:"label"`
			Args  []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := decodePatterns(raw.Args)
		if err != nil {
			return nil, err
		}
		return &VariantPattern{Label: raw.Label, Args: args, Range: rng}, nil
	case "record":
		var raw struct {
			Fields []struct {
				jsonRange
				Name    string          `json:"name"`
				Pattern json.RawMessage `json:"pattern"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		record := &RecordPattern{Range: rng}
		for _, f := range raw.Fields {
			// absent sub-pattern is the punned form `{a}`
			var sub Pattern
			if len(f.Pattern) > 0 {
				var err error
				sub, err = decodePattern(f.Pattern)
				if err != nil {
					return nil, err
				}
			}
			record.Fields = append(record.Fields, FieldPattern{Range: f.toRange(), Name: f.Name, Pattern: sub})
		}
		return record, nil
	case "list":
		var raw struct {
			Elems []json.RawMessage `json:"elems"`
			Rest  json.RawMessage   `json:"rest"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		elems, err := decodePatterns(raw.Elems)
		if err != nil {
			return nil, err
		}
		var rest Pattern
		if len(raw.Rest) > 0 {
			rest, err = decodePattern(raw.Rest)
			if err != nil {
				return nil, err
			}
		}
		return &ListPattern{Elems: elems, Rest: rest, Range: rng}, nil
	case "or":
		var raw struct {
			Alts []json.RawMessage `json:"alts"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if len(raw.Alts) < 2 {
			return nil, fmt.Errorf("or pattern needs at least two alternatives, got %d", len(raw.Alts))
		}
		alts, err := decodePatterns(raw.Alts)
		if err != nil {
			return nil, err
		}
		return &OrPattern{Alts: alts, Range: rng}, nil
	default:
		return nil, fmt.Errorf("unknown pattern kind %q", node.Kind)
	}
}

func decodePatterns(data []json.RawMessage) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(data))
	for _, d := range data {
		pattern, err := decodePattern(d)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func decodeType(data []byte) (Type, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing type")
	}
	var node jsonNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	rng := node.toRange()
	switch node.Kind {
	case "named":
		var raw struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := decodeTypes(raw.Args)
		if err != nil {
			return nil, err
		}
		return &NamedType{Name: raw.Name, Args: args, Range: rng}, nil
	case "typeVar":
		var raw struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &TypeVar{Name: raw.Name, Range: rng}, nil
	case "func":
		var raw struct {
			Arg json.RawMessage `json:"arg"`
			Ret json.RawMessage `json:"ret"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		arg, err := decodeType(raw.Arg)
		if err != nil {
			return nil, err
		}
		ret, err := decodeType(raw.Ret)
		if err != nil {
			return nil, err
		}
		return &FuncType{Arg: arg, Ret: ret, Range: rng}, nil
	case "record":
		var raw struct {
			Fields []struct {
				jsonRange
				Name string          `json:"name"`
				Type json.RawMessage `json:"type"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		record := &RecordType{Range: rng}
		for _, f := range raw.Fields {
			typ, err := decodeType(f.Type)
			if err != nil {
				return nil, err
			}
			record.Fields = append(record.Fields, TypeField{Range: f.toRange(), Name: f.Name, Type: typ})
		}
		return record, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", node.Kind)
	}
}

func decodeTypes(data []json.RawMessage) ([]Type, error) {
	types := make([]Type, 0, len(data))
	for _, d := range data {
		typ, err := decodeType(d)
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	return types, nil
}

func litKindFromString(s string) (token.LitKind, error) {
	switch s {
	case "int":
		return token.LitInt, nil
	case "float":
		return token.LitFloat, nil
	case "string":
		return token.LitString, nil
	case "bool":
		return token.LitBool, nil
	case "unit":
		return token.LitUnit, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}

func binaryOpFromString(s string) (token.Op, error) {
	switch s {
	case "+":
		return token.OpAdd, nil
	case "-":
		return token.OpSub, nil
	case "*":
		return token.OpMul, nil
	case "/":
		return token.OpDiv, nil
	case "%":
		return token.OpMod, nil
	case "==":
		return token.OpEq, nil
	case "!=":
		return token.OpNeq, nil
	case "<":
		return token.OpLt, nil
	case "<=":
		return token.OpLte, nil
	case ">":
		return token.OpGt, nil
	case ">=":
		return token.OpGte, nil
	case "and":
		return token.OpAnd, nil
	case "or":
		return token.OpOr, nil
	case "++":
		return token.OpAppend, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", s)
	}
}

func unaryOpFromString(s string) (token.Op, error) {
	switch s {
	case "-":
		return token.OpNeg, nil
	case "not":
		return token.OpNot, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q", s)
	}
}
