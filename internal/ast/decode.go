package ast

import (
	"encoding/json"
	"fmt"
)

// FromJSON decodes a JSON-encoded ESTree program produced by an external
// parser into this package's Node shape. This mirrors how the CodeCity
// interpreter's ast.NewFromJSON accepts "a JavaScript program, in the form
// of a JSON-encoded ESTree" rather than building nodes from source text
// itself — AST production is out of scope for this interpreter.
func FromJSON(data []byte) (*Program, error) {
	var raw json.RawMessage = data
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: root node must be a Program, got %T", n)
	}
	return prog, nil
}

type peek struct {
	Type string `json:"type"`
	Loc  *struct {
		Start struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"start"`
	} `json:"loc"`
}

func decodeNode(data json.RawMessage) (Node, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	var p peek
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	pos := Position{}
	if p.Loc != nil {
		pos = Position{Line: p.Loc.Start.Line, Column: p.Loc.Start.Column}
	}

	switch p.Type {
	case "Program":
		var w struct {
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, err
		}
		body, err := decodeNodes(w.Body)
		if err != nil {
			return nil, err
		}
		return &Program{base{pos}, body}, nil

	case "ExpressionStatement":
		var w struct {
			Expression json.RawMessage `json:"expression"`
		}
		json.Unmarshal(data, &w)
		expr, err := decodeNode(w.Expression)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{base{pos}, expr}, nil

	case "BlockStatement":
		var w struct {
			Body []json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		body, err := decodeNodes(w.Body)
		if err != nil {
			return nil, err
		}
		return &BlockStatement{base{pos}, body}, nil

	case "EmptyStatement":
		return &EmptyStatement{base{pos}}, nil

	case "ReturnStatement":
		var w struct {
			Argument json.RawMessage `json:"argument"`
		}
		json.Unmarshal(data, &w)
		arg, err := decodeNode(w.Argument)
		if err != nil {
			return nil, err
		}
		return &ReturnStatement{base{pos}, arg}, nil

	case "LabeledStatement":
		var w struct {
			Label json.RawMessage `json:"label"`
			Body  json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		label, err := decodeIdentifier(w.Label)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &LabeledStatement{base{pos}, label, body}, nil

	case "BreakStatement":
		var w struct {
			Label json.RawMessage `json:"label"`
		}
		json.Unmarshal(data, &w)
		label, err := decodeIdentifierOrNil(w.Label)
		if err != nil {
			return nil, err
		}
		return &BreakStatement{base{pos}, label}, nil

	case "ContinueStatement":
		var w struct {
			Label json.RawMessage `json:"label"`
		}
		json.Unmarshal(data, &w)
		label, err := decodeIdentifierOrNil(w.Label)
		if err != nil {
			return nil, err
		}
		return &ContinueStatement{base{pos}, label}, nil

	case "IfStatement":
		var w struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		json.Unmarshal(data, &w)
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeNode(w.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeNode(w.Alternate)
		if err != nil {
			return nil, err
		}
		return &IfStatement{base{pos}, test, cons, alt}, nil

	case "SwitchCase":
		var w struct {
			Test       json.RawMessage   `json:"test"`
			Consequent []json.RawMessage `json:"consequent"`
		}
		json.Unmarshal(data, &w)
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeNodes(w.Consequent)
		if err != nil {
			return nil, err
		}
		return &SwitchCase{base{pos}, test, cons}, nil

	case "SwitchStatement":
		var w struct {
			Discriminant json.RawMessage   `json:"discriminant"`
			Cases        []json.RawMessage `json:"cases"`
		}
		json.Unmarshal(data, &w)
		disc, err := decodeNode(w.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]*SwitchCase, 0, len(w.Cases))
		for _, c := range w.Cases {
			n, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			sc, ok := n.(*SwitchCase)
			if !ok {
				return nil, fmt.Errorf("ast: SwitchStatement case must be SwitchCase, got %T", n)
			}
			cases = append(cases, sc)
		}
		return &SwitchStatement{base{pos}, disc, cases}, nil

	case "ThrowStatement":
		var w struct {
			Argument json.RawMessage `json:"argument"`
		}
		json.Unmarshal(data, &w)
		arg, err := decodeNode(w.Argument)
		if err != nil {
			return nil, err
		}
		return &ThrowStatement{base{pos}, arg}, nil

	case "CatchClause":
		var w struct {
			Param json.RawMessage `json:"param"`
			Body  json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		param, err := decodeIdentifierOrNil(w.Param)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		blk, _ := bodyNode.(*BlockStatement)
		return &CatchClause{base{pos}, param, blk}, nil

	case "TryStatement":
		var w struct {
			Block     json.RawMessage `json:"block"`
			Handler   json.RawMessage `json:"handler"`
			Finalizer json.RawMessage `json:"finalizer"`
		}
		json.Unmarshal(data, &w)
		blockNode, err := decodeNode(w.Block)
		if err != nil {
			return nil, err
		}
		block, _ := blockNode.(*BlockStatement)
		var handler *CatchClause
		if hn, err := decodeNode(w.Handler); err != nil {
			return nil, err
		} else if hn != nil {
			handler, _ = hn.(*CatchClause)
		}
		var finalizer *BlockStatement
		if fn, err := decodeNode(w.Finalizer); err != nil {
			return nil, err
		} else if fn != nil {
			finalizer, _ = fn.(*BlockStatement)
		}
		return &TryStatement{base{pos}, block, handler, finalizer}, nil

	case "WhileStatement":
		var w struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStatement{base{pos}, test, body}, nil

	case "DoWhileStatement":
		var w struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &DoWhileStatement{base{pos}, test, body}, nil

	case "ForStatement":
		var w struct {
			Init   json.RawMessage `json:"init"`
			Test   json.RawMessage `json:"test"`
			Update json.RawMessage `json:"update"`
			Body   json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		init, err := decodeNode(w.Init)
		if err != nil {
			return nil, err
		}
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		update, err := decodeNode(w.Update)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &ForStatement{base{pos}, init, test, update, body}, nil

	case "ForInStatement":
		var w struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
			Body  json.RawMessage `json:"body"`
		}
		json.Unmarshal(data, &w)
		left, err := decodeNode(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(w.Right)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		return &ForInStatement{base{pos}, left, right, body}, nil

	case "FunctionDeclaration":
		var w struct {
			ID     json.RawMessage   `json:"id"`
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		json.Unmarshal(data, &w)
		id, err := decodeIdentifier(w.ID)
		if err != nil {
			return nil, err
		}
		params, err := decodeIdentifiers(w.Params)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		block, _ := bodyNode.(*BlockStatement)
		return &FunctionDeclaration{base{pos}, id, params, block}, nil

	case "FunctionExpression":
		var w struct {
			ID     json.RawMessage   `json:"id"`
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		json.Unmarshal(data, &w)
		id, err := decodeIdentifierOrNil(w.ID)
		if err != nil {
			return nil, err
		}
		params, err := decodeIdentifiers(w.Params)
		if err != nil {
			return nil, err
		}
		bodyNode, err := decodeNode(w.Body)
		if err != nil {
			return nil, err
		}
		block, _ := bodyNode.(*BlockStatement)
		return &FunctionExpression{base{pos}, id, params, block}, nil

	case "VariableDeclarator":
		var w struct {
			ID   json.RawMessage `json:"id"`
			Init json.RawMessage `json:"init"`
		}
		json.Unmarshal(data, &w)
		id, err := decodeIdentifier(w.ID)
		if err != nil {
			return nil, err
		}
		init, err := decodeNode(w.Init)
		if err != nil {
			return nil, err
		}
		return &VariableDeclarator{base{pos}, id, init}, nil

	case "VariableDeclaration":
		var w struct {
			Kind         string            `json:"kind"`
			Declarations []json.RawMessage `json:"declarations"`
		}
		json.Unmarshal(data, &w)
		decls := make([]*VariableDeclarator, 0, len(w.Declarations))
		for _, d := range w.Declarations {
			n, err := decodeNode(d)
			if err != nil {
				return nil, err
			}
			vd, ok := n.(*VariableDeclarator)
			if !ok {
				return nil, fmt.Errorf("ast: VariableDeclaration declaration must be VariableDeclarator, got %T", n)
			}
			decls = append(decls, vd)
		}
		return &VariableDeclaration{base{pos}, w.Kind, decls}, nil

	case "ThisExpression":
		return &ThisExpression{base{pos}}, nil

	case "Identifier":
		return decodeIdentifier(data)

	case "Literal":
		var w struct {
			Value json.RawMessage `json:"value"`
			Regex *struct {
				Pattern string `json:"pattern"`
				Flags   string `json:"flags"`
			} `json:"regex"`
		}
		json.Unmarshal(data, &w)
		var rl *RegexLiteral
		if w.Regex != nil {
			rl = &RegexLiteral{Pattern: w.Regex.Pattern, Flags: w.Regex.Flags}
		}
		var v interface{}
		if len(w.Value) > 0 {
			json.Unmarshal(w.Value, &v)
		}
		return &Literal{base{pos}, v, rl}, nil

	case "ArrayExpression":
		var w struct {
			Elements []json.RawMessage `json:"elements"`
		}
		json.Unmarshal(data, &w)
		elems := make([]Node, 0, len(w.Elements))
		for _, e := range w.Elements {
			n, err := decodeNode(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return &ArrayExpression{base{pos}, elems}, nil

	case "Property":
		var w struct {
			Key      json.RawMessage `json:"key"`
			Value    json.RawMessage `json:"value"`
			Computed bool            `json:"computed"`
		}
		json.Unmarshal(data, &w)
		key, err := decodeNode(w.Key)
		if err != nil {
			return nil, err
		}
		val, err := decodeNode(w.Value)
		if err != nil {
			return nil, err
		}
		return &Property{base{pos}, key, val, w.Computed}, nil

	case "ObjectExpression":
		var w struct {
			Properties []json.RawMessage `json:"properties"`
		}
		json.Unmarshal(data, &w)
		props := make([]*Property, 0, len(w.Properties))
		for _, p := range w.Properties {
			n, err := decodeNode(p)
			if err != nil {
				return nil, err
			}
			prop, ok := n.(*Property)
			if !ok {
				return nil, fmt.Errorf("ast: ObjectExpression property must be Property, got %T", n)
			}
			props = append(props, prop)
		}
		return &ObjectExpression{base{pos}, props}, nil

	case "UnaryExpression":
		var w struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
		}
		json.Unmarshal(data, &w)
		arg, err := decodeNode(w.Argument)
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{base{pos}, w.Operator, arg}, nil

	case "UpdateExpression":
		var w struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
			Prefix   bool            `json:"prefix"`
		}
		json.Unmarshal(data, &w)
		arg, err := decodeNode(w.Argument)
		if err != nil {
			return nil, err
		}
		return &UpdateExpression{base{pos}, w.Operator, arg, w.Prefix}, nil

	case "BinaryExpression":
		var w struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		json.Unmarshal(data, &w)
		left, err := decodeNode(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(w.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{base{pos}, w.Operator, left, right}, nil

	case "AssignmentExpression":
		var w struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		json.Unmarshal(data, &w)
		left, err := decodeNode(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(w.Right)
		if err != nil {
			return nil, err
		}
		return &AssignmentExpression{base{pos}, w.Operator, left, right}, nil

	case "LogicalExpression":
		var w struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		json.Unmarshal(data, &w)
		left, err := decodeNode(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(w.Right)
		if err != nil {
			return nil, err
		}
		return &LogicalExpression{base{pos}, w.Operator, left, right}, nil

	case "MemberExpression":
		var w struct {
			Object   json.RawMessage `json:"object"`
			Property json.RawMessage `json:"property"`
			Computed bool            `json:"computed"`
		}
		json.Unmarshal(data, &w)
		obj, err := decodeNode(w.Object)
		if err != nil {
			return nil, err
		}
		prop, err := decodeNode(w.Property)
		if err != nil {
			return nil, err
		}
		return &MemberExpression{base{pos}, obj, prop, w.Computed}, nil

	case "ConditionalExpression":
		var w struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		json.Unmarshal(data, &w)
		test, err := decodeNode(w.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeNode(w.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeNode(w.Alternate)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpression{base{pos}, test, cons, alt}, nil

	case "CallExpression":
		var w struct {
			Callee    json.RawMessage   `json:"callee"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		json.Unmarshal(data, &w)
		callee, err := decodeNode(w.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeNodes(w.Arguments)
		if err != nil {
			return nil, err
		}
		return &CallExpression{base{pos}, callee, args}, nil

	case "NewExpression":
		var w struct {
			Callee    json.RawMessage   `json:"callee"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		json.Unmarshal(data, &w)
		callee, err := decodeNode(w.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeNodes(w.Arguments)
		if err != nil {
			return nil, err
		}
		return &NewExpression{base{pos}, callee, args}, nil

	case "SequenceExpression":
		var w struct {
			Expressions []json.RawMessage `json:"expressions"`
		}
		json.Unmarshal(data, &w)
		exprs, err := decodeNodes(w.Expressions)
		if err != nil {
			return nil, err
		}
		return &SequenceExpression{base{pos}, exprs}, nil

	default:
		return nil, fmt.Errorf("ast: unrecognized node type %q", p.Type)
	}
}

func decodeNodes(raw []json.RawMessage) ([]Node, error) {
	out := make([]Node, 0, len(raw))
	for _, r := range raw {
		n, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeIdentifier(data json.RawMessage) (*Identifier, error) {
	n, err := decodeIdentifierOrNil(data)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("ast: expected Identifier, got null")
	}
	return n, nil
}

func decodeIdentifierOrNil(data json.RawMessage) (*Identifier, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	var w struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Loc  *struct {
			Start struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"start"`
		} `json:"loc"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Type != "" && w.Type != "Identifier" {
		return nil, fmt.Errorf("ast: expected Identifier, got %q", w.Type)
	}
	pos := Position{}
	if w.Loc != nil {
		pos = Position{Line: w.Loc.Start.Line, Column: w.Loc.Start.Column}
	}
	return &Identifier{base{pos}, w.Name}, nil
}

func decodeIdentifiers(raw []json.RawMessage) ([]*Identifier, error) {
	out := make([]*Identifier, 0, len(raw))
	for _, r := range raw {
		id, err := decodeIdentifier(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
