package evaluator

import "github.com/jstrack/interp/internal/host"

// checkCallSite asks the external checker about a
// call reference whose caller is non-null; on a positive status, record a
// Collection entry and report that this call site turned checkFlag on (so
// the caller knows to clear it when the call completes, even if the call
// itself throws).
func (e *Evaluator) checkCallSite(ref Reference) (setFlag bool) {
	if e.Checker == nil || e.checkFlag {
		return false
	}

	callee := ref.Callee.(*Callee)
	status, matched, err := e.Checker.Dispatch(e.Context, ref.Caller, callee.Method)
	if err != nil {
		structuralErrorf("evaluator: checker dispatch failed: %v", err)
	}
	if !matched || status == nil {
		return false
	}

	e.checkFlag = true

	target := e.resolveCheckTarget(status, ref.Caller)
	for _, element := range e.expandCheckTarget(target) {
		e.Collection.Append(CollectionEntry{Element: element, Type: status.Type, Info: ref.Info})
	}
	return true
}

// resolveCheckTarget applies the target-resolution order: an
// explicit status.Target wins; otherwise a CSSStyleDeclaration/DOMTokenList
// attributes to its recorded parent, an Attr to its owner element, and
// anything else is its own target.
func (e *Evaluator) resolveCheckTarget(status *CheckStatus, caller interface{}) interface{} {
	if status.Target != nil {
		return status.Target
	}
	switch c := caller.(type) {
	case host.StyleDeclaration:
		if c.HasParent() {
			return c.GetParent()
		}
	case host.TokenList:
		if c.HasParent() {
			return c.GetParent()
		}
	case host.AttrNode:
		return c.OwnerElement()
	}
	return caller
}

// expandCheckTarget applies the element-extraction rule: a
// jQuery-shaped collection expands to its members via Get(); anything else
// is a one-element sequence.
func (e *Evaluator) expandCheckTarget(target interface{}) []interface{} {
	if coll, ok := target.(host.Collection); ok {
		return coll.Get()
	}
	return []interface{}{target}
}
