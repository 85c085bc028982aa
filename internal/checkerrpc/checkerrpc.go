// Package checkerrpc implements evaluator.Checker by dispatching each call
// site to a remote gRPC service, described at runtime by a .proto file
// rather than generated client code: protoparse.Parser builds a
// FileDescriptor, dynamic.Message marshals requests/responses against it,
// and grpc.ClientConn.Invoke calls the method by path. The checker
// dispatcher here is a single function dispatch({context, caller,
// callee}) -> status, reached over the network instead of in-process.
package checkerrpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jstrack/interp/internal/evaluator"
)

// Config names the proto file, the method path ("package.Service/Method"),
// and the field names the request/response messages use. Field names are
// configurable because a given deployment's checker.proto is free to name
// its fields however it likes; this package just needs to know which ones
// to populate and read.
type Config struct {
	Target        string // grpc.NewClient dial target
	ProtoPath     string
	ImportPaths   []string // defaults to {"."}
	MethodPath    string   // e.g. "checker.Checker/Dispatch"
	CallerField   string   // request field receiving a string form of caller
	CalleeField   string   // request field receiving a string form of callee
	ContextField  string   // request field receiving a string form of context
	MatchedField  string   // response field: bool, true if the call site matched
	TypeField     string   // response field: string, becomes CheckStatus.Type
	TargetField   string   // response field: string identifying an override target; empty means none
}

// Checker is a remote checker ready to dispatch call sites. It implements
// evaluator.Checker.
type Checker struct {
	cfg    Config
	conn   *grpc.ClientConn
	method *desc.MethodDescriptor
}

// Dial parses cfg.ProtoPath, resolves cfg.MethodPath against it, and opens
// a gRPC connection to cfg.Target. The connection and parsed descriptor are
// reused for every subsequent Dispatch call.
func Dial(cfg Config) (*Checker, error) {
	importPaths := cfg.ImportPaths
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}
	parser := protoparse.Parser{ImportPaths: importPaths}
	fds, err := parser.ParseFiles(cfg.ProtoPath)
	if err != nil {
		return nil, fmt.Errorf("checkerrpc: parse %s: %w", cfg.ProtoPath, err)
	}

	method, err := findMethod(fds, cfg.MethodPath)
	if err != nil {
		return nil, err
	}

	conn, err := grpc.NewClient(cfg.Target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("checkerrpc: dial %s: %w", cfg.Target, err)
	}

	return &Checker{cfg: cfg, conn: conn, method: method}, nil
}

func findMethod(fds []*desc.FileDescriptor, methodPath string) (*desc.MethodDescriptor, error) {
	for _, fd := range fds {
		for _, svc := range fd.GetServices() {
			for _, m := range svc.GetMethods() {
				if svc.GetFullyQualifiedName()+"/"+m.GetName() == methodPath {
					return m, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("checkerrpc: method %q not found in %s", methodPath, fds[0].GetName())
}

// Close releases the underlying gRPC connection.
func (c *Checker) Close() error { return c.conn.Close() }

// Dispatch implements evaluator.Checker by marshaling {context, caller,
// callee} into the configured request message, invoking the remote
// method, and unmarshaling its response into a CheckStatus.
func (c *Checker) Dispatch(ctxValue, caller, callee interface{}) (*evaluator.CheckStatus, bool, error) {
	req := dynamic.NewMessage(c.method.GetInputType())
	if c.cfg.ContextField != "" {
		req.SetFieldByName(c.cfg.ContextField, fmt.Sprintf("%v", ctxValue))
	}
	if c.cfg.CallerField != "" {
		req.SetFieldByName(c.cfg.CallerField, fmt.Sprintf("%v", caller))
	}
	if c.cfg.CalleeField != "" {
		req.SetFieldByName(c.cfg.CalleeField, fmt.Sprintf("%v", callee))
	}

	resp := dynamic.NewMessage(c.method.GetOutputType())
	methodPath := c.cfg.MethodPath
	if len(methodPath) == 0 || methodPath[0] != '/' {
		methodPath = "/" + methodPath
	}
	if err := c.conn.Invoke(context.Background(), methodPath, req, resp); err != nil {
		return nil, false, fmt.Errorf("checkerrpc: invoke %s: %w", c.cfg.MethodPath, err)
	}

	matched := true
	if c.cfg.MatchedField != "" {
		if b, ok := resp.GetFieldByName(c.cfg.MatchedField).(bool); ok {
			matched = b
		}
	}
	if !matched {
		return nil, false, nil
	}

	status := &evaluator.CheckStatus{}
	if c.cfg.TypeField != "" {
		status.Type = resp.GetFieldByName(c.cfg.TypeField)
	}
	if c.cfg.TargetField != "" {
		if t, _ := resp.GetFieldByName(c.cfg.TargetField).(string); t != "" {
			status.Target = t
		}
	}
	return status, true, nil
}
