// internal/abi/abi.go

// Package abi is the stable call surface of the diagnostic registry.
//
// Every function has a fixed signature and reports an integer result code:
// 0 on success, a negative diag.Code* value otherwise. Reserved parameters
// exist for future extension; they must be nil and are never inspected
// beyond that check.
package abi

import "github.com/tamzrod/diag-registry/internal/diag"

// CmdDataSize is the Size value of the current CmdData layout.
const CmdDataSize = 1

// CmdData is the payload of ServiceCmd.
type CmdData struct {
	// Size is the layout version marker. Set it to CmdDataSize.
	Size uint32

	// ID selects one source. InvalidID addresses every source.
	ID diag.ID

	// Buf receives the value of a GET command.
	Buf []byte

	// Written is set to the number of bytes a GET stored in Buf.
	Written int
}

// Service exposes a registry through the result-code surface.
type Service struct {
	reg *diag.Registry
}

// New wraps reg.
func New(reg *diag.Registry) *Service {
	return &Service{reg: reg}
}

// RegisterSource adds src to the registry.
func (s *Service) RegisterSource(src *diag.Source, reserved any) int {
	if reserved != nil {
		return diag.CodeInvalidArgument
	}
	return diag.Code(s.reg.Register(src))
}

// EnumSources calls visit for every source with data as the second
// argument and stores the number of sources in count. Either visit or
// count may be nil, but not both.
func (s *Service) EnumSources(visit func(src *diag.Source, data any), count *int, data any, reserved any) int {
	if reserved != nil || (visit == nil && count == nil) {
		return diag.CodeInvalidArgument
	}

	var fn func(*diag.Source)
	if visit != nil {
		fn = func(src *diag.Source) { visit(src, data) }
	}
	n := s.reg.Enumerate(fn)

	if count != nil {
		*count = n
	}
	return diag.CodeOK
}

// GetSource stores the descriptor registered under id in out.
func (s *Service) GetSource(id uint16, out **diag.Source, reserved any) int {
	if reserved != nil || out == nil {
		return diag.CodeInvalidArgument
	}
	src, err := s.reg.Lookup(diag.ID(id))
	if err != nil {
		return diag.Code(err)
	}
	*out = src
	return diag.CodeOK
}

// ServiceCmd issues cmd against one source or, for RESET, ENABLE and
// DISABLE, against all sources when data is nil or data.ID is InvalidID.
// GET always needs a source id and a buffer.
func (s *Service) ServiceCmd(cmd int, data *CmdData, reserved any) int {
	if reserved != nil {
		return diag.CodeInvalidArgument
	}
	if data != nil && data.Size == 0 {
		return diag.CodeInvalidArgument
	}

	kind := diag.CommandKind(cmd)
	if kind == diag.CmdGet && (data == nil || data.ID == diag.InvalidID) {
		return diag.CodeInvalidArgument
	}

	var buf []byte
	if data != nil {
		buf = data.Buf
	}
	c, err := diag.NewCommand(kind, buf)
	if err != nil {
		return diag.Code(err)
	}

	if data == nil || data.ID == diag.InvalidID {
		return diag.Code(s.reg.Broadcast(c))
	}

	if err := s.reg.Dispatch(data.ID, c); err != nil {
		return diag.Code(err)
	}
	if g, ok := c.(*diag.Get); ok {
		data.Written = g.N
	}
	return diag.CodeOK
}
