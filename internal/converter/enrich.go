package converter

import (
	"strings"

	"github.com/standardbeagle/doctree/internal/errors"
	"github.com/standardbeagle/doctree/internal/events"
	"github.com/standardbeagle/doctree/internal/model"
	"github.com/standardbeagle/doctree/internal/types"
)

// RegisterTypeEnricher subscribes a pass that fills in each declaration's
// rendered type after the node is structurally complete. It runs on the
// createDeclaration event, so the context that created the node is the one
// consulted — including its active unit.
func RegisterTypeEnricher(cv *Converter) {
	cv.bus.On(events.EventCreateDeclaration, func(p events.Payload) {
		ctx, ok := p.Context.(*Context)
		if !ok {
			return
		}
		decl, ok := p.Node.(*model.DeclarationReflection)
		if !ok || decl.Type != "" {
			return
		}
		binding := cv.OriginOf(decl)
		if binding == nil || binding.Declaration == nil {
			return
		}

		t, err := ctx.TypeAt(binding.Declaration)
		if err != nil {
			cv.logger.Error("%v", errors.NewConvertError("enrichType", err).WithFile(binding.Position.File))
			return
		}
		if t != nil {
			decl.Type = t.Name
		}
	})
}

// RegisterSignatureEnricher subscribes a pass that renders callable
// signatures for functions, methods, and constructors, announcing each one
// on the createSignature event.
func RegisterSignatureEnricher(cv *Converter) {
	cv.bus.On(events.EventCreateDeclaration, func(p events.Payload) {
		ctx, ok := p.Context.(*Context)
		if !ok {
			return
		}
		decl, ok := p.Node.(*model.DeclarationReflection)
		if !ok {
			return
		}
		switch decl.Kind() {
		case types.KindFunction, types.KindMethod, types.KindConstructor:
		default:
			return
		}

		binding := cv.OriginOf(decl)
		if binding == nil || binding.Declaration == nil || binding.File == nil {
			return
		}
		params := binding.Declaration.ChildByFieldName("parameters")
		if params == nil {
			return
		}

		sig := binding.File.Text(params)
		if ret := binding.Declaration.ChildByFieldName("return_type"); ret != nil {
			retText := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(binding.File.Text(ret)), ":"))
			sig += ": " + retText
		}
		decl.Type = sig

		ctx.Emit(events.EventCreateSignature, decl, nil)
	})
}
