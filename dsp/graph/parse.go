package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned for malformed chain descriptions.
var ErrSyntax = errors.New("chain syntax error")

// ParseChain assembles a real-domain graph from a one-line description:
//
//	chain := stage ('|' stage)*
//	stage := 'par(' chain (';' chain)* ')' | node
//	node  := kind [':' key '=' value (',' key '=' value)*]
//
// Stages separated by '|' run in series; 'par(...)' runs its branches in
// parallel, one output channel per branch. A chain of one stage is
// returned as that stage. An empty description is the identity.
func ParseChain(reg *Registry, ctx Context, desc string) (RealNode, error) {
	p := &chainParser{reg: reg, ctx: ctx, src: desc}

	p.skipSpace()
	if p.done() {
		s, err := NewSeries[float64](ctx.Config)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	node, err := p.chain()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return node, nil
}

// ParseParams parses a single node term such as "gain:db=-6".
func ParseParams(term string) (Params, error) {
	kind, rest, hasArgs := strings.Cut(strings.TrimSpace(term), ":")
	kind = strings.TrimSpace(kind)
	if kind == "" || strings.ContainsAny(kind, "=, \t") {
		return Params{}, fmt.Errorf("%w: bad node kind in %q", ErrSyntax, term)
	}

	p := Params{Kind: kind}
	if !hasArgs {
		return p, nil
	}

	for _, kv := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(kv, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			return Params{}, fmt.Errorf("%w: parameter %q of %s is not key=value", ErrSyntax, kv, kind)
		}

		if f, err := strconv.ParseFloat(val, 64); err == nil {
			if p.Num == nil {
				p.Num = make(map[string]float64)
			}
			p.Num[key] = f
			continue
		}

		if p.Str == nil {
			p.Str = make(map[string]string)
		}
		p.Str[key] = val
	}

	return p, nil
}

type chainParser struct {
	reg *Registry
	ctx Context
	src string
	pos int
}

func (p *chainParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *chainParser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *chainParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *chainParser) chain() (RealNode, error) {
	var stages []RealNode

	for {
		stage, err := p.stage()
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)

		p.skipSpace()
		if p.done() || p.src[p.pos] != '|' {
			break
		}
		p.pos++
	}

	if len(stages) == 1 {
		return stages[0], nil
	}

	s, err := NewSeries(p.ctx.Config, stages...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *chainParser) stage() (RealNode, error) {
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], "par(") {
		p.pos += len("par(")
		return p.parallel()
	}

	start := p.pos
	for !p.done() && !strings.ContainsRune("|;()", rune(p.src[p.pos])) {
		p.pos++
	}

	term := p.src[start:p.pos]
	if strings.TrimSpace(term) == "" {
		return nil, p.errorf("empty stage")
	}

	params, err := ParseParams(term)
	if err != nil {
		return nil, err
	}
	return p.reg.Build(p.ctx, params)
}

func (p *chainParser) parallel() (RealNode, error) {
	var branches []RealNode

	for {
		branch, err := p.chain()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)

		p.skipSpace()
		if p.done() {
			return nil, p.errorf("unterminated par(")
		}

		switch p.src[p.pos] {
		case ';':
			p.pos++
		case ')':
			p.pos++
			par, err := NewParallel(p.ctx.Config, branches...)
			if err != nil {
				return nil, err
			}
			return par, nil
		default:
			return nil, p.errorf("unexpected %q in par(", p.src[p.pos])
		}
	}
}
