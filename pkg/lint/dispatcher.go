package lint

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/selector"
)

const exitSuffix = ":exit"

// exactKey matches listener keys that name a node type.
var exactKey = regexp.MustCompile(`^[A-Za-z]+$`)

type boundListener struct {
	ruleID string
	order  int
	fn     Listener
}

type selectorListener struct {
	boundListener
	key string
	sel *selector.Selector
}

// selectorIndex groups selector listeners by the node types they can
// match. Per-type lists are merged with the wildcard list and sorted on
// first use.
type selectorIndex struct {
	byType   map[string][]*selectorListener
	wildcard []*selectorListener
	merged   map[string][]*selectorListener
}

func (idx *selectorIndex) add(l *selectorListener) {
	types := l.sel.Types()
	if types == nil {
		idx.wildcard = append(idx.wildcard, l)
		return
	}
	if idx.byType == nil {
		idx.byType = map[string][]*selectorListener{}
	}
	for _, typ := range types {
		idx.byType[typ] = append(idx.byType[typ], l)
	}
}

func (idx *selectorIndex) forType(typ string) []*selectorListener {
	if cached, ok := idx.merged[typ]; ok {
		return cached
	}
	list := slices.Concat(idx.byType[typ], idx.wildcard)
	slices.SortStableFunc(list, func(a, b *selectorListener) int {
		return cmp.Or(
			a.sel.Specificity().Compare(b.sel.Specificity()),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.key, b.key),
		)
	})
	if idx.merged == nil {
		idx.merged = map[string][]*selectorListener{}
	}
	idx.merged[typ] = list
	return list
}

// dispatcher walks a tree once and calls every rule's listeners.
type dispatcher struct {
	pass       *pass
	enterExact map[string][]boundListener
	exitExact  map[string][]boundListener
	enterSel   selectorIndex
	exitSel    selectorIndex
}

func newDispatcher(p *pass) *dispatcher {
	return &dispatcher{
		pass:       p,
		enterExact: map[string][]boundListener{},
		exitExact:  map[string][]boundListener{},
	}
}

// register adds the listeners of one rule. Rules must be registered in
// registration order.
func (d *dispatcher) register(ruleID string, order int, listeners Listeners) {
	keys := make([]string, 0, len(listeners))
	for key := range listeners {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fn := listeners[key]
		if fn == nil {
			continue
		}
		base, exit := strings.CutSuffix(key, exitSuffix)
		bound := boundListener{ruleID: ruleID, order: order, fn: fn}

		if exactKey.MatchString(base) {
			if exit {
				d.exitExact[base] = append(d.exitExact[base], bound)
			} else {
				d.enterExact[base] = append(d.enterExact[base], bound)
			}
			continue
		}

		sel, err := selector.Compile(base)
		if err != nil {
			d.pass.collector.internalError(ruleID, nil, d.pass.source, err)
			continue
		}
		l := &selectorListener{boundListener: bound, key: base, sel: sel}
		if exit {
			d.exitSel.add(l)
		} else {
			d.enterSel.add(l)
		}
	}
}

// run performs the traversal.
func (d *dispatcher) run(root *ast.Node) {
	p := d.pass
	ast.Walk(root, func(n *ast.Node) bool {
		p.current = n
		d.fire(n, d.enterExact[n.Type], &d.enterSel)
		p.ancestors = append(p.ancestors, n)
		return true
	}, func(n *ast.Node) {
		p.ancestors = p.ancestors[:len(p.ancestors)-1]
		p.current = n
		d.fire(n, d.exitExact[n.Type], &d.exitSel)
	})
}

func (d *dispatcher) fire(n *ast.Node, exact []boundListener, sels *selectorIndex) {
	for _, l := range exact {
		d.call(l, n)
	}
	if sels.byType == nil && sels.wildcard == nil {
		return
	}
	for _, l := range sels.forType(n.Type) {
		if l.sel.Match(n) {
			d.call(l.boundListener, n)
		}
	}
}

// call runs one listener, converting a panic into an internal-error
// problem for its rule.
func (d *dispatcher) call(l boundListener, n *ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			d.pass.logger.Debug("rule panicked", logging.FieldRule, l.ruleID, logging.FieldNode, n.Type, logging.FieldError, r)
			d.pass.collector.internalError(l.ruleID, n, d.pass.source, r)
		}
	}()
	l.fn(n)
}
