package dom

import "github.com/PuerkitoBio/goquery"

// Op is the kind of mutation a Patch performs.
type Op uint8

const (
	OpText Op = iota
	OpReplace
	OpSetAttr
	OpRemoveAttr
	OpAddClass
	OpRemoveClass
)

// Patch describes one mutation of the document. Scope selects the container the
// patch is confined to (the first match); Selector selects targets inside it, or the
// container itself when empty. By default only the first target is patched; All
// patches every match and Index picks the nth one. Min skips the patch unless the
// selector has at least that many matches.
type Patch struct {
	Scope    string
	Selector string
	All      bool
	Index    int
	Min      int
	Op       Op
	Text     string
	Nodes    []Node
	Key      string
	Val      string
}

// SetText replaces the text of the first match.
func SetText(scope, selector, text string) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpText, Text: text}
}

// SetTextAt replaces the text of the index-th match.
func SetTextAt(scope, selector string, index int, text string) Patch {
	return Patch{Scope: scope, Selector: selector, Index: index, Op: OpText, Text: text}
}

// ReplaceChildren replaces the children of the first match.
func ReplaceChildren(scope, selector string, nodes ...Node) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpReplace, Nodes: nodes}
}

// SetAttr sets an attribute on the first match.
func SetAttr(scope, selector, key, val string) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpSetAttr, Key: key, Val: val}
}

// RemoveAttr drops an attribute from the first match.
func RemoveAttr(scope, selector, key string) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpRemoveAttr, Key: key}
}

// AddClass adds classes to the first match.
func AddClass(scope, selector, class string) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpAddClass, Val: class}
}

// RemoveClass removes classes from the first match.
func RemoveClass(scope, selector, class string) Patch {
	return Patch{Scope: scope, Selector: selector, Op: OpRemoveClass, Val: class}
}

// Every returns a copy of p that targets every match.
func (p Patch) Every() Patch {
	p.All = true
	return p
}

// AtLeast returns a copy of p that only applies when the selector has n matches or more.
func (p Patch) AtLeast(n int) Patch {
	p.Min = n
	return p
}

// Apply performs patches in order and returns how many found a target. Patches whose
// scope or target is missing are skipped.
func Apply(d *Document, patches []Patch) int {
	applied := 0
	for _, p := range patches {
		target := resolveTarget(d, p)
		if target == nil || target.Length() == 0 {
			continue
		}
		apply(target, p)
		applied++
	}
	return applied
}

func resolveTarget(d *Document, p Patch) *goquery.Selection {
	var scope *goquery.Selection
	if p.Scope == "" {
		scope = d.doc.Selection
	} else {
		scope = d.doc.Find(p.Scope).First()
		if scope.Length() == 0 {
			return nil
		}
	}
	target := scope
	if p.Selector != "" {
		target = scope.Find(p.Selector)
	}
	if target.Length() < p.Min {
		return nil
	}
	if p.All {
		return target
	}
	if p.Index < 0 || p.Index >= target.Length() {
		return nil
	}
	return target.Eq(p.Index)
}

func apply(target *goquery.Selection, p Patch) {
	switch p.Op {
	case OpText:
		target.SetText(p.Text)
	case OpReplace:
		replaceChildren(target, p.Nodes)
	case OpSetAttr:
		target.SetAttr(p.Key, p.Val)
	case OpRemoveAttr:
		target.RemoveAttr(p.Key)
	case OpAddClass:
		target.AddClass(p.Val)
	case OpRemoveClass:
		target.RemoveClass(p.Val)
	}
}
