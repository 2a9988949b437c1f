package normalize

import "github.com/glebzlat/polygen/grammar"

// LeftRecursive reports, for every rule in g, whether it is left-recursive:
// reachable from itself via a chain of "leftmost call" edges. An edge runs
// from rule R to rule S when S is the primary of a Part standing at a
// leftmost, non-consuming-prefix position of one of R's Alts. A Part is
// non-consuming-prefix only when it carries a `&`/`!` predicate or a
// `?`/`*` quantifier (the same cases the emitted matcher can succeed without
// advancing input, per the loop-termination rule in the generated
// recognizer), in which case the next Part in the same Alt is also
// leftmost. This generalizes the original grammar's direct-only
// recursion check (a rule referencing itself as the very first Part of
// one of its Alts) to indirect cycles through any number of intermediate
// rules.
func LeftRecursive(g *grammar.Grammar) map[string]bool {
	edges := map[string]map[string]bool{}
	for _, r := range g.Rules {
		edges[r.ID.Name] = leftmostCallees(g, r)
	}

	result := map[string]bool{}
	for _, r := range g.Rules {
		result[r.ID.Name] = reaches(edges, r.ID.Name, r.ID.Name)
	}
	return result
}

// leftmostCallees returns the set of rule names directly reachable from r
// via one leftmost-call edge.
func leftmostCallees(g *grammar.Grammar, r *grammar.Rule) map[string]bool {
	out := map[string]bool{}
	for _, alt := range r.Expr.Alts {
		for _, part := range alt.Parts {
			if id, ok := part.Primary.(*grammar.Identifier); ok {
				out[id.Name] = true
			}
			if !nonConsuming(part) {
				break
			}
		}
	}
	return out
}

// nonConsuming reports whether a Part at a leftmost position never
// prevents the next Part in the same Alt from also being leftmost: true
// for `&`/`!` predicates (they never advance input on success) and for
// `?`/`*` quantifiers (they accept zero repetitions).
func nonConsuming(part *grammar.Part) bool {
	if part.Predicate == grammar.AndPredicate || part.Predicate == grammar.NotPredicate {
		return true
	}
	switch part.Quantifier.(type) {
	case *grammar.Opt, *grammar.Star:
		return true
	default:
		return false
	}
}

// reaches reports whether target is reachable from one of start's direct
// callees, i.e. whether a non-empty chain of leftmost-call edges leads
// from start back to target. Called with start == target, this detects a
// genuine cycle rather than the trivial zero-step case.
func reaches(edges map[string]map[string]bool, start, target string) bool {
	visited := map[string]bool{}
	var dfs func(name string) bool
	dfs = func(name string) bool {
		if visited[name] {
			return false
		}
		visited[name] = true
		for callee := range edges[name] {
			if callee == target || dfs(callee) {
				return true
			}
		}
		return false
	}
	for callee := range edges[start] {
		if callee == target || dfs(callee) {
			return true
		}
	}
	return false
}
