package realtime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// forbidden characters in a path segment
const invalidKeyChars = ".#$[]"

// CleanPath trims and validates a slash separated path. The empty string
// addresses the root.
func CleanPath(p string) (string, error) {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "", nil
	}
	segments := strings.Split(p, "/")
	for _, seg := range segments {
		if seg == "" {
			return "", fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, p)
		}
		if strings.ContainsAny(seg, invalidKeyChars) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, seg)
		}
	}
	return p, nil
}

func Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "/")
}

func lastSegment(p string) string {
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// ancestors returns every proper ancestor of p, nearest last.
func ancestors(p string) []string {
	var out []string
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[:i])
		}
	}
	return out
}

// within reports whether child equals parent or sits below it.
func within(child, parent string) bool {
	if parent == "" {
		return true
	}
	return child == parent || strings.HasPrefix(child, parent+"/")
}

// overlaps reports whether a write at one path can change the value at the
// other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

// flatten converts a JSON-like tree into leaf path/value pairs below base.
// Nil values and empty objects produce no leaves.
func flatten(base string, value any, out map[string]any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, child := range v {
			if k == "" || strings.ContainsAny(k, invalidKeyChars+"/") {
				return fmt.Errorf("%w: key %q", ErrInvalidPath, k)
			}
			if err := flatten(Join(base, k), child, out); err != nil {
				return err
			}
		}
		return nil
	case map[string]bool:
		for k, child := range v {
			if err := flatten(Join(base, k), child, out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, child := range v {
			if err := flatten(Join(base, strconv.Itoa(i)), child, out); err != nil {
				return err
			}
		}
		return nil
	case []map[string]any:
		for i, child := range v {
			if err := flatten(Join(base, strconv.Itoa(i)), child, out); err != nil {
				return err
			}
		}
		return nil
	case string, bool, float64:
		if base == "" {
			return fmt.Errorf("%w: scalar at root", ErrInvalidPath)
		}
		out[base] = v
		return nil
	case int:
		return flatten(base, float64(v), out)
	case int64:
		return flatten(base, float64(v), out)
	case int32:
		return flatten(base, float64(v), out)
	case float32:
		return flatten(base, float64(v), out)
	default:
		return fmt.Errorf("%w: %T at %q", ErrUnsupportedValue, value, base)
	}
}

// assemble rebuilds the subtree rooted at base from leaf pairs. Objects
// whose keys are exactly 0..n-1 come back as arrays.
func assemble(base string, leaves map[string]any) any {
	if v, ok := leaves[base]; ok && base != "" {
		return v
	}
	if len(leaves) == 0 {
		return nil
	}

	root := map[string]any{}
	prefix := ""
	if base != "" {
		prefix = base + "/"
	}
	for p, v := range leaves {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rel := strings.Split(strings.TrimPrefix(p, prefix), "/")
		node := root
		for i, seg := range rel {
			if i == len(rel)-1 {
				node[seg] = v
				break
			}
			next, ok := node[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				node[seg] = next
			}
			node = next
		}
	}
	if len(root) == 0 {
		return nil
	}
	return arrayify(root)
}

func arrayify(v any) any {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return v
	}
	for k, child := range m {
		m[k] = arrayify(child)
	}

	indexes := make([]int, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || strconv.Itoa(n) != k {
			return m
		}
		indexes = append(indexes, n)
	}
	sort.Ints(indexes)
	for i, n := range indexes {
		if i != n {
			return m
		}
	}
	list := make([]any, len(indexes))
	for _, n := range indexes {
		list[n] = m[strconv.Itoa(n)]
	}
	return list
}
