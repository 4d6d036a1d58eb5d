package types

// Context holds the variable bindings templates render against. Values come
// from the user config, the repository's anvil.yaml, vars files, --var flags
// and interactive answers, merged in that order.
type Context map[string]any

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge overlays other onto c, overwriting existing keys.
func (c Context) Merge(other Context) {
	for k, v := range other {
		c[k] = v
	}
}
