package gfx

// RegistrySize is the number of extended slots; slot i is surfaced as
// byte code 128+i.
const RegistrySize = 128

// FallbackCode is drawn for anything that cannot be resolved.
const FallbackCode byte = '?'

// Registry maps byte codes 128..255 to code points. It is append-only.
type Registry struct {
	runes [RegistrySize]rune
	n     int
}

// Register appends r to the next free slot. It returns false, and drops r,
// once all slots are taken.
func (reg *Registry) Register(r rune) bool {
	if reg.n >= RegistrySize {
		return false
	}
	reg.runes[reg.n] = r
	reg.n++
	return true
}

// Resolve returns the byte code of the first slot holding r, or
// FallbackCode.
func (reg *Registry) Resolve(r rune) byte {
	for i := 0; i < reg.n; i++ {
		if reg.runes[i] == r {
			return byte(RegistrySize + i)
		}
	}
	return FallbackCode
}

// Lookup returns the code point registered for an extended byte code.
func (reg *Registry) Lookup(code byte) (rune, bool) {
	if code < RegistrySize {
		return 0, false
	}
	slot := int(code) - RegistrySize
	if slot >= reg.n {
		return 0, false
	}
	return reg.runes[slot], true
}

func (reg *Registry) Len() int { return reg.n }

// AddExtraCharacter registers r with the context's registry.
func (ctx *Context) AddExtraCharacter(r rune) bool {
	if !ctx.registry.Register(r) {
		ctx.logger.Infof("gfx", "extended character %q dropped: registry full", r)
		return false
	}
	return true
}

// CharFor maps a rune to the byte code the text engine draws: ASCII as is,
// registered runes to their slot, anything else to FallbackCode.
func (ctx *Context) CharFor(r rune) byte {
	if r >= 0 && r < RegistrySize {
		return byte(r)
	}
	return ctx.registry.Resolve(r)
}
