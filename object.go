package intent

// Object owns one reference into the runtime. A local Object must not
// outlive the Env callback that created it; Retain promotes it to a global
// reference that may.
type Object struct {
	env    Env
	ref    Ref
	global bool
}

func newObject(env Env, ref Ref) *Object {
	return &Object{env: env, ref: ref}
}

// Ref returns the raw reference. Only pass it back into the same Env.
func (o *Object) Ref() Ref {
	if o == nil {
		return NullRef
	}
	return o.ref
}

func (o *Object) Global() bool { return o != nil && o.global }

// Retain returns a new global reference to the same object. Both Objects
// must be released independently. The global Object is bound to the Env
// beneath any Scoped frame, so it stays usable after the frame ends.
func (o *Object) Retain() (*Object, error) {
	if o == nil || o.ref == NullRef {
		return nil, ErrNullObject
	}
	env := unscoped(o.env)
	g, err := env.NewGlobalRef(o.ref)
	if err != nil {
		return nil, err
	}
	if g == NullRef {
		return nil, ErrNullObject
	}
	return &Object{env: env, ref: g, global: true}, nil
}

// Release deletes the reference. Calling it twice is harmless.
func (o *Object) Release() {
	if o == nil || o.ref == NullRef {
		return
	}
	if o.global {
		o.env.DeleteGlobalRef(o.ref)
	} else {
		o.env.DeleteLocalRef(o.ref)
	}
	o.ref = NullRef
}

// replace swaps in ref, releasing the previous one.
func (o *Object) replace(ref Ref) {
	o.Release()
	o.ref = ref
	o.global = false
}
