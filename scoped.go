package intent

import "sync"

// Scoped runs fn with an Env that tracks the local references created
// inside it. At most capacity may be live at once; the rest fail with
// ErrFrameFull. Every reference still live when fn returns is deleted, so
// only global references (NewGlobalRef, Object.Retain) survive the call.
func Scoped(env Env, capacity int, fn func(Env) error) error {
	f := &frame{Env: env, capacity: capacity, live: make(map[Ref]struct{})}
	defer f.pop()
	return fn(f)
}

type frame struct {
	Env
	capacity int

	mu   sync.Mutex
	live map[Ref]struct{}
}

func (f *frame) track(ref Ref, err error) (Ref, error) {
	if err != nil || ref == NullRef {
		return ref, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.live == nil {
		// Popped: the Env escaped its callback, nothing left to bracket.
		return ref, nil
	}
	if len(f.live) >= f.capacity {
		f.Env.DeleteLocalRef(ref)
		return NullRef, ErrFrameFull
	}
	f.live[ref] = struct{}{}
	return ref, nil
}

func (f *frame) pop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ref := range f.live {
		f.Env.DeleteLocalRef(ref)
	}
	f.live = nil
}

// unscoped returns the Env beneath any frames, for references that outlive
// them.
func unscoped(env Env) Env {
	for {
		f, ok := env.(*frame)
		if !ok {
			return env
		}
		env = f.Env
	}
}

func (f *frame) FindClass(name string) (Ref, error) {
	return f.track(f.Env.FindClass(name))
}

func (f *frame) GetStaticObjectField(class Ref, name, sig string) (Ref, error) {
	return f.track(f.Env.GetStaticObjectField(class, name, sig))
}

func (f *frame) NewObject(class Ref, sig string, args ...Value) (Ref, error) {
	return f.track(f.Env.NewObject(class, sig, args...))
}

func (f *frame) CallObjectMethod(obj Ref, name, sig string, args ...Value) (Ref, error) {
	return f.track(f.Env.CallObjectMethod(obj, name, sig, args...))
}

func (f *frame) CallStaticObjectMethod(class Ref, name, sig string, args ...Value) (Ref, error) {
	return f.track(f.Env.CallStaticObjectMethod(class, name, sig, args...))
}

func (f *frame) NewString(s string) (Ref, error) {
	return f.track(f.Env.NewString(s))
}

func (f *frame) DeleteLocalRef(ref Ref) {
	f.mu.Lock()
	delete(f.live, ref)
	f.mu.Unlock()
	f.Env.DeleteLocalRef(ref)
}
