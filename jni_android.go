//go:build android

package intent

import (
	"fmt"
	"unsafe"

	"git.wow.st/gmp/jni"
	log "github.com/schollz/logger"
)

// jniEnv is Env over a real JNIEnv. gmp/jni panics on a pending Java
// exception for lookups and returns it as an error for calls; both come out
// of here as errors.
type jniEnv struct {
	env      jni.Env
	activity Ref
}

func nativeEnv(vm, env, ctx uintptr) (Env, error) {
	if vm == 0 || env == 0 {
		return nil, fmt.Errorf("%w: nil JNIEnv", ErrNullObject)
	}
	return &jniEnv{env: jni.EnvFor(env), activity: Ref(ctx)}, nil
}

func attachThread(ctx Context, fn func(Env) error) (err error) {
	attached := false
	defer func() {
		if r := recover(); r != nil {
			if attached {
				panic(r)
			}
			err = &Error{Kind: AttachFailure, Op: "attach", Err: fmt.Errorf("%v", r)}
		}
	}()
	return jni.Do(jni.JVMFor(ctx.VM), func(env jni.Env) error {
		attached = true
		log.Tracef("attached to vm %#x", ctx.VM)
		return fn(&jniEnv{env: env, activity: Ref(ctx.Activity)})
	})
}

func object(r Ref) jni.Object { return jni.Object(unsafe.Pointer(r)) }

func class(r Ref) jni.Class { return jni.Class(unsafe.Pointer(r)) }

func ref(o jni.Object) Ref { return Ref(uintptr(unsafe.Pointer(o))) }

func values(args []Value) []jni.Value {
	out := make([]jni.Value, len(args))
	for i, a := range args {
		out[i] = jni.Value(a)
	}
	return out
}

func protect(op string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", op, r)
		}
	}()
	return f()
}

func (e *jniEnv) Context() Ref { return e.activity }

func (e *jniEnv) FindClass(name string) (r Ref, err error) {
	err = protect("FindClass "+name, func() error {
		r = ref(jni.Object(jni.FindClass(e.env, name)))
		return nil
	})
	if err == nil && r == NullRef {
		err = fmt.Errorf("class %s: %w", name, ErrNullObject)
	}
	return r, err
}

func (e *jniEnv) GetStaticObjectField(cls Ref, name, sig string) (r Ref, err error) {
	err = protect("GetStaticObjectField "+name, func() error {
		id := jni.GetStaticFieldID(e.env, class(cls), name, sig)
		r = ref(jni.GetStaticObjectField(e.env, class(cls), id))
		return nil
	})
	return r, err
}

func (e *jniEnv) NewObject(cls Ref, sig string, args ...Value) (r Ref, err error) {
	err = protect("NewObject "+sig, func() error {
		ctor := jni.GetMethodID(e.env, class(cls), "<init>", sig)
		o, err := jni.NewObject(e.env, class(cls), ctor, values(args)...)
		r = ref(o)
		return err
	})
	return r, err
}

func (e *jniEnv) methodID(obj Ref, name, sig string) jni.MethodID {
	cls := jni.GetObjectClass(e.env, object(obj))
	defer jni.DeleteLocalRef(e.env, jni.Object(cls))
	return jni.GetMethodID(e.env, cls, name, sig)
}

func (e *jniEnv) CallObjectMethod(obj Ref, name, sig string, args ...Value) (r Ref, err error) {
	err = protect(name, func() error {
		o, err := jni.CallObjectMethod(e.env, object(obj), e.methodID(obj, name, sig), values(args)...)
		r = ref(o)
		return err
	})
	return r, err
}

func (e *jniEnv) CallStaticObjectMethod(cls Ref, name, sig string, args ...Value) (r Ref, err error) {
	err = protect(name, func() error {
		m := jni.GetStaticMethodID(e.env, class(cls), name, sig)
		o, err := jni.CallStaticObjectMethod(e.env, class(cls), m, values(args)...)
		r = ref(o)
		return err
	})
	return r, err
}

func (e *jniEnv) CallVoidMethod(obj Ref, name, sig string, args ...Value) error {
	return protect(name, func() error {
		return jni.CallVoidMethod(e.env, object(obj), e.methodID(obj, name, sig), values(args)...)
	})
}

func (e *jniEnv) CallIntMethod(obj Ref, name, sig string, args ...Value) (n int32, err error) {
	err = protect(name, func() error {
		v, err := jni.CallIntMethod(e.env, object(obj), e.methodID(obj, name, sig), values(args)...)
		n = int32(v)
		return err
	})
	return n, err
}

// NewString converts s. JavaString turns "" into null, so the empty string
// is built through its constructor instead.
func (e *jniEnv) NewString(s string) (r Ref, err error) {
	if s == "" {
		return emptyString(e)
	}
	err = protect("NewString", func() error {
		r = ref(jni.Object(jni.JavaString(e.env, s)))
		return nil
	})
	if err == nil && r == NullRef {
		err = fmt.Errorf("NewString: %w", ErrNullObject)
	}
	return r, err
}

func (e *jniEnv) GoString(str Ref) (s string, err error) {
	if str == NullRef {
		return "", ErrNullObject
	}
	err = protect("GoString", func() error {
		s = jni.GoString(e.env, jni.String(unsafe.Pointer(str)))
		return nil
	})
	return s, err
}

func (e *jniEnv) NewGlobalRef(obj Ref) (r Ref, err error) {
	err = protect("NewGlobalRef", func() error {
		r = ref(jni.NewGlobalRef(e.env, object(obj)))
		return nil
	})
	return r, err
}

func (e *jniEnv) DeleteLocalRef(obj Ref) {
	if obj != NullRef {
		jni.DeleteLocalRef(e.env, object(obj))
	}
}

func (e *jniEnv) DeleteGlobalRef(obj Ref) {
	if obj != NullRef {
		jni.DeleteGlobalRef(e.env, object(obj))
	}
}
