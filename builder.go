package intent

import (
	log "github.com/schollz/logger"
)

// Builder configures one Intent through a chain of calls. The first failure
// is kept and every later call becomes a no-op, so the chain can be written
// without checks and the error read at the end:
//
//	err := intent.New(env, intent.ActionSend).
//		WithType("text/plain").
//		WithExtra(intent.ExtraText, "Hello World!").
//		IntoChooser().
//		StartActivity()
//
// A Builder is single use: StartActivity and Build consume it.
type Builder struct {
	env    Env
	intent *Intent
	err    error
}

// New creates an Intent for the named action constant.
func New(env Env, action Action) *Builder {
	return fromFunc(env, "new", func() (Ref, error) {
		class, err := env.FindClass(classIntent)
		if err != nil {
			return NullRef, err
		}
		defer env.DeleteLocalRef(class)
		name, err := actionField(env, class, action)
		if err != nil {
			return NullRef, err
		}
		defer env.DeleteLocalRef(name)
		return env.NewObject(class, sigIntentAction, RefValue(name))
	})
}

// NewWithURI creates an Intent for the named action with uri as its data.
// The URI is parsed by the host; a rejected URI fails the chain.
func NewWithURI(env Env, action Action, uri string) *Builder {
	return fromFunc(env, "newWithURI", func() (Ref, error) {
		parsed, err := parseURI(env, uri)
		if err != nil {
			return NullRef, err
		}
		defer env.DeleteLocalRef(parsed)
		class, err := env.FindClass(classIntent)
		if err != nil {
			return NullRef, err
		}
		defer env.DeleteLocalRef(class)
		name, err := actionField(env, class, action)
		if err != nil {
			return NullRef, err
		}
		defer env.DeleteLocalRef(name)
		return env.NewObject(class, sigIntentActionURI, RefValue(name), RefValue(parsed))
	})
}

// FromIntent continues configuring an existing Intent. The Builder takes
// ownership of it.
func FromIntent(in *Intent) *Builder {
	return &Builder{env: in.env, intent: in}
}

func fromFunc(env Env, op string, f func() (Ref, error)) *Builder {
	b := &Builder{env: env}
	ref, err := f()
	if err == nil && ref == NullRef {
		err = ErrNullObject
	}
	if err != nil {
		b.fail(op, err)
		return b
	}
	b.intent = FromObject(env, ref)
	return b
}

// SetClassName makes the Intent explicit: only packageName/className will
// receive it.
func (b *Builder) SetClassName(packageName, className string) *Builder {
	return b.andThen("setClassName", func(obj Ref) error {
		return withString(b.env, packageName, func(pkg Ref) error {
			return withString(b.env, className, func(cls Ref) error {
				return b.callSelf(obj, "setClassName", sigSetClassName, RefValue(pkg), RefValue(cls))
			})
		})
	})
}

// WithExtra adds a string extra. A later value for the same key replaces
// the earlier one.
func (b *Builder) WithExtra(key, value string) *Builder {
	return b.andThen("putExtra", func(obj Ref) error {
		return withString(b.env, key, func(k Ref) error {
			return withString(b.env, value, func(v Ref) error {
				return b.callSelf(obj, "putExtra", sigPutExtra, RefValue(k), RefValue(v))
			})
		})
	})
}

// WithType sets an explicit MIME type.
func (b *Builder) WithType(mime string) *Builder {
	return b.andThen("setType", func(obj Ref) error {
		return withString(b.env, mime, func(t Ref) error {
			return b.callSelf(obj, "setType", sigSetType, RefValue(t))
		})
	})
}

// WithData sets the data URI. Note the host clears the MIME type when data
// is set, so call WithType afterwards if both are needed.
func (b *Builder) WithData(uri string) *Builder {
	return b.andThen("setData", func(obj Ref) error {
		parsed, err := parseURI(b.env, uri)
		if err != nil {
			return err
		}
		defer b.env.DeleteLocalRef(parsed)
		return b.callSelf(obj, "setData", sigSetData, RefValue(parsed))
	})
}

// IntoChooser wraps the Intent in an ACTION_CHOOSER Intent with no title.
func (b *Builder) IntoChooser() *Builder {
	return b.intoChooser("", false)
}

// IntoChooserWithTitle wraps the Intent in an ACTION_CHOOSER Intent titled
// title.
func (b *Builder) IntoChooserWithTitle(title string) *Builder {
	return b.intoChooser(title, true)
}

func (b *Builder) intoChooser(title string, titled bool) *Builder {
	return b.andThen("createChooser", func(obj Ref) error {
		class, err := b.env.FindClass(classIntent)
		if err != nil {
			return err
		}
		defer b.env.DeleteLocalRef(class)

		create := func(t Ref) error {
			chooser, err := b.env.CallStaticObjectMethod(class, "createChooser", sigCreateChooser, RefValue(obj), RefValue(t))
			if err != nil {
				return err
			}
			if chooser == NullRef {
				return ErrNullObject
			}
			// The chooser holds the target itself; our reference can go.
			b.intent.obj.replace(chooser)
			return nil
		}
		if !titled {
			return create(NullRef)
		}
		return withString(b.env, title, create)
	})
}

// StartActivity dispatches the Intent from the current activity and
// consumes the Builder. It reports the first failure of the chain, if any;
// any later terminal call reports ErrConsumed.
func (b *Builder) StartActivity() error {
	err := b.startActivity()
	b.consume("startActivity")
	return err
}

func (b *Builder) startActivity() error {
	if b.err != nil {
		return b.err
	}
	activity := b.env.Context()
	if activity == NullRef {
		return b.fail("startActivity", &Error{Kind: DispatchFailure, Op: "startActivity", Err: ErrNullObject})
	}
	err := b.env.CallVoidMethod(activity, "startActivity", sigStartActivity, RefValue(b.intent.Ref()))
	if err != nil {
		return b.fail("startActivity", wrap(DispatchFailure, "startActivity", err))
	}
	log.Debugf("started activity for intent %#x", b.intent.Ref())
	return nil
}

// Build consumes the Builder and hands its Intent to the caller, who must
// release it.
func (b *Builder) Build() (*Intent, error) {
	if err := b.err; err != nil {
		b.consume("build")
		return nil, err
	}
	in := b.intent
	b.intent = nil
	b.consume("build")
	return in, nil
}

// Err returns the first failure of the chain, or ErrConsumed once a
// terminal call has run.
func (b *Builder) Err() error { return b.err }

func (b *Builder) andThen(op string, f func(obj Ref) error) *Builder {
	if b.err != nil {
		return b
	}
	if err := f(b.intent.Ref()); err != nil {
		b.fail(op, err)
	}
	return b
}

// callSelf invokes a setter that returns the Intent itself and drops the
// returned reference.
func (b *Builder) callSelf(obj Ref, name, sig string, args ...Value) error {
	self, err := b.env.CallObjectMethod(obj, name, sig, args...)
	if err != nil {
		return err
	}
	if self != NullRef {
		b.env.DeleteLocalRef(self)
	}
	return nil
}

func (b *Builder) fail(op string, err error) error {
	b.err = wrap(ConstructionFailure, op, err)
	log.Debugf("intent builder: %v", b.err)
	if b.intent != nil {
		b.intent.Release()
		b.intent = nil
	}
	return b.err
}

func (b *Builder) consume(op string) {
	if b.intent != nil {
		b.intent.Release()
		b.intent = nil
	}
	b.err = &Error{Kind: ConstructionFailure, Op: op, Err: ErrConsumed}
}

func actionField(env Env, class Ref, action Action) (Ref, error) {
	name, err := env.GetStaticObjectField(class, string(action), sigString)
	if err != nil {
		return NullRef, err
	}
	if name == NullRef {
		return NullRef, ErrNullObject
	}
	return name, nil
}

func parseURI(env Env, uri string) (Ref, error) {
	class, err := env.FindClass(classURI)
	if err != nil {
		return NullRef, err
	}
	defer env.DeleteLocalRef(class)
	var parsed Ref
	err = withString(env, uri, func(s Ref) error {
		parsed, err = env.CallStaticObjectMethod(class, "parse", sigURIParse, RefValue(s))
		return err
	})
	if err != nil {
		return NullRef, err
	}
	if parsed == NullRef {
		return NullRef, ErrNullObject
	}
	return parsed, nil
}
