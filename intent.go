package intent

// Intent is a read-side view of an android.content.Intent.
type Intent struct {
	env Env
	obj *Object
}

// FromObject wraps an existing Intent reference. The Intent takes ownership
// of ref.
func FromObject(env Env, ref Ref) *Intent {
	return &Intent{env: env, obj: newObject(env, ref)}
}

// Received returns the Intent the current activity was started with.
func Received(env Env) (*Intent, error) {
	activity := env.Context()
	if activity == NullRef {
		return nil, &Error{Kind: QueryFailure, Op: "getIntent", Err: ErrNullObject}
	}
	ref, err := env.CallObjectMethod(activity, "getIntent", sigGetIntent)
	if err != nil {
		return nil, wrap(QueryFailure, "getIntent", err)
	}
	if ref == NullRef {
		return nil, &Error{Kind: QueryFailure, Op: "getIntent", Err: ErrNullObject}
	}
	return FromObject(env, ref), nil
}

func (i *Intent) Ref() Ref { return i.obj.Ref() }

// Object exposes the owned reference.
func (i *Intent) Object() *Object { return i.obj }

// Retain returns a copy backed by a global reference.
func (i *Intent) Retain() (*Intent, error) {
	g, err := i.obj.Retain()
	if err != nil {
		return nil, wrap(QueryFailure, "retain", err)
	}
	return &Intent{env: g.env, obj: g}, nil
}

func (i *Intent) Release() { i.obj.Release() }

// Action returns getAction().
func (i *Intent) Action() (string, error) {
	return i.queryString("getAction", sigGetAction)
}

// DataString returns getDataString().
func (i *Intent) DataString() (string, error) {
	return i.queryString("getDataString", sigGetDataString)
}

// StringExtra returns getStringExtra(name). A missing extra is a
// QueryFailure wrapping ErrAbsent.
func (i *Intent) StringExtra(name string) (string, error) {
	v, ok, err := i.LookupStringExtra(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &Error{Kind: QueryFailure, Op: "getStringExtra", Err: ErrAbsent}
	}
	return v, nil
}

// LookupStringExtra is StringExtra with a missing extra reported as ok=false.
func (i *Intent) LookupStringExtra(name string) (string, bool, error) {
	if i.obj.Ref() == NullRef {
		return "", false, &Error{Kind: QueryFailure, Op: "getStringExtra", Err: ErrNullObject}
	}
	var (
		value string
		ok    bool
	)
	err := withString(i.env, name, func(key Ref) error {
		ref, err := i.env.CallObjectMethod(i.obj.Ref(), "getStringExtra", sigGetStringExtra, RefValue(key))
		if err != nil || ref == NullRef {
			return err
		}
		defer i.env.DeleteLocalRef(ref)
		value, err = i.env.GoString(ref)
		ok = err == nil
		return err
	})
	if err != nil {
		return "", false, wrap(QueryFailure, "getStringExtra", err)
	}
	return value, ok, nil
}

// StreamURIs returns the URIs attached under EXTRA_STREAM, either a single
// parcelable (ACTION_SEND) or a list of them (ACTION_SEND_MULTIPLE).
func (i *Intent) StreamURIs() ([]string, error) {
	if i.obj.Ref() == NullRef {
		return nil, &Error{Kind: QueryFailure, Op: "getParcelableExtra", Err: ErrNullObject}
	}
	var uris []string
	err := withString(i.env, ExtraStream, func(key Ref) error {
		single, err := i.env.CallObjectMethod(i.obj.Ref(), "getParcelableExtra", sigGetParcelableExtra, RefValue(key))
		if err != nil {
			return err
		}
		if single != NullRef {
			defer i.env.DeleteLocalRef(single)
			s, err := objectString(i.env, single)
			if err != nil {
				return err
			}
			uris = append(uris, s)
			return nil
		}

		list, err := i.env.CallObjectMethod(i.obj.Ref(), "getParcelableArrayListExtra", sigGetParcelableArrayListExtra, RefValue(key))
		if err != nil || list == NullRef {
			return err
		}
		defer i.env.DeleteLocalRef(list)
		size, err := i.env.CallIntMethod(list, "size", sigListSize)
		if err != nil {
			return err
		}
		for n := int32(0); n < size; n++ {
			item, err := i.env.CallObjectMethod(list, "get", sigListGet, IntValue(n))
			if err != nil {
				return err
			}
			if item == NullRef {
				continue
			}
			s, err := objectString(i.env, item)
			i.env.DeleteLocalRef(item)
			if err != nil {
				return err
			}
			uris = append(uris, s)
		}
		return nil
	})
	if err != nil {
		return nil, wrap(QueryFailure, "getParcelableExtra", err)
	}
	return uris, nil
}

func (i *Intent) queryString(name, sig string) (string, error) {
	if i.obj.Ref() == NullRef {
		return "", &Error{Kind: QueryFailure, Op: name, Err: ErrNullObject}
	}
	ref, err := i.env.CallObjectMethod(i.obj.Ref(), name, sig)
	if err != nil {
		return "", wrap(QueryFailure, name, err)
	}
	if ref == NullRef {
		return "", &Error{Kind: QueryFailure, Op: name, Err: ErrAbsent}
	}
	defer i.env.DeleteLocalRef(ref)
	s, err := i.env.GoString(ref)
	if err != nil {
		return "", wrap(QueryFailure, name, err)
	}
	return s, nil
}

// withString runs fn with a temporary java.lang.String holding s.
func withString(env Env, s string, fn func(Ref) error) error {
	ref, err := env.NewString(s)
	if err != nil {
		return err
	}
	defer env.DeleteLocalRef(ref)
	return fn(ref)
}

// emptyString constructs "" with new String(), for hosts whose string
// conversion maps the empty string to null.
func emptyString(env Env) (Ref, error) {
	class, err := env.FindClass(classString)
	if err != nil {
		return NullRef, err
	}
	defer env.DeleteLocalRef(class)
	ref, err := env.NewObject(class, sigNoArgs)
	if err != nil {
		return NullRef, err
	}
	if ref == NullRef {
		return NullRef, ErrNullObject
	}
	return ref, nil
}

func objectString(env Env, obj Ref) (string, error) {
	ref, err := env.CallObjectMethod(obj, "toString", sigToString)
	if err != nil {
		return "", err
	}
	if ref == NullRef {
		return "", ErrNullObject
	}
	defer env.DeleteLocalRef(ref)
	return env.GoString(ref)
}
