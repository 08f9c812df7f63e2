// Package intent builds, dispatches and reads android.content.Intent objects
// from Go through JNI.
//
// All foreign calls go through an Env, which is only valid inside the
// callback that produced it (see Do, Attach and Scoped):
//
//	err := intent.Do(func(env intent.Env) error {
//		return intent.New(env, intent.ActionSend).
//			WithType("text/plain").
//			WithExtra(intent.ExtraText, "Hello World!").
//			IntoChooser().
//			StartActivity()
//	})
//
// The package logs through github.com/schollz/logger, whose global level
// defaults to trace. Call SetLogLevel (or logger.SetLevel) at startup to
// quiet it; only chain failures and dispatches are logged, at debug level.
package intent

// Ref is a JNI object reference. NullRef is Java null.
type Ref uintptr

const NullRef Ref = 0

// Value is one JNI argument slot.
type Value uint64

func RefValue(r Ref) Value { return Value(r) }

func IntValue(i int32) Value { return Value(uint32(i)) }

// Env is a runtime environment attached to the calling thread.
// Signatures are JNI type descriptors and must match the host exactly.
// A pending Java exception or an unresolved class, field or method is
// reported as an error.
type Env interface {
	FindClass(name string) (Ref, error)
	GetStaticObjectField(class Ref, name, sig string) (Ref, error)
	NewObject(class Ref, sig string, args ...Value) (Ref, error)

	CallObjectMethod(obj Ref, name, sig string, args ...Value) (Ref, error)
	CallStaticObjectMethod(class Ref, name, sig string, args ...Value) (Ref, error)
	CallVoidMethod(obj Ref, name, sig string, args ...Value) error
	CallIntMethod(obj Ref, name, sig string, args ...Value) (int32, error)

	NewString(s string) (Ref, error)
	GoString(str Ref) (string, error)

	NewGlobalRef(obj Ref) (Ref, error)
	DeleteLocalRef(obj Ref)
	DeleteGlobalRef(obj Ref)

	// Context returns the current activity.
	Context() Ref
}
