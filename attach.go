package intent

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2/driver"
	log "github.com/schollz/logger"
)

// Context is the process-wide platform context: the JavaVM and the current
// activity, as raw pointers.
type Context struct {
	VM       uintptr
	Activity uintptr
}

func (c Context) valid() error {
	if c.VM == 0 {
		return fmt.Errorf("%w: nil JavaVM", ErrNullObject)
	}
	if c.Activity == 0 {
		return fmt.Errorf("%w: nil activity", ErrNullObject)
	}
	return nil
}

// Do runs fn with the Env of the app's main thread, taken from fyne's
// native context. The Env must not escape fn. The context is also recorded
// for AttachCurrent.
func Do(fn func(Env) error) error {
	var attached bool
	err := driver.RunNative(func(ctx any) error {
		ac, ok := ctx.(*driver.AndroidContext)
		if !ok {
			return &Error{Kind: AttachFailure, Op: "runNative", Err: fmt.Errorf("%w: %T", ErrUnsupported, ctx)}
		}
		SetContext(Context{VM: ac.VM, Activity: ac.Ctx})
		env, err := nativeEnv(ac.VM, ac.Env, ac.Ctx)
		if err != nil {
			return wrap(AttachFailure, "runNative", err)
		}
		attached = true
		return fn(env)
	})
	if err != nil && !attached {
		return wrap(AttachFailure, "runNative", err)
	}
	return err
}

// Attach runs fn with the calling OS thread attached to the VM in ctx.
// A thread that is already attached is reused and left attached.
func Attach(ctx Context, fn func(Env) error) error {
	if err := ctx.valid(); err != nil {
		return &Error{Kind: AttachFailure, Op: "attach", Err: err}
	}
	return attachThread(ctx, fn)
}

var (
	contextMu sync.RWMutex
	current   Context
)

// SetContext records the process-wide platform context for AttachCurrent.
// Do calls it; apps embedding the VM some other way call it themselves.
func SetContext(ctx Context) {
	contextMu.Lock()
	current = ctx
	contextMu.Unlock()
}

// CurrentContext returns what SetContext stored.
func CurrentContext() Context {
	contextMu.RLock()
	defer contextMu.RUnlock()
	return current
}

// AttachCurrent is Attach with the context set by SetContext.
func AttachCurrent(fn func(Env) error) error {
	return Attach(CurrentContext(), fn)
}

// SetLogLevel sets the package log level ("trace", "debug", "info", ...).
func SetLogLevel(level string) {
	log.SetLevel(level)
}
