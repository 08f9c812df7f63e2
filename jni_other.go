//go:build !android

package intent

import "fmt"

func nativeEnv(vm, env, ctx uintptr) (Env, error) {
	return nil, ErrUnsupported
}

func attachThread(ctx Context, fn func(Env) error) error {
	return &Error{Kind: AttachFailure, Op: "attach", Err: fmt.Errorf("%w: vm %#x", ErrUnsupported, ctx.VM)}
}
