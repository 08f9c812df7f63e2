package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intent "github.com/abakum/android-intent"
	"github.com/abakum/android-intent/internal/fakejvm"
)

func TestScopedReleasesLocals(t *testing.T) {
	jvm := fakejvm.New()
	globals := jvm.GlobalRefs()

	var kept *intent.Intent
	err := intent.Scoped(jvm, 16, func(env intent.Env) error {
		in, err := intent.New(env, intent.ActionView).WithType("text/plain").Build()
		if err != nil {
			return err
		}
		// Left for the frame to drop.
		_, err = env.NewString("leak")
		if err != nil {
			return err
		}
		kept, err = in.Retain()
		return err
	})
	require.NoError(t, err)

	assert.Zero(t, jvm.LocalRefs())
	assert.Equal(t, globals+1, jvm.GlobalRefs())

	action, err := kept.Action()
	require.NoError(t, err)
	assert.Equal(t, "android.intent.action.VIEW", action)
	kept.Release()
	assert.Equal(t, globals, jvm.GlobalRefs())
}

func TestRetainedIntentBuildsAfterFrame(t *testing.T) {
	jvm := fakejvm.New()

	var kept *intent.Intent
	err := intent.Scoped(jvm, 16, func(env intent.Env) error {
		in, err := intent.New(env, intent.ActionSend).Build()
		if err != nil {
			return err
		}
		defer in.Release()
		kept, err = in.Retain()
		return err
	})
	require.NoError(t, err)

	in, err := intent.FromIntent(kept).
		WithExtra(intent.ExtraText, "later").
		Build()
	require.NoError(t, err)
	text, err := in.StringExtra(intent.ExtraText)
	require.NoError(t, err)
	assert.Equal(t, "later", text)
	in.Release()

	assert.Zero(t, jvm.LocalRefs())
	assert.Zero(t, jvm.BadDeletes())
}

func TestEscapedFrameEnv(t *testing.T) {
	jvm := fakejvm.New()

	var escaped intent.Env
	require.NoError(t, intent.Scoped(jvm, 4, func(env intent.Env) error {
		escaped = env
		return nil
	}))

	var ref intent.Ref
	require.NotPanics(t, func() {
		var err error
		ref, err = escaped.NewString("after")
		require.NoError(t, err)
	})
	escaped.DeleteLocalRef(ref)
	assert.Zero(t, jvm.LocalRefs())
}

func TestScopedCapacity(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.Scoped(jvm, 1, func(env intent.Env) error {
		_, err := env.NewString("a")
		require.NoError(t, err)
		_, err = env.NewString("b")
		return err
	})
	require.ErrorIs(t, err, intent.ErrFrameFull)
	assert.Zero(t, jvm.LocalRefs())
}

func TestScopedBuilderOverflow(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.Scoped(jvm, 2, func(env intent.Env) error {
		return intent.New(env, intent.ActionSend).StartActivity()
	})
	require.ErrorIs(t, err, intent.ErrFrameFull)
	assert.ErrorIs(t, err, intent.ErrConstruction)
	assert.Empty(t, jvm.Started())
	assert.Zero(t, jvm.LocalRefs())
}

func TestScopedDispatch(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.Scoped(jvm, 8, func(env intent.Env) error {
		return intent.New(env, intent.ActionSend).
			WithType("text/plain").
			WithExtra(intent.ExtraText, "Hello World!").
			IntoChooser().
			StartActivity()
	})
	require.NoError(t, err)
	assert.Len(t, jvm.Started(), 1)
	assert.Zero(t, jvm.LocalRefs())
	assert.Zero(t, jvm.BadDeletes())
}
