package intent_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intent "github.com/abakum/android-intent"
	"github.com/abakum/android-intent/internal/fakejvm"
)

func TestShareTextThroughChooser(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.New(jvm, intent.ActionSend).
		WithType("text/plain").
		WithExtra(intent.ExtraText, "Hello World!").
		IntoChooser().
		StartActivity()
	require.NoError(t, err)

	started := jvm.Started()
	require.Len(t, started, 1)
	chooser := started[0]
	assert.Equal(t, "android.intent.action.CHOOSER", chooser.Action)
	assert.Empty(t, chooser.Title)
	require.NotNil(t, chooser.Target)
	assert.Equal(t, "android.intent.action.SEND", chooser.Target.Action)
	assert.Equal(t, "text/plain", chooser.Target.Type)
	assert.Equal(t, "Hello World!", chooser.Target.Extras[intent.ExtraText])

	assert.Zero(t, jvm.LocalRefs(), "local refs leaked")
	assert.Zero(t, jvm.BadDeletes())
}

func TestStartActivityWithRequestedAction(t *testing.T) {
	jvm := fakejvm.New()

	require.NoError(t, intent.New(jvm, intent.ActionView).StartActivity())

	assert.Equal(t, 1, jvm.Count("startActivity"))
	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "android.intent.action.VIEW", started[0].Action)
	assert.Nil(t, started[0].Target)
}

func TestNewWithURI(t *testing.T) {
	jvm := fakejvm.New()

	require.NoError(t, intent.NewWithURI(jvm, intent.ActionView, "https://example.com/a?b=c").StartActivity())

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "https://example.com/a?b=c", started[0].Data)
	assert.Zero(t, jvm.LocalRefs())
}

func TestInvalidURIShortCircuits(t *testing.T) {
	jvm := fakejvm.New()

	b := intent.NewWithURI(jvm, intent.ActionView, "://no-scheme")
	require.ErrorIs(t, b.Err(), intent.ErrConstruction)
	strings := jvm.Count("NewString")

	b = b.WithExtra("k", "v")
	assert.Equal(t, strings, jvm.Count("NewString"), "WithExtra issued foreign calls after failure")
	assert.Zero(t, jvm.Count("putExtra"))

	err := b.StartActivity()
	assert.ErrorIs(t, err, intent.ErrConstruction)
	assert.Zero(t, jvm.Count("startActivity"))
	assert.Zero(t, jvm.LocalRefs())
}

func TestFirstFailureWins(t *testing.T) {
	jvm := fakejvm.New()
	boom := errors.New("boom")
	jvm.Fail("setType", boom)
	jvm.Fail("putExtra", errors.New("later"))

	b := intent.New(jvm, intent.ActionSend).
		WithType("text/plain").
		WithExtra(intent.ExtraText, "x").
		SetClassName("com.example", "com.example.Target").
		IntoChooserWithTitle("title")

	err := b.StartActivity()
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, intent.ErrConstruction)
	assert.Equal(t, intent.ConstructionFailure, intent.KindOf(err))

	var ie *intent.Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "setType", ie.Op)

	for _, m := range []string{"putExtra", "setClassName", "createChooser", "startActivity"} {
		assert.Zero(t, jvm.Count(m), m)
	}
	assert.Zero(t, jvm.LocalRefs())
}

func TestUnknownActionIsConstructionFailure(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.New(jvm, intent.Action("ACTION_NOPE")).StartActivity()
	require.ErrorIs(t, err, intent.ErrConstruction)
	assert.ErrorIs(t, err, fakejvm.ErrNoSuchField)
	assert.Empty(t, jvm.Started())
}

func TestMissingClassIsConstructionFailure(t *testing.T) {
	jvm := fakejvm.New()
	jvm.Fail("FindClass", fakejvm.ErrNoSuchClass)

	err := intent.New(jvm, intent.ActionView).WithType("text/plain").StartActivity()
	require.ErrorIs(t, err, intent.ErrConstruction)
	assert.ErrorIs(t, err, fakejvm.ErrNoSuchClass)
}

func TestExtraLastWriteWins(t *testing.T) {
	jvm := fakejvm.New()

	in, err := intent.New(jvm, intent.ActionSend).
		WithExtra("k", "v1").
		WithExtra("k", "v2").
		Build()
	require.NoError(t, err)
	defer in.Release()

	v, err := in.StringExtra("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestExtraRoundTrip(t *testing.T) {
	jvm := fakejvm.New()

	in, err := intent.New(jvm, intent.ActionSend).WithExtra("k", "v").Build()
	require.NoError(t, err)
	defer in.Release()

	v, err := in.StringExtra("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	action, err := in.Action()
	require.NoError(t, err)
	assert.Equal(t, "android.intent.action.SEND", action)
}

func TestChooserReplacesIdentity(t *testing.T) {
	jvm := fakejvm.New()

	in, err := intent.New(jvm, intent.ActionSend).WithType("text/plain").Build()
	require.NoError(t, err)
	before, err := jvm.Inspect(in.Ref())
	require.NoError(t, err)

	require.NoError(t, intent.FromIntent(in).IntoChooserWithTitle("Share via").StartActivity())

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.NotEqual(t, before.ID, started[0].ID)
	assert.Equal(t, "Share via", started[0].Title)
	require.NotNil(t, started[0].Target)
	assert.Equal(t, before.ID, started[0].Target.ID)
	assert.Zero(t, jvm.LocalRefs())
}

func TestSetClassNameAndData(t *testing.T) {
	jvm := fakejvm.New()

	err := intent.New(jvm, intent.ActionView).
		WithData("content://media/1").
		SetClassName("com.example", "com.example.Viewer").
		StartActivity()
	require.NoError(t, err)

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "content://media/1", started[0].Data)
	assert.Equal(t, "com.example", started[0].Package)
	assert.Equal(t, "com.example.Viewer", started[0].Class)
}

func TestStartActivityWithoutActivity(t *testing.T) {
	jvm := fakejvm.New()
	jvm.NoActivity()

	err := intent.New(jvm, intent.ActionView).StartActivity()
	require.ErrorIs(t, err, intent.ErrDispatch)
	assert.ErrorIs(t, err, intent.ErrNullObject)
	assert.Zero(t, jvm.LocalRefs())
}

func TestStartActivityRejected(t *testing.T) {
	jvm := fakejvm.New()
	jvm.Fail("startActivity", errors.New("android.content.ActivityNotFoundException"))

	err := intent.New(jvm, intent.ActionView).StartActivity()
	require.ErrorIs(t, err, intent.ErrDispatch)
	assert.Equal(t, intent.DispatchFailure, intent.KindOf(err))
	assert.Zero(t, jvm.LocalRefs())
}

func TestEmptyStrings(t *testing.T) {
	jvm := fakejvm.New()

	ref, err := intent.EmptyString(jvm)
	require.NoError(t, err)
	s, err := jvm.GoString(ref)
	require.NoError(t, err)
	assert.Empty(t, s)
	jvm.DeleteLocalRef(ref)

	err = intent.New(jvm, intent.ActionSend).
		WithType("").
		WithExtra(intent.ExtraText, "").
		IntoChooserWithTitle("").
		StartActivity()
	require.NoError(t, err)

	started := jvm.Started()
	require.Len(t, started, 1)
	require.NotNil(t, started[0].Target)
	text, ok := started[0].Target.Extras[intent.ExtraText]
	assert.True(t, ok)
	assert.Empty(t, text)
	assert.Zero(t, jvm.LocalRefs())
}

func TestConsumedAfterFailedDispatch(t *testing.T) {
	jvm := fakejvm.New()
	jvm.Fail("startActivity", errors.New("android.content.ActivityNotFoundException"))

	b := intent.New(jvm, intent.ActionView)
	require.ErrorIs(t, b.StartActivity(), intent.ErrDispatch)

	err := b.StartActivity()
	require.ErrorIs(t, err, intent.ErrConsumed)
	assert.Equal(t, intent.ConstructionFailure, intent.KindOf(err))
	assert.ErrorIs(t, b.Err(), intent.ErrConsumed)
	assert.Equal(t, 1, jvm.Count("startActivity"))
}

func TestBuilderIsSingleUse(t *testing.T) {
	jvm := fakejvm.New()

	b := intent.New(jvm, intent.ActionView)
	require.NoError(t, b.StartActivity())

	err := b.StartActivity()
	assert.ErrorIs(t, err, intent.ErrConsumed)
	assert.ErrorIs(t, err, intent.ErrConstruction)
	_, err = b.Build()
	assert.ErrorIs(t, err, intent.ErrConsumed)
	assert.Len(t, jvm.Started(), 1)

	b = intent.NewWithURI(jvm, intent.ActionView, "://no-scheme")
	_, err = b.Build()
	require.Error(t, err)
	assert.NotErrorIs(t, err, intent.ErrConsumed)
	_, err = b.Build()
	assert.ErrorIs(t, err, intent.ErrConsumed)

	b = intent.New(jvm, intent.ActionView)
	in, err := b.Build()
	require.NoError(t, err)
	in.Release()
	assert.ErrorIs(t, b.WithType("text/plain").StartActivity(), intent.ErrConsumed)
	assert.Zero(t, jvm.LocalRefs())
}
