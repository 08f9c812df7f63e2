package main

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intent "github.com/abakum/android-intent"
	"github.com/abakum/android-intent/internal/fakejvm"
)

func fakeDo(jvm *fakejvm.JVM) func(func(intent.Env) error) error {
	return func(fn func(intent.Env) error) error { return fn(jvm) }
}

func TestLoadOptionsDefaults(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	o := loadOptions(a.Preferences())
	assert.Equal(t, "Hello World!", o.Text)
	assert.Equal(t, "text/plain", o.Mime)
	assert.Equal(t, "info", o.LogLevel)
	assert.False(t, o.explicit())
}

func TestOptionsSaveLoad(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	want := shareOptions{
		Text:     "hi",
		Title:    "Send to",
		Mime:     "text/html",
		Package:  "com.example",
		Class:    "com.example.Receiver",
		LogLevel: "info",
	}
	want.save(a.Preferences())
	assert.Equal(t, want, loadOptions(a.Preferences()))
}

func TestShareThroughChooser(t *testing.T) {
	jvm := fakejvm.New()
	s := newSharer(time.Hour, fakeDo(jvm))

	require.NoError(t, s.share(shareOptions{Text: "Hello World!", Mime: "text/plain"}))

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "android.intent.action.CHOOSER", started[0].Action)
	require.NotNil(t, started[0].Target)
	assert.Equal(t, "Hello World!", started[0].Target.Extras[intent.ExtraText])
	assert.Equal(t, "text/plain", started[0].Target.Type)
	assert.Zero(t, jvm.LocalRefs())
}

func TestShareWithTitle(t *testing.T) {
	jvm := fakejvm.New()
	s := newSharer(time.Hour, fakeDo(jvm))

	require.NoError(t, s.share(shareOptions{Text: "x", Title: "Pick one", Mime: "text/plain"}))

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "Pick one", started[0].Title)
	assert.Equal(t, "Pick one", started[0].Target.Extras[intent.ExtraSubject])
}

func TestShareExplicitTarget(t *testing.T) {
	jvm := fakejvm.New()
	s := newSharer(time.Hour, fakeDo(jvm))

	o := shareOptions{Text: "x", Mime: "text/plain", Package: "com.example", Class: "com.example.Receiver"}
	require.NoError(t, s.share(o))

	started := jvm.Started()
	require.Len(t, started, 1)
	assert.Equal(t, "android.intent.action.SEND", started[0].Action)
	assert.Equal(t, "com.example", started[0].Package)
	assert.Equal(t, "com.example.Receiver", started[0].Class)
	assert.Zero(t, jvm.Count("createChooser"))
}

func TestShareThrottled(t *testing.T) {
	jvm := fakejvm.New()
	s := newSharer(time.Hour, fakeDo(jvm))
	o := shareOptions{Text: "x", Mime: "text/plain"}

	require.NoError(t, s.share(o))
	err := s.share(o)
	assert.ErrorIs(t, err, errThrottled)
	assert.EqualError(t, err, "share rate limited")
	assert.Len(t, jvm.Started(), 1)
}

func TestShareFailureSurfaces(t *testing.T) {
	jvm := fakejvm.New()
	jvm.Fail("startActivity", errors.New("android.content.ActivityNotFoundException"))
	s := newSharer(time.Hour, fakeDo(jvm))

	err := s.share(shareOptions{Text: "x", Mime: "text/plain"})
	assert.ErrorIs(t, err, intent.ErrDispatch)
}
