package main

import (
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/schollz/logger"
	"golang.org/x/time/rate"

	intent "github.com/abakum/android-intent"
)

var errThrottled = errors.New("share rate limited")

// sharer dispatches shares, at most one per interval. do is intent.Do on
// device.
type sharer struct {
	limiter *rate.Limiter
	do      func(func(intent.Env) error) error
}

func newSharer(interval time.Duration, do func(func(intent.Env) error) error) *sharer {
	return &sharer{limiter: rate.NewLimiter(rate.Every(interval), 1), do: do}
}

func (s *sharer) share(o shareOptions) error {
	if !s.limiter.Allow() {
		return errThrottled
	}
	return s.do(func(env intent.Env) error {
		return shareText(env, o)
	})
}

// shareText sends o.Text as ACTION_SEND, through the chooser unless an
// explicit target is configured.
func shareText(env intent.Env, o shareOptions) error {
	b := intent.New(env, intent.ActionSend).
		WithType(o.Mime).
		WithExtra(intent.ExtraText, o.Text)
	if o.Title != "" {
		b = b.WithExtra(intent.ExtraSubject, o.Title)
	}
	switch {
	case o.explicit():
		b = b.SetClassName(o.Package, o.Class)
	case o.Title != "":
		b = b.IntoChooserWithTitle(o.Title)
	default:
		b = b.IntoChooser()
	}
	if err := b.StartActivity(); err != nil {
		return err
	}
	log.Debugf("shared %d bytes as %s", len(o.Text), o.Mime)
	return nil
}

func shareTabItem(a fyne.App, w fyne.Window) *container.TabItem {
	opts := loadOptions(a.Preferences())
	s := newSharer(time.Second, intent.Do)

	textEntry := widget.NewMultiLineEntry()
	textEntry.SetText(opts.Text)
	titleEntry := widget.NewEntry()
	titleEntry.SetText(opts.Title)
	titleEntry.SetPlaceHolder("Chooser title")
	mimeEntry := widget.NewEntry()
	mimeEntry.SetText(opts.Mime)
	packageEntry := widget.NewEntry()
	packageEntry.SetText(opts.Package)
	classEntry := widget.NewEntry()
	classEntry.SetText(opts.Class)
	status := widget.NewLabel("")

	shareButton := widget.NewButtonWithIcon("Share", theme.MailSendIcon(), func() {
		o := shareOptions{
			Text:     textEntry.Text,
			Title:    titleEntry.Text,
			Mime:     mimeEntry.Text,
			Package:  packageEntry.Text,
			Class:    classEntry.Text,
			LogLevel: opts.LogLevel,
		}
		o.save(a.Preferences())
		err := s.share(o)
		switch {
		case errors.Is(err, errThrottled):
			log.Tracef("share throttled")
		case err != nil:
			log.Errorf("share: %v", err)
			status.SetText(err.Error())
			dialog.ShowError(err, w)
		default:
			status.SetText("Shared")
		}
	})

	form := widget.NewForm(
		&widget.FormItem{Text: "Text", Widget: textEntry},
		&widget.FormItem{Text: "Title", Widget: titleEntry},
		&widget.FormItem{Text: "MIME type", Widget: mimeEntry},
		&widget.FormItem{Text: "Package", Widget: packageEntry},
		&widget.FormItem{Text: "Class", Widget: classEntry},
	)
	return container.NewTabItemWithIcon("Share", theme.MailSendIcon(),
		container.NewBorder(nil, container.NewVBox(shareButton, status), nil, nil, form))
}
