package main

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/schollz/logger"

	intent "github.com/abakum/android-intent"
)

// received is what the app was opened with.
type received struct {
	Action string
	URIs   []string
	Text   string
}

// readReceived handles ACTION_VIEW (data URI), ACTION_SEND (one stream or
// text) and ACTION_SEND_MULTIPLE (list of streams).
func readReceived(env intent.Env) (received, error) {
	var r received
	in, err := intent.Received(env)
	if err != nil {
		return r, err
	}
	defer in.Release()

	r.Action, err = in.Action()
	if err != nil && !errors.Is(err, intent.ErrAbsent) {
		return r, err
	}

	data, err := in.DataString()
	switch {
	case err == nil:
		r.URIs = append(r.URIs, data)
		log.Tracef("Received URI: %s", data)
		return r, nil
	case !errors.Is(err, intent.ErrAbsent):
		return r, err
	}

	if r.URIs, err = in.StreamURIs(); err != nil {
		return r, err
	}
	if r.Text, _, err = in.LookupStringExtra(intent.ExtraText); err != nil {
		return r, err
	}
	log.Tracef("Received %d streams, %d bytes of text", len(r.URIs), len(r.Text))
	return r, nil
}

func setupIntentHandler(onReceive func(received)) {
	err := intent.Do(func(env intent.Env) error {
		r, err := readReceived(env)
		if err != nil {
			return err
		}
		onReceive(r)
		return nil
	})
	switch {
	case errors.Is(err, intent.ErrAttach):
		log.Debugf("no android context: %v", err)
	case err != nil:
		log.Errorf("received intent: %v", err)
	}
}

func receivedTabItem(a fyne.App, w fyne.Window) *container.TabItem {
	action := widget.NewLabel("")
	text := widget.NewLabel("")
	text.Wrapping = fyne.TextWrapWord
	var uris []string
	list := widget.NewList(
		func() int { return len(uris) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) { o.(*widget.Label).SetText(uris[i]) },
	)

	setupIntentHandler(func(r received) {
		fyne.Do(func() {
			action.SetText(r.Action)
			text.SetText(r.Text)
			uris = r.URIs
			list.Refresh()
		})
	})

	top := container.NewVBox(
		widget.NewForm(
			&widget.FormItem{Text: "Action", Widget: action},
			&widget.FormItem{Text: "Text", Widget: text},
		),
	)
	return container.NewTabItemWithIcon("Received", theme.DownloadIcon(),
		container.NewBorder(top, nil, nil, nil, list))
}
