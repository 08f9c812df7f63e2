package main

import (
	"fyne.io/fyne/v2"
)

// shareOptions is what the Share tab sends, persisted in app preferences.
type shareOptions struct {
	Text     string
	Title    string
	Mime     string
	Package  string
	Class    string
	LogLevel string
}

func loadOptions(p fyne.Preferences) shareOptions {
	return shareOptions{
		Text:     p.StringWithFallback("share-text", "Hello World!"),
		Title:    p.String("share-title"),
		Mime:     p.StringWithFallback("share-mime", "text/plain"),
		Package:  p.String("share-package"),
		Class:    p.String("share-class"),
		LogLevel: p.StringWithFallback("log-level", "info"),
	}
}

func (o shareOptions) save(p fyne.Preferences) {
	p.SetString("share-text", o.Text)
	p.SetString("share-title", o.Title)
	p.SetString("share-mime", o.Mime)
	p.SetString("share-package", o.Package)
	p.SetString("share-class", o.Class)
}

// explicit reports whether the share goes straight to one component.
func (o shareOptions) explicit() bool {
	return o.Package != "" && o.Class != ""
}
