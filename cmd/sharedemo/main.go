// Command sharedemo shares text through the Android chooser and shows what
// the app itself was opened with.
package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	intent "github.com/abakum/android-intent"
)

const appID = "com.github.abakum.sharedemo"

func main() {
	a := app.NewWithID(appID)
	opts := loadOptions(a.Preferences())
	intent.SetLogLevel(opts.LogLevel)

	w := a.NewWindow("Share")
	w.SetContent(container.NewAppTabs(
		shareTabItem(a, w),
		receivedTabItem(a, w),
	))
	w.Resize(fyne.NewSize(400, 500))
	w.ShowAndRun()
}
