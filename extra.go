package intent

// Extra keys, as the host spells them.
const (
	ExtraText           = "android.intent.extra.TEXT"
	ExtraHTMLText       = "android.intent.extra.HTML_TEXT"
	ExtraStream         = "android.intent.extra.STREAM"
	ExtraEmail          = "android.intent.extra.EMAIL"
	ExtraCC             = "android.intent.extra.CC"
	ExtraBCC            = "android.intent.extra.BCC"
	ExtraSubject        = "android.intent.extra.SUBJECT"
	ExtraTitle          = "android.intent.extra.TITLE"
	ExtraPhoneNumber    = "android.intent.extra.PHONE_NUMBER"
	ExtraInitialIntents = "android.intent.extra.INITIAL_INTENTS"
)
