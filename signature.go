package intent

// Host classes.
const (
	classIntent = "android/content/Intent"
	classURI    = "android/net/Uri"
	classString = "java/lang/String"
)

// JNI type descriptors. These must match the platform verbatim or the method
// will not resolve.
const (
	sigString = "Ljava/lang/String;"

	sigNoArgs          = "()V"
	sigIntentAction    = "(Ljava/lang/String;)V"
	sigIntentActionURI = "(Ljava/lang/String;Landroid/net/Uri;)V"

	sigURIParse = "(Ljava/lang/String;)Landroid/net/Uri;"
	sigToString = "()Ljava/lang/String;"

	sigSetClassName  = "(Ljava/lang/String;Ljava/lang/String;)Landroid/content/Intent;"
	sigPutExtra      = "(Ljava/lang/String;Ljava/lang/String;)Landroid/content/Intent;"
	sigSetType       = "(Ljava/lang/String;)Landroid/content/Intent;"
	sigSetData       = "(Landroid/net/Uri;)Landroid/content/Intent;"
	sigCreateChooser = "(Landroid/content/Intent;Ljava/lang/CharSequence;)Landroid/content/Intent;"
	sigStartActivity = "(Landroid/content/Intent;)V"

	sigGetIntent      = "()Landroid/content/Intent;"
	sigGetAction      = "()Ljava/lang/String;"
	sigGetDataString  = "()Ljava/lang/String;"
	sigGetStringExtra = "(Ljava/lang/String;)Ljava/lang/String;"

	sigGetParcelableExtra          = "(Ljava/lang/String;)Landroid/os/Parcelable;"
	sigGetParcelableArrayListExtra = "(Ljava/lang/String;)Ljava/util/ArrayList;"
	sigListSize                    = "()I"
	sigListGet                     = "(I)Ljava/lang/Object;"
)
