package intent

// Action names a static String field on android.content.Intent. The field is
// resolved by name on the host, so a custom Action("ACTION_X") works as long
// as the field exists.
type Action string

const (
	ActionMain         Action = "ACTION_MAIN"
	ActionView         Action = "ACTION_VIEW"
	ActionAttachData   Action = "ACTION_ATTACH_DATA"
	ActionEdit         Action = "ACTION_EDIT"
	ActionPick         Action = "ACTION_PICK"
	ActionChooser      Action = "ACTION_CHOOSER"
	ActionGetContent   Action = "ACTION_GET_CONTENT"
	ActionDial         Action = "ACTION_DIAL"
	ActionCall         Action = "ACTION_CALL"
	ActionSend         Action = "ACTION_SEND"
	ActionSendMultiple Action = "ACTION_SEND_MULTIPLE"
	ActionSendTo       Action = "ACTION_SENDTO"
	ActionAnswer       Action = "ACTION_ANSWER"
	ActionInsert       Action = "ACTION_INSERT"
	ActionDelete       Action = "ACTION_DELETE"
	ActionRun          Action = "ACTION_RUN"
	ActionSync         Action = "ACTION_SYNC"
	ActionPickActivity Action = "ACTION_PICK_ACTIVITY"
	ActionSearch       Action = "ACTION_SEARCH"
	ActionWebSearch    Action = "ACTION_WEB_SEARCH"
	ActionFactoryTest  Action = "ACTION_FACTORY_TEST"
)

func (a Action) String() string { return string(a) }
