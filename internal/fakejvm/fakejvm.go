// Package fakejvm is an in-memory stand-in for the Android runtime. It
// implements intent.Env over a tiny object model of Intent, Uri, String and
// ArrayList, resolves methods by exact JNI signature, and records
// startActivity calls and reference bookkeeping for tests.
package fakejvm

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	intent "github.com/abakum/android-intent"
)

var (
	ErrNoSuchClass  = errors.New("java.lang.NoClassDefFoundError")
	ErrNoSuchField  = errors.New("java.lang.NoSuchFieldError")
	ErrNoSuchMethod = errors.New("java.lang.NoSuchMethodError")
	ErrNullPointer  = errors.New("java.lang.NullPointerException")
	ErrBadRef       = errors.New("invalid reference")
)

const (
	classIntent    = "android/content/Intent"
	classURI       = "android/net/Uri"
	classString    = "java/lang/String"
	classArrayList = "java/util/ArrayList"
	classActivity  = "android/app/Activity"
)

// Actions maps Intent static field names to their values.
var Actions = map[string]string{
	"ACTION_MAIN":          "android.intent.action.MAIN",
	"ACTION_VIEW":          "android.intent.action.VIEW",
	"ACTION_ATTACH_DATA":   "android.intent.action.ATTACH_DATA",
	"ACTION_EDIT":          "android.intent.action.EDIT",
	"ACTION_PICK":          "android.intent.action.PICK",
	"ACTION_CHOOSER":       "android.intent.action.CHOOSER",
	"ACTION_GET_CONTENT":   "android.intent.action.GET_CONTENT",
	"ACTION_DIAL":          "android.intent.action.DIAL",
	"ACTION_CALL":          "android.intent.action.CALL",
	"ACTION_SEND":          "android.intent.action.SEND",
	"ACTION_SEND_MULTIPLE": "android.intent.action.SEND_MULTIPLE",
	"ACTION_SENDTO":        "android.intent.action.SENDTO",
	"ACTION_ANSWER":        "android.intent.action.ANSWER",
	"ACTION_INSERT":        "android.intent.action.INSERT",
	"ACTION_DELETE":        "android.intent.action.DELETE",
	"ACTION_RUN":           "android.intent.action.RUN",
	"ACTION_SYNC":          "android.intent.action.SYNC",
	"ACTION_PICK_ACTIVITY": "android.intent.action.PICK_ACTIVITY",
	"ACTION_SEARCH":        "android.intent.action.SEARCH",
	"ACTION_WEB_SEARCH":    "android.intent.action.WEB_SEARCH",
	"ACTION_FACTORY_TEST":  "android.intent.action.FACTORY_TEST",
}

const (
	extraIntent = "android.intent.extra.INTENT"
	extraTitle  = "android.intent.extra.TITLE"
)

type kind int

const (
	kindClass kind = iota + 1
	kindString
	kindURI
	kindIntent
	kindList
	kindActivity
)

type object struct {
	kind  kind
	class string
	str   string // class name, string value or uri text
	in    *intentData
	items []int
}

type intentData struct {
	action, data, mime string
	pkg, cls           string
	extras             map[string]int // key -> object id
}

type refEntry struct {
	id     int
	global bool
}

// JVM is one fake runtime. The zero value is not usable; call New.
type JVM struct {
	mu       sync.Mutex
	objects  map[int]*object
	classes  map[string]int
	refs     map[intent.Ref]refEntry
	nextID   int
	nextRef  intent.Ref
	activity intent.Ref
	received int

	failures  map[string]error
	calls     []string
	started   []int
	badDelete int
}

// New returns a JVM with a current activity and no received Intent.
func New() *JVM {
	j := &JVM{
		objects:  make(map[int]*object),
		classes:  make(map[string]int),
		refs:     make(map[intent.Ref]refEntry),
		nextRef:  0x1000,
		failures: make(map[string]error),
	}
	for _, c := range []string{classIntent, classURI, classString, classArrayList, classActivity} {
		j.classes[c] = j.alloc(&object{kind: kindClass, str: c})
	}
	act := j.alloc(&object{kind: kindActivity, class: classActivity})
	j.activity = j.newRef(act, true)
	return j
}

// Fail makes every later call of the named method (or "FindClass",
// "GetStaticObjectField", "NewObject", "NewString", "parse") fail with err.
func (j *JVM) Fail(method string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failures[method] = err
}

// NoActivity drops the current activity, as when called before onCreate.
func (j *JVM) NoActivity() {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.refs, j.activity)
	j.activity = intent.NullRef
}

// Calls lists every method name invoked, in order.
func (j *JVM) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

// Count returns how many times method was invoked.
func (j *JVM) Count(method string) int {
	n := 0
	for _, c := range j.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// LocalRefs is the number of live local references.
func (j *JVM) LocalRefs() int { return j.countRefs(false) }

// GlobalRefs is the number of live global references, the activity included.
func (j *JVM) GlobalRefs() int { return j.countRefs(true) }

// BadDeletes counts deletes of unknown or wrong-kind references.
func (j *JVM) BadDeletes() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.badDelete
}

func (j *JVM) countRefs(global bool) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, e := range j.refs {
		if e.global == global {
			n++
		}
	}
	return n
}

// Started returns the Intents passed to startActivity, in order.
func (j *JVM) Started() []Intent {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Intent, 0, len(j.started))
	for _, id := range j.started {
		out = append(out, j.snapshot(id))
	}
	return out
}

// Inspect returns the state of the Intent behind ref.
func (j *JVM) Inspect(ref intent.Ref) (Intent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	o, id, err := j.deref(ref)
	if err != nil {
		return Intent{}, err
	}
	if o.kind != kindIntent {
		return Intent{}, fmt.Errorf("%w: not an intent", ErrBadRef)
	}
	return j.snapshot(id), nil
}

// SetReceived makes r the Intent returned by the activity's getIntent.
// Streams become an EXTRA_STREAM Uri, or an ArrayList of them when more
// than one is given.
func (j *JVM) SetReceived(r Intent, streams ...string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	d := &intentData{
		action: r.Action,
		data:   r.Data,
		mime:   r.Type,
		pkg:    r.Package,
		cls:    r.Class,
		extras: make(map[string]int),
	}
	for k, v := range r.Extras {
		d.extras[k] = j.alloc(&object{kind: kindString, class: classString, str: v})
	}
	switch len(streams) {
	case 0:
	case 1:
		d.extras["android.intent.extra.STREAM"] = j.alloc(&object{kind: kindURI, class: classURI, str: streams[0]})
	default:
		list := &object{kind: kindList, class: classArrayList}
		for _, s := range streams {
			list.items = append(list.items, j.alloc(&object{kind: kindURI, class: classURI, str: s}))
		}
		d.extras["android.intent.extra.STREAM"] = j.alloc(list)
	}
	j.received = j.alloc(&object{kind: kindIntent, class: classIntent, in: d})
}

// Intent is a snapshot of a fake Intent.
type Intent struct {
	ID      int
	Action  string
	Data    string
	Type    string
	Package string
	Class   string
	Extras  map[string]string
	// Target and Title are set on chooser Intents.
	Target *Intent
	Title  string
}

func (j *JVM) snapshot(id int) Intent {
	o := j.objects[id]
	d := o.in
	s := Intent{
		ID:      id,
		Action:  d.action,
		Data:    d.data,
		Type:    d.mime,
		Package: d.pkg,
		Class:   d.cls,
		Extras:  make(map[string]string),
	}
	keys := make([]string, 0, len(d.extras))
	for k := range d.extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := j.objects[d.extras[k]]
		switch {
		case k == extraIntent && v.kind == kindIntent:
			t := j.snapshot(d.extras[k])
			s.Target = &t
		case k == extraTitle && v.kind == kindString:
			s.Title = v.str
		case v.kind == kindString:
			s.Extras[k] = v.str
		}
	}
	return s
}

func (j *JVM) alloc(o *object) int {
	j.nextID++
	j.objects[j.nextID] = o
	return j.nextID
}

func (j *JVM) newRef(id int, global bool) intent.Ref {
	j.nextRef += 8
	j.refs[j.nextRef] = refEntry{id: id, global: global}
	return j.nextRef
}

func (j *JVM) deref(r intent.Ref) (*object, int, error) {
	if r == intent.NullRef {
		return nil, 0, ErrNullPointer
	}
	e, ok := j.refs[r]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %#x", ErrBadRef, r)
	}
	return j.objects[e.id], e.id, nil
}

// begin records a call and returns its injected failure, if any.
func (j *JVM) begin(name string) error {
	j.calls = append(j.calls, name)
	return j.failures[name]
}

func (j *JVM) stringArg(args []intent.Value, i int) (string, bool, error) {
	if i >= len(args) {
		return "", false, ErrNoSuchMethod
	}
	r := intent.Ref(args[i])
	if r == intent.NullRef {
		return "", false, nil
	}
	o, _, err := j.deref(r)
	if err != nil {
		return "", false, err
	}
	if o.kind != kindString {
		return "", false, fmt.Errorf("%w: want String", ErrBadRef)
	}
	return o.str, true, nil
}

func (j *JVM) objectArg(args []intent.Value, i int, want kind) (int, error) {
	if i >= len(args) {
		return 0, ErrNoSuchMethod
	}
	o, id, err := j.deref(intent.Ref(args[i]))
	if err != nil {
		return 0, err
	}
	if o.kind != want {
		return 0, fmt.Errorf("%w: argument %d", ErrBadRef, i)
	}
	return id, nil
}

func (j *JVM) newString(s string) intent.Ref {
	return j.newRef(j.alloc(&object{kind: kindString, class: classString, str: s}), false)
}

func (j *JVM) FindClass(name string) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin("FindClass"); err != nil {
		return intent.NullRef, err
	}
	id, ok := j.classes[name]
	if !ok {
		return intent.NullRef, fmt.Errorf("%w: %s", ErrNoSuchClass, name)
	}
	return j.newRef(id, false), nil
}

func (j *JVM) GetStaticObjectField(class intent.Ref, name, sig string) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin("GetStaticObjectField"); err != nil {
		return intent.NullRef, err
	}
	c, _, err := j.deref(class)
	if err != nil {
		return intent.NullRef, err
	}
	v, ok := Actions[name]
	if c.kind != kindClass || c.str != classIntent || sig != "Ljava/lang/String;" || !ok {
		return intent.NullRef, fmt.Errorf("%w: %s.%s %s", ErrNoSuchField, c.str, name, sig)
	}
	return j.newString(v), nil
}

func (j *JVM) NewObject(class intent.Ref, sig string, args ...intent.Value) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin("NewObject"); err != nil {
		return intent.NullRef, err
	}
	c, _, err := j.deref(class)
	if err != nil {
		return intent.NullRef, err
	}
	if c.kind == kindClass && c.str == classString && sig == "()V" {
		return j.newString(""), nil
	}
	if c.kind != kindClass || c.str != classIntent {
		return intent.NullRef, fmt.Errorf("%w: %s.<init>%s", ErrNoSuchMethod, c.str, sig)
	}
	d := &intentData{extras: make(map[string]int)}
	switch sig {
	case "(Ljava/lang/String;)V":
		if d.action, _, err = j.stringArg(args, 0); err != nil {
			return intent.NullRef, err
		}
	case "(Ljava/lang/String;Landroid/net/Uri;)V":
		if d.action, _, err = j.stringArg(args, 0); err != nil {
			return intent.NullRef, err
		}
		id, err := j.objectArg(args, 1, kindURI)
		if err != nil {
			return intent.NullRef, err
		}
		d.data = j.objects[id].str
	default:
		return intent.NullRef, fmt.Errorf("%w: %s.<init>%s", ErrNoSuchMethod, c.str, sig)
	}
	return j.newRef(j.alloc(&object{kind: kindIntent, class: classIntent, in: d}), false), nil
}

func (j *JVM) CallObjectMethod(obj intent.Ref, name, sig string, args ...intent.Value) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin(name); err != nil {
		return intent.NullRef, err
	}
	o, id, err := j.deref(obj)
	if err != nil {
		return intent.NullRef, err
	}
	switch o.kind {
	case kindIntent:
		return j.intentMethod(o.in, id, name, sig, args)
	case kindActivity:
		if name == "getIntent" && sig == "()Landroid/content/Intent;" {
			if j.received == 0 {
				return intent.NullRef, nil
			}
			return j.newRef(j.received, false), nil
		}
	case kindURI, kindString:
		if name == "toString" && sig == "()Ljava/lang/String;" {
			return j.newString(o.str), nil
		}
	case kindList:
		if name == "get" && sig == "(I)Ljava/lang/Object;" {
			if len(args) != 1 {
				return intent.NullRef, ErrNoSuchMethod
			}
			i := int(int32(uint32(args[0])))
			if i < 0 || i >= len(o.items) {
				return intent.NullRef, errors.New("java.lang.IndexOutOfBoundsException")
			}
			return j.newRef(o.items[i], false), nil
		}
	}
	return intent.NullRef, fmt.Errorf("%w: %s.%s%s", ErrNoSuchMethod, o.class, name, sig)
}

func (j *JVM) intentMethod(d *intentData, id int, name, sig string, args []intent.Value) (intent.Ref, error) {
	const self = "Landroid/content/Intent;"
	var err error
	switch name + sig {
	case "setClassName(Ljava/lang/String;Ljava/lang/String;)" + self:
		pkg, _, err := j.stringArg(args, 0)
		if err != nil {
			return intent.NullRef, err
		}
		cls, _, err := j.stringArg(args, 1)
		if err != nil {
			return intent.NullRef, err
		}
		d.pkg, d.cls = pkg, cls
		return j.newRef(id, false), nil
	case "putExtra(Ljava/lang/String;Ljava/lang/String;)" + self:
		key, ok, err := j.stringArg(args, 0)
		if err != nil {
			return intent.NullRef, err
		}
		if !ok {
			return intent.NullRef, ErrNullPointer
		}
		value, _, err := j.stringArg(args, 1)
		if err != nil {
			return intent.NullRef, err
		}
		d.extras[key] = j.alloc(&object{kind: kindString, class: classString, str: value})
		return j.newRef(id, false), nil
	case "setType(Ljava/lang/String;)" + self:
		if d.mime, _, err = j.stringArg(args, 0); err != nil {
			return intent.NullRef, err
		}
		d.data = ""
		return j.newRef(id, false), nil
	case "setData(Landroid/net/Uri;)" + self:
		uri, err := j.objectArg(args, 0, kindURI)
		if err != nil {
			return intent.NullRef, err
		}
		d.data = j.objects[uri].str
		d.mime = ""
		return j.newRef(id, false), nil
	case "getAction()Ljava/lang/String;":
		return j.optString(d.action), nil
	case "getDataString()Ljava/lang/String;":
		return j.optString(d.data), nil
	case "getStringExtra(Ljava/lang/String;)Ljava/lang/String;":
		key, _, err := j.stringArg(args, 0)
		if err != nil {
			return intent.NullRef, err
		}
		v, ok := d.extras[key]
		if !ok || j.objects[v].kind != kindString {
			return intent.NullRef, nil
		}
		return j.newRef(v, false), nil
	case "getParcelableExtra(Ljava/lang/String;)Landroid/os/Parcelable;":
		return j.extraOfKind(d, args, kindURI, kindIntent)
	case "getParcelableArrayListExtra(Ljava/lang/String;)Ljava/util/ArrayList;":
		return j.extraOfKind(d, args, kindList)
	}
	return intent.NullRef, fmt.Errorf("%w: %s.%s%s", ErrNoSuchMethod, classIntent, name, sig)
}

func (j *JVM) extraOfKind(d *intentData, args []intent.Value, kinds ...kind) (intent.Ref, error) {
	key, _, err := j.stringArg(args, 0)
	if err != nil {
		return intent.NullRef, err
	}
	v, ok := d.extras[key]
	if !ok {
		return intent.NullRef, nil
	}
	for _, k := range kinds {
		if j.objects[v].kind == k {
			return j.newRef(v, false), nil
		}
	}
	return intent.NullRef, nil
}

func (j *JVM) optString(s string) intent.Ref {
	if s == "" {
		return intent.NullRef
	}
	return j.newString(s)
}

func (j *JVM) CallStaticObjectMethod(class intent.Ref, name, sig string, args ...intent.Value) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin(name); err != nil {
		return intent.NullRef, err
	}
	c, _, err := j.deref(class)
	if err != nil {
		return intent.NullRef, err
	}
	switch c.str + "." + name + sig {
	case classURI + ".parse(Ljava/lang/String;)Landroid/net/Uri;":
		s, ok, err := j.stringArg(args, 0)
		if err != nil {
			return intent.NullRef, err
		}
		if !ok {
			return intent.NullRef, ErrNullPointer
		}
		if _, err := url.Parse(s); err != nil {
			return intent.NullRef, fmt.Errorf("java.lang.IllegalArgumentException: %w", err)
		}
		return j.newRef(j.alloc(&object{kind: kindURI, class: classURI, str: s}), false), nil
	case classIntent + ".createChooser(Landroid/content/Intent;Ljava/lang/CharSequence;)Landroid/content/Intent;":
		target, err := j.objectArg(args, 0, kindIntent)
		if err != nil {
			return intent.NullRef, err
		}
		d := &intentData{
			action: Actions["ACTION_CHOOSER"],
			extras: map[string]int{extraIntent: target},
		}
		title, ok, err := j.stringArg(args, 1)
		if err != nil {
			return intent.NullRef, err
		}
		if ok {
			d.extras[extraTitle] = j.alloc(&object{kind: kindString, class: classString, str: title})
		}
		return j.newRef(j.alloc(&object{kind: kindIntent, class: classIntent, in: d}), false), nil
	}
	return intent.NullRef, fmt.Errorf("%w: %s.%s%s", ErrNoSuchMethod, c.str, name, sig)
}

func (j *JVM) CallVoidMethod(obj intent.Ref, name, sig string, args ...intent.Value) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin(name); err != nil {
		return err
	}
	o, _, err := j.deref(obj)
	if err != nil {
		return err
	}
	if o.kind == kindActivity && name == "startActivity" && sig == "(Landroid/content/Intent;)V" {
		id, err := j.objectArg(args, 0, kindIntent)
		if err != nil {
			return err
		}
		j.started = append(j.started, id)
		return nil
	}
	return fmt.Errorf("%w: %s.%s%s", ErrNoSuchMethod, o.class, name, sig)
}

func (j *JVM) CallIntMethod(obj intent.Ref, name, sig string, args ...intent.Value) (int32, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin(name); err != nil {
		return 0, err
	}
	o, _, err := j.deref(obj)
	if err != nil {
		return 0, err
	}
	if o.kind == kindList && name == "size" && sig == "()I" {
		return int32(len(o.items)), nil
	}
	return 0, fmt.Errorf("%w: %s.%s%s", ErrNoSuchMethod, o.class, name, sig)
}

func (j *JVM) NewString(s string) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.begin("NewString"); err != nil {
		return intent.NullRef, err
	}
	return j.newString(s), nil
}

func (j *JVM) GoString(str intent.Ref) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	o, _, err := j.deref(str)
	if err != nil {
		return "", err
	}
	if o.kind != kindString {
		return "", fmt.Errorf("%w: not a String", ErrBadRef)
	}
	return o.str, nil
}

func (j *JVM) NewGlobalRef(obj intent.Ref) (intent.Ref, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, id, err := j.deref(obj)
	if err != nil {
		return intent.NullRef, err
	}
	return j.newRef(id, true), nil
}

func (j *JVM) DeleteLocalRef(obj intent.Ref) { j.deleteRef(obj, false) }

func (j *JVM) DeleteGlobalRef(obj intent.Ref) { j.deleteRef(obj, true) }

func (j *JVM) deleteRef(obj intent.Ref, global bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	e, ok := j.refs[obj]
	if !ok || e.global != global {
		j.badDelete++
		return
	}
	delete(j.refs, obj)
}

func (j *JVM) Context() intent.Ref {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.activity
}

var _ intent.Env = (*JVM)(nil)
