package key

// HostOS identifies the host platform family for modifier mapping.
type HostOS uint8

const (
	// OSLinux covers Linux and other X11/Wayland platforms.
	OSLinux HostOS = iota
	// OSWindows covers Windows.
	OSWindows
	// OSMac covers macOS.
	OSMac
)

// String returns a string representation of the host OS kind.
func (o HostOS) String() string {
	switch o {
	case OSWindows:
		return "windows"
	case OSMac:
		return "macos"
	default:
		return "linux"
	}
}

// RawEvent is a platform key event before normalization. The Alt and Meta
// flags carry the physical modifier state exactly as the platform reports
// it; their logical meaning depends on the host OS.
type RawEvent struct {
	// Name is the platform key name ("a", "Escape", "Shift", ...).
	Name string

	// Ctrl reports the physical Control key.
	Ctrl bool

	// Alt reports the physical Alt (Option on macOS) key.
	Alt bool

	// Meta reports the physical Meta (Command on macOS, Win elsewhere) key.
	Meta bool
}

// modMapping maps the physical Alt and Meta flags to logical modifiers.
type modMapping struct {
	alt  Mod
	meta Mod
}

// hostMappings is the per-OS modifier table. macOS swaps the Option and
// Command assignment relative to other platforms: Command acts as Meta
// and Option acts as Super.
var hostMappings = map[HostOS]modMapping{
	OSLinux:   {alt: ModMeta, meta: ModSuper},
	OSWindows: {alt: ModMeta, meta: ModSuper},
	OSMac:     {alt: ModSuper, meta: ModMeta},
}

// modifierKeyNames are key names that are themselves modifier presses.
// These are never delivered as standalone inputs.
var modifierKeyNames = map[string]bool{
	"Shift":    true,
	"Control":  true,
	"Ctrl":     true,
	"Alt":      true,
	"AltGraph": true,
	"Meta":     true,
	"Super":    true,
	"Hyper":    true,
	"OS":       true,
	"CapsLock": true,
	"NumLock":  true,
	"Fn":       true,
}

// FromEvent normalizes a raw platform event into an Input. The second
// return value is false when the event is a modifier key press itself,
// which is never dispatched on its own.
func FromEvent(ev RawEvent, os HostOS) (Input, bool) {
	if modifierKeyNames[ev.Name] {
		return Input{}, false
	}

	mapping, ok := hostMappings[os]
	if !ok {
		mapping = hostMappings[OSLinux]
	}

	var mods Mod
	if ev.Ctrl {
		mods = mods.With(ModCtrl)
	}
	if ev.Alt {
		mods = mods.With(mapping.alt)
	}
	if ev.Meta {
		mods = mods.With(mapping.meta)
	}

	return New(ev.Name, mods), true
}
