package dbus

import (
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toastui/internal/toast"
)

// Bus names and paths of the toastui service.
const (
	BusName    = "io.github.jmylchreest.Toastui"
	Interface  = BusName
	ObjectPath = dbus.ObjectPath("/io/github/jmylchreest/Toastui")
)

// Error names returned to callers.
const (
	ErrNameUnknownToast = Interface + ".Error.UnknownToast"
	ErrNameUnavailable  = Interface + ".Error.Unavailable"
)

// Option keys understood in a{sv} dictionaries.
const (
	KeyType      = "type"
	KeyPosition  = "position"
	KeyDuration  = "duration"
	KeyClosable  = "closable"
	KeyAnimation = "animation"
	KeyTheme     = "theme"
	KeyIcon      = "icon"
)

// DecodeOptions converts an a{sv} dictionary into a partial option set.
// Unknown keys and values of the wrong type are ignored. Durations are
// integer milliseconds or a duration string such as "2.5s".
func DecodeOptions(opts map[string]dbus.Variant) toast.Partial {
	var p toast.Partial
	if s, ok := stringOpt(opts, KeyType); ok {
		v := toast.Type(s)
		p.Type = &v
	}
	if s, ok := stringOpt(opts, KeyPosition); ok {
		v := toast.Position(s)
		p.Position = &v
	}
	if d, ok := durationOpt(opts, KeyDuration); ok {
		p.Duration = &d
	}
	if v, ok := opts[KeyClosable]; ok {
		if b, ok := v.Value().(bool); ok {
			p.Closable = &b
		}
	}
	if s, ok := stringOpt(opts, KeyAnimation); ok {
		v := toast.Animation(s)
		p.Animation = &v
	}
	if s, ok := stringOpt(opts, KeyTheme); ok {
		v := toast.Theme(s)
		p.Theme = &v
	}
	if s, ok := stringOpt(opts, KeyIcon); ok {
		p.Icon = &s
	}
	return p
}

// EncodeOptions converts a partial option set into an a{sv} dictionary.
func EncodeOptions(p toast.Partial) map[string]dbus.Variant {
	out := make(map[string]dbus.Variant)
	if p.Type != nil {
		out[KeyType] = dbus.MakeVariant(string(*p.Type))
	}
	if p.Position != nil {
		out[KeyPosition] = dbus.MakeVariant(string(*p.Position))
	}
	if p.Duration != nil {
		out[KeyDuration] = dbus.MakeVariant(p.Duration.Milliseconds())
	}
	if p.Closable != nil {
		out[KeyClosable] = dbus.MakeVariant(*p.Closable)
	}
	if p.Animation != nil {
		out[KeyAnimation] = dbus.MakeVariant(string(*p.Animation))
	}
	if p.Theme != nil {
		out[KeyTheme] = dbus.MakeVariant(string(*p.Theme))
	}
	if p.Icon != nil {
		out[KeyIcon] = dbus.MakeVariant(*p.Icon)
	}
	return out
}

// EncodeConfig converts resolved defaults into an a{sv} dictionary.
// Callbacks are not transferable and are left out.
func EncodeConfig(cfg toast.Config) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		KeyType:      dbus.MakeVariant(string(cfg.Type)),
		KeyPosition:  dbus.MakeVariant(string(cfg.Position)),
		KeyDuration:  dbus.MakeVariant(cfg.Duration.Milliseconds()),
		KeyClosable:  dbus.MakeVariant(cfg.Closable),
		KeyAnimation: dbus.MakeVariant(string(cfg.Animation)),
		KeyTheme:     dbus.MakeVariant(string(cfg.Theme)),
		KeyIcon:      dbus.MakeVariant(cfg.Icon),
	}
}

// DecodeConfig is the inverse of EncodeConfig. Missing or malformed entries
// keep their built-in defaults.
func DecodeConfig(opts map[string]dbus.Variant) toast.Config {
	return toast.Resolve(toast.DefaultConfig(), DecodeOptions(opts))
}

func stringOpt(opts map[string]dbus.Variant, key string) (string, bool) {
	v, ok := opts[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

func durationOpt(opts map[string]dbus.Variant, key string) (time.Duration, bool) {
	v, ok := opts[key]
	if !ok {
		return 0, false
	}
	var ms int64
	switch val := v.Value().(type) {
	case int64:
		ms = val
	case int32:
		ms = int64(val)
	case uint32:
		ms = int64(val)
	case uint64:
		ms = int64(val)
	case int16:
		ms = int64(val)
	case uint16:
		ms = int64(val)
	case byte:
		ms = int64(val)
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d, true
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, false
		}
		ms = n
	default:
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
