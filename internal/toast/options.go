package toast

import "time"

// Option adjusts a configuration. Type, Position, Animation and Theme values
// are options themselves, so a bare type works as shorthand:
//
//	n.Notify("Saved", toast.TypeSuccess)
type Option interface {
	apply(c *Config)
}

type optionFunc func(c *Config)

func (f optionFunc) apply(c *Config) { f(c) }

func (t Type) apply(c *Config)      { c.Type = t }
func (p Position) apply(c *Config)  { c.Position = p }
func (a Animation) apply(c *Config) { c.Animation = a }
func (t Theme) apply(c *Config)     { c.Theme = t }

// WithType sets the toast type.
func WithType(t Type) Option { return t }

// WithPosition sets the container position.
func WithPosition(p Position) Option { return p }

// WithDuration sets the auto-dismiss delay. Zero keeps the toast until it
// is closed explicitly.
func WithDuration(d time.Duration) Option {
	return optionFunc(func(c *Config) { c.Duration = d })
}

// WithClosable controls whether a close button is rendered.
func WithClosable(closable bool) Option {
	return optionFunc(func(c *Config) { c.Closable = closable })
}

// WithAnimation sets the entry animation.
func WithAnimation(a Animation) Option { return a }

// WithTheme sets the color theme.
func WithTheme(t Theme) Option { return t }

// WithIcon overrides the icon.
func WithIcon(icon string) Option {
	return optionFunc(func(c *Config) { c.Icon = icon })
}

// WithOnClick sets the callback for clicks on the toast body.
func WithOnClick(fn func()) Option {
	return optionFunc(func(c *Config) { c.OnClick = fn })
}

// WithOnClose sets the callback run when the toast starts closing.
func WithOnClose(fn func()) Option {
	return optionFunc(func(c *Config) { c.OnClose = fn })
}

// Partial is an option set where nil fields are left untouched. It is the
// shape decoded from config files and IPC requests.
type Partial struct {
	Type      *Type
	Position  *Position
	Duration  *time.Duration
	Closable  *bool
	Animation *Animation
	Theme     *Theme
	Icon      *string
}

func (p Partial) apply(c *Config) {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.Closable != nil {
		c.Closable = *p.Closable
	}
	if p.Animation != nil {
		c.Animation = *p.Animation
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}

// IsEmpty reports whether no field is set.
func (p Partial) IsEmpty() bool {
	return p == Partial{}
}

// Resolve applies opts over base and normalizes the result.
func Resolve(base Config, opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&base)
		}
	}
	return Normalize(base)
}
