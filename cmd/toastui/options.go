package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toastui/internal/toast"
)

// toastFlags holds the per-toast option flags shared by send and defaults set.
type toastFlags struct {
	typ       string
	position  string
	duration  time.Duration
	closable  bool
	animation string
	theme     string
	icon      string
}

func (f *toastFlags) register(cmd *cobra.Command, withType bool) {
	if withType {
		cmd.Flags().StringVarP(&f.typ, "type", "t", "",
			"Toast type (success, error, warning, info, default)")
	}
	cmd.Flags().StringVarP(&f.position, "position", "p", "",
		"Position (top-left, top-center, top-right, bottom-left, bottom-center, bottom-right)")
	cmd.Flags().DurationVarP(&f.duration, "duration", "d", 0,
		"Auto-dismiss after this long (0 keeps the toast until closed)")
	cmd.Flags().BoolVar(&f.closable, "closable", true,
		"Show a close button")
	cmd.Flags().StringVar(&f.animation, "animation", "",
		"Entry animation (slide, fade, bounce, zoom)")
	cmd.Flags().StringVar(&f.theme, "theme", "",
		"Color theme (light, dark)")
	cmd.Flags().StringVar(&f.icon, "icon", "",
		"Icon text shown before the message")
}

// partial returns only the options whose flags were set on the command line.
func (f *toastFlags) partial(cmd *cobra.Command) (toast.Partial, error) {
	var p toast.Partial
	changed := cmd.Flags().Changed

	if changed("type") {
		v, err := toast.ParseEnum("type", f.typ, toast.ValidTypes())
		if err != nil {
			return p, err
		}
		p.Type = &v
	}
	if changed("position") {
		v, err := toast.ParseEnum("position", f.position, toast.ValidPositions())
		if err != nil {
			return p, err
		}
		p.Position = &v
	}
	if changed("duration") {
		if f.duration < 0 {
			return p, fmt.Errorf("duration must not be negative: %s", f.duration)
		}
		d := f.duration
		p.Duration = &d
	}
	if changed("closable") {
		c := f.closable
		p.Closable = &c
	}
	if changed("animation") {
		v, err := toast.ParseEnum("animation", f.animation, toast.ValidAnimations())
		if err != nil {
			return p, err
		}
		p.Animation = &v
	}
	if changed("theme") {
		v, err := toast.ParseEnum("theme", f.theme, toast.ValidThemes())
		if err != nil {
			return p, err
		}
		p.Theme = &v
	}
	if changed("icon") {
		icon := f.icon
		p.Icon = &icon
	}
	return p, nil
}

// mergePartial overlays the set fields of top onto base.
func mergePartial(base, top toast.Partial) toast.Partial {
	if top.Type != nil {
		base.Type = top.Type
	}
	if top.Position != nil {
		base.Position = top.Position
	}
	if top.Duration != nil {
		base.Duration = top.Duration
	}
	if top.Closable != nil {
		base.Closable = top.Closable
	}
	if top.Animation != nil {
		base.Animation = top.Animation
	}
	if top.Theme != nil {
		base.Theme = top.Theme
	}
	if top.Icon != nil {
		base.Icon = top.Icon
	}
	return base
}
