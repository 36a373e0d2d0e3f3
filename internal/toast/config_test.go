package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "valid values kept",
			in:   Config{Type: TypeError, Position: BottomLeft, Duration: time.Second, Animation: AnimationZoom, Theme: ThemeDark},
			want: Config{Type: TypeError, Position: BottomLeft, Duration: time.Second, Animation: AnimationZoom, Theme: ThemeDark},
		},
		{
			name: "unknown enums fall back",
			in:   Config{Type: "fatal", Position: "center", Animation: "spin", Theme: "solarized", Duration: time.Second},
			want: Config{Type: TypeDefault, Position: TopRight, Animation: AnimationSlide, Theme: ThemeLight, Duration: time.Second},
		},
		{
			name: "empty enums fall back",
			in:   Config{},
			want: Config{Type: TypeDefault, Position: TopRight, Animation: AnimationSlide, Theme: ThemeLight},
		},
		{
			name: "negative duration clamps",
			in:   Config{Type: TypeInfo, Position: TopLeft, Animation: AnimationFade, Theme: ThemeLight, Duration: -time.Second},
			want: Config{Type: TypeInfo, Position: TopLeft, Animation: AnimationFade, Theme: ThemeLight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "✅", IconFor(Config{Type: TypeSuccess}))
	assert.Equal(t, "❌", IconFor(Config{Type: TypeError}))
	assert.Equal(t, "💬", IconFor(Config{Type: "bogus"}))
	assert.Equal(t, "★", IconFor(Config{Type: TypeSuccess, Icon: "★"}))
}

func TestPartial(t *testing.T) {
	dark := ThemeDark
	d := 10 * time.Second
	closable := false

	got := Resolve(DefaultConfig(), Partial{Theme: &dark, Duration: &d, Closable: &closable})

	want := DefaultConfig()
	want.Theme = ThemeDark
	want.Duration = d
	want.Closable = false
	assert.Equal(t, want, got)

	assert.True(t, Partial{}.IsEmpty())
	assert.False(t, Partial{Theme: &dark}.IsEmpty())
}

func TestResolve_LaterOptionsWin(t *testing.T) {
	got := Resolve(DefaultConfig(), TypeError, WithPosition(BottomRight), nil, WithType(TypeInfo))
	assert.Equal(t, TypeInfo, got.Type)
	assert.Equal(t, BottomRight, got.Position)
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&#39;", EscapeHTML(`&<>"'`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
	assert.Equal(t, "&amp;amp;", EscapeHTML("&amp;"))
}

func TestPosition_IsBottom(t *testing.T) {
	for _, p := range ValidPositions() {
		assert.Equal(t, p == BottomLeft || p == BottomCenter || p == BottomRight, p.IsBottom(), p)
	}
}

func TestParseEnum(t *testing.T) {
	v, err := ParseEnum("theme", " LIGHT ", ValidThemes())
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, v)

	_, err = ParseEnum("theme", "blue", ValidThemes())
	require.Error(t, err)
	assert.Equal(t, `invalid theme "blue" (use light, dark)`, err.Error())
}
