package sysinfo

import (
	"testing"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/stretchr/testify/assert"
)

func TestParseResolutionString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    crop.Dimensions
		wantErr bool
	}{
		{name: "Spaced", input: "3420 x 2214", want: crop.Dimensions{Width: 3420, Height: 2214}},
		{name: "Retina suffix", input: "2880x1864Retina", want: crop.Dimensions{Width: 2880, Height: 1864}},
		{name: "Refresh rate", input: "1710 x 1107 @ 60.00Hz", want: crop.Dimensions{Width: 1710, Height: 1107}},
		{name: "Zero", input: "0x0", wantErr: true},
		{name: "Garbage", input: "No resolution here", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResolutionString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseXdpyinfo(t *testing.T) {
	out := `name of display:    :0
version number:    11.0
screen #0:
  dimensions:    2560x1440 pixels (677x381 millimeters)
  resolution:    96x96 dots per inch
`
	got, err := parseXdpyinfo(out)
	assert.NoError(t, err)
	assert.Equal(t, crop.Dimensions{Width: 2560, Height: 1440}, got)

	_, err = parseXdpyinfo("screen #0:\n  resolution:    96x96 dots per inch\n")
	assert.Error(t, err)
}

func TestParseSystemProfilerJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    crop.Dimensions
		wantErr bool
	}{
		{
			name: "Main display wins",
			input: `{"SPDisplaysDataType":[{"spdisplays_ndrvs":[
				{"_spdisplays_pixels":"1920 x 1080"},
				{"_spdisplays_pixels":"3456 x 2234","spdisplays_main":"spdisplays_yes"}]}]}`,
			want: crop.Dimensions{Width: 3456, Height: 2234},
		},
		{
			name:  "First display fallback",
			input: `{"SPDisplaysDataType":[{"spdisplays_ndrvs":[{"_spdisplays_pixels":"2560 x 1440"}]}]}`,
			want:  crop.Dimensions{Width: 2560, Height: 1440},
		},
		{
			name:  "Pixel resolution when pixels missing",
			input: `{"SPDisplaysDataType":[{"spdisplays_ndrvs":[{"spdisplays_pixelresolution":"2880x1864Retina","spdisplays_main":"spdisplays_yes"}]}]}`,
			want:  crop.Dimensions{Width: 2880, Height: 1864},
		},
		{name: "No displays", input: `{"SPDisplaysDataType":[]}`, wantErr: true},
		{name: "Invalid JSON", input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSystemProfilerJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
