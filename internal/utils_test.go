package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{arg: "tAP1eZYEuKA", want: "https://www.youtube.com/watch?v=tAP1eZYEuKA"},
		{arg: " tAP1eZYEuKA ", want: "https://www.youtube.com/watch?v=tAP1eZYEuKA"},
		{arg: "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf", want: "https://www.youtube.com/playlist?list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf"},
		{arg: "https://youtu.be/tAP1eZYEuKA", want: "https://youtu.be/tAP1eZYEuKA"},
		{arg: "https://vimeo.com/76979871", want: "https://vimeo.com/76979871"},
		{arg: "not-an-id", want: "not-an-id"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArg(tt.arg))
		})
	}
}

func TestVideoID(t *testing.T) {
	id, err := VideoID("https://www.youtube.com/watch?v=tAP1eZYEuKA&t=42")
	require.NoError(t, err)
	assert.Equal(t, "tAP1eZYEuKA", id)

	id, err = VideoID("https://youtu.be/tAP1eZYEuKA")
	require.NoError(t, err)
	assert.Equal(t, "tAP1eZYEuKA", id)

	_, err = VideoID("https://www.youtube.com/playlist?list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf")
	assert.Error(t, err)

	_, err = VideoID("https://vimeo.com/76979871")
	assert.Error(t, err)
}

func TestIsValidYouTubeID(t *testing.T) {
	assert.True(t, IsValidYouTubeID("tAP1eZYEuKA"))
	assert.True(t, IsValidYouTubeID("a-b_c1234XY"))
	assert.False(t, IsValidYouTubeID("short"))
	assert.False(t, IsValidYouTubeID("tAP1eZYEu!A"))
}

func TestIsValidPlaylistID(t *testing.T) {
	assert.True(t, IsValidPlaylistID("PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf"))
	assert.True(t, IsValidPlaylistID("OLAK5uy_kM0bEwFz2l3pBa7sy6CQsD-b1AW0RyOc"))
	assert.False(t, IsValidPlaylistID("PLshort"))
	assert.False(t, IsValidPlaylistID("tAP1eZYEuKA"))
}
