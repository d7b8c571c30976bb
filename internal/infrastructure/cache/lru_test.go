package cache

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(c uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: c, A: 0xff})
	return img
}

func red(t *testing.T, img image.Image) uint8 {
	t.Helper()
	rgba, ok := img.(*image.RGBA)
	require.True(t, ok)
	return rgba.RGBAAt(0, 0).R
}

func TestLRU_HoldsFramesByElement(t *testing.T) {
	frames := NewLRU[string, image.Image](4)

	frames.Set("__areashot_media_1", frame(10))
	frames.Set("__areashot_media_2", frame(20))

	got, ok := frames.Get("__areashot_media_1")
	require.True(t, ok)
	assert.Equal(t, uint8(10), red(t, got))
	assert.Equal(t, 2, frames.Len())

	_, ok = frames.Get("__areashot_media_3")
	assert.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyPainted(t *testing.T) {
	frames := NewLRU[string, image.Image](2)
	frames.Set("video", frame(1))
	frames.Set("canvas", frame(2))

	// The video is painted again on the next tile.
	_, ok := frames.Get("video")
	require.True(t, ok)

	frames.Set("iframe-video", frame(3))

	assert.Equal(t, 2, frames.Len())
	_, ok = frames.Get("canvas")
	assert.False(t, ok, "canvas was the least recently used")
	_, ok = frames.Get("video")
	assert.True(t, ok)
	_, ok = frames.Get("iframe-video")
	assert.True(t, ok)
}

func TestLRU_SetReplacesFrame(t *testing.T) {
	frames := NewLRU[string, image.Image](2)
	frames.Set("video", frame(1))
	frames.Set("video", frame(9))

	got, ok := frames.Get("video")
	require.True(t, ok)
	assert.Equal(t, uint8(9), red(t, got))
	assert.Equal(t, 1, frames.Len())
}

func TestLRU_ClearBetweenCaptures(t *testing.T) {
	frames := NewLRU[string, image.Image](32)
	for i := range 40 {
		frames.Set(fmt.Sprintf("media-%d", i), frame(uint8(i)))
	}
	require.Equal(t, 32, frames.Len())

	frames.Clear()

	assert.Zero(t, frames.Len())
	_, ok := frames.Get("media-39")
	assert.False(t, ok)

	// Still usable for the next capture.
	frames.Set("media-0", frame(5))
	assert.Equal(t, 1, frames.Len())
}

func TestLRU_Remove(t *testing.T) {
	frames := NewLRU[string, image.Image](2)
	frames.Set("video", frame(1))

	frames.Remove("video")
	frames.Remove("missing")

	assert.Zero(t, frames.Len())
}

func TestLRU_MinimumCapacity(t *testing.T) {
	frames := NewLRU[string, image.Image](0)
	frames.Set("a", frame(1))
	frames.Set("b", frame(2))

	assert.Equal(t, 1, frames.Len())
	_, ok := frames.Get("b")
	assert.True(t, ok)
}

func TestLRU_ConcurrentUse(t *testing.T) {
	frames := NewLRU[string, image.Image](8)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				id := fmt.Sprintf("media-%d", (w*100+i)%16)
				frames.Set(id, frame(uint8(i)))
				frames.Get(id)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, frames.Len(), 8)
}
