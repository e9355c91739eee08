package renderer

import (
	"brickwall/internal/logger"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Names of the 1x1 textures bound in place of maps a material does not have.
const (
	DefaultWhiteTexture  = "default-white"
	DefaultNormalTexture = "default-normal"
	DefaultHeightTexture = "default-height"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures int
	CacheHits     int
	CacheMisses   int
	TotalBytes    int
}

// TextureManager uploads decoded images to GL and caches them by name. Textures
// live until Clear; the demos never release one earlier.
type TextureManager struct {
	textureCache map[string]uint32 // name -> OpenGL texture ID
	texturePaths map[uint32]string // texture ID -> name (for debugging)
	mu           sync.RWMutex
	stats        TextureStats
}

func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache: make(map[string]uint32),
		texturePaths: make(map[uint32]string),
	}
}

// Upload creates a texture from img, or returns the cached one for name.
// Must be called on the thread that owns the GL context.
func (tm *TextureManager) Upload(name string, img *image.RGBA) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.textureCache[name]; exists {
		tm.stats.CacheHits++
		logger.Log.Debug("Texture cache hit",
			zap.String("name", name),
			zap.Uint32("textureID", textureID))
		return textureID, nil
	}
	tm.stats.CacheMisses++

	if img == nil {
		return 0, fmt.Errorf("texture %q: nil image", name)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("texture %q: empty image", name)
	}
	pix := flipRows(img)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(w), int32(h),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	tm.textureCache[name] = textureID
	tm.texturePaths[textureID] = name
	tm.stats.TotalTextures++
	tm.stats.TotalBytes += len(pix)

	logger.Log.Info("Texture uploaded",
		zap.String("name", name),
		zap.Uint32("textureID", textureID),
		zap.Int("width", w),
		zap.Int("height", h))

	return textureID, nil
}

// UploadDefaults creates the neutral stand-ins for unbound maps.
func (tm *TextureManager) UploadDefaults() error {
	defaults := []struct {
		name string
		c    color.RGBA
	}{
		{DefaultWhiteTexture, color.RGBA{255, 255, 255, 255}},
		{DefaultNormalTexture, color.RGBA{128, 128, 255, 255}},
		{DefaultHeightTexture, color.RGBA{128, 128, 128, 255}},
	}
	for _, d := range defaults {
		if _, err := tm.Upload(d.name, solid(d.c)); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the texture ID cached for name, or 0.
func (tm *TextureManager) Lookup(name string) uint32 {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.textureCache[name]
}

func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.stats
}

func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("totalMB", float64(stats.TotalBytes)/(1024*1024)))
}

// Clear deletes every texture.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.texturePaths {
		id := textureID
		gl.DeleteTextures(1, &id)
	}

	tm.textureCache = make(map[string]uint32)
	tm.texturePaths = make(map[uint32]string)

	logger.Log.Info("Texture manager cleared")
}

// flipRows returns the pixels bottom row first, the order GL expects so that
// v=1 samples the top of the image.
func flipRows(img *image.RGBA) []uint8 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowLen := w * 4
	out := make([]uint8, rowLen*h)
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		dst := (h - 1 - y) * rowLen
		copy(out[dst:dst+rowLen], img.Pix[src:src+rowLen])
	}
	return out
}

func solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}
