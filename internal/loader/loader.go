package loader

import (
	"brickwall/internal/logger"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is one named image in a manifest.
type Source struct {
	Name string
	Path string
}

// Manifest is the ordered list of images a demo needs before it can launch.
type Manifest []Source

// Assets holds decoded images by manifest name.
type Assets map[string]*image.RGBA

// Fallback supplies an image when a manifest path does not exist.
type Fallback func(name string) (*image.RGBA, error)

// Load decodes every image in the manifest concurrently. Files that do not exist
// are replaced by fallback when it is non-nil; any other failure aborts the load.
func Load(ctx context.Context, manifest Manifest, fallback Fallback) (Assets, error) {
	start := time.Now()
	images := make([]*image.RGBA, len(manifest))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, src := range manifest {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(src.Path)
			if errors.Is(err, fs.ErrNotExist) && fallback != nil {
				logger.Log.Warn("Texture missing, using procedural fallback",
					zap.String("name", src.Name),
					zap.String("path", src.Path))
				img, err = fallback(src.Name)
			}
			if err != nil {
				return fmt.Errorf("load %s (%s): %w", src.Name, src.Path, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assets := make(Assets, len(manifest))
	for i, src := range manifest {
		assets[src.Name] = images[i]
	}
	logger.Log.Info("Assets loaded",
		zap.Int("count", len(assets)),
		zap.Duration("elapsed", time.Since(start)))
	return assets, nil
}

// LoadAsync runs Load on its own goroutine and calls onDone exactly once with the
// result. onDone runs on that goroutine; callers hand it to their render thread.
func LoadAsync(ctx context.Context, manifest Manifest, fallback Fallback, onDone func(Assets, error)) {
	var once sync.Once
	go func() {
		assets, err := Load(ctx, manifest, fallback)
		once.Do(func() { onDone(assets, err) })
	}()
}

func decodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to a tightly packed *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
