package scene

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/framer/pkg/errors"
)

// LoadImage decodes the image file at path. PNG, JPEG, GIF, WebP, TIFF and
// BMP are recognized by content, not extension.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image %s", path)
	}
	return img, nil
}

// DirLoader resolves document image paths against dir. Paths must be
// relative and stay inside dir.
func DirLoader(dir string) ImageLoader {
	return func(path string) (image.Image, error) {
		if err := errors.ValidatePath(filepath.ToSlash(path)); err != nil {
			return nil, err
		}
		return LoadImage(filepath.Join(dir, filepath.FromSlash(path)))
	}
}
