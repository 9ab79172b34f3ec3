package main

import (
	"bytes"
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/sirupsen/logrus"
)

const iconName = "favicon.ico"

type Options struct {
	Filter  resize.InterpolationFunction
	Stretch bool
}

// GenerationError is returned for every failure between creating the
// output directory and renaming the finished icon into place.
type GenerationError struct {
	Op   string
	Path string
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

func genError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &GenerationError{Op: op, Path: path, Err: err}
}

// Generate writes <outDir>/favicon.ico holding one 32x32 frame of src.
// An existing favicon.ico is only replaced once the new one is complete.
func Generate(src, outDir string, opts Options) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", genError("mkdir", outDir, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return "", genError("open", src, err)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", genError("decode", src, err)
	}
	if img.Bounds().Empty() {
		return "", genError("decode", src, errors.New("image has no pixels"))
	}
	logrus.Debugf("decoded %s: %s %v", src, format, img.Bounds().Size())

	frame := fit(img, iconSize, opts.Filter, opts.Stretch)

	buf := bytes.Buffer{}
	if err := ico.Encode(&buf, frame); err != nil {
		return "", genError("encode", src, err)
	}

	dst := filepath.Join(outDir, iconName)
	if err := writeFile(dst, buf.Bytes()); err != nil {
		return "", genError("write", dst, err)
	}
	logrus.Debugf("wrote %s: %d bytes", dst, buf.Len())
	return dst, nil
}

// writeFile replaces dst with data through a temporary file in the same
// directory. An existing dst keeps its permission bits, a new one gets 0644.
func writeFile(dst string, data []byte) error {
	mode := fs.FileMode(0644)
	if st, err := os.Stat(dst); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".favicon-*.ico")
	if err != nil {
		return err
	}
	name := tmp.Name()

	_, err = tmp.Write(data)
	if err1 := tmp.Close(); err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(name, mode)
	}
	if err == nil {
		err = os.Rename(name, dst)
	}
	if err != nil {
		if err1 := os.Remove(name); err1 != nil && !errors.Is(err1, fs.ErrNotExist) {
			logrus.Errorf("remove temp file %s: %v", name, err1)
		}
		return err
	}
	return nil
}
