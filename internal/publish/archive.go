// Package publish stores dashboards as compressed archives and uploads them
// to an S3 bucket.
package publish

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"

	"github.com/kreyling/cragg/internal/dashboard"
)

// ArchiveExtension is appended to the archive file names.
const ArchiveExtension = ".json.xz"

// WriteArchive writes d as xz compressed JSON to w.
func WriteArchive(w io.Writer, d *dashboard.Dashboard) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "unable to create xz writer")
	}
	if err := json.NewEncoder(xw).Encode(d); err != nil {
		_ = xw.Close()
		return errors.Wrap(err, "unable to encode dashboard")
	}
	return errors.Wrap(xw.Close(), "unable to flush archive")
}

// ReadArchive reads a dashboard written by WriteArchive.
func ReadArchive(r io.Reader) (*dashboard.Dashboard, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read xz stream")
	}
	d := &dashboard.Dashboard{}
	if err := json.NewDecoder(xr).Decode(d); err != nil {
		return nil, errors.Wrap(err, "unable to decode dashboard")
	}
	return d, nil
}

// SaveArchive writes the archive of d to path.
func SaveArchive(path string, d *dashboard.Dashboard) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	return closeAfter(f, path, WriteArchive(f, d))
}

// closeAfter closes f and returns err, or the close error when err is nil.
func closeAfter(f io.Closer, path string, err error) error {
	if cerr := f.Close(); cerr != nil && err == nil {
		return errors.Wrapf(cerr, "unable to close %s", path)
	}
	return err
}

// LoadArchive reads the archive at path.
func LoadArchive(path string) (*dashboard.Dashboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()
	return ReadArchive(f)
}
