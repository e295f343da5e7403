// Package assets gives access to the files embedded in the binary.
package assets

import (
	"embed"
	"io/fs"

	"github.com/pkg/errors"
)

// DashboardTemplate is the html/template of the dashboard page.
const DashboardTemplate = "data/templates/dashboard.html"

var efs *embed.FS

func GetData() *embed.FS {
	return efs
}

func UpdateData(d *embed.FS) {
	efs = d
}

// ReadFile reads name from the embedded files.
func ReadFile(name string) ([]byte, error) {
	if efs == nil {
		return nil, errors.Errorf("no embedded files to read %s from", name)
	}
	data, err := efs.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read embedded file %s", name)
	}
	return data, nil
}

// GetAllFilenames returns every file name below path in the embedded FS.
func GetAllFilenames(efs *embed.FS, path string) (files []string, err error) {
	if err := fs.WalkDir(efs, path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}
