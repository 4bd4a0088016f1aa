package adb

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Device directories that cache archives are pushed into.
const (
	RemoteDataDir = "/sdcard/Android/data"
	RemoteObbDir  = "/sdcard/Android/obb"
)

// InstallOptions controls Client.Install.
type InstallOptions struct {
	Replace   bool   // pass -r to reinstall over an existing package
	Multiple  bool   // use install-multi-package
	DataCache string // zip archive staged into RemoteDataDir before install
	ObbCache  string // zip archive staged into RemoteObbDir before install
}

// DefaultInstallOptions returns options with Replace set.
func DefaultInstallOptions() InstallOptions {
	return InstallOptions{Replace: true}
}

type cacheTarget struct {
	kind   string
	dir    string // staging directory name under the client's temp dir
	remote string
}

var (
	dataCache = cacheTarget{kind: "data", dir: "android_manager_data_cache", remote: RemoteDataDir}
	obbCache  = cacheTarget{kind: "obb", dir: "android_manager_obb_cache", remote: RemoteObbDir}
)

var packageExts = []string{".apk", ".apks"}

const macMetadataDir = "__MACOSX"

// ValidatePackage checks that path exists and has an installable extension.
func ValidatePackage(path string) error {
	if err := checkExists(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range packageExts {
		if ext == e {
			return nil
		}
	}
	return &ValidationError{Path: path, Err: ErrBadExtension}
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &ValidationError{Path: path, Err: ErrPathNotFound}
		}
		return &ValidationError{Path: path, Err: err}
	}
	return nil
}

// Install installs pkg on the device. Data and OBB caches named in opts are
// extracted and pushed first; any failure there stops the install.
func (c *Client) Install(serial, pkg string, opts InstallOptions) error {
	log := c.log.With().Str("serial", serial).Str("package", pkg).Logger()
	log.Info().
		Bool("replace", opts.Replace).
		Bool("multiple", opts.Multiple).
		Str("data_cache", opts.DataCache).
		Str("obb_cache", opts.ObbCache).
		Msg("installing package")

	if err := ValidatePackage(pkg); err != nil {
		log.Error().Err(err).Msg("install rejected")
		return err
	}
	if opts.DataCache != "" {
		if err := c.stageCache(serial, dataCache, opts.DataCache); err != nil {
			return err
		}
	}
	if opts.ObbCache != "" {
		if err := c.stageCache(serial, obbCache, opts.ObbCache); err != nil {
			return err
		}
	}

	if _, err := c.run(installArgs(serial, pkg, opts)...); err != nil {
		log.Error().Err(err).Msg("install failed")
		return err
	}
	log.Info().Msg("package installed")
	return nil
}

// installArgs builds `-s <serial> install [-r] <pkg>`, swapping the
// subcommand for install-multi-package when requested.
func installArgs(serial, pkg string, opts InstallOptions) []string {
	sub := "install"
	if opts.Multiple {
		sub = "install-multi-package"
	}
	args := []string{"-s", serial, sub}
	if opts.Replace {
		args = append(args, "-r")
	}
	return append(args, pkg)
}

// stageCache extracts archive into the target's staging directory and pushes
// its single top-level directory to the device.
func (c *Client) stageCache(serial string, t cacheTarget, archive string) error {
	log := c.log.With().Str("serial", serial).Str("cache", t.kind).Str("archive", archive).Logger()
	log.Info().Str("remote", t.remote).Msg("staging cache")

	if err := checkExists(archive); err != nil {
		log.Error().Err(err).Msg("cache rejected")
		return err
	}
	fail := func(err error) error {
		serr := &StagingError{Kind: t.kind, Archive: archive, Err: err}
		log.Error().Err(serr).Msg("cache staging failed")
		return serr
	}

	dir := filepath.Join(c.tempDir, t.dir)
	if err := os.RemoveAll(dir); err != nil {
		return fail(fmt.Errorf("clear staging dir: %w", err))
	}
	defer os.RemoveAll(dir)

	if err := extractZip(archive, dir); err != nil {
		return fail(err)
	}
	child, err := cacheDir(dir)
	if err != nil {
		return fail(err)
	}
	if err := c.Push(serial, child, t.remote); err != nil {
		return fail(err)
	}
	log.Info().Msg("cache staged")
	return nil
}

// cacheDir returns the single top-level directory of an extracted cache
// archive. Finder's __MACOSX metadata directory is ignored.
func cacheDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read staging dir: %w", err)
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != macMetadataDir {
			found = append(found, e.Name())
		}
	}
	switch len(found) {
	case 0:
		return "", ErrNoCacheDir
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousCacheDir, strings.Join(found, ", "))
	}
}

func extractZip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(dest)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	for _, f := range r.File {
		target := filepath.Join(root, f.Name)
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes staging dir", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", f.Name, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(f.Name), err)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm()|0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return dst.Close()
}

// Push copies a local file or directory to remote on the device.
func (c *Client) Push(serial, local, remote string) error {
	log := c.log.With().Str("serial", serial).Str("local", local).Str("remote", remote).Logger()
	log.Info().Msg("pushing")
	if err := checkExists(local); err != nil {
		log.Error().Err(err).Msg("push rejected")
		return err
	}
	if _, err := c.run("-s", serial, "push", local, remote); err != nil {
		log.Error().Err(err).Msg("push failed")
		return err
	}
	log.Info().Msg("push finished")
	return nil
}
