package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/foldedit/pkg/fsutil"
)

// Discover finds the files selected by opts. It returns sorted, deduplicated absolute
// paths. Hidden files, directories and backups are skipped, as are vendored and image
// files unless opts.IncludeVendored is set.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if !info.IsDir() {
			// Explicitly named files skip the vendor heuristics.
			if selected(absPath, workDir, "", opts) {
				add(absPath)
			}
			continue
		}

		found, err := walk(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relative(workDir, path)
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || anyGlob(rel, opts.ExcludeGlobs) ||
				(!opts.IncludeVendored && enry.IsVendor(filepath.ToSlash(relative(root, path))+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				sub, err := walk(ctx, target, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if selected(path, workDir, root, opts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

func relative(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// selected applies the extension, glob, and vendor filters to one file. Globs match the
// path relative to workDir; the vendor heuristics see the path relative to the walked
// root. Explicitly named files pass an empty root and skip the vendor heuristics.
func selected(path, workDir, root string, opts Options) bool {
	rel := relative(workDir, path)
	if strings.HasSuffix(path, fsutil.BackupSuffix) {
		return false
	}

	if len(opts.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		found := false
		for _, want := range opts.Extensions {
			if strings.ToLower(want) == ext {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if anyGlob(rel, opts.ExcludeGlobs) {
		return false
	}
	if len(opts.IncludeGlobs) > 0 && !anyGlob(rel, opts.IncludeGlobs) {
		return false
	}
	if root != "" && !opts.IncludeVendored {
		slashed := filepath.ToSlash(relative(root, path))
		if enry.IsVendor(slashed) || enry.IsImage(slashed) {
			return false
		}
	}
	return true
}

func anyGlob(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a relative path against patterns like "*.go", "vendor/**" or
// "**/testdata". Patterns without a slash also match the base name.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "**") {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
		ok, err := filepath.Match(pattern, filepath.Base(path))
		return err == nil && ok
	}

	head, tail, _ := strings.Cut(pattern, "**")
	head = strings.TrimSuffix(head, "/")
	tail = strings.TrimPrefix(tail, "/")

	if head != "" && path != head && !strings.HasPrefix(path, head+"/") {
		return false
	}
	if tail == "" {
		return true
	}
	parts := strings.Split(path, "/")
	for i := range parts {
		suffix := strings.Join(parts[i:], "/")
		if ok, err := filepath.Match(tail, suffix); err == nil && ok {
			return true
		}
		// A directory pattern such as "**/testdata" matches everything below it.
		if ok, err := filepath.Match(tail, parts[i]); err == nil && ok {
			return true
		}
	}
	return false
}
