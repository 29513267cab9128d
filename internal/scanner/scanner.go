package scanner

import (
	"path/filepath"

	"github.com/spf13/afero"

	"rmrf/internal/errors"
	"rmrf/internal/logger"
)

// Options defines target selection. A nil Include selects the root itself.
type Options struct {
	Include []string // exact base names that become targets
	Exclude []string // exact base names that are skipped entirely
}

// Resolve returns the subtree roots to delete, in discovery order.
//
// Without Include the root is the single target. Otherwise child directories
// are inspected depth first: an included name becomes a target and is not
// descended into, an excluded name is skipped, anything else is explored with
// the same rule. Include wins over Exclude.
func Resolve(fsys afero.Fs, root string, opts Options) ([]string, error) {
	if opts.Include == nil {
		return []string{root}, nil
	}
	include := nameSet(opts.Include)
	exclude := nameSet(opts.Exclude)

	var targets []string
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := childDirs(fsys, dir)
		if err != nil {
			return nil, err
		}
		var explore []string
		for _, child := range children {
			name := filepath.Base(child)
			if _, ok := include[name]; ok {
				targets = append(targets, child)
				continue
			}
			if _, ok := exclude[name]; ok {
				logger.Get().Debug().Str("path", child).Msg("excluded")
				continue
			}
			explore = append(explore, child)
		}
		// reversed so the first child is explored first
		for i := len(explore) - 1; i >= 0; i-- {
			stack = append(stack, explore[i])
		}
	}
	logger.Get().Debug().Int("targets", len(targets)).Str("path", root).Msg("resolved targets")
	return targets, nil
}

type frame struct {
	path     string
	children []string
	next     int
}

// Flatten expands targets into a deletion order in which every directory comes
// after all of its descendant directories. Targets keep their given order.
func Flatten(fsys afero.Fs, targets []string) ([]string, error) {
	flat := make([]string, 0, len(targets))
	for _, target := range targets {
		children, err := childDirs(fsys, target)
		if err != nil {
			return nil, err
		}
		stack := []frame{{path: target, children: children}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.children) {
				child := top.children[top.next]
				top.next++
				grand, err := childDirs(fsys, child)
				if err != nil {
					return nil, err
				}
				stack = append(stack, frame{path: child, children: grand})
				continue
			}
			flat = append(flat, top.path)
			stack = stack[:len(stack)-1]
		}
	}
	logger.Get().Debug().Int("dirs", len(flat)).Msg("flattened targets")
	return flat, nil
}

// childDirs lists the immediate subdirectories of dir, sorted by name.
// Symlinks are not followed.
func childDirs(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.ListError(dir, err)
	}
	var dirs []string
	for _, fi := range infos {
		if fi.IsDir() {
			dirs = append(dirs, filepath.Join(dir, fi.Name()))
		}
	}
	return dirs, nil
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
