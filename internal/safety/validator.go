// Package safety decides whether a concrete filesystem path may be
// deleted. The validator is deny-by-default: a path is safe only when it
// falls inside one of the policy's curated safe zones and trips none of
// the protection rules.
package safety

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Verdict is the outcome class of a validation.
type Verdict int

const (
	Safe Verdict = iota
	ProtectedPath
	OutsideAllowedPaths
	SymlinkToProtected
	PathTraversal
	DoesNotExist
	InvalidPath
)

// String returns the verdict name used in logs and error messages.
func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case ProtectedPath:
		return "protected path"
	case OutsideAllowedPaths:
		return "outside allowed paths"
	case SymlinkToProtected:
		return "symlink to protected path"
	case PathTraversal:
		return "path traversal"
	case DoesNotExist:
		return "does not exist"
	case InvalidPath:
		return "invalid path"
	}
	return "unknown"
}

// Result is the stateless per-call output of Validate.
type Result struct {
	// Path is the normalized absolute path that was judged. Empty when
	// the input was rejected before normalization.
	Path string

	Verdict Verdict

	// Protected names the protected-set entry that triggered a
	// ProtectedPath or SymlinkToProtected verdict.
	Protected string
}

// Safe reports whether the path may be handed to the deletion executor.
func (r Result) Safe() bool { return r.Verdict == Safe }

// Validate applies the policy rules in order, first match wins:
// empty input, traversal tokens in the original string, exact protected
// match, allow-list membership, existence, and symlink target checks.
// It is a pure function of the policy and the filesystem: repeated calls
// on an unchanged filesystem return identical results.
func Validate(p Policy, raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Verdict: InvalidPath}
	}

	// Traversal is checked against the original string, before Clean can
	// collapse ".." segments and mask the attempt.
	if containsTraversal(raw) {
		return Result{Verdict: PathTraversal}
	}

	expanded := p.ExpandHome(raw)
	if !filepath.IsAbs(expanded) {
		return Result{Verdict: InvalidPath}
	}
	path := filepath.Clean(expanded)

	for _, prot := range p.Protected {
		if path == filepath.Clean(prot) {
			return Result{Path: path, Verdict: ProtectedPath, Protected: prot}
		}
	}

	if !p.allows(path) {
		return Result{Path: path, Verdict: OutsideAllowedPaths}
	}

	info, err := os.Lstat(path)
	if err != nil {
		// Vanished between enumeration and validation, or unreadable
		// parent: either way the path cannot be acted on.
		return Result{Path: path, Verdict: DoesNotExist}
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if target, which := p.symlinkEscapes(path); target {
			return Result{Path: path, Verdict: SymlinkToProtected, Protected: which}
		}
	}

	return Result{Path: path, Verdict: Safe}
}

// ValidateAll validates each path independently. Calls share no state,
// so the batch runs in parallel; results keep input order.
func ValidateAll(p Policy, paths []string) []Result {
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = Validate(p, path)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results
}

// FilterSafePaths returns the subset of paths that validate as safe,
// preserving input order.
func FilterSafePaths(p Policy, paths []string) []string {
	var safe []string
	for _, path := range paths {
		if Validate(p, path).Safe() {
			safe = append(safe, path)
		}
	}
	return safe
}

// allows reports whether path is a strict descendant of an allow-list
// entry, or equals an entry that is itself a leaf cache directory.
func (p Policy) allows(path string) bool {
	for _, root := range p.Allowed {
		root = filepath.Clean(root)
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
		if path == root && isCleanableLeaf(filepath.Base(root)) {
			return true
		}
	}
	return false
}

// symlinkEscapes resolves a symlink and reports whether its target falls
// under a protected entry without being inside a cache or trash subtree.
func (p Policy) symlinkEscapes(path string) (bool, string) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		// Broken link: nothing protected can be reached through it.
		return false, ""
	}
	target = filepath.Clean(target)
	if isCacheOrTrashSubtree(target) {
		return false, ""
	}
	for _, prot := range p.Protected {
		prot = filepath.Clean(prot)
		if prot == "/" {
			// Everything descends from the filesystem root; only a link
			// to "/" itself counts.
			if target == "/" {
				return true, prot
			}
			continue
		}
		if target == prot || strings.HasPrefix(target, prot+string(filepath.Separator)) {
			return true, prot
		}
	}
	return false, ""
}

// containsTraversal reports whether any path segment of the original,
// unnormalized input is a parent-directory token.
func containsTraversal(raw string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(raw), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
