package flow

import (
	"fmt"

	"github.com/gobwas/glob"
)

// TagFilter selects flows by their tags. Include patterns admit a flow when
// any tag matches any pattern (no include patterns admits everything);
// exclude patterns then reject a flow when any tag matches. Patterns use glob
// syntax, so "smoke-*" covers a family of tags.
type TagFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewTagFilter compiles include and exclude patterns into a filter.
func NewTagFilter(include, exclude []string) (*TagFilter, error) {
	compiled := func(patterns []string) ([]glob.Glob, error) {
		globs := make([]glob.Glob, 0, len(patterns))
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
			}
			globs = append(globs, g)
		}
		return globs, nil
	}

	includeGlobs, err := compiled(include)
	if err != nil {
		return nil, err
	}
	excludeGlobs, err := compiled(exclude)
	if err != nil {
		return nil, err
	}
	return &TagFilter{include: includeGlobs, exclude: excludeGlobs}, nil
}

// Matches reports whether a flow with the given tags passes the filter.
func (f *TagFilter) Matches(tags []string) bool {
	if len(f.include) > 0 && !anyMatch(f.include, tags) {
		return false
	}
	return !anyMatch(f.exclude, tags)
}

func anyMatch(patterns []glob.Glob, tags []string) bool {
	for _, pattern := range patterns {
		for _, tag := range tags {
			if pattern.Match(tag) {
				return true
			}
		}
	}
	return false
}
