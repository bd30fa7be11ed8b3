package browser

// collectAll gathers every match for the locator across the root frame and
// all frames up to MaxFrameDepth. A frame whose query errors contributes zero
// matches instead of failing the aggregate. Ordering is the frame-visit
// order of the resolver, and within a frame the order of the underlying
// multi-match query.
func collectAll(root FrameView, locator string) []Match {
	var matches []Match

	if handles, err := root.QueryAll(locator); err == nil {
		for _, handle := range handles {
			matches = append(matches, Match{Handle: handle, Frame: root})
		}
	}

	for _, child := range root.Children() {
		collectSubtree(child, locator, 1, &matches)
	}

	return matches
}

func collectSubtree(frame FrameView, locator string, depth int, matches *[]Match) {
	if depth > MaxFrameDepth {
		return
	}

	if handles, err := frame.QueryAll(locator); err == nil {
		for _, handle := range handles {
			*matches = append(*matches, Match{Handle: handle, Frame: frame})
		}
	}

	for _, child := range frame.Children() {
		collectSubtree(child, locator, depth+1, matches)
	}
}
