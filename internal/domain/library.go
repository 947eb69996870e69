package domain

import "sort"

// LibraryState is the unit persisted under the library slot. Videos and exercises
// are always loaded and saved together.
type LibraryState struct {
	Videos    []VideoItem    `json:"videos"`
	Exercises []ExerciseItem `json:"exercises"`
}

// EmptyLibrary returns the empty shape with non-nil slices, so it serializes as
// {"videos":[],"exercises":[]}.
func EmptyLibrary() LibraryState {
	return LibraryState{Videos: []VideoItem{}, Exercises: []ExerciseItem{}}
}

// Normalize replaces nil collections with empty ones.
func (s LibraryState) Normalize() LibraryState {
	if s.Videos == nil {
		s.Videos = []VideoItem{}
	}
	if s.Exercises == nil {
		s.Exercises = []ExerciseItem{}
	}
	return s
}

// VisibleTo reduces both collections with the visibility rule.
func (s LibraryState) VisibleTo(principal string) LibraryState {
	return LibraryState{
		Videos:    FilterVisible(s.Videos, principal),
		Exercises: FilterVisible(s.Exercises, principal),
	}
}

// FindVideo returns the video with id, if present.
func (s LibraryState) FindVideo(id string) (VideoItem, bool) {
	for _, v := range s.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return VideoItem{}, false
}

// FindExercise returns the exercise with id, if present.
func (s LibraryState) FindExercise(id string) (ExerciseItem, bool) {
	for _, e := range s.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return ExerciseItem{}, false
}

// DefaultCategories are always offered for browsing, even when no entry uses them.
var DefaultCategories = []string{"shooting", "dribbling", "passing", "defense", "conditioning", "footwork"}

// Categories returns the default categories plus every category in use, sorted.
func (s LibraryState) Categories() []string {
	set := make(map[string]struct{}, len(DefaultCategories))
	for _, c := range DefaultCategories {
		set[c] = struct{}{}
	}
	for _, v := range s.Videos {
		if v.Category != "" {
			set[v.Category] = struct{}{}
		}
	}
	for _, e := range s.Exercises {
		if e.Category != "" {
			set[e.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// BrowseFilter narrows a library view. Empty or "all" fields do not filter.
type BrowseFilter struct {
	Category   string
	Visibility string
}

// Apply returns the entries of s matching the filter. Entries without a category
// match the "uncategorized" category.
func (f BrowseFilter) Apply(s LibraryState) LibraryState {
	out := EmptyLibrary()
	for _, v := range s.Videos {
		if f.matches(v.CategoryLabel(), v.Visibility) {
			out.Videos = append(out.Videos, v)
		}
	}
	for _, e := range s.Exercises {
		if f.matches(e.CategoryLabel(), e.Visibility) {
			out.Exercises = append(out.Exercises, e)
		}
	}
	return out
}

func (f BrowseFilter) matches(category string, vis Visibility) bool {
	if f.Category != "" && f.Category != "all" && f.Category != category {
		return false
	}
	if f.Visibility != "" && f.Visibility != "all" && Visibility(f.Visibility) != vis {
		return false
	}
	return true
}
