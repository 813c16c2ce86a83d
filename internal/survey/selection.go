package survey

const (
	// MaxDirectBehaviors is the largest selection submitted without the
	// priority stage; every member is then high priority.
	MaxDirectBehaviors = 3
	MaxHighPriority    = 3
)

// Selection tracks the behaviors a user picked and, when more than
// MaxDirectBehaviors were picked, the narrowed high-priority subset.
// Both lists keep selection order.
type Selection struct {
	selected []int
	high     []int
}

// Toggle adds or removes id from the selection. Removing also drops it from
// the high-priority subset.
func (s *Selection) Toggle(id int) {
	if i := indexOf(s.selected, id); i >= 0 {
		s.selected = removeAt(s.selected, i)
		if j := indexOf(s.high, id); j >= 0 {
			s.high = removeAt(s.high, j)
		}
		return
	}
	s.selected = append(s.selected, id)
}

// ToggleHighPriority flips id in the high-priority subset. Ids outside the
// selection and a fourth addition are ignored; the result reports whether
// anything changed.
func (s *Selection) ToggleHighPriority(id int) bool {
	if indexOf(s.selected, id) < 0 {
		return false
	}
	if j := indexOf(s.high, id); j >= 0 {
		s.high = removeAt(s.high, j)
		return true
	}
	if len(s.high) >= MaxHighPriority {
		return false
	}
	s.high = append(s.high, id)
	return true
}

func (s *Selection) IsSelected(id int) bool { return indexOf(s.selected, id) >= 0 }

func (s *Selection) IsHighPriority(id int) bool { return indexOf(s.high, id) >= 0 }

func (s *Selection) Len() int { return len(s.selected) }

func (s *Selection) Selected() []int { return append([]int(nil), s.selected...) }

func (s *Selection) HighPriority() []int { return append([]int(nil), s.high...) }

// NeedsPriorityStage reports whether the user must narrow the selection.
func (s *Selection) NeedsPriorityStage() bool { return len(s.selected) > MaxDirectBehaviors }

// BehaviorList builds the submit-behavior payload. Every selected behavior is
// first priority; high priority is implied for small selections and explicit
// otherwise.
func (s *Selection) BehaviorList() []BehaviorItem {
	direct := !s.NeedsPriorityStage()
	items := make([]BehaviorItem, 0, len(s.selected))
	for _, id := range s.selected {
		items = append(items, BehaviorItem{
			BehaviorID:    id,
			FirstPriority: true,
			HighPriority:  direct || s.IsHighPriority(id),
		})
	}
	return items
}

func (s *Selection) Reset() {
	s.selected = nil
	s.high = nil
}

func indexOf(ids []int, id int) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []int, i int) []int {
	out := make([]int, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}
