package survey

const PageSize = 5

// Pager splits a question catalog into pages: the non-RADIO questions except
// the terminal one, then the RADIO questions, then a final page holding only
// the terminal question (the last non-RADIO question).
type Pager struct {
	text       []Question
	radio      []Question
	terminal   *Question
	textPages  int
	radioPages int
}

func NewPager(questions []Question) Pager {
	var p Pager

	// a lone question is always rendered as the terminal page
	if len(questions) <= 1 {
		if len(questions) == 1 {
			q := questions[0]
			p.terminal = &q
		}
		return p
	}

	var nonRadio []Question
	for _, q := range questions {
		if q.QuestionType == TypeRadio {
			p.radio = append(p.radio, q)
		} else {
			nonRadio = append(nonRadio, q)
		}
	}
	if n := len(nonRadio); n > 0 {
		q := nonRadio[n-1]
		p.terminal = &q
		p.text = nonRadio[:n-1]
	}

	p.textPages = ceilPages(len(p.text))
	p.radioPages = ceilPages(len(p.radio))
	return p
}

func ceilPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

func (p Pager) TextPages() int { return p.textPages }

func (p Pager) RadioPages() int { return p.radioPages }

func (p Pager) TotalPages() int { return p.textPages + p.radioPages + 1 }

func (p Pager) IsFinal(page int) bool { return page == p.TotalPages() }

// Terminal returns the question shown alone on the final page.
func (p Pager) Terminal() (Question, bool) {
	if p.terminal == nil {
		return Question{}, false
	}
	return *p.terminal, true
}

// Page returns the questions on the 1-indexed page. Out of range pages are empty.
func (p Pager) Page(page int) []Question {
	switch {
	case page < 1 || page > p.TotalPages():
		return nil
	case page <= p.textPages:
		return window(p.text, page-1)
	case page <= p.textPages+p.radioPages:
		return window(p.radio, page-p.textPages-1)
	default:
		if p.terminal == nil {
			return nil
		}
		return []Question{*p.terminal}
	}
}

func window(qs []Question, idx int) []Question {
	start := idx * PageSize
	end := start + PageSize
	if end > len(qs) {
		end = len(qs)
	}
	out := make([]Question, end-start)
	copy(out, qs[start:end])
	return out
}
