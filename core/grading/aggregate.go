package grading

// Pure aggregation over already-fetched grade rows. Averages are returned
// unrounded; display rounding belongs to the presentation boundary.

// GroupBySection partitions grade values by section. The result always
// holds exactly the four section keys; sections with no grades map to an
// empty list. Insertion order is preserved within each section.
func GroupBySection(grades []Grade) map[int][]int {
	sections := make(map[int][]int, len(Sections))
	for _, s := range Sections {
		sections[s] = []int{}
	}
	for _, g := range grades {
		if _, ok := sections[g.Section]; ok {
			sections[g.Section] = append(sections[g.Section], g.Value)
		}
	}
	return sections
}

// SubjectAverage computes the arithmetic mean of a subject's grade values
// across all sections combined, unweighted. ok is false when the subject
// has no grades; callers must render a placeholder then, never 0.
func SubjectAverage(sections map[int][]int) (avg float64, ok bool) {
	var sum, n int
	for _, values := range sections {
		for _, v := range values {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// OverallAverage computes the arithmetic mean across every grade row,
// regardless of subject. Same empty-input rule as SubjectAverage.
func OverallAverage(grades []Grade) (avg float64, ok bool) {
	if len(grades) == 0 {
		return 0, false
	}
	var sum int
	for _, g := range grades {
		sum += g.Value
	}
	return float64(sum) / float64(len(grades)), true
}

type (
	// SubjectReport groups one subject's grades by section.
	SubjectReport struct {
		Subject  string        `json:"subject"`
		Sections map[int][]int `json:"sections"`
		Average  *float64      `json:"average"` // null when the subject has no grades
	}

	StudentReport struct {
		Subjects       []SubjectReport `json:"subjects"`
		OverallAverage *float64        `json:"overall_average"` // null when the student has no grades
	}
)

// BuildReport derives a per-subject report from a student's grade rows.
// Subjects appear in order of first occurrence.
func BuildReport(grades []Grade) StudentReport {
	bySubject := make(map[string][]Grade)
	var order []string
	for _, g := range grades {
		if _, ok := bySubject[g.SubjectName]; !ok {
			order = append(order, g.SubjectName)
		}
		bySubject[g.SubjectName] = append(bySubject[g.SubjectName], g)
	}

	report := StudentReport{Subjects: make([]SubjectReport, 0, len(order))}
	for _, name := range order {
		sections := GroupBySection(bySubject[name])
		sub := SubjectReport{Subject: name, Sections: sections}
		if avg, ok := SubjectAverage(sections); ok {
			sub.Average = &avg
		}
		report.Subjects = append(report.Subjects, sub)
	}
	if avg, ok := OverallAverage(grades); ok {
		report.OverallAverage = &avg
	}
	return report
}
