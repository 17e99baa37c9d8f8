package star

import "sort"

type ActivityAnalyticsRow struct {
	ActivityName    string `json:"activity_name"`
	Description     string `json:"description"`
	Schedule        string `json:"schedule"`
	MaxParticipants int    `json:"max_participants"`
	CurrentSignups  int    `json:"current_signups"`
	SpotsLeft       int    `json:"spots_left"`
}

type StudentAnalyticsRow struct {
	StudentName     string   `json:"student_name"`
	Email           string   `json:"email"`
	GradeLevel      int      `json:"grade_level"`
	ActivitiesCount int      `json:"activities_count"`
	Activities      []string `json:"activities"`
}

type GradeAnalyticsRow struct {
	GradeLevel           int     `json:"grade_level"`
	UniqueStudents       int     `json:"unique_students"`
	TotalSignups         int     `json:"total_signups"`
	AvgSignupsPerStudent float64 `json:"avg_signups_per_student"`
}

// ActivityAnalytics reports one row per activity, in insertion order,
// counting its facts with a full scan. SpotsLeft goes negative once
// signups exceed capacity; the store never rejects a signup.
func (s *Store) ActivityAnalytics() []ActivityAnalyticsRow {
	rows := make([]ActivityAnalyticsRow, 0, len(s.activities))
	for _, a := range s.activities {
		count := 0
		for _, f := range s.signups {
			if f.ActivityID == a.ActivityID {
				count++
			}
		}
		rows = append(rows, ActivityAnalyticsRow{
			ActivityName:    a.ActivityName,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			CurrentSignups:  count,
			SpotsLeft:       a.MaxParticipants - count,
		})
	}
	return rows
}

// StudentAnalytics reports one row per student, in insertion order. The
// activity list follows fact order and keeps duplicates: signing up twice
// counts twice.
func (s *Store) StudentAnalytics() []StudentAnalyticsRow {
	rows := make([]StudentAnalyticsRow, 0, len(s.students))
	for _, st := range s.students {
		activities := []string{}
		for _, f := range s.signups {
			if f.StudentID != st.StudentID {
				continue
			}
			if a, ok := s.ActivityByID(f.ActivityID); ok {
				activities = append(activities, a.ActivityName)
			}
		}
		rows = append(rows, StudentAnalyticsRow{
			StudentName:     st.Name,
			Email:           st.Email,
			GradeLevel:      st.GradeLevel,
			ActivitiesCount: len(activities),
			Activities:      activities,
		})
	}
	return rows
}

// GradeAnalytics aggregates the fact table by the signing student's grade
// level, ascending. Grades without any signup do not appear.
func (s *Store) GradeAnalytics() []GradeAnalyticsRow {
	type agg struct {
		students map[int]struct{}
		signups  int
	}
	byGrade := make(map[int]*agg)
	for _, f := range s.signups {
		st, ok := s.StudentByID(f.StudentID)
		if !ok {
			continue
		}
		a := byGrade[st.GradeLevel]
		if a == nil {
			a = &agg{students: make(map[int]struct{})}
			byGrade[st.GradeLevel] = a
		}
		a.students[st.StudentID] = struct{}{}
		a.signups++
	}

	grades := make([]int, 0, len(byGrade))
	for g := range byGrade {
		grades = append(grades, g)
	}
	sort.Ints(grades)

	rows := make([]GradeAnalyticsRow, 0, len(grades))
	for _, g := range grades {
		a := byGrade[g]
		rows = append(rows, GradeAnalyticsRow{
			GradeLevel:           g,
			UniqueStudents:       len(a.students),
			TotalSignups:         a.signups,
			AvgSignupsPerStudent: float64(a.signups) / float64(len(a.students)),
		})
	}
	return rows
}
