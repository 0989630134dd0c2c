package models

// ChartPoint is one day in a range summary
type ChartPoint struct {
	Date          string   `json:"date" yaml:"date"`
	Completed     int      `json:"completed" yaml:"completed"`
	Mood          int      `json:"mood" yaml:"mood"`
	Anchors       []string `json:"anchors" yaml:"anchors"`
	Explore       string   `json:"explore" yaml:"explore"`
	Journal       string   `json:"journal" yaml:"journal"`
	CompletedList []bool   `json:"completedList" yaml:"completedList"`
}

// ChartDatum is the minimal shape handed to chart renderers
type ChartDatum struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Mood      int    `json:"mood"`
}

// Totals summarizes a set of chart points
type Totals struct {
	Days         int     `json:"days" yaml:"days"`
	TasksDone    int     `json:"tasksDone" yaml:"tasksDone"`
	TasksPlanned int     `json:"tasksPlanned" yaml:"tasksPlanned"`
	CheckIns     int     `json:"checkIns" yaml:"checkIns"`
	AverageMood  float64 `json:"averageMood" yaml:"averageMood"`
}

// CalendarCell is one square of a month grid. Leading cells before the first
// of the month are Empty and carry no date.
type CalendarCell struct {
	Empty          bool     `json:"empty"`
	Day            int      `json:"day,omitempty"`
	Date           string   `json:"date,omitempty"`
	HasEntry       bool     `json:"hasEntry"`
	IsCheckedIn    bool     `json:"isCheckedIn"`
	Mood           int      `json:"mood"`
	Anchors        []string `json:"anchors,omitempty"`
	TasksCompleted int      `json:"tasksCompleted"`
	NumberOfTasks  int      `json:"numberOfTasks"`
}
