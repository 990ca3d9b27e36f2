package models

import "time"

// RoadmapNote holds one user's notes for one study-plan day. Its id is
// derived from (owner, date) so a day can never accumulate a second note.
type RoadmapNote struct {
	Base
	Date            string    `gorm:"index" json:"date"` // DD-MM-YYYY day key
	Content         string    `json:"content"`
	CompletedTopics TopicList `gorm:"serializer:json" json:"completedTopics"`
	Updated         time.Time `json:"updated"`
}

type TopicList []string

// Contains reports whether the topic is marked complete.
func (l TopicList) Contains(name string) bool {
	for _, t := range l {
		if t == name {
			return true
		}
	}
	return false
}
