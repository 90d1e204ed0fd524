package course

import "gorm.io/gorm"

// Module represents a YouTube-video-backed lesson within a course
type Module struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	ThumbnailURL    string `json:"thumbnail_url"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsActive        bool   `json:"is_active" gorm:"default:true;index"`
}
