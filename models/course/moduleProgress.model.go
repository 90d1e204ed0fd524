package course

import "time"

// ModuleProgress is the per-(student, module) completion record. The same row
// flips between completed and incomplete; toggles upsert rather than insert.
type ModuleProgress struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_module"`
	ModuleID    uint       `json:"module_id" gorm:"not null;uniqueIndex:idx_progress_user_module"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
