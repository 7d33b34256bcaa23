package domain

import "time"

// WorkVersion immutable numbered snapshot of a work (work_versions table).
// (work_id, version) is unique so two writers cannot claim the same number.
type WorkVersion struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	WorkID    string    `gorm:"column:work_id;type:varchar(36);uniqueIndex:idx_work_versions_work_version"`
	Version   int       `gorm:"column:version;uniqueIndex:idx_work_versions_work_version"`
	Data      string    `gorm:"column:data;type:longtext"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (WorkVersion) TableName() string { return "work_versions" }

// VersionData API projection of a version
type VersionData struct {
	ID        string       `json:"id"`
	WorkID    string       `json:"workId"`
	Version   int          `json:"version"`
	Snapshot  WorkSnapshot `json:"data"`
	CreatedAt time.Time    `json:"createdAt"`
}

// VersionSummary list item without the snapshot body
type VersionSummary struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}
