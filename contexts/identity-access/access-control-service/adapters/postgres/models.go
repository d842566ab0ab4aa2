package postgresadapter

import (
	"time"
)

type grantModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Member    string    `gorm:"column:member;primaryKey"`
	Role      string    `gorm:"column:role;primaryKey"`
	GrantedBy string    `gorm:"column:granted_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (grantModel) TableName() string {
	return "access_role_grants"
}

type pauseModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Paused    bool      `gorm:"column:paused"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (pauseModel) TableName() string {
	return "access_pause_states"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "access_outbox"
}
