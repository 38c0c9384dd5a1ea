package queue

import (
	"encoding/json"

	"github.com/petits-moulins/api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskFormStatusEmail 同意书状态邮件通知任务
	TaskFormStatusEmail = constants.TaskFormStatusEmail
)

// FormStatusEmailPayload 同意书状态邮件任务载荷
// 只携带表单编号，收件人与状态在消费端按库中最新数据解析。
type FormStatusEmailPayload struct {
	FormID string `json:"form_id"`
}

// NewFormStatusEmailTask 创建同意书状态邮件任务
func NewFormStatusEmailTask(payload FormStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFormStatusEmail, body), nil
}
