package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/provider"
	"github.com/petits-moulins/api/internal/queue"
	"github.com/petits-moulins/api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskFormStatusEmail, c.handleFormStatusEmail)
}

// handleFormStatusEmail 按库中最新数据发送同意书状态通知
// 收件人与状态在消费时解析，入队与消费之间的状态变更以最新值为准。
func (c *Consumer) handleFormStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_form_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.FormStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_form_status_email_unmarshal_failed", "error", err)
		return err
	}
	formID := strings.TrimSpace(payload.FormID)
	if formID == "" {
		logger.Debugw("worker_form_status_email_skip_invalid_payload")
		return nil
	}

	form, err := c.ConsentFormRepo.GetByID(formID)
	if err != nil {
		logger.Warnw("worker_form_status_email_fetch_form_failed", "form_id", formID, "error", err)
		return err
	}
	if form == nil {
		logger.Debugw("worker_form_status_email_skip_form_not_found", "form_id", formID)
		return nil
	}

	receiverEmail := strings.TrimSpace(form.ParentEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_form_status_email_skip_empty_receiver", "form_id", formID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_form_status_email_skip_email_service_nil", "form_id", formID)
		return nil
	}

	input := service.FormStatusEmailInput{
		FormID:     form.ID,
		FormType:   form.FormType,
		Status:     form.Status,
		ParentName: form.ParentName,
	}
	if err := c.EmailService.SendFormStatusEmail(receiverEmail, input, ""); err != nil {
		logger.Warnw("worker_form_status_email_send_failed",
			"form_id", form.ID,
			"receiver_email", receiverEmail,
			"status", form.Status,
			"error", err,
		)
		return err
	}
	return nil
}
