package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление студенту
func (c *Client) Send(ctx context.Context, msg *Message) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendWithGracefulDegradation отправляет уведомление с graceful degradation
// При недоступности NotifyService возвращает ErrServiceDegraded; напоминание
// не теряется, воркер повторит отправку на следующем цикле
func (c *Client) SendWithGracefulDegradation(ctx context.Context, msg *Message) error {
	c.log.Info("Sending %s notification for student_id=%d", msg.Kind, msg.StudentID)

	if err := c.Send(ctx, msg); err != nil {
		// При любой ошибке (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("NotifyService unavailable, applying graceful degradation for student_id=%d: %v", msg.StudentID, err)
		return fmt.Errorf("%w: student_id=%d, error=%v", ErrServiceDegraded, msg.StudentID, err)
	}

	c.log.Info("Successfully sent %s notification for student_id=%d", msg.Kind, msg.StudentID)
	return nil
}
