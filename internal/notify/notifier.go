package notify

import "context"

// Notifier отправляет служебные уведомления (регистрации, отмены)
// в канал организаторов. Доставка best-effort: ошибки логируются
// вызывающей стороной и не влияют на результат операции.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
