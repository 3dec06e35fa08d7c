// ratelimit ограничивает частоту попыток входа.
//
// memory.go — in-memory фиксированное окно на процесс;
// redis.go — то же окно в Redis (общий лимит для нескольких реплик).
package ratelimit

import "context"

// Limiter — контракт ограничителя: Allow учитывает попытку по ключу (обычно IP)
// и сообщает, укладывается ли она в лимит окна.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}
