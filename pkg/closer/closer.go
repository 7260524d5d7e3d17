// Package closer собирает функции освобождения ресурсов и закрывает их
// в обратном порядке регистрации при остановке приложения.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer обеспечивает потокобезопасное закрытие ресурсов.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []Func
	forcedTimeout time.Duration
}

// NewCloser создаёт Closer. forcedTimeout — время, отводимое на принудительное
// закрытие оставшихся ресурсов после отмены контекста в Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия. Функции выполняются в порядке LIFO.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close выполняет все зарегистрированные функции в порядке LIFO.
// При отмене контекста оставшиеся функции закрываются принудительно
// с собственным таймаутом. Повторные вызовы не имеют эффекта.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		remaining, msgs := c.gracefulClose(ctx, funcs)
		if len(remaining) > 0 {
			msgs = append(msgs, c.forcedClose(remaining)...)
			err = fmt.Errorf(
				"shutdown interrupted, %d of %d funcs forced:\n%s",
				len(remaining), len(funcs), strings.Join(msgs, "\n"),
			)
			return
		}

		if len(msgs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(msgs, "\n"))
		}
	})

	return err
}

// gracefulClose закрывает функции с конца списка, пока не закончатся
// или не отменится контекст. Возвращает ещё не закрытые функции и ошибки.
func (c *Closer) gracefulClose(ctx context.Context, funcs []Func) ([]Func, []string) {
	var msgs []string
	for i := len(funcs) - 1; i >= 0; i-- {
		done := make(chan error, 1)
		go func(f Func) {
			done <- f(ctx)
		}(funcs[i])

		select {
		case err := <-done:
			if err != nil {
				msgs = append(msgs, fmt.Sprintf("[!] %v", err))
			}
		case <-ctx.Done():
			return funcs[:i+1], msgs
		}
	}

	return nil, msgs
}

// forcedClose параллельно запускает оставшиеся функции с собственным таймаутом.
func (c *Closer) forcedClose(funcs []Func) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		msgs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, f := range funcs {
		wg.Add(1)
		go func(f Func) {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				msgs = append(msgs, fmt.Sprintf("[FORCED] %v", err))
				mu.Unlock()
			}
		}(f)
	}

	wg.Wait()
	return msgs
}
