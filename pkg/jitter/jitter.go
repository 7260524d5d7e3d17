// Package jitter добавляет случайность к интервалам (TTL кэша, паузы между
// повторами), чтобы избежать синхронного истечения и эффекта thundering herd.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает длительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// Backoff вычисляет экспоненциальную паузу с джиттером для повтора attempt
// (нумерация с нуля), ограниченную сверху значением max.
func Backoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}

	return Duration(backoff, factor)
}
