package domain

import (
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// DefaultCurrency используется, когда валюта не указана явно.
const DefaultCurrency = "USD"

// Money описывает денежную сумму с валютой.
// Сумма хранится в decimal, чтобы избежать ошибок округления float.
type Money struct {
	Amount   decimal.Decimal
	Currency string // Трёхбуквенный код, например "USD"
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}

	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

func NewMoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// Validate проверяет, что сумма неотрицательна, а код валюты трёхбуквенный.
func (m Money) Validate() error {
	if m.Amount.IsNegative() {
		return e.ErrInvalidPrice
	}

	if !isCurrencyCode(m.Currency) {
		return e.ErrInvalidCurrency
	}

	return nil
}

// Float64 возвращает сумму как float64 для границы API.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}

	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	return true
}
