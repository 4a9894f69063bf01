// Package models содержит доменные структуры календаря и трекера подписок.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle единица повторения списания подписки.
type BillingCycle string

// Допустимые циклы списания.
const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// SubscriptionType категория подписки, закрытый перечень.
type SubscriptionType string

// Допустимые категории подписок.
const (
	SubTypeSoftware      SubscriptionType = "software"
	SubTypeEntertainment SubscriptionType = "entertainment"
	SubTypeUtility       SubscriptionType = "utility"
	SubTypeRent          SubscriptionType = "rent"
	SubTypeService       SubscriptionType = "service"
	SubTypeOther         SubscriptionType = "other"
)

// Subscription регулярный расход пользователя. Цена хранится как
// decimal, чтобы агрегаты не накапливали ошибку двоичных дробей.
// EndDate может быть nil — подписка бессрочная.
type Subscription struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Currency     string           `json:"currency"`
	BillingCycle BillingCycle     `json:"billingCycle"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      *time.Time       `json:"endDate,omitempty"`
	Link         string           `json:"link,omitempty"`
	Type         SubscriptionType `json:"type"`
	IsActive     bool             `json:"isActive"`
	Color        string           `json:"color,omitempty"`
	Icon         string           `json:"icon,omitempty"`
	CreatedAt    time.Time        `json:"createdAt,omitempty"`
	UpdatedAt    time.Time        `json:"updatedAt,omitempty"`
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription. Даты приходят в виде
// строк формата 2006-01-02.
type DummySubscription struct {
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Currency     string  `json:"currency,omitempty"`
	BillingCycle string  `json:"billingCycle" validate:"required,oneof=monthly yearly"`
	StartDate    string  `json:"startDate" validate:"required"`
	EndDate      string  `json:"endDate,omitempty"`
	Link         string  `json:"link,omitempty"`
	Type         string  `json:"type" validate:"required,oneof=software entertainment utility rent service other"`
	Color        string  `json:"color,omitempty"`
	Icon         string  `json:"icon,omitempty"`
}

// SubscriptionSummary агрегированная сводка расходов пользователя:
// нормализованные к месяцу итоги и ближайшие списания.
type SubscriptionSummary struct {
	TotalMonthly decimal.Decimal   `json:"totalMonthly"`
	TotalYearly  decimal.Decimal   `json:"totalYearly"`
	Upcoming     []UpcomingPayment `json:"upcoming"`
}

// UpcomingPayment ближайшее списание по одной активной подписке.
type UpcomingPayment struct {
	SubscriptionID    string          `json:"subscriptionId"`
	Name              string          `json:"name"`
	NextPaymentDate   time.Time       `json:"nextPaymentDate"`
	MonthlyEquivalent decimal.Decimal `json:"monthlyEquivalent"`
}

// SubscriptionWithUser подписка вместе с контактами владельца.
// Используется планировщиком напоминаний.
type SubscriptionWithUser struct {
	Subscription
	UserUID  string `json:"userUid"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// PaymentReminder сообщение для очереди напоминаний: у подписки
// завтра дата списания. MessageID уникален для каждой публикации.
type PaymentReminder struct {
	MessageID       string          `json:"messageId"`
	Email           string          `json:"email"`
	Username        string          `json:"username"`
	SubscriptionID  string          `json:"subscriptionId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	NextPaymentDate time.Time       `json:"nextPaymentDate"`
}
