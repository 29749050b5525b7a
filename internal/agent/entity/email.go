package entity

import "time"

// EmailThread 邮件往来记录（只追加，创建后不可变）
type EmailThread struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Timestamp     time.Time `json:"timestamp"`
	Body          string    `json:"body"`
	AIDisclosure  bool      `json:"ai_disclosure"` // Agent发出的邮件恒为true
	Intent        string    `json:"intent,omitempty"`
	RequiresHuman bool      `json:"requires_human"`
}

// 邮件意图分类
const (
	IntentPricingResponse = "pricing_response"
	IntentNegotiation     = "negotiation"
	IntentConfirmation    = "confirmation"
	IntentEscalation      = "escalation"
	IntentDeliveryUpdate  = "delivery_update"
)
