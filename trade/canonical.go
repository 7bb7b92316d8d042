// Package trade 把原始成交字段装配成统一的资金流形态。
package trade

import "github.com/shopspring/decimal"

// CanonicalTrade 是归一化后的统一成交形态：资金从 from 腿流向 to 腿。
// 买入时 quote→base，卖出时 base→quote；FeeCurrency 一定是两腿币种之一。
type CanonicalTrade struct {
	FromAmount   decimal.Decimal `json:"from_amount"`
	FromCurrency string          `json:"from_currency"`
	ToAmount     decimal.Decimal `json:"to_amount"`
	ToCurrency   string          `json:"to_currency"`
	FeeCurrency  string          `json:"fee_currency"`
}
