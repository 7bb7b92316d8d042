package trade

import (
	"txn-normalizer-go/amount"
	"txn-normalizer-go/fee"
)

// Params 是一笔原始成交的字段集合，金额都按来源给的文本原样传入。
// 在 BTC/USD 上买 10 表示用 X USD 换 10 BTC（USD→BTC）；
// 卖 10 BTC/USD 表示用 10 BTC 换 X USD（BTC→USD）。
type Params struct {
	BaseCurrency  string
	QuoteCurrency string
	Side          string // 自由文本：buy/bought/bid、sell/sold/ask
	Amount        string // base 腿数量
	UnitPrice     string // 单价，TotalPrice 缺失时用 Amount*UnitPrice
	TotalPrice    string // 总价，优先于 UnitPrice
	FeeAmount     string
}

// Convert 装配 CanonicalTrade。
// 手续费币种先按金额比值推断；推断不出来取"主腿"币种：
// 买入取 base，卖出取 quote。
func Convert(p Params) (CanonicalTrade, error) {
	side, err := ParseSide(p.Side)
	if err != nil {
		return CanonicalTrade{}, err
	}

	baseAmount, _ := amount.Parse(p.Amount)
	quoteAmount, ok := amount.Parse(p.TotalPrice)
	if !ok {
		unit, _ := amount.Parse(p.UnitPrice)
		quoteAmount = baseAmount.Mul(unit)
	}

	var ct CanonicalTrade
	if side == SideBuy {
		ct.FromAmount, ct.FromCurrency = quoteAmount, p.QuoteCurrency
		ct.ToAmount, ct.ToCurrency = baseAmount, p.BaseCurrency
	} else {
		ct.FromAmount, ct.FromCurrency = baseAmount, p.BaseCurrency
		ct.ToAmount, ct.ToCurrency = quoteAmount, p.QuoteCurrency
	}

	feeAmount, _ := amount.Parse(p.FeeAmount)
	feeCurrency, ok := fee.Detect(ct.FromAmount, ct.FromCurrency, ct.ToAmount, ct.ToCurrency, feeAmount)
	if !ok {
		if side == SideBuy {
			feeCurrency = p.BaseCurrency
		} else {
			feeCurrency = p.QuoteCurrency
		}
	}
	ct.FeeCurrency = feeCurrency
	return ct, nil
}
