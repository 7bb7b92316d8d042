package pair

// Fiats 是常见法币及贵金属代码表，作为默认的 known-quote 集合。
// 来源是各交易所导出里实际出现过的计价币种。
var Fiats = []string{
	"AED", "ARS", "AUD", "BGN", "BRL", "CAD", "CHF", "CLP", "CNY", "COP",
	"CZK", "DKK", "DZD", "EGP", "EUR", "GBP", "HKD", "HRK", "HUF", "IDR",
	"ILS", "INR", "ISK", "JPY", "KES", "KHR", "KRW", "LAK", "LKR", "MAD",
	"MMK", "MXN", "MYR", "NGN", "NOK", "NZD", "PHP", "PKR", "PLN", "QAR",
	"RON", "RUB", "SEK", "SGD", "THB", "TWD", "UAH", "UYU", "USD", "VEF",
	"XAG", "XAU", "XPL", "XPT", "ZAR",
}
