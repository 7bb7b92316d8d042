package config

import "strings"

// ValidateParams 验证货币主数据里的关键约束。
func ValidateParams(cfg AppConfig) error {
	for _, q := range cfg.Currencies.ExtraQuotes {
		if strings.TrimSpace(q) == "" {
			return ErrInvalid("currencies.extraQuotes must not contain empty codes")
		}
	}
	return nil
}

// ErrInvalid 用于参数验证错误。
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }
