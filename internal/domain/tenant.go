package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// TenantConfig — настройки одного аккаунта (магазина) во внешнем API.
// Принадлежит внешнему хранилищу конфигурации; движок только читает.
type TenantConfig struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	BaseURL        string `json:"base_url"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
	Site           string `json:"site,omitempty"`
}

// HasCredentials — оба ключа пары заданы.
func (t *TenantConfig) HasCredentials() bool {
	return strings.TrimSpace(t.ConsumerKey) != "" && strings.TrimSpace(t.ConsumerSecret) != ""
}

// ParsedBaseURL — разбирает base_url; допустимы только http/https с хостом.
func (t *TenantConfig) ParsedBaseURL() (*url.URL, error) {
	raw := strings.TrimSpace(t.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("%w: base_url is empty", ErrInvalidTenant)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base_url %q: %v", ErrInvalidTenant, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base_url %q: unsupported scheme", ErrInvalidTenant, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: base_url %q: host is empty", ErrInvalidTenant, raw)
	}
	return u, nil
}

// SiteName — идентификатор сайта для bronze-строк: явный Site или хост из base_url.
func (t *TenantConfig) SiteName() string {
	if t.Site != "" {
		return t.Site
	}
	if u, err := t.ParsedBaseURL(); err == nil {
		return u.Host
	}
	return ""
}

// DisplayName — имя аккаунта для отчёта.
func (t *TenantConfig) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
